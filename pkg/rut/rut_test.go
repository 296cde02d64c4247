package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeasy/dataeasy-api/pkg/rut"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de prueba calculados a mano con el algoritmo módulo 11
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckDigit_VectoresConocidos(t *testing.T) {
	cases := []struct {
		body string
		dv   string
	}{
		// 12345678: serie 2..7 de derecha a izquierda -> suma 138, 138 mod 11 = 6, dv = 5
		{"12345678", "5"},
		// 11111111: suma 32, 32 mod 11 = 10, dv = 1
		{"11111111", "1"},
		// 6: 6*2 = 12, 12 mod 11 = 1, dv = 11-1 = 10 -> "K"
		{"6", "K"},
		// 14: 4*2 + 1*3 = 11, 11 mod 11 = 0, dv = 11 -> "0"
		{"14", "0"},
		{"22222222", "2"},
	}
	for _, tc := range cases {
		dv, err := rut.CheckDigit(tc.body)
		require.NoError(t, err, "cuerpo %s", tc.body)
		assert.Equal(t, tc.dv, dv, "dígito verificador de %s", tc.body)
	}
}

func TestCheckDigit_CuerpoInvalido(t *testing.T) {
	_, err := rut.CheckDigit("")
	assert.Error(t, err, "cuerpo vacío debe fallar")

	_, err = rut.CheckDigit("12a45")
	assert.Error(t, err, "cuerpo con letras debe fallar")
}

func TestValidate_FormatosAceptados(t *testing.T) {
	// El mismo RUT válido en todas sus variantes de formato
	for _, s := range []string{"12.345.678-5", "12345678-5", "123456785", " 12345678-5 "} {
		assert.True(t, rut.Validate(s), "debe aceptar %q", s)
	}
	// Dígito K en minúscula y mayúscula
	assert.True(t, rut.Validate("6-K"))
	assert.True(t, rut.Validate("6-k"))
}

func TestValidate_DigitoIncorrecto(t *testing.T) {
	assert.False(t, rut.Validate("12.345.678-9"), "dv incorrecto debe rechazarse")
	assert.False(t, rut.Validate("11111111-2"))
	assert.False(t, rut.Validate(""), "RUT vacío es inválido")
	assert.False(t, rut.Validate("-5"), "sin cuerpo es inválido")
	assert.False(t, rut.Validate("abc-5"), "cuerpo no numérico es inválido")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12345678-5", rut.Format("12.345.678-5"))
	assert.Equal(t, "6-K", rut.Format("6k"))
}
