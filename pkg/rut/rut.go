// Package rut implementa la validación del RUT chileno (Rol Único Tributario).
//
// El dígito verificador se calcula con el algoritmo módulo 11: se recorren los
// dígitos del cuerpo de derecha a izquierda multiplicando por la serie
// 2,3,4,5,6,7 (cíclica); dv = 11 - (suma mod 11), con 11 -> "0" y 10 -> "K".
package rut

import (
	"fmt"
	"strings"
)

// Normalize limpia un RUT de puntos, guiones y espacios y lo deja en
// mayúsculas: "12.345.678-5" -> "123456785". No valida el contenido.
func Normalize(rut string) string {
	r := strings.NewReplacer(".", "", "-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(rut)))
}

// CheckDigit calcula el dígito verificador para el cuerpo numérico del RUT.
// El cuerpo debe contener solo dígitos.
func CheckDigit(body string) (string, error) {
	if body == "" {
		return "", fmt.Errorf("rut: cuerpo vacío")
	}
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("rut: carácter inválido %q en el cuerpo", c)
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return "0", nil
	case 10:
		return "K", nil
	default:
		return fmt.Sprintf("%d", dv), nil
	}
}

// Validate verifica que el RUT tenga un dígito verificador correcto.
// Acepta el formato con o sin puntos y guión ("12.345.678-5", "12345678-5",
// "123456785"). Un RUT vacío es inválido.
func Validate(rut string) bool {
	clean := Normalize(rut)
	if len(clean) < 2 {
		return false
	}
	body, dv := clean[:len(clean)-1], string(clean[len(clean)-1])
	expected, err := CheckDigit(body)
	if err != nil {
		return false
	}
	return dv == expected
}

// Format devuelve el RUT normalizado en el formato canónico cuerpo-dv
// ("123456785" -> "12345678-5"). Si el RUT es demasiado corto lo retorna tal cual.
func Format(rut string) string {
	clean := Normalize(rut)
	if len(clean) < 2 {
		return clean
	}
	return clean[:len(clean)-1] + "-" + clean[len(clean)-1:]
}
