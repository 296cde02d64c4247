package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataeasy/dataeasy-api/internal/application/auth"
	"github.com/dataeasy/dataeasy-api/internal/application/dto"
	"github.com/dataeasy/dataeasy-api/internal/domain"
	"github.com/dataeasy/dataeasy-api/internal/infrastructure/memory"
	pkgjwt "github.com/dataeasy/dataeasy-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de auth: registro con hash bcrypt, login con emisión de JWT y la
// política de no filtrar qué usuarios existen.
// ──────────────────────────────────────────────────────────────────────────────

const authTestSecret = "secret-para-tests-de-auth"

func newAuthUseCase(t *testing.T) (*auth.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "dataeasy-test",
	})
	return uc, store
}

func TestRegister_NormalizaYHashea(t *testing.T) {
	uc, store := newAuthUseCase(t)

	out, err := uc.Register(context.Background(), dto.RegisterUserRequest{
		Username: "  Carla  ",
		Password: "clave-segura",
		Role:     "bodeguero",
	})
	require.NoError(t, err)
	assert.Equal(t, "carla", out.Username, "el username se guarda en minúsculas y sin espacios")
	assert.Equal(t, "bodeguero", out.Role)

	stored, err := store.Users().GetByUsername("carla")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestRegister_RolPorDefectoVendedor(t *testing.T) {
	uc, _ := newAuthUseCase(t)

	out, err := uc.Register(context.Background(), dto.RegisterUserRequest{
		Username: "diego",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", out.Role)
}

func TestRegister_EntradasInvalidas(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	casos := []dto.RegisterUserRequest{
		{Username: "", Password: "clave-segura"},
		{Username: "ana", Password: "corta"},
		{Username: "ana", Password: "clave-segura", Role: "superusuario"},
	}
	for _, in := range casos {
		_, err := uc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: "pedro", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterUserRequest{Username: "PEDRO", Password: "otra-clave-segura"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_EmiteTokenValido(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: "maria", Password: "clave-segura", Role: "admin"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "Maria ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "maria", out.Username)
	assert.Equal(t, "admin", out.Role)

	_, username, role, err := pkgjwt.Parse(authTestSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "admin", role)
}

// Usuario inexistente y contraseña incorrecta retornan el mismo error.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: "laura", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "laura", Password: "clave-incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "no-existe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListUsers(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	for _, name := range []string{"ana", "beto"} {
		_, err := uc.Register(ctx, dto.RegisterUserRequest{Username: name, Password: "clave-segura"})
		require.NoError(t, err)
	}

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.Role)
	}
}
