package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Costbook-api/internal/application/auth"
	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/pkg/jwt"
)

func newAuth(t *testing.T, perMinute int) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pan-dulce"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(string(hash), auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, Issuer: "costbook"}, perMinute)
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t, 10)
	out, err := uc.Login(dto.LoginRequest{Password: "pan-dulce"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)

	_, role, err := jwt.Parse("s3cret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleOwner, role)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	_, err := newAuth(t, 10).Login(dto.LoginRequest{Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_LimiteDeIntentos(t *testing.T) {
	uc := newAuth(t, 2)
	_, _ = uc.Login(dto.LoginRequest{Password: "x"})
	_, _ = uc.Login(dto.LoginRequest{Password: "x"})
	_, err := uc.Login(dto.LoginRequest{Password: "pan-dulce"})
	assert.ErrorIs(t, err, domain.ErrTooManyRequests)
}

func TestLogin_NoConfigurado(t *testing.T) {
	uc := auth.NewAuthUseCase("", auth.JWTConfig{}, 0)
	assert.False(t, uc.Enabled())
	_, err := uc.Login(dto.LoginRequest{Password: "x"})
	assert.ErrorIs(t, err, domain.ErrAuthNotConfigured)
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("pan-dulce")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pan-dulce")))
}
