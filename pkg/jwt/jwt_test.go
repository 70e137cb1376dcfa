package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costbook-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "owner", jwt.RoleOwner, "costbook", 5)
	require.NoError(t, err)

	sub, role, err := jwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "owner", sub)
	assert.Equal(t, jwt.RoleOwner, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "owner", jwt.RoleOwner, "costbook", 5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "owner", jwt.RoleOwner, "costbook", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "owner", jwt.RoleOwner, "costbook", 5)
	assert.Error(t, err)
}
