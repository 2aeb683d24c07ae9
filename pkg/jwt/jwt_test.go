package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/pkg/jwt"
)

func newManager() *jwt.Manager {
	return jwt.NewManager("secreto-de-test", "shipapi-test", 30, 60*24)
}

func TestAccessTTL(t *testing.T) {
	m := newManager()
	assert.Equal(t, 30*time.Minute, m.AccessTTL())
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newManager()
	token, err := m.GenerateAccess("user-1", "ana@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.Parse(token, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, jwt.TypeAccess, claims.Type)
}

func TestRefreshToken_NoPasaPorAccess(t *testing.T) {
	m := newManager()
	refresh, err := m.GenerateRefresh("user-1")
	require.NoError(t, err)

	_, err = m.Parse(refresh, jwt.TypeAccess)
	assert.Error(t, err, "un refresh token no debe validar como access")

	claims, err := m.Parse(refresh, jwt.TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Empty(t, claims.Email, "el refresh no lleva claims de perfil")
}

func TestParse_SecretoDistinto(t *testing.T) {
	m := newManager()
	token, err := m.GenerateAccess("user-1", "", "user")
	require.NoError(t, err)

	other := jwt.NewManager("otro-secreto", "shipapi-test", 30, 60)
	_, err = other.Parse(token, jwt.TypeAccess)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	m := jwt.NewManager("secreto-de-test", "shipapi-test", -1, 60)
	token, err := m.GenerateAccess("user-1", "", "user")
	require.NoError(t, err)

	_, err = m.Parse(token, jwt.TypeAccess)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	m := jwt.NewManager("", "shipapi-test", 30, 60)
	_, err := m.GenerateAccess("user-1", "", "user")
	assert.Error(t, err)
}
