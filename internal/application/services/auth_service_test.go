package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildsight/hubview-go/pkg/config"
)

func withAdminCredentials(t *testing.T, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	prevHash, prevSecret := config.AdminPasswordHash, config.JWTSecret
	config.AdminPasswordHash = string(hash)
	config.JWTSecret = "test-secret"
	t.Cleanup(func() {
		config.AdminPasswordHash = prevHash
		config.JWTSecret = prevSecret
	})
}

func TestLoginAndValidateSession(t *testing.T) {
	withAdminCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	role, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestLoginWrongPassword(t *testing.T) {
	withAdminCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	_, err := svc.Login("password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	withAdminCredentials(t, "hunter2")
	config.AdminPasswordHash = ""
	svc := NewAuthService(newTestLogger(t))

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateSessionGarbageToken(t *testing.T) {
	withAdminCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	_, err := svc.ValidateSession("not-a-jwt")
	assert.Error(t, err)
}
