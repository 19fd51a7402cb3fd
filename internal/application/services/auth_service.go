package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
	"github.com/buildsight/hubview-go/internal/infrastructure/security"
	"github.com/buildsight/hubview-go/pkg/config"
)

// ErrInvalidCredentials is returned when the admin password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles admin authentication for the cache management surface.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates the auth service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login checks the admin password against the configured bcrypt hash and
// issues a session token on success.
func (s *AuthService) Login(password string) (string, error) {
	if config.AdminPasswordHash == "" {
		s.logger.Auth().Warn("Admin login attempted but no password hash is configured")
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateSessionToken("admin", config.JWTSecret, config.SessionTokenExpiry)
	if err != nil {
		return "", err
	}
	s.logger.Auth().Info("Admin session issued")
	return token, nil
}

// ValidateSession checks a session token and returns the embedded role.
func (s *AuthService) ValidateSession(tokenString string) (string, error) {
	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return "", errors.New("session token has no role")
	}
	return role, nil
}
