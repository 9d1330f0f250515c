package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sba-recon-api/internal/dto"
	"github.com/noah-isme/sba-recon-api/pkg/config"
	appErrors "github.com/noah-isme/sba-recon-api/pkg/errors"
)

func newAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(validator.New(), zap.NewNop(),
		config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
		config.AuthConfig{ReviewerEmail: "reviewer@school.test", ReviewerPasswordHash: string(hash)})
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	res, err := svc.Login(dto.LoginRequest{Email: "reviewer@school.test", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "reviewer@school.test", claims.Email)
	assert.Equal(t, "reviewer", claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	_, err := svc.Login(dto.LoginRequest{Email: "reviewer@school.test", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginWrongEmail(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	_, err := svc.Login(dto.LoginRequest{Email: "intruder@school.test", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginInvalidPayload(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	_, err := svc.Login(dto.LoginRequest{Email: "not-an-email", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(validator.New(), zap.NewNop(),
		config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
		config.AuthConfig{ReviewerEmail: "reviewer@school.test"})

	_, err := svc.Login(dto.LoginRequest{Email: "reviewer@school.test", Password: "anything"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := newAuthService(t, "s3cret")
	other := NewAuthService(validator.New(), zap.NewNop(),
		config.JWTConfig{Secret: "different-secret", Expiration: time.Hour},
		config.AuthConfig{ReviewerEmail: "reviewer@school.test"})

	res, err := svc.Login(dto.LoginRequest{Email: "reviewer@school.test", Password: "s3cret"})
	require.NoError(t, err)

	_, err = other.ValidateToken(res.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
