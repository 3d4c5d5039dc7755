package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 24}

func newTestTokenService(t *testing.T) (*TokenService, redismock.ClientMock) {
	t.Helper()
	redisClient, mock := redismock.NewClientMock()
	service := NewTokenService(testJWT, redisClient)
	now := time.Now().Truncate(time.Second)
	service.now = func() time.Time { return now }
	return service, mock
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	ctx := context.Background()
	service, mock := newTestTokenService(t)
	userID := uuid.New()

	token, err := service.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	mock.ExpectExists(blacklistKey(token)).SetVal(0)

	got, err := service.Validate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token", func(t *testing.T) {
		service, mock := newTestTokenService(t)
		token, err := service.Issue(uuid.New())
		require.NoError(t, err)

		mock.ExpectExists(blacklistKey(token)).SetVal(1)

		_, err = service.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure rejects the token", func(t *testing.T) {
		service, mock := newTestTokenService(t)
		token, err := service.Issue(uuid.New())
		require.NoError(t, err)

		mock.ExpectExists(blacklistKey(token)).SetErr(errors.New("connection refused"))

		_, err = service.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		service, _ := newTestTokenService(t)
		other := NewTokenService(config.JWTConfig{SecretKey: "other", ExpiryHours: 1}, nil)
		token, err := other.Issue(uuid.New())
		require.NoError(t, err)

		_, err = service.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		service, _ := newTestTokenService(t)
		token, err := service.Issue(uuid.New())
		require.NoError(t, err)

		later := time.Now().Add(25 * time.Hour)
		service.now = func() time.Time { return later }

		_, err = service.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		service, _ := newTestTokenService(t)
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("without redis tokens are checked by signature only", func(t *testing.T) {
		service := NewTokenService(testJWT, nil)
		userID := uuid.New()
		token, err := service.Issue(userID)
		require.NoError(t, err)

		got, err := service.Validate(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists until expiry", func(t *testing.T) {
		service, mock := newTestTokenService(t)
		token, err := service.Issue(uuid.New())
		require.NoError(t, err)

		mock.ExpectSet(blacklistKey(token), "1", 24*time.Hour).SetVal("OK")

		assert.NoError(t, service.Revoke(ctx, token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("garbage token", func(t *testing.T) {
		service, _ := newTestTokenService(t)
		assert.ErrorIs(t, service.Revoke(ctx, "not-a-token"), ErrInvalidToken)
	})

	t.Run("redis failure", func(t *testing.T) {
		service, mock := newTestTokenService(t)
		token, err := service.Issue(uuid.New())
		require.NoError(t, err)

		mock.ExpectSet(blacklistKey(token), "1", 24*time.Hour).SetErr(errors.New("connection refused"))

		err = service.Revoke(ctx, token)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}
