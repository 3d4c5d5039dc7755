package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/config"
	"github.com/ruralpay/corebank/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(t *testing.T, tokens TokenValidator) (http.Handler, *uuid.UUID) {
	t.Helper()
	var seen uuid.UUID
	h := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seen = userID
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthenticate(t *testing.T) {
	jwtCfg := config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 1}

	t.Run("valid token", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		tokens := services.NewTokenService(jwtCfg, redisClient)
		userID := uuid.New()
		token, err := tokens.Issue(userID)
		require.NoError(t, err)
		mock.ExpectExists("blacklist:" + token).SetVal(0)

		h, seen := protected(t, tokens)
		req := httptest.NewRequest(http.MethodGet, "/auth/account", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, userID, *seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revoked token", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		tokens := services.NewTokenService(jwtCfg, redisClient)
		token, err := tokens.Issue(uuid.New())
		require.NoError(t, err)
		mock.ExpectExists("blacklist:" + token).SetVal(1)

		h, _ := protected(t, tokens)
		req := httptest.NewRequest(http.MethodGet, "/auth/account", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	headers := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range headers {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := protected(t, services.NewTokenService(jwtCfg, nil))
			req := httptest.NewRequest(http.MethodGet, "/auth/account", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), services.CodeUnauthorized)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
