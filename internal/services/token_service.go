package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ruralpay/corebank/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues HS256 session tokens on login and keeps a revocation
// list in Redis. Without Redis, tokens stay valid until they expire.
type TokenService struct {
	secret []byte
	expiry time.Duration
	redis  *redis.Client
	now    func() time.Time
}

func NewTokenService(cfg config.JWTConfig, redisClient *redis.Client) *TokenService {
	return &TokenService{
		secret: []byte(cfg.SecretKey),
		expiry: cfg.Expiry(),
		redis:  redisClient,
		now:    time.Now,
	}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// Issue signs a token whose subject is userID.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	})
	return token.SignedString(s.secret)
}

func (s *TokenService) claims(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Validate returns the user id carried by a valid, unrevoked token.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := s.claims(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, blacklistKey(tokenString)).Result()
		if err != nil {
			log.Printf("[AUTH] Failed to check token revocation: %v", err)
			return uuid.Nil, fmt.Errorf("%w: revocation check failed", ErrInvalidToken)
		}
		if revoked > 0 {
			return uuid.Nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}
	return userID, nil
}

// Revoke blacklists the token until its expiry.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.claims(tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(tokenString), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}
