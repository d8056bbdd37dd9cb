package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"villamarket/internal/domain"
)

type tokenClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 bearer tokens carrying the user id
// and role. It is the user service's TokenService implementation.
type JWTService struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time // injectable for tests
}

func NewJWTService(secret string, lifetime time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &JWTService{key: []byte(secret), lifetime: lifetime, now: time.Now}, nil
}

func (s *JWTService) Issue(u domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(credential string) (domain.Identity, error) {
	if credential == "" {
		return domain.Identity{}, domain.E(domain.KindUnauthorized, "missing credential")
	}
	parsed, err := jwt.ParseWithClaims(credential, &tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.Wrap(domain.KindUnauthorized, "token expired", err)
		}
		return domain.Identity{}, domain.Wrap(domain.KindUnauthorized, "invalid token", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, domain.E(domain.KindUnauthorized, "invalid token")
	}
	return domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
