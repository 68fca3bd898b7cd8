package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sportmeet/api/entity"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenService issues and verifies HS256 bearer tokens. The signing secret
// and lifetime come from process configuration and never change at runtime.
// Tokens are not stored anywhere; validity is re-derived from the signature
// and expiry on every request.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(secret []byte, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		expiry: expiry,
	}
}

func (s *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// Verify returns the user id carried by the token. Malformed, unsigned,
// wrongly signed and expired tokens all resolve to ErrUnauthenticated; the
// caller never learns which.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", entity.ErrUnauthenticated
	}
	if claims.UserID == "" {
		return "", entity.ErrUnauthenticated
	}

	return claims.UserID, nil
}
