package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAnon    = "anon"
	RoleService = "service_role"
)

var ErrUnknownRole = errors.New("unknown api key role")

type APIKeyClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAPIKey signs a key for role. A zero ttl issues a key without expiry.
func IssueAPIKey(secret []byte, issuer, role string, ttl time.Duration) (string, error) {
	if role != RoleAnon && role != RoleService {
		return "", ErrUnknownRole
	}
	now := time.Now()
	claims := APIKeyClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func APIKeyClaimsFromToken(tokenStr string, secret []byte) (*APIKeyClaims, error) {
	var claims APIKeyClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Role != RoleAnon && claims.Role != RoleService {
		return nil, ErrUnknownRole
	}
	return &claims, nil
}
