// Package auth issues and validates session tokens and guards the
// credential policy. A session's role and zone are fixed at issue time;
// there is no elevation path after login.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"safetysight/types"
)

// Claims carries the session identity inside the JWT.
type Claims struct {
	Name string     `json:"name"`
	Role types.Role `json:"role"`
	Zone string     `json:"zone,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and validates session tokens.
type JWTManager struct {
	secretKey  []byte
	expiration time.Duration
}

func NewJWTManager(secretKey string, expiration time.Duration) *JWTManager {
	return &JWTManager{secretKey: []byte(secretKey), expiration: expiration}
}

// GenerateToken issues a session token for an authenticated identity.
func (m *JWTManager) GenerateToken(ident *types.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: ident.Name,
		Role: ident.Role,
		Zone: ident.Zone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "safetysight",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token and returns its claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ExtractToken pulls the token out of a "Bearer <token>" header value.
func ExtractToken(authHeader string) (string, error) {
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return "", fmt.Errorf("invalid authorization header")
	}
	return authHeader[7:], nil
}
