package tokens

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pet-adoption-backend/internal/ports/auth"
)

// userClaims son los claims que emite el servicio de cuentas.
type userClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier valida tokens HMAC firmados con el secreto compartido.
// Implementa auth.AuthVerifier.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("tokens: secret requerido")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	claims := &userClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("tokens: unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("tokens: invalid token: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("tokens: invalid token")
	}

	userID := claims.UserID
	if userID == "" {
		// fallback al sub estándar
		userID = claims.Subject
	}
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("tokens: token sin user id")
	}

	return auth.Claims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)
