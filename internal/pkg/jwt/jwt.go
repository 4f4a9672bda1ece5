package jwt

import (
	"fmt"
	"time"

	"github.com/aquarion/docket-sub000/internal/config"
	"github.com/golang-jwt/jwt/v4"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

// CreateToken issues a signed token for the given subject.
func (m *Manager) CreateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(config.JwtTTL())),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Secret()))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// GetSubjectFromToken validates a token and returns its subject.
func (m *Manager) GetSubjectFromToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Secret()), nil
	})
	if err != nil {
		return "", &InvalidTokenError{Reason: err.Error()}
	}

	if !parsed.Valid {
		return "", &InvalidTokenError{Reason: "token is not valid"}
	}

	return claims.Subject, nil
}
