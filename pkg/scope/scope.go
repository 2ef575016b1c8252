package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("token has no user id")
)

// Payload is the set of claims carried by an owner token.
type Payload struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Manager issues and verifies owner tokens.
type Manager interface {
	CreateToken(userID string) (string, error)
	Verify(token string) (Payload, error)
}

type implManager struct {
	secretKey []byte
	ttl       time.Duration
}

// New creates an HS256 Manager. A zero ttl issues tokens valid for 24 hours.
func New(secretKey string, ttl time.Duration) Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &implManager{secretKey: []byte(secretKey), ttl: ttl}
}

func (m *implManager) CreateToken(userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingUser
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Payload{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *implManager) Verify(tokenString string) (Payload, error) {
	payload := Payload{}

	token, err := jwt.ParseWithClaims(tokenString, &payload, func(t *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Payload{}, ErrInvalidToken
	}
	if payload.UserID == "" {
		return Payload{}, ErrMissingUser
	}

	return payload, nil
}
