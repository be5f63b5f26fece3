package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/candies-app/candies/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt secret is empty")

// HMACVerifier checks HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

func (v *HMACVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return mapToken(claims), nil
}

type mapToken map[string]interface{}

func (t mapToken) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(t))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// IssueToken signs an HS256 token for sub that expires after ttl.
func IssueToken(secret, sub string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
