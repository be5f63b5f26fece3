package auth

import (
	"context"

	"github.com/candies-app/candies/internal/config"
	"github.com/candies-app/candies/pkg/middleware"
)

// NewVerifier builds the verifier selected by cfg, or returns nil when write
// routes should stay public.
func NewVerifier(ctx context.Context, cfg config.AuthConfig) (middleware.Verifier, error) {
	switch {
	case cfg.OIDCIssuer != "":
		return NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
	case cfg.JWTSecret != "":
		return NewHMACVerifier(cfg.JWTSecret)
	}
	return nil, nil
}
