package server

import (
	"fmt"

	"github.com/rgjamkhedkar/passport-token-google/internal/access"
	"github.com/rgjamkhedkar/passport-token-google/internal/config"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy/google"
)

// NewRegistry assembles the strategies the gateway can dispatch to. Today
// that is the Google token strategy, verified against the access rules.
func NewRegistry(cfg *config.Config, rules *access.Rules) (*strategy.Registry, error) {
	googleStrategy, err := newGoogleStrategy(&cfg.OAuth, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build google strategy: %w", err)
	}

	return strategy.NewRegistry(googleStrategy)
}

func newGoogleStrategy(cfg *config.OAuthConfig, rules *access.Rules) (*google.Strategy, error) {
	opts := google.Options{
		ClientID:         cfg.ClientID,
		ClientSecret:     cfg.ClientSecret,
		CallbackURL:      cfg.CallbackURL,
		AuthorizationURL: cfg.AuthorizationURL,
		TokenURL:         cfg.TokenURL,
	}
	if cfg.SkipProfile {
		opts.SkipProfile = google.Fixed(true)
	}

	return google.New(opts, access.Verifier(rules))
}
