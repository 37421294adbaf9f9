// Package google implements token-based authentication against Google.
// The client presents an OAuth 2.0 access token directly; the strategy
// verifies it through Google's token info endpoint, normalizes the returned
// claims into a Profile, and defers the final decision to an application
// verify callback.
package google

import (
	"context"
	"errors"

	"github.com/rgjamkhedkar/passport-token-google/internal/oauth2client"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
)

const (
	// StrategyName is the identifier this strategy registers under.
	StrategyName = "google-token"

	// DefaultAuthorizationURL is Google's OAuth 2.0 authorization endpoint.
	DefaultAuthorizationURL = "https://accounts.google.com/o/oauth2/auth"

	// DefaultTokenURL is Google's OAuth 2.0 token endpoint.
	DefaultTokenURL = "https://accounts.google.com/o/oauth2/token"

	// ProfileURL is the token info endpoint identity claims are read from.
	ProfileURL = "https://www.googleapis.com/oauth2/v3/tokeninfo"
)

var (
	ErrMissingVerify   = errors.New("a verify callback is required")
	ErrMissingClientID = errors.New("a client ID is required")
)

// Verify is the application callback that turns a verified token and its
// profile into a user. Returning a nil user rejects the credentials, with
// info as the reason; returning an error aborts the attempt.
type Verify func(ctx context.Context, accessToken, refreshToken string, profile *Profile) (user any, info any, err error)

// RequestVerify is a Verify that also receives the request being
// authenticated, for applications whose decision needs request state.
type RequestVerify func(ctx context.Context, req *strategy.Request, accessToken, refreshToken string, profile *Profile) (user any, info any, err error)

// Options configures a Strategy. Zero-valued endpoint URLs fall back to the
// Google defaults above.
type Options struct {
	ClientID         string
	ClientSecret     string
	CallbackURL      string
	AuthorizationURL string
	TokenURL         string

	// SkipProfile decides per attempt whether the profile fetch is
	// bypassed. Nil means the profile is always fetched.
	SkipProfile SkipPolicy
}

// Strategy authenticates requests that carry a Google-issued access token.
// It is immutable after construction and safe for concurrent use.
type Strategy struct {
	opts   Options
	client oauth2client.Getter
	verify RequestVerify
}

// New creates a Strategy whose verify callback does not see the request.
func New(opts Options, verify Verify) (*Strategy, error) {
	if verify == nil {
		return nil, ErrMissingVerify
	}
	return newStrategy(opts, func(ctx context.Context, _ *strategy.Request, accessToken, refreshToken string, profile *Profile) (any, any, error) {
		return verify(ctx, accessToken, refreshToken, profile)
	})
}

// NewWithRequest creates a Strategy whose verify callback receives the
// request being authenticated.
func NewWithRequest(opts Options, verify RequestVerify) (*Strategy, error) {
	if verify == nil {
		return nil, ErrMissingVerify
	}
	return newStrategy(opts, verify)
}

func newStrategy(opts Options, verify RequestVerify) (*Strategy, error) {
	if opts.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if opts.AuthorizationURL == "" {
		opts.AuthorizationURL = DefaultAuthorizationURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = DefaultTokenURL
	}

	return &Strategy{
		opts:   opts,
		client: oauth2client.New(opts.ClientID, opts.ClientSecret, opts.CallbackURL, opts.AuthorizationURL, opts.TokenURL),
		verify: verify,
	}, nil
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string {
	return StrategyName
}

// SetClient replaces the client used for profile fetches.
func (s *Strategy) SetClient(client oauth2client.Getter) {
	s.client = client
}
