package google

import "context"

// SkipPolicy decides, once per authentication attempt, whether the profile
// fetch is bypassed. When it is, the verify callback receives a nil profile.
type SkipPolicy interface {
	SkipProfile(ctx context.Context, accessToken string) (bool, error)
}

// Fixed is a SkipPolicy with a constant decision.
type Fixed bool

func (f Fixed) SkipProfile(context.Context, string) (bool, error) {
	return bool(f), nil
}

// Func adapts a plain predicate into a SkipPolicy. It is consulted on
// every attempt, so the decision may change over time.
type Func func() bool

func (f Func) SkipProfile(context.Context, string) (bool, error) {
	return f(), nil
}

// TokenFunc adapts a token-aware predicate into a SkipPolicy. An error
// aborts the attempt without fetching the profile.
type TokenFunc func(ctx context.Context, accessToken string) (bool, error)

func (f TokenFunc) SkipProfile(ctx context.Context, accessToken string) (bool, error) {
	return f(ctx, accessToken)
}

// loadProfile applies the configured skip policy and fetches the profile
// unless the policy says otherwise. A skipped fetch yields a nil profile.
func (s *Strategy) loadProfile(ctx context.Context, accessToken string) (*Profile, error) {
	if s.opts.SkipProfile != nil {
		skip, err := s.opts.SkipProfile.SkipProfile(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		if skip {
			return nil, nil
		}
	}

	return s.UserProfile(ctx, accessToken)
}
