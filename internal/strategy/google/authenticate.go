package google

import (
	"context"

	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
)

// Authenticate verifies the access token carried by the request. The token
// is looked up in the body, query, and headers; an upstream-signaled error
// in the query fails the attempt before any lookup. The attempt proceeds
// even when no token is found, so the verify callback decides what absence
// means.
func (s *Strategy) Authenticate(ctx context.Context, req *strategy.Request) strategy.Result {
	if req.Query.Get("error") != "" {
		// TODO: carry the provider's error code into the failure info
		return strategy.Fail(nil)
	}

	accessToken := lookupParam(req, "access_token")
	refreshToken := lookupParam(req, "refresh_token")

	profile, err := s.loadProfile(ctx, accessToken)
	if err != nil {
		return strategy.Error(err)
	}

	user, info, err := s.verify(ctx, req, accessToken, refreshToken, profile)
	if err != nil {
		return strategy.Error(err)
	}
	if user == nil {
		return strategy.Fail(info)
	}
	return strategy.Success(user, info)
}

// lookupParam finds a credential by name. A request that carries a body
// container is searched body first, then query, then a header of the same
// name. Without a body the header is consulted before the query.
func lookupParam(req *strategy.Request, name string) string {
	if req.Body != nil {
		if v := req.Body.Get(name); v != "" {
			return v
		}
		if v := req.Query.Get(name); v != "" {
			return v
		}
		return req.Header.Get(name)
	}

	if v := req.Header.Get(name); v != "" {
		return v
	}
	return req.Query.Get(name)
}
