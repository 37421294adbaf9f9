package google

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"github.com/rgjamkhedkar/passport-token-google/internal/oauth2client"
	"go.uber.org/zap"
)

// Provider is the provider identifier stamped on every Profile.
const Provider = "google"

// Name holds the structured name claims.
type Name struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// Email holds a single address.
type Email struct {
	Value string `json:"value"`
}

// Profile is the normalized identity read from the token info endpoint.
// A Profile is built fresh for each attempt and never mutated afterwards.
type Profile struct {
	Provider    string  `json:"provider"`
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Name        Name    `json:"name"`
	Emails      []Email `json:"emails"`

	// ProfileURL is the exact URL the claims were fetched from.
	ProfileURL string `json:"profileUrl"`

	// Raw is the verbatim response body, JSON its parsed form. Both are
	// kept so callers can reach claims the normalization does not cover.
	Raw  []byte         `json:"-"`
	JSON map[string]any `json:"-"`
}

// UserProfile fetches the token's identity claims from the token info
// endpoint and normalizes them. The token travels as a query parameter
// named id_token, which is how this endpoint expects it.
func (s *Strategy) UserProfile(ctx context.Context, accessToken string) (*Profile, error) {
	fetchURL := ProfileURL + "?id_token=" + url.QueryEscape(accessToken)

	body, err := s.client.Get(ctx, fetchURL, accessToken)
	if err != nil {
		logger.Error("Failed to call tokeninfo endpoint", zap.Error(err))
		return nil, &oauth2client.Error{Message: "failed to fetch user profile", Err: err}
	}

	var claims map[string]any
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, err
	}

	profile := &Profile{
		Provider:    Provider,
		ID:          stringClaim(claims, "id"),
		DisplayName: stringClaim(claims, "name"),
		Name: Name{
			GivenName:  stringClaim(claims, "given_name"),
			FamilyName: stringClaim(claims, "family_name"),
		},
		Emails:     []Email{{Value: stringClaim(claims, "email")}},
		ProfileURL: fetchURL,
		Raw:        body,
		JSON:       claims,
	}
	if profile.ID == "" {
		profile.ID = stringClaim(claims, "sub")
	}

	return profile, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
