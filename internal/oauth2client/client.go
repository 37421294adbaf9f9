// Package oauth2client provides the OAuth 2.0 primitives strategies build
// on: authorization URL construction, code exchange, and authenticated
// resource fetches against a provider.
package oauth2client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Getter is the slice of the client that profile fetchers depend on.
type Getter interface {
	// Get performs an authenticated GET and returns the response body.
	Get(ctx context.Context, rawURL, accessToken string) ([]byte, error)
}

// Client is a minimal OAuth 2.0 client bound to one application's
// credentials and one provider's endpoints.
type Client struct {
	conf   *oauth2.Config
	client *http.Client
}

// New creates a Client for the given application credentials and endpoints.
func New(clientID, clientSecret, callbackURL, authURL, tokenURL string) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetTimeout sets the timeout for the HTTP client
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// AuthCodeURL returns the provider URL that starts an authorization code flow.
func (c *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.conf.AuthCodeURL(state, opts...)
}

// Exchange swaps an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	return c.conf.Exchange(ctx, code, opts...)
}

// Get fetches rawURL, presenting the access token as a bearer credential,
// and returns the full response body. Answers outside the 2xx range become
// a *StatusError carrying the body.
func (c *Client) Get(ctx context.Context, rawURL, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
