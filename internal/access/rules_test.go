package access

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgjamkhedkar/passport-token-google/internal/strategy/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path allows everyone", func(t *testing.T) {
		rules, err := Load("")
		require.NoError(t, err)

		ok, _ := rules.Allowed("anyone", "anyone@example.com")
		assert.True(t, ok)
	})

	t.Run("missing file allows everyone", func(t *testing.T) {
		rules, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.NoError(t, err)

		ok, _ := rules.Allowed("anyone", "anyone@example.com")
		assert.True(t, ok)
	})

	t.Run("rules file is parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
allowed_domains:
  - example.com
allowed_subjects:
  - subject-1
blocked_subjects:
  - subject-2
`), 0o600))

		rules, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, rules.AllowedDomains)
		assert.Equal(t, []string{"subject-1"}, rules.AllowedSubjects)
		assert.Equal(t, []string{"subject-2"}, rules.BlockedSubjects)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("allowed_domains: {not a list"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestRulesAllowed(t *testing.T) {
	rules := &Rules{
		AllowedDomains:  []string{"example.com"},
		AllowedSubjects: []string{"subject-1"},
		BlockedSubjects: []string{"subject-2"},
	}

	tests := []struct {
		name    string
		subject string
		email   string
		want    bool
	}{
		{name: "allowed subject", subject: "subject-1", email: "", want: true},
		{name: "allowed domain", subject: "other", email: "who@example.com", want: true},
		{name: "domain match is case-insensitive", subject: "other", email: "who@EXAMPLE.com", want: true},
		{name: "blocked subject", subject: "subject-2", email: "who@example.com", want: false},
		{name: "unlisted subject and domain", subject: "other", email: "who@elsewhere.com", want: false},
		{name: "no email and unlisted subject", subject: "other", email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := rules.Allowed(tt.subject, tt.email)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.NotEmpty(t, reason)
			}
		})
	}

	t.Run("empty allowlists let everyone through", func(t *testing.T) {
		open := &Rules{BlockedSubjects: []string{"subject-2"}}

		ok, _ := open.Allowed("anyone", "")
		assert.True(t, ok)

		ok, reason := open.Allowed("subject-2", "")
		assert.False(t, ok)
		assert.Equal(t, "subject is blocked", reason)
	})
}

func TestVerifier(t *testing.T) {
	rules := &Rules{
		AllowedDomains:  []string{"example.com"},
		BlockedSubjects: []string{"blocked-1"},
	}
	verify := Verifier(rules)

	t.Run("nil profile lets the token holder in", func(t *testing.T) {
		user, info, err := verify(context.Background(), "tok", "", nil)
		require.NoError(t, err)
		require.IsType(t, &User{}, user)
		assert.Empty(t, user.(*User).Subject)
		assert.Equal(t, "profile lookup skipped", info)
	})

	t.Run("allowed profile becomes a user", func(t *testing.T) {
		profile := &google.Profile{
			Provider:    "google",
			ID:          "subject-1",
			DisplayName: "Jane Doe",
			Emails:      []google.Email{{Value: "jane@example.com"}},
		}

		user, info, err := verify(context.Background(), "tok", "", profile)
		require.NoError(t, err)
		assert.Nil(t, info)
		require.IsType(t, &User{}, user)
		got := user.(*User)
		assert.Equal(t, "subject-1", got.Subject)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "Jane Doe", got.Name)
	})

	t.Run("blocked profile fails with a reason", func(t *testing.T) {
		profile := &google.Profile{
			ID:     "blocked-1",
			Emails: []google.Email{{Value: "blocked@example.com"}},
		}

		user, info, err := verify(context.Background(), "tok", "", profile)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "subject is blocked", info)
	})

	t.Run("unlisted profile fails with a reason", func(t *testing.T) {
		profile := &google.Profile{
			ID:     "other",
			Emails: []google.Email{{Value: "other@elsewhere.com"}},
		}

		user, info, err := verify(context.Background(), "tok", "", profile)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, "subject is not on the allowlist", info)
	})
}
