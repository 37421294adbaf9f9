// Package access decides which verified identities the gateway lets in,
// driven by an optional YAML rules file.
package access

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rgjamkhedkar/passport-token-google/internal/config"
	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy/google"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Rules restricts which subjects and email domains are let in. Empty
// allowlists let everyone through; the blocklist always applies.
type Rules struct {
	AllowedDomains  []string `yaml:"allowed_domains"`
	AllowedSubjects []string `yaml:"allowed_subjects"`
	BlockedSubjects []string `yaml:"blocked_subjects"`
}

// User is the principal the gateway establishes for an allowed identity.
type User struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Load reads rules from a YAML file. An empty path or a missing file
// yields permissive rules.
func Load(filePath string) (*Rules, error) {
	rules := &Rules{}

	if filePath == "" {
		logger.Info("No access rules file provided, allowing all identities")
		return rules, nil
	}

	logger.Info("Loading access rules from file", zap.String("file", filePath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		logger.Warn("Access rules file not found, allowing all identities")
		return rules, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse access rules: %w", err)
	}

	return rules, nil
}

// NewRules loads the rules named by the configuration.
func NewRules(cfg *config.Config) (*Rules, error) {
	return Load(cfg.AccessRulesFile)
}

// Allowed reports whether the subject may pass, with a reason when not.
func (r *Rules) Allowed(subject, email string) (bool, string) {
	for _, blocked := range r.BlockedSubjects {
		if subject == blocked {
			return false, "subject is blocked"
		}
	}

	if len(r.AllowedSubjects) == 0 && len(r.AllowedDomains) == 0 {
		return true, ""
	}

	for _, allowed := range r.AllowedSubjects {
		if subject == allowed {
			return true, ""
		}
	}

	domain := emailDomain(email)
	for _, allowed := range r.AllowedDomains {
		if domain != "" && strings.EqualFold(domain, allowed) {
			return true, ""
		}
	}

	return false, "subject is not on the allowlist"
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

// Verifier builds the verify callback the gateway authenticates with. A
// nil profile means the fetch was skipped by policy; the token holder is
// let in with an empty identity.
func Verifier(rules *Rules) google.Verify {
	return func(ctx context.Context, accessToken, refreshToken string, profile *google.Profile) (any, any, error) {
		if profile == nil {
			return &User{}, "profile lookup skipped", nil
		}

		var email string
		if len(profile.Emails) > 0 {
			email = profile.Emails[0].Value
		}

		ok, reason := rules.Allowed(profile.ID, email)
		if !ok {
			logger.Warn("Identity rejected by access rules",
				zap.String("subject", profile.ID),
				zap.String("reason", reason),
			)
			return nil, reason, nil
		}

		return &User{
			Subject: profile.ID,
			Email:   email,
			Name:    profile.DisplayName,
		}, nil, nil
	}
}

// Module provides the access rules dependencies
var Module = fx.Module("access",
	fx.Provide(
		NewRules,
	),
)
