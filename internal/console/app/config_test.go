package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "./data/console.db", cfg.DBPath)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.OnboardingTokenTTL)
	require.Equal(t, 168*time.Hour, cfg.InvitationTokenTTL)
	require.Equal(t, 2, cfg.MaxMembershipsPerUser)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Empty(t, cfg.JWTAudience)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("JWT_AUDIENCE", "console,api")
	t.Setenv("INVITATION_TOKEN_TTL", "72h")
	t.Setenv("MAX_MEMBERSHIPS_PER_USER", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	require.Equal(t, []string{"console", "api"}, cfg.JWTAudience)
	require.Equal(t, 72*time.Hour, cfg.InvitationTokenTTL)
	require.Equal(t, 5, cfg.MaxMembershipsPerUser)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"DB_DRIVER": "postgres"},
		"unknown driver":       {"DB_DRIVER": "mysql"},
		"bad base url":         {"PUBLIC_BASE_URL": "console.breachwatch.io"},
		"tiny ttl":             {"ONBOARDING_TOKEN_TTL": "10m"},
		"no memberships":       {"MAX_MEMBERSHIPS_PER_USER": "0"},
		"unparseable duration": {"ACCESS_TOKEN_TTL": "soon"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestInitKeysPersistsSigningKey(t *testing.T) {
	cfg := Config{
		JWTIssuer:         "breachwatch-test",
		JWTSigningKeyPath: filepath.Join(t.TempDir(), "keys", "signing.pem"),
		AccessTokenTTL:    time.Hour,
	}

	first, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	tok, err := first.Issue("user-1", "sid", "a@x.com", "A", nil, time.Now())
	require.NoError(t, err)

	// A restarted instance with the same key file accepts old tokens
	second, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	claims, err := second.Verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)

	jwks := second.KeySet.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.True(t, strings.HasPrefix(jwks.Keys[0].Kid, "breachwatch-"))
}

func TestInitKeysEphemeral(t *testing.T) {
	cfg := Config{JWTIssuer: "breachwatch-test"}

	a, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	b, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	tok, err := a.Issue("user-1", "sid", "a@x.com", "A", nil, time.Now())
	require.NoError(t, err)
	_, err = b.Verifier.Verify(tok.AccessToken)
	require.Error(t, err)
}
