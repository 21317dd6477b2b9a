package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
)

// InitKeys builds the access token KeyManager.
//
// With JWT_SIGNING_KEY_PATH set the Ed25519 key is loaded from, or created
// at, that path and the key id is derived from it, so tokens survive
// restarts. Without it a fresh key is generated on every start.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.AccessTokenTTL,
	}

	if cfg.JWTSigningKeyPath != "" {
		pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.JWTSigningKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		opts.PrivateKeyPEM = pemKey
		opts.KID = "breachwatch-" + cryptox.FingerprintToken(string(pemKey))[:16]
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, err
	}

	if cfg.JWTSigningKeyPath == "" {
		logger.Warn("using an ephemeral signing key, all access tokens become invalid on restart")
	} else {
		logger.Info("signing key loaded", "path", cfg.JWTSigningKeyPath, "kid", opts.KID)
	}
	return km, nil
}
