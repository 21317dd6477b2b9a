package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
)

// KeyManager bundles the signing key, the verifier and the KeySet published
// over JWKS for a single console instance.
type KeyManager struct {
	Signer   *Signer
	Verifier Verifier
	KeySet   *KeySet

	issuer   string
	audience []string
	ttl      time.Duration
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is the iss claim minted into and required of tokens.
	Issuer string

	// Audience is minted into tokens and at least one value must match on
	// verification. Empty means no audience validation.
	Audience []string

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When nil an ephemeral key is
	// generated and every token becomes invalid on restart.
	PrivateKeyPEM []byte

	// KID overrides the key identifier; a random one is used when empty.
	KID string

	// TTL is the access token lifetime (DefaultAccessTokenTTL when zero).
	TTL time.Duration
}

// NewKeyManager builds a KeyManager from opts.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	pemKey := opts.PrivateKeyPEM
	if pemKey == nil {
		var err error
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signing key: %w", err)
		}
	}

	kid := opts.KID
	if kid == "" {
		var err error
		kid, err = generateRandomKeyID()
		if err != nil {
			return nil, err
		}
	}

	signer, err := NewSigner(kid, pemKey)
	if err != nil {
		return nil, err
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: failed to add signer to keyset: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewCommonEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		issuer:   opts.Issuer,
		audience: opts.Audience,
		ttl:      ttl,
	}, nil
}

// IssuedToken is a freshly minted access token.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
	Claims      Claims
}

// Issue mints a signed access token for subject.
func (km *KeyManager) Issue(subject, sid, email, name string, amr []string, now time.Time) (IssuedToken, error) {
	claims := NewAccessClaims(AccessClaimsParams{
		Subject:  subject,
		SID:      sid,
		AMR:      amr,
		Email:    email,
		Name:     name,
		Issuer:   km.issuer,
		Audience: km.audience,
		TTL:      km.ttl,
		Now:      now,
	})

	raw, err := km.Signer.Sign(claims)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("jwtx: sign: %w", err)
	}

	return IssuedToken{
		AccessToken: raw,
		ExpiresAt:   claims.ExpiresAt.Time,
		Claims:      claims,
	}, nil
}

// TTL returns the configured access token lifetime.
func (km *KeyManager) TTL() time.Duration { return km.ttl }

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km != nil && km.KeySet.IsReady()
}

// generateRandomKeyID creates a random key identifier.
// Format: "breachwatch-{random-token}" where random-token is 128 bits.
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to generate random key ID: %w", err)
	}
	return fmt.Sprintf("breachwatch-%s", token), nil
}
