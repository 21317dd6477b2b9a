package service

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
)

// Links builds the public URLs that carry raw tokens.
type Links struct {
	BaseURL string // e.g. https://console.breachwatch.io
}

func (l Links) Onboarding(token string) string {
	return l.base() + "/onboarding?token=" + url.QueryEscape(token)
}

func (l Links) Invitation(token string) string {
	return l.base() + "/invitations/" + url.PathEscape(token)
}

func (l Links) base() string {
	return strings.TrimRight(l.BaseURL, "/")
}

// issueToken returns a fresh 256-bit link token and the fingerprint stored
// in its place.
func issueToken() (raw, fingerprint string, err error) {
	raw, err = cryptox.GenerateHexToken(cryptox.TokenSize256)
	if err != nil {
		return "", "", err
	}
	return raw, cryptox.FingerprintToken(raw), nil
}

// fingerprintOf normalises a token received from a client.
func fingerprintOf(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrTokenRequired
	}
	return cryptox.FingerprintToken(token), nil
}
