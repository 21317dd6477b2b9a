package notify

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  []byte
}

func newTestNotifier(t *testing.T, cfg SMTPConfig) (*SMTPNotifier, *[]sentMail) {
	t.Helper()
	n, err := NewSMTPNotifier(cfg)
	require.NoError(t, err)

	var sent []sentMail
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr, a, from, to, msg})
		return nil
	}
	n.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return n, &sent
}

func TestNewSMTPNotifierValidation(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{From: "a@x.com"})
	require.Error(t, err)

	_, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com"})
	require.Error(t, err)

	n, err := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", From: "a@x.com"})
	require.NoError(t, err)
	require.Equal(t, 587, n.cfg.Port)
}

func TestSMTPNotifierApprovalEmail(t *testing.T) {
	n, sent := newTestNotifier(t, SMTPConfig{Host: "smtp.example.com", Port: 2525, From: "noreply@breachwatch.test"})

	err := n.SendApprovalEmail(context.Background(), ApprovalEmail{
		To:            "a@x.com",
		Name:          "A",
		OnboardingURL: "https://console.test/onboarding?token=abc",
		ExpiresAt:     time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	require.Equal(t, "smtp.example.com:2525", m.addr)
	require.Nil(t, m.auth)
	require.Equal(t, "noreply@breachwatch.test", m.from)
	require.Equal(t, []string{"a@x.com"}, m.to)
	require.Contains(t, string(m.msg), "Subject: Your BreachWatch access is approved\r\n")
	require.Contains(t, string(m.msg), "https://console.test/onboarding?token=abc")
	require.Contains(t, string(m.msg), "2025-06-02 12:00 UTC")

	// Bodies use CRLF line endings only.
	require.NotContains(t, string(bytes.ReplaceAll(m.msg, []byte("\r\n"), nil)), "\n")
}

func TestSMTPNotifierInvitationEmail(t *testing.T) {
	n, sent := newTestNotifier(t, SMTPConfig{Host: "smtp.example.com", From: "noreply@breachwatch.test", Username: "u", Password: "p"})

	err := n.SendInvitationEmail(context.Background(), InvitationEmail{
		To:               "b@x.com",
		OrganizationName: "Acme\r\nBcc: evil@x.com",
		InviterName:      "Owner",
		Role:             "USER",
		AcceptURL:        "https://console.test/invitations/tok",
		ExpiresAt:        time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	m := (*sent)[0]
	require.NotNil(t, m.auth)
	require.Contains(t, string(m.msg), "Owner invited you to join")
	require.Contains(t, string(m.msg), "https://console.test/invitations/tok")
	headers, _, ok := bytes.Cut(m.msg, []byte("\r\n\r\n"))
	require.True(t, ok)
	require.NotContains(t, string(headers), "\r\nBcc:")
}

func TestSMTPNotifierSendError(t *testing.T) {
	n, _ := newTestNotifier(t, SMTPConfig{Host: "smtp.example.com", From: "noreply@breachwatch.test"})
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

	err := n.SendApprovalEmail(context.Background(), ApprovalEmail{To: "a@x.com"})
	require.ErrorContains(t, err, "connection refused")
}

func TestSMTPNotifierCancelledContext(t *testing.T) {
	n, sent := newTestNotifier(t, SMTPConfig{Host: "smtp.example.com", From: "noreply@breachwatch.test"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, n.SendApprovalEmail(ctx, ApprovalEmail{To: "a@x.com"}), context.Canceled)
	require.Empty(t, *sent)
}

func TestLogNotifier(t *testing.T) {
	var n Notifier = LogNotifier{}
	require.NoError(t, n.SendApprovalEmail(context.Background(), ApprovalEmail{To: "a@x.com"}))
	require.NoError(t, n.SendInvitationEmail(context.Background(), InvitationEmail{To: "b@x.com"}))
}
