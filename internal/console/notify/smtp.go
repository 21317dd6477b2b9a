package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/aussiebroadwan/breachwatch/pkg/idx"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier renders plain-text emails and submits them over SMTP with
// STARTTLS when the server offers it.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now  func() time.Time
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify: smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("notify: smtp from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, now: time.Now}, nil
}

var (
	approvalTmpl = template.Must(template.New("approval").Parse(`Hi {{.Name}},

You're off the BreachWatch waitlist. Finish setting up your organization here:

{{.OnboardingURL}}

This link works once and expires at {{.ExpiresAt.Format "2006-01-02 15:04 MST"}}.
`))

	invitationTmpl = template.Must(template.New("invitation").Parse(`Hi,

{{.InviterName}} invited you to join {{.OrganizationName}} on BreachWatch as {{.Role}}.

Accept the invitation here:

{{.AcceptURL}}

This link works once and expires at {{.ExpiresAt.Format "2006-01-02 15:04 MST"}}.
`))
)

func (n *SMTPNotifier) SendApprovalEmail(ctx context.Context, msg ApprovalEmail) error {
	return n.deliver(ctx, msg.To, "Your BreachWatch access is approved", approvalTmpl, msg)
}

func (n *SMTPNotifier) SendInvitationEmail(ctx context.Context, msg InvitationEmail) error {
	subject := fmt.Sprintf("You're invited to %s on BreachWatch", msg.OrganizationName)
	return n.deliver(ctx, msg.To, subject, invitationTmpl, msg)
}

func (n *SMTPNotifier) deliver(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}

	msg := n.compose(to, subject, body.Bytes())

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	if err := n.send(addr, auth, n.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send %s email: %w", tmpl.Name(), err)
	}
	return nil
}

func (n *SMTPNotifier) compose(to, subject string, body []byte) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		// Header values never carry user-controlled line breaks.
		v = strings.NewReplacer("\r", "", "\n", "").Replace(v)
		b.WriteString(k + ": " + v + "\r\n")
	}

	header("From", n.cfg.From)
	header("To", to)
	header("Subject", subject)
	header("Date", n.now().UTC().Format(time.RFC1123Z))
	header("Message-ID", "<"+idx.New().String()+"@"+n.cfg.Host+">")
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	b.WriteString("\r\n")
	b.Write(bytes.ReplaceAll(bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n")), []byte("\n"), []byte("\r\n")))
	return b.Bytes()
}
