package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTP delivers through a plain SMTP relay with optional AUTH.
type SMTP struct {
	host string
	port int
	user string
	pass string
}

func NewSMTP(host string, port int, user, pass string) *SMTP {
	return &SMTP{host: host, port: port, user: user, pass: pass}
}

func (s *SMTP) Name() string { return "smtp" }

func (s *SMTP) Send(_ context.Context, from string, msg Message) error {
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	return smtp.SendMail(addr, auth, from, msg.To, buildMIME(from, msg))
}

// buildMIME assembles a multipart/alternative body with text and HTML parts.
func buildMIME(from string, msg Message) []byte {
	const boundary = "leadapi-alt-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	part := func(contentType, body string) {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s; charset=utf-8\r\n", contentType)
		b.WriteString("\r\n")
		b.WriteString(body)
		b.WriteString("\r\n")
	}
	if msg.Text != "" {
		part("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		part("text/html", msg.HTML)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}
