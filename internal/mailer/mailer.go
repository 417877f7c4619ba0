// Package mailer dispatches lead notifications through one of two
// interchangeable providers selected by configuration.
package mailer

import (
	"context"
	"log/slog"

	"leadapi/internal/observability/metrics"
)

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Provider is a concrete delivery backend.
type Provider interface {
	Name() string
	Send(ctx context.Context, from string, msg Message) error
}

// Dispatcher wraps the configured provider with metrics and logging. A nil
// provider means mail is disabled: sends are logged and succeed, which keeps
// the lightweight deployment profile working without any mail credentials.
type Dispatcher struct {
	provider Provider
	from     string
}

func NewDispatcher(provider Provider, from string) *Dispatcher {
	return &Dispatcher{provider: provider, from: from}
}

func (d *Dispatcher) Send(ctx context.Context, to []string, subject, text, html string) error {
	if d.provider == nil {
		slog.Info("mail disabled, notification dropped", "recipients", len(to), "subject", subject)
		metrics.NotificationsSentTotal.WithLabelValues("none", "skipped").Inc()
		return nil
	}

	msg := Message{To: to, Subject: subject, Text: text, HTML: html}
	if err := d.provider.Send(ctx, d.from, msg); err != nil {
		metrics.NotificationsSentTotal.WithLabelValues(d.provider.Name(), "failure").Inc()
		return err
	}
	metrics.NotificationsSentTotal.WithLabelValues(d.provider.Name(), "success").Inc()
	return nil
}
