package service

import (
	"context"

	"leadapi/internal/dto"
)

// LeadService handles the public submission flow and the admin listing.
type LeadService interface {
	// Submit runs the full intake sequence: bot check, validation, persist,
	// recipient resolution and best-effort notification. Validation failures
	// come back as the domain sentinels; a notification failure never does.
	Submit(ctx context.Context, r dto.LeadRequest, clientIP string) error
	List(ctx context.Context, limit int) ([]dto.LeadView, error)
}

// Notifier dispatches a formatted message to the resolved recipients.
type Notifier interface {
	Send(ctx context.Context, to []string, subject, text, html string) error
}
