package impl

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"unicode/utf8"

	"leadapi/internal/domain"
	"leadapi/internal/dto"
	"leadapi/internal/observability/metrics"
	"leadapi/internal/service"
	"leadapi/internal/store"
)

const (
	phoneMinDigits = 8
	phoneMaxDigits = 15
	summaryMinLen  = 20
)

type LeadServiceImpl struct {
	store    *store.Store
	verifier service.BotVerifier
	notifier service.Notifier
}

func NewLeadServiceImpl(st *store.Store, verifier service.BotVerifier, notifier service.Notifier) *LeadServiceImpl {
	return &LeadServiceImpl{store: st, verifier: verifier, notifier: notifier}
}

// Submit runs the intake sequence in the fixed order: bot check, phone,
// city, summary, persist, resolve recipients, notify. The notification is
// best-effort; once the lead row exists the submission has succeeded.
func (l *LeadServiceImpl) Submit(ctx context.Context, r dto.LeadRequest, clientIP string) error {
	result := "success"
	defer func() {
		metrics.LeadsSubmittedTotal.WithLabelValues(result).Inc()
	}()

	if !l.verifier.Verify(ctx, r.TurnstileToken, clientIP) {
		result = "turnstile_failed"
		return domain.ErrTurnstileFailed
	}

	digits := onlyDigits(r.Phone)
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		result = "invalid"
		return domain.ErrPhoneInvalid
	}
	city := strings.TrimSpace(r.City)
	if city == "" {
		result = "invalid"
		return domain.ErrCityRequired
	}
	summary := strings.TrimSpace(r.Summary)
	if utf8.RuneCountInString(summary) < summaryMinLen {
		result = "invalid"
		return domain.ErrSummaryShort
	}

	lead := &domain.Lead{
		Phone:       strings.TrimSpace(r.Phone),
		City:        city,
		Summary:     summary,
		Consent:     r.Consent,
		UtmSource:   r.UtmSource,
		UtmMedium:   r.UtmMedium,
		UtmCampaign: r.UtmCampaign,
		UtmTerm:     r.UtmTerm,
		UtmContent:  r.UtmContent,
		Gclid:       r.Gclid,
	}
	if err := l.store.Leads().Create(ctx, lead); err != nil {
		result = "failure"
		return err
	}

	l.notify(ctx, lead)

	slog.Info("lead received", "lead_id", lead.ID, "city", lead.City)
	return nil
}

// notify resolves the recipients and dispatches the email. Failures are
// logged and counted but never surfaced to the submitter.
func (l *LeadServiceImpl) notify(ctx context.Context, lead *domain.Lead) {
	recipients, err := l.store.Routes().Resolve(ctx, lead.City)
	if err != nil {
		slog.Error("recipient resolution failed", "lead_id", lead.ID, "city", lead.City, "error", err)
		return
	}

	subject := fmt.Sprintf("Nouveau lead : %s", lead.City)
	if err := l.notifier.Send(ctx, recipients, subject, leadText(lead), leadHTML(lead)); err != nil {
		slog.Error("lead notification failed", "lead_id", lead.ID, "recipients", len(recipients), "error", err)
	}
}

func (l *LeadServiceImpl) List(ctx context.Context, limit int) ([]dto.LeadView, error) {
	leads, err := l.store.Leads().List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]dto.LeadView, 0, len(leads))
	for _, lead := range leads {
		views = append(views, dto.LeadView{
			ID:          lead.ID,
			CreatedAt:   lead.CreatedAt,
			Phone:       lead.Phone,
			City:        lead.City,
			Summary:     lead.Summary,
			UtmSource:   lead.UtmSource,
			UtmMedium:   lead.UtmMedium,
			UtmCampaign: lead.UtmCampaign,
			UtmTerm:     lead.UtmTerm,
			UtmContent:  lead.UtmContent,
			Gclid:       lead.Gclid,
		})
	}
	return views, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func leadText(lead *domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Téléphone : %s\n", lead.Phone)
	fmt.Fprintf(&b, "Ville : %s\n", lead.City)
	fmt.Fprintf(&b, "Résumé : %s\n", lead.Summary)
	fmt.Fprintf(&b, "Reçu le : %s\n", lead.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if lead.UtmSource != "" || lead.UtmMedium != "" || lead.UtmCampaign != "" {
		fmt.Fprintf(&b, "Campagne : %s / %s / %s\n", lead.UtmSource, lead.UtmMedium, lead.UtmCampaign)
	}
	if lead.Gclid != "" {
		fmt.Fprintf(&b, "GCLID : %s\n", lead.Gclid)
	}
	return b.String()
}

func leadHTML(lead *domain.Lead) string {
	var b strings.Builder
	b.WriteString("<h2>Nouveau lead</h2><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Téléphone", lead.Phone)
	row("Ville", lead.City)
	row("Résumé", lead.Summary)
	row("Reçu le", lead.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	row("utm_source", lead.UtmSource)
	row("utm_medium", lead.UtmMedium)
	row("utm_campaign", lead.UtmCampaign)
	row("utm_term", lead.UtmTerm)
	row("utm_content", lead.UtmContent)
	row("gclid", lead.Gclid)
	b.WriteString("</table>")
	return b.String()
}
