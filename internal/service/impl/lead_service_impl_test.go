package impl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadapi/internal/domain"
	"leadapi/internal/dto"
)

func validLead() dto.LeadRequest {
	return dto.LeadRequest{
		Phone:          "06 12 34 56 78",
		City:           "Paris",
		Summary:        strings.Repeat("x", 25),
		Consent:        true,
		TurnstileToken: "valid",
	}
}

func TestSubmitLead(t *testing.T) {
	st := setupStore(t)
	notifier := &recordingNotifier{}
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, notifier)
	ctx := context.Background()

	if err := st.Routes().Upsert(ctx, []string{"Paris"}, []string{"p1@example.com", "p2@example.com"}); err != nil {
		t.Fatalf("upsert route: %v", err)
	}

	if err := svc.Submit(ctx, validLead(), "203.0.113.7"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	leads, err := st.Leads().List(ctx, 10)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected one stored lead, got %d", len(leads))
	}
	if leads[0].City != "Paris" || leads[0].ID == 0 || leads[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected stored lead: %+v", leads[0])
	}

	if len(notifier.to) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.to))
	}
	got := notifier.to[0]
	if len(got) != 2 || got[0] != "p1@example.com" || got[1] != "p2@example.com" {
		t.Fatalf("unexpected recipients: %v", got)
	}
}

func TestSubmitLeadUnknownCityUsesFallback(t *testing.T) {
	st := setupStore(t)
	notifier := &recordingNotifier{}
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, notifier)

	r := validLead()
	r.City = "Nowhere"
	if err := svc.Submit(context.Background(), r, ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(notifier.to) != 1 || len(notifier.to[0]) != 1 || notifier.to[0][0] != testFallbackEmail {
		t.Fatalf("expected fallback recipient, got %v", notifier.to)
	}
}

func TestSubmitLeadTurnstileRejected(t *testing.T) {
	st := setupStore(t)
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: false}, &recordingNotifier{})

	err := svc.Submit(context.Background(), validLead(), "")
	if !errors.Is(err, domain.ErrTurnstileFailed) {
		t.Fatalf("expected ErrTurnstileFailed, got %v", err)
	}

	leads, err := st.Leads().List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("expected no lead persisted, got %d", len(leads))
	}
}

func TestSubmitLeadPhoneValidation(t *testing.T) {
	st := setupStore(t)
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, &recordingNotifier{})
	ctx := context.Background()

	cases := []struct {
		phone string
		want  error
	}{
		{"1234567", domain.ErrPhoneInvalid},           // 7 digits
		{"12345678", nil},                             // 8 digits, lower bound
		{"+33 (0)6 12-34-56-78", nil},                 // separators stripped
		{"123456789012345", nil},                      // 15 digits, upper bound
		{"1234567890123456", domain.ErrPhoneInvalid},  // 16 digits
		{"no digits here", domain.ErrPhoneInvalid},
	}
	for _, tc := range cases {
		r := validLead()
		r.Phone = tc.phone
		err := svc.Submit(ctx, r, "")
		if !errors.Is(err, tc.want) {
			t.Fatalf("phone %q: expected %v, got %v", tc.phone, tc.want, err)
		}
	}
}

func TestSubmitLeadCityAndSummaryValidation(t *testing.T) {
	st := setupStore(t)
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, &recordingNotifier{})
	ctx := context.Background()

	r := validLead()
	r.City = "   "
	if err := svc.Submit(ctx, r, ""); !errors.Is(err, domain.ErrCityRequired) {
		t.Fatalf("expected ErrCityRequired, got %v", err)
	}

	r = validLead()
	r.Summary = strings.Repeat("a", 19)
	if err := svc.Submit(ctx, r, ""); !errors.Is(err, domain.ErrSummaryShort) {
		t.Fatalf("expected ErrSummaryShort for 19 chars, got %v", err)
	}

	r = validLead()
	r.Summary = strings.Repeat("a", 20)
	if err := svc.Submit(ctx, r, ""); err != nil {
		t.Fatalf("expected 20 chars to pass, got %v", err)
	}
}

func TestSubmitLeadNotifierFailureIsSwallowed(t *testing.T) {
	st := setupStore(t)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, notifier)

	if err := svc.Submit(context.Background(), validLead(), ""); err != nil {
		t.Fatalf("expected submission to succeed despite notifier failure, got %v", err)
	}

	leads, err := st.Leads().List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected lead persisted, got %d", len(leads))
	}
}

func TestListLeadsNewestFirst(t *testing.T) {
	st := setupStore(t)
	svc := NewLeadServiceImpl(st, &stubVerifier{ok: true}, &recordingNotifier{})
	ctx := context.Background()

	for _, city := range []string{"Lyon", "Paris", "Nice"} {
		r := validLead()
		r.City = city
		if err := svc.Submit(ctx, r, ""); err != nil {
			t.Fatalf("submit %s: %v", city, err)
		}
	}

	views, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected limit respected, got %d", len(views))
	}
	if views[0].City != "Nice" || views[1].City != "Paris" {
		t.Fatalf("expected newest first, got %+v", views)
	}
}
