// Package turnstile calls the external challenge-verification service to
// validate a client-supplied proof token.
package turnstile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadapi/internal/observability/metrics"
)

type Client struct {
	secret   string
	endpoint string
	hc       *http.Client
}

// New builds a verification client. An empty secret disables verification
// entirely: every token is accepted. That fail-open behavior is an explicit
// development convenience and a documented production risk.
func New(secret, endpoint string) *Client {
	return &Client{
		secret:   secret,
		endpoint: endpoint,
		hc: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Enabled reports whether a secret is configured.
func (c *Client) Enabled() bool { return c.secret != "" }

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify forwards the token and client IP to the challenge service. A
// missing token, a non-success verdict, a non-2xx status or any network
// failure all count as rejection.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) bool {
	if !c.Enabled() {
		metrics.TurnstileChecksTotal.WithLabelValues("skipped").Inc()
		return true
	}
	if token == "" {
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		slog.Warn("turnstile request failed", "error", err)
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("turnstile non-success status", "status", resp.StatusCode)
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Warn("turnstile decode failed", "error", err)
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}
	if !out.Success {
		slog.Info("turnstile rejected token", "error_codes", out.ErrorCodes)
		metrics.TurnstileChecksTotal.WithLabelValues("failure").Inc()
		return false
	}

	metrics.TurnstileChecksTotal.WithLabelValues("success").Inc()
	return true
}
