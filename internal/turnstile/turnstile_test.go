package turnstile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"leadapi/internal/observability/metrics"
	"leadapi/internal/turnstile"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	metrics.MustRegister("leadapi-turnstile-test")
	os.Exit(m.Run())
}

func TestVerifySuccess(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"secret":   r.PostFormValue("secret"),
			"response": r.PostFormValue("response"),
			"remoteip": r.PostFormValue("remoteip"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := turnstile.New("shh", srv.URL)
	require.True(t, c.Enabled())
	require.True(t, c.Verify(context.Background(), "tok-123", "203.0.113.9"))
	require.Equal(t, "shh", gotForm["secret"])
	require.Equal(t, "tok-123", gotForm["response"])
	require.Equal(t, "203.0.113.9", gotForm["remoteip"])
}

func TestVerifyRejectedVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	c := turnstile.New("shh", srv.URL)
	require.False(t, c.Verify(context.Background(), "bad-token", ""))
}

func TestVerifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := turnstile.New("shh", srv.URL)
	require.False(t, c.Verify(context.Background(), "tok", ""))
}

func TestVerifyEmptyTokenSkipsCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := turnstile.New("shh", srv.URL)
	require.False(t, c.Verify(context.Background(), "", ""))
	require.False(t, called)
}

func TestVerifyFailOpenWithoutSecret(t *testing.T) {
	c := turnstile.New("", "http://127.0.0.1:0")
	require.False(t, c.Enabled())
	require.True(t, c.Verify(context.Background(), "", ""), "no secret accepts everything")
}
