package metro

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/transitline/metro-console/internal/api/metrics"
	"github.com/transitline/metro-console/internal/core/ports"
)

// UnauthorizedFunc is called with the rejected token whenever the
// collaborator answers 401 to a request that carried one.
type UnauthorizedFunc func(ctx context.Context, token string)

// authTransport is the interceptor pair for one client surface.
//
// Request phase: attach the stored bearer token when one exists (requests
// without a token pass through for public endpoints) plus a request ID.
// Response phase: on 401, report the rejected token through onUnauthorized
// and let the response flow back so the caller still observes the failure.
// The transport never writes the token store itself; tearing the session
// down is the session manager's job.
type authTransport struct {
	base           http.RoundTripper
	tokens         ports.TokenStore
	surface        string
	onUnauthorized UnauthorizedFunc
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.tokens.Get(ctx)
	if err != nil {
		// A broken store must not take down public traffic; proceed untokened.
		token = ""
	}

	out := req.Clone(ctx)
	out.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	metrics.UpstreamRequestDuration.WithLabelValues(t.surface).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(t.surface, req.Method, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(t.surface, req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		metrics.SessionInvalidationsTotal.WithLabelValues(t.surface).Inc()
		if t.onUnauthorized != nil {
			t.onUnauthorized(ctx, token)
		}
	}
	return resp, nil
}
