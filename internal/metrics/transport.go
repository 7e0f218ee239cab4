package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type routeKey struct{}

// WithRoute tags ctx with the route template of the request about to be sent.
// Templates keep ids out of label values.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFromContext returns the route template set by WithRoute.
func RouteFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return RouteUnknown
}

// Transport collects backend request metrics around Base.
type Transport struct {
	Base http.RoundTripper
}

// NewTransport wraps base, falling back to http.DefaultTransport.
func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	route := RouteFromContext(req.Context())

	APIRequestsInFlight.Inc()
	defer APIRequestsInFlight.Dec()

	resp, err := t.Base.RoundTrip(req)

	status := StatusNetworkError
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	APIRequestsTotal.WithLabelValues(req.Method, route, status).Inc()
	APIRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())

	return resp, err
}
