// Package gateway is the single chokepoint for calls to the course API. It
// attaches the bearer token from the session and recovers once from an
// expired access token by refreshing it and reissuing the request.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfeidau/coursekit/internal/session"
	"github.com/wolfeidau/coursekit/internal/telemetry"
)

const (
	// DefaultRefreshPath is the token refresh endpoint relative to the base URL.
	DefaultRefreshPath = "/token/refresh/"

	// HeaderRequestID carries a unique id for every attempt.
	HeaderRequestID = "X-Request-ID"

	tracerName = "github.com/wolfeidau/coursekit/internal/gateway"
)

// ErrTransport wraps failures where the API could not be reached.
var ErrTransport = errors.New("transport error")

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string

	// Anonymous requests never carry a bearer token and never trigger a
	// refresh. Used for login and registration.
	Anonymous bool
}

// Gateway issues API requests on behalf of the current session.
type Gateway struct {
	rest        *resty.Client
	session     *session.Session
	refreshPath string
	metrics     *telemetry.Metrics
	tracer      trace.Tracer
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sends requests through hc instead of a default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) {
		g.rest = resty.NewWithClient(hc)
	}
}

// WithRefreshPath overrides the token refresh endpoint.
func WithRefreshPath(path string) Option {
	return func(g *Gateway) {
		g.refreshPath = path
	}
}

// WithTimeout bounds every individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.rest.SetTimeout(d)
	}
}

// New creates a gateway for the API rooted at baseURL.
func New(baseURL string, sess *session.Session, opts ...Option) *Gateway {
	g := &Gateway{
		rest:        resty.New(),
		session:     sess,
		refreshPath: DefaultRefreshPath,
		metrics:     telemetry.GetMetrics(),
		tracer:      otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.rest.SetBaseURL(baseURL)
	g.rest.OnAfterResponse(logResponse)
	g.rest.OnError(logError)

	return g
}

// Do issues req. A 401 on a request that carried an access token triggers one
// refresh cycle; when it succeeds the request is rebuilt with the new token
// and sent exactly once more, and that second response is returned whatever
// its status. In every other case the first response is returned untouched.
// Non-2xx statuses are not errors at this layer.
func (g *Gateway) Do(ctx context.Context, req Request) (*resty.Response, error) {
	started := time.Now()

	ctx, span := g.tracer.Start(ctx, "gateway "+req.Method, trace.WithAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("coursekit.path", req.Path),
	))
	defer span.End()

	access := ""
	if !req.Anonymous {
		access = g.session.Tokens().Access
	}

	resp, err := g.send(ctx, req, access)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && access != "" {
		span.AddEvent("access token rejected")

		if g.Refresh(ctx) {
			g.metrics.RetriesTotal.Add(ctx, 1)

			retried, err := g.send(ctx, req, g.session.Tokens().Access)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "transport error")
				return nil, err
			}
			resp = retried
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
	g.metrics.RequestDuration.Record(ctx, float64(time.Since(started).Milliseconds()),
		metric.WithAttributes(attribute.String("method", req.Method)))

	return resp, nil
}

// send performs a single attempt with the given access token.
func (g *Gateway) send(ctx context.Context, req Request, access string) (*resty.Response, error) {
	r := g.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(req.Headers).
		SetHeader(HeaderRequestID, uuid.NewString())

	if access != "" {
		r.SetHeader("Authorization", "Bearer "+access)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		g.metrics.TransportErrors.Add(ctx, 1)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.Path, err)
	}

	g.metrics.RequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.Int("status", resp.StatusCode()),
	))

	return resp, nil
}

func logResponse(_ *resty.Client, resp *resty.Response) error {
	ev := log.Debug()
	if resp.StatusCode() >= http.StatusInternalServerError {
		ev = log.Error()
	}

	ev.Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Str("requestID", resp.Request.Header.Get(HeaderRequestID)).
		Msg("api call completed")

	return nil
}

func logError(req *resty.Request, err error) {
	log.Error().
		Err(err).
		Str("method", req.Method).
		Str("url", req.URL).
		Str("requestID", req.Header.Get(HeaderRequestID)).
		Msg("api call failed")
}
