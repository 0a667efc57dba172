package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Refresh exchanges the stored refresh token for a new access token and
// reports whether it succeeded. Without a refresh token it fails immediately
// and makes no call. Any failure after the call clears both tokens so the
// session reads as signed out. The refresh token itself is kept on success.
//
// Concurrent callers are not coordinated: each runs its own cycle and the last
// access token written wins.
func (g *Gateway) Refresh(ctx context.Context) bool {
	ctx, span := g.tracer.Start(ctx, "gateway refresh")
	defer span.End()

	refresh := g.session.Tokens().Refresh
	if refresh == "" {
		g.recordRefresh(ctx, "no_refresh_token")
		return false
	}

	resp, err := g.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(refreshRequest{Refresh: refresh}).
		Execute(http.MethodPost, g.refreshPath)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("token refresh failed")
		g.endSession(ctx, "transport_error")
		return false
	}

	if !resp.IsSuccess() {
		log.Debug().Int("status", resp.StatusCode()).Msg("refresh token rejected")
		g.endSession(ctx, "rejected")
		return false
	}

	var out refreshResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil || out.Access == "" {
		log.Warn().Err(err).Msg("token refresh returned no access token")
		g.endSession(ctx, "invalid_response")
		return false
	}

	if err := g.session.SetTokens(out.Access, refresh); err != nil {
		log.Error().Err(err).Msg("failed to store refreshed access token")
		g.recordRefresh(ctx, "store_error")
		return false
	}

	g.recordRefresh(ctx, "success")
	log.Debug().Msg("access token refreshed")

	return true
}

func (g *Gateway) endSession(ctx context.Context, outcome string) {
	if err := g.session.ClearTokens(); err != nil {
		log.Error().Err(err).Msg("failed to clear session after refresh failure")
	}
	g.recordRefresh(ctx, outcome)
}

func (g *Gateway) recordRefresh(ctx context.Context, outcome string) {
	g.metrics.RefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
