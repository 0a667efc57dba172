// Package lms wraps each course API endpoint in a typed function. Every call
// goes through the gateway so the bearer token and refresh handling apply.
package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/wolfeidau/coursekit/internal/gateway"
	"github.com/wolfeidau/coursekit/internal/session"
)

// Doer sends a single API request.
type Doer interface {
	Do(ctx context.Context, req gateway.Request) (*resty.Response, error)
}

// Client exposes the course API operations.
type Client struct {
	gw      Doer
	session *session.Session
}

// New returns a Client that sends requests through gw and keeps the token
// pair in sess.
func New(gw Doer, sess *session.Session) *Client {
	return &Client{gw: gw, session: sess}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// call sends req and decodes a 2xx body into out when out is non-nil.
// Other statuses are turned into an *APIError using f.
func (c *Client) call(ctx context.Context, req gateway.Request, f failure, out any) (*resty.Response, error) {
	resp, err := c.gw.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return resp, f.from(resp)
	}

	if out != nil && resp.StatusCode() != http.StatusNoContent && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return resp, fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.Path, err)
		}
	}

	return resp, nil
}

func get(path string, query url.Values) gateway.Request {
	return gateway.Request{Method: http.MethodGet, Path: path, Query: query}
}

func post(path string, body any) gateway.Request {
	return gateway.Request{Method: http.MethodPost, Path: path, Body: body}
}

func put(path string, body any) gateway.Request {
	return gateway.Request{Method: http.MethodPut, Path: path, Body: body}
}

func del(path string) gateway.Request {
	return gateway.Request{Method: http.MethodDelete, Path: path}
}
