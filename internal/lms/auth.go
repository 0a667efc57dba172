package lms

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/coursekit/internal/gateway"
	"github.com/wolfeidau/coursekit/internal/session"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// Registration is the account submitted to Register.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate runs the local checks made before registering.
func (r Registration) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return ErrMissingFields
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if r.Role != session.RoleStudent && r.Role != session.RoleLecturer {
		return ErrInvalidRole
	}
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and stores it in the session.
// The returned user comes from the access token claims, falling back to the
// submitted username when the token does not carry one.
func (c *Client) Login(ctx context.Context, username, password string) (*session.User, error) {
	var pair tokenPair
	_, err := c.call(ctx, gateway.Request{
		Method:    http.MethodPost,
		Path:      "/login/",
		Body:      credentials{Username: username, Password: password},
		Anonymous: true,
	}, failure{fallback: "Login failed", keys: []string{"detail"}}, &pair)
	if err != nil {
		return nil, err
	}

	if err := c.session.SetTokens(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	user, ok := c.session.CurrentUser()
	if !ok {
		user = &session.User{Role: session.RoleStudent}
	}
	if user.Username == "" {
		user.Username = username
	}

	log.Debug().Str("username", user.Username).Str("role", user.Role).Msg("logged in")

	return user, nil
}

// Register creates an account and then logs in with the same credentials.
// Local validation failures are returned before any request is sent.
func (c *Client) Register(ctx context.Context, reg Registration) (*session.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	_, err := c.call(ctx, gateway.Request{
		Method:    http.MethodPost,
		Path:      "/register/",
		Body:      reg,
		Anonymous: true,
	}, failure{
		fallback: "Registration failed",
		keys:     []string{"detail", "error"},
		fields:   registrationFields,
	}, nil)
	if err != nil {
		return nil, err
	}

	return c.Login(ctx, reg.Username, reg.Password)
}

// Logout forgets the stored tokens. There is no server call.
func (c *Client) Logout() error {
	return c.session.ClearTokens()
}

// CurrentUser reports the signed-in user decoded from the access token.
func (c *Client) CurrentUser() (*session.User, bool) {
	return c.session.CurrentUser()
}

// IsAuthenticated reports whether an access token is stored.
func (c *Client) IsAuthenticated() bool {
	return c.session.IsAuthenticated()
}
