package session

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Role values carried in the access token.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// Claims is the decoded payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
	Username string      `json:"username"`
	Role     string      `json:"role"`
	UserID   json.Number `json:"user_id"`
}

// User is the authenticated user as presented to callers.
type User struct {
	Username string
	Role     string
	UserID   string
}

// IsLecturer reports whether the user may author courses.
func (u *User) IsLecturer() bool {
	return u.Role == RoleLecturer
}

// Session holds the token pair of the current user on top of a Store.
type Session struct {
	store Store
}

// New creates a session backed by store.
func New(store Store) *Session {
	return &Session{store: store}
}

// SetTokens overwrites both tokens. Token structure is not validated.
func (s *Session) SetTokens(access, refresh string) error {
	return s.store.Save(Tokens{Access: access, Refresh: refresh})
}

// Tokens returns the current pair. An unreadable store yields an empty pair.
func (s *Session) Tokens() Tokens {
	tokens, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load session, treating as signed out")
		return Tokens{}
	}
	return tokens
}

// ClearTokens removes both tokens.
func (s *Session) ClearTokens() error {
	return s.store.Clear()
}

// IsAuthenticated is true when an access token is present. Expiry is not
// checked locally.
func (s *Session) IsAuthenticated() bool {
	return s.Tokens().Access != ""
}

// CurrentClaims decodes the access token payload without verifying it.
func (s *Session) CurrentClaims() (*Claims, bool) {
	access := s.Tokens().Access
	if access == "" {
		return nil, false
	}
	return DecodeClaims(access)
}

// CurrentUser returns the user described by the access token. A missing role
// claim is reported as student.
func (s *Session) CurrentUser() (*User, bool) {
	claims, ok := s.CurrentClaims()
	if !ok {
		return nil, false
	}
	return claims.User(), true
}

// User converts claims into a User.
func (c *Claims) User() *User {
	role := c.Role
	if role == "" {
		role = RoleStudent
	}
	return &User{
		Username: c.Username,
		Role:     role,
		UserID:   c.UserID.String(),
	}
}

// DecodeClaims parses the payload segment of token. Signatures and expiry are
// not checked, the server remains the authority.
func DecodeClaims(token string) (*Claims, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Debug().Err(err).Msg("failed to decode access token")
		return nil, false
	}
	return claims, true
}
