package lms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors for checks made before any request is sent.
var (
	// ErrMissingFields is returned when a registration field is empty.
	ErrMissingFields = errors.New("Please fill in all fields")

	// ErrPasswordTooShort is returned for passwords under MinPasswordLength.
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long")

	// ErrInvalidRole is returned for roles other than student and lecturer.
	ErrInvalidRole = errors.New("Role must be student or lecturer")
)

// APIError is a non-2xx response converted into a readable message.
type APIError struct {
	StatusCode int
	Message    string

	// Fields holds the messages of validation errors, keyed by API field.
	Fields map[string][]string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsValidation reports whether the API rejected individual fields.
func (e *APIError) IsValidation() bool {
	return len(e.Fields) > 0
}

// field labels a validated API field in combined messages.
type field struct {
	key   string
	label string
}

var (
	registrationFields = []field{
		{"username", "Username"},
		{"email", "Email"},
		{"password", "Password"},
		{"role", "Role"},
	}

	contentFields = []field{
		{"video_url", "Video URL"},
		{"file_url", "File URL"},
		{"content_text", "Content text"},
	}
)

// failure describes how one operation turns an error body into a message.
type failure struct {
	// fallback is used when the body offers nothing better.
	fallback string

	// keys are tried in order for a plain string message.
	keys []string

	// fields, when set, are checked first for validation errors and combined
	// in this order.
	fields []field
}

// from builds the APIError for resp.
func (f failure) from(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: f.fallback}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return apiErr
	}

	var parts []string
	for _, fd := range f.fields {
		raw, ok := body[fd.key]
		if !ok {
			continue
		}
		msgs := messages(raw)
		if len(msgs) == 0 {
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[fd.key] = msgs
		parts = append(parts, fmt.Sprintf("%s: %s", fd.label, msgs[0]))
	}
	if len(parts) > 0 {
		apiErr.Message = strings.Join(parts, ", ")
		return apiErr
	}

	for _, key := range f.keys {
		if msgs := messages(body[key]); len(msgs) > 0 {
			apiErr.Message = msgs[0]
			return apiErr
		}
	}

	return apiErr
}

// messages reads a field that is either a string or a list of strings.
func messages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil
		}
		return []string{one}
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		out := many[:0]
		for _, m := range many {
			if m != "" {
				out = append(out, m)
			}
		}
		return out
	}

	return nil
}
