package client

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wolfeidau/coursekit/internal/gateway"
	"github.com/wolfeidau/coursekit/internal/lms"
	"github.com/wolfeidau/coursekit/internal/session"
)

// Config holds common client configuration
type Config struct {
	ServerURL  string
	Timeout    time.Duration
	SessionDir string

	// SessionRedisURL, when set, keeps the session in redis instead of a file.
	SessionRedisURL string
	SessionName     string
	Debug           bool
}

// Clients holds the API client and the session it authenticates with
type Clients struct {
	API     *lms.Client
	Session *session.Session
	Store   session.Store
}

// NewClients creates the course API client with the given configuration
func NewClients(config Config) (*Clients, error) {
	var (
		store session.Store
		err   error
	)
	if config.SessionRedisURL != "" {
		store, err = session.NewRedisStoreFromURL(config.SessionRedisURL, config.SessionName)
	} else {
		store, err = session.NewFileStore(config.SessionDir)
	}
	if err != nil {
		return nil, err
	}

	return newClients(config, store), nil
}

func newClients(config Config, store session.Store) *Clients {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	sess := session.New(store)
	gw := gateway.New(config.ServerURL, sess,
		gateway.WithHTTPClient(httpClient),
		gateway.WithTimeout(config.Timeout),
	)

	return &Clients{
		API:     lms.New(gw, sess),
		Session: sess,
		Store:   store,
	}
}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8000/api",
		Timeout:   30 * time.Second,
		Debug:     false,
	}
}
