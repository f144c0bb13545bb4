package amadeus

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at the Amadeus self-service sandbox.
const DefaultBaseURL = "https://test.api.amadeus.com"

// defaultTimeout bounds every upstream call, token exchanges included.
const defaultTimeout = 10 * time.Second

// Config carries the credentials and knobs for a Client.
type Config struct {
	// BaseURL of the Amadeus API. Defaults to DefaultBaseURL.
	BaseURL string

	// ClientID and ClientSecret for the OAuth2 client_credentials grant.
	ClientID     string
	ClientSecret string

	// Timeout bounds individual upstream calls. Defaults to 10s.
	Timeout time.Duration
}

// Client is a client for the Amadeus travel APIs. It owns a process-wide
// access-token cache: concurrent callers share a single in-flight
// client-credentials exchange instead of each issuing their own.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	clientID     string
	clientSecret string
	tokens       *tokenSource
}

// NewClient creates an Amadeus client. The token cache starts empty; the
// first call that needs a token performs the exchange.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: timeout},
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
	c.tokens = newTokenSource(c.acquireToken, timeout)

	return c
}
