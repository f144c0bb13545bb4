package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// expiryBuffer is subtracted from the reported token lifetime so we refresh
// shortly before the server-side expiry instead of racing it.
const expiryBuffer = 30 * time.Second

// acquireFunc performs one client-credentials exchange and returns the token
// with its absolute expiry.
type acquireFunc func(ctx context.Context) (token string, expiresAt time.Time, err error)

// acquisition is the shared handle for one in-flight exchange. Waiters block
// on done; token and err are settled before done is closed.
type acquisition struct {
	done  chan struct{}
	token string
	err   error
}

// tokenSource caches a single access token for the whole process. Invariant:
// at most one exchange in flight at any time, however many goroutines ask.
type tokenSource struct {
	acquire acquireFunc
	timeout time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	inflight  *acquisition
}

func newTokenSource(acquire acquireFunc, timeout time.Duration) *tokenSource {
	return &tokenSource{acquire: acquire, timeout: timeout}
}

// Token returns a valid cached token, or joins/starts a single acquisition
// when the cache is empty or expired. A cancelled caller detaches without
// aborting the exchange for the other waiters.
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && time.Now().Before(s.expiresAt) {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}

	ac := s.inflight
	if ac == nil {
		ac = &acquisition{done: make(chan struct{})}
		s.inflight = ac
		go s.run(ac)
	}
	s.mu.Unlock()

	select {
	case <-ac.done:
		if ac.err != nil {
			return "", ac.err
		}
		return ac.token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// run drives one exchange under its own deadline, detached from any single
// caller's context.
func (s *tokenSource) run(ac *acquisition) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	token, expiresAt, err := s.acquire(ctx)

	s.mu.Lock()
	if err == nil {
		s.token = token
		s.expiresAt = expiresAt
	}
	// Clear the handle either way so a failure doesn't poison later calls.
	s.inflight = nil
	s.mu.Unlock()

	ac.token, ac.err = token, err
	close(ac.done)
}

// Invalidate drops the cached token if it still equals stale. The equality
// check stops a second 401-handling caller from throwing away the fresh token
// the first one already fetched.
func (s *tokenSource) Invalidate(stale string) {
	s.mu.Lock()
	if s.token == stale {
		s.token = ""
		s.expiresAt = time.Time{}
	}
	s.mu.Unlock()
}

// Token returns a valid Amadeus access token, performing the OAuth2
// client_credentials exchange when the cache is empty or expired.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// InvalidateToken marks stale as rejected so the next Token call acquires a
// fresh one. Use after a downstream 401: the token looked unexpired locally
// but the server disagreed (clock skew, revocation).
func (c *Client) InvalidateToken(stale string) {
	c.tokens.Invalidate(stale)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// acquireToken performs the actual client-credentials exchange.
func (c *Client) acquireToken(ctx context.Context) (string, time.Time, error) {
	data := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/v1/security/oauth2/token",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("amadeus: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", time.Time{}, ErrTimeout
		}
		return "", time.Time{}, &TokenAcquisitionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", time.Time{}, &TokenAcquisitionError{Status: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, &TokenAcquisitionError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, &TokenAcquisitionError{Err: errors.New("empty access_token in response")}
	}

	expiresAt := time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryBuffer)
	return tr.AccessToken, expiresAt, nil
}
