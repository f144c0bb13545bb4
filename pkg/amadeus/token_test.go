package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeAmadeus is a stub upstream for the token and locations endpoints.
type fakeAmadeus struct {
	t *testing.T

	tokenCalls  atomic.Int64
	lookupCalls atomic.Int64

	// tokenHandler may be swapped to simulate failures. Defaults to issuing
	// sequentially numbered tokens with a long lifetime.
	mu            sync.Mutex
	tokenHandler  func(w http.ResponseWriter, n int64)
	lookupHandler func(w http.ResponseWriter, r *http.Request, n int64)

	server *httptest.Server
}

func newFakeAmadeus(t *testing.T) *fakeAmadeus {
	t.Helper()

	f := &fakeAmadeus{t: t}
	f.tokenHandler = func(w http.ResponseWriter, n int64) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":1799}`, n)
	}
	f.lookupHandler = func(w http.ResponseWriter, r *http.Request, n int64) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"name":"PARIS","iataCode":"PAR","subType":"CITY"}]}`)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		n := f.tokenCalls.Add(1)
		f.mu.Lock()
		handler := f.tokenHandler
		f.mu.Unlock()
		handler(w, n)
	})
	mux.HandleFunc("GET /v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		n := f.lookupCalls.Add(1)
		f.mu.Lock()
		handler := f.lookupHandler
		f.mu.Unlock()
		handler(w, r, n)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeAmadeus) client() *Client {
	return NewClient(Config{
		BaseURL:      f.server.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})
}

func (f *fakeAmadeus) setTokenHandler(h func(w http.ResponseWriter, n int64)) {
	f.mu.Lock()
	f.tokenHandler = h
	f.mu.Unlock()
}

func (f *fakeAmadeus) setLookupHandler(h func(w http.ResponseWriter, r *http.Request, n int64)) {
	f.mu.Lock()
	f.lookupHandler = h
	f.mu.Unlock()
}

func TestTokenCachedAcrossCalls(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	client := fake.client()
	ctx := context.Background()

	first, err := client.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-1", first)

	second, err := client.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.EqualValues(t, 1, fake.tokenCalls.Load(), "second call must hit the cache")
}

func TestConcurrentCallersShareOneAcquisition(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	// Slow the exchange down so every caller piles onto the same in-flight
	// acquisition instead of the first one finishing before the rest start.
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		time.Sleep(50 * time.Millisecond)
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":1799}`, n)
	})

	client := fake.client()

	const callers = 50

	var (
		wg     sync.WaitGroup
		tokens [callers]string
		errs   [callers]error
	)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = client.Token(context.Background())
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.Equal(t, "token-1", tokens[i], "all callers must receive the same token")
	}
	require.EqualValues(t, 1, fake.tokenCalls.Load(),
		"N concurrent callers must produce exactly one exchange")
}

func TestFailedAcquisitionDoesNotPoisonCache(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":1799}`, n)
	})

	client := fake.client()
	ctx := context.Background()

	_, err := client.Token(ctx)
	var tokenErr *TokenAcquisitionError
	require.ErrorAs(t, err, &tokenErr)
	require.Equal(t, http.StatusInternalServerError, tokenErr.Status)

	// The cache reverted to empty, so the next call retries and succeeds.
	token, err := client.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-2", token)
}

func TestExpiredTokenIsReacquired(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	// expires_in of 0 lands behind the early-refresh buffer, so the token is
	// stale the moment it is stored.
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":0}`, n)
	})

	client := fake.client()
	ctx := context.Background()

	first, err := client.Token(ctx)
	require.NoError(t, err)
	second, err := client.Token(ctx)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.EqualValues(t, 2, fake.tokenCalls.Load())
}

func TestInvalidateOnlyDropsMatchingToken(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	client := fake.client()
	ctx := context.Background()

	token, err := client.Token(ctx)
	require.NoError(t, err)

	// Invalidating an already-replaced value is a no-op.
	client.InvalidateToken("token-that-was-never-issued")
	cached, err := client.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, token, cached)
	require.EqualValues(t, 1, fake.tokenCalls.Load())

	// Invalidating the live token forces a fresh exchange.
	client.InvalidateToken(token)
	fresh, err := client.Token(ctx)
	require.NoError(t, err)
	require.NotEqual(t, token, fresh)
	require.EqualValues(t, 2, fake.tokenCalls.Load())
}

func TestCallerCancellationDoesNotAbortExchange(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":1799}`, n)
	})

	client := fake.client()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Token(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The exchange kept running detached; a patient caller gets its result
	// without a second upstream call.
	token, err := client.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-1", token)
	require.EqualValues(t, 1, fake.tokenCalls.Load())
}

func TestAcquisitionTimeout(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":1799}`, n)
	})

	client := NewClient(Config{
		BaseURL:      fake.server.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Timeout:      50 * time.Millisecond,
	})

	_, err := client.Token(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
}
