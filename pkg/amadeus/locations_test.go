package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCityCodeResolvesFirstResult(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setLookupHandler(func(w http.ResponseWriter, r *http.Request, n int64) {
		require.Equal(t, "Paris", r.URL.Query().Get("keyword"))
		require.Equal(t, "CITY", r.URL.Query().Get("subType"))
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"data":[
			{"name":"PARIS","iataCode":"PAR","subType":"CITY"},
			{"name":"PARIS TX","iataCode":"PRX","subType":"CITY"}
		]}`)
	})

	code, err := fake.client().CityCode(context.Background(), "Paris")
	require.NoError(t, err)
	require.Equal(t, "PAR", code, "first result wins")
	require.EqualValues(t, 1, fake.lookupCalls.Load())
}

func TestCityCodeNotFound(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setLookupHandler(func(w http.ResponseWriter, r *http.Request, n int64) {
		fmt.Fprint(w, `{"data":[]}`)
	})

	_, err := fake.client().CityCode(context.Background(), "Nowhereville")
	require.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCityCodeRetriesOnceAfterTokenRejection(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setLookupHandler(func(w http.ResponseWriter, r *http.Request, n int64) {
		// The first token is rejected server-side despite looking fresh
		// locally; the retry with the replacement token succeeds.
		if r.Header.Get("Authorization") == "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":[{"name":"PARIS","iataCode":"PAR","subType":"CITY"}]}`)
	})

	code, err := fake.client().CityCode(context.Background(), "Paris")
	require.NoError(t, err)
	require.Equal(t, "PAR", code)

	require.EqualValues(t, 2, fake.lookupCalls.Load(), "exactly one retry")
	require.EqualValues(t, 2, fake.tokenCalls.Load(), "exactly one re-acquisition")
}

func TestCityCodeDoesNotRetryTwice(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setLookupHandler(func(w http.ResponseWriter, r *http.Request, n int64) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := fake.client().CityCode(context.Background(), "Paris")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusUnauthorized, upstreamErr.Status)

	require.EqualValues(t, 2, fake.lookupCalls.Load(), "one retry, then give up")
	require.EqualValues(t, 2, fake.tokenCalls.Load())
}

func TestCityCodeSurfacesUpstreamFailures(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setLookupHandler(func(w http.ResponseWriter, r *http.Request, n int64) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := fake.client().CityCode(context.Background(), "Paris")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusBadGateway, upstreamErr.Status)
	require.EqualValues(t, 1, fake.lookupCalls.Load(), "non-401 failures are not retried")
}

func TestCityCodePropagatesAcquisitionFailure(t *testing.T) {
	t.Parallel()

	fake := newFakeAmadeus(t)
	fake.setTokenHandler(func(w http.ResponseWriter, n int64) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := fake.client().CityCode(context.Background(), "Paris")

	var tokenErr *TokenAcquisitionError
	require.ErrorAs(t, err, &tokenErr)
	require.EqualValues(t, 0, fake.lookupCalls.Load(), "no lookup without a token")
}
