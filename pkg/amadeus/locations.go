package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Location is a single entry from the reference-data locations API.
type Location struct {
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
	SubType  string `json:"subType"`
}

type locationsResponse struct {
	Data []Location `json:"data"`
}

// CityCode resolves a human-readable place name to an IATA city code. When
// multiple cities match, the first result wins; that is deliberate and not
// worth disambiguating for this API.
//
// A 401 from the lookup means the cached token was rejected server-side, so
// the token is invalidated and the lookup retried exactly once with a fresh
// one. Any further failure is surfaced as-is.
func (c *Client) CityCode(ctx context.Context, keyword string) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	code, status, err := c.lookupCityCode(ctx, keyword, token)
	if err == nil || status != http.StatusUnauthorized {
		return code, err
	}

	c.tokens.Invalidate(token)
	token, err = c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	code, _, err = c.lookupCityCode(ctx, keyword, token)
	return code, err
}

// lookupCityCode issues one locations request. The returned status lets the
// caller distinguish an authorization rejection from other failures.
func (c *Client) lookupCityCode(ctx context.Context, keyword, token string) (string, int, error) {
	query := url.Values{
		"keyword": {keyword},
		"subType": {"CITY"},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.BaseURL+"/v1/reference-data/locations?"+query.Encode(),
		nil,
	)
	if err != nil {
		return "", 0, fmt.Errorf("amadeus: failed to create locations request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", 0, ErrTimeout
		}
		return "", 0, fmt.Errorf("amadeus: locations request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, &UpstreamError{Status: resp.StatusCode}
	}

	var lr locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", resp.StatusCode, fmt.Errorf("amadeus: decode locations response: %w", err)
	}

	if len(lr.Data) == 0 {
		return "", resp.StatusCode, ErrLocationNotFound
	}

	return lr.Data[0].IataCode, resp.StatusCode, nil
}
