package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// apiError is the JSON body Last.fm sends alongside a failure status.
type apiError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

// call makes a single GET request to the Last.fm API and returns the
// raw JSON body.
//
// It handles:
// - Request construction with method, api_key and format=json
// - Parsing the body as JSON regardless of the status code
// - Mapping non-2xx statuses to *UpstreamError
// - Context cancellation
//
// There is no retry; every failure is returned to the caller.
func (c *Client) call(ctx context.Context, method string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	reqURL, err := c.buildURL(query)
	if err != nil {
		return nil, err
	}

	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if !json.Valid(body) {
		return nil, &ParseError{
			StatusCode: resp.StatusCode,
			Err:        errors.New("body is not valid JSON"),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The body may not be an object at all; the status alone is
		// enough to report the failure.
		var apiErr apiError
		_ = json.Unmarshal(body, &apiErr)
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return body, nil
}

// buildURL appends the encoded query to the configured base URL,
// keeping any query the base URL already carries.
func (c *Client) buildURL(query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL %q: %v", ErrInvalidConfig, c.baseURL, err)
	}

	for k, v := range u.Query() {
		if _, ok := query[k]; !ok {
			query[k] = v
		}
	}
	u.RawQuery = query.Encode()

	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}
