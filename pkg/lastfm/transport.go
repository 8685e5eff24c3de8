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

// apiErrorBody is the JSON shape Last.fm uses for failed calls.
type apiErrorBody struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

// maxResponseSize caps the body read from the API.
const maxResponseSize = 4 << 20

// call makes a single GET request to the Last.fm API and returns the raw
// JSON body.
//
// It handles:
// - Request construction with the method, API key and format parameters
// - HTTP status mapping to *StatusError
// - Last.fm error bodies mapped to *Error
// - Context cancellation
//
// No retries are performed; callers decide what a failure means.
func (c *Client) call(ctx context.Context, method string, params map[string]string) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error quotes the full URL, api_key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &NetworkError{Method: method, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Last.fm reports most API errors with a 4xx status and a JSON body.
		if apiErr := decodeAPIError(body); apiErr != nil {
			c.logDebugf("lastfm: %s failed: %v", method, apiErr)
			return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Err: apiErr}
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if apiErr := decodeAPIError(body); apiErr != nil {
		return nil, apiErr
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return body, nil
}

// decodeAPIError returns a non-nil *Error if body is a Last.fm error document.
func decodeAPIError(body []byte) *Error {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return nil
	}
	if e.Code == 0 {
		return nil
	}
	return &Error{Code: e.Code, Message: e.Message}
}
