package badge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/jfmyers9/nowplaying/pkg/lastfm"
)

// ErrNoTrackData is returned when the user has no recent tracks.
var ErrNoTrackData = errors.New("no track data available")

// Messages shown in place of a badge when the pipeline fails.
const (
	msgFetchFailed = "Error fetching data"
	msgNoTrackData = "No track data available"
)

// FetchError is returned when an outbound call answers with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// ErrorResult is rendered instead of a RenderModel when a request fails.
// It never carries partial track data.
type ErrorResult struct {
	Error string `json:"error"`
}

// NewErrorResult maps a pipeline error to the message shown to viewers.
// Non-2xx responses, Last.fm API errors, transport failures and timeouts
// all read as a fetch failure; only parse errors and unexpected failures
// keep their own message.
func NewErrorResult(err error) ErrorResult {
	if err == nil {
		return ErrorResult{}
	}

	var (
		statusErr  *lastfm.StatusError
		apiErr     *lastfm.Error
		networkErr *lastfm.NetworkError
		fetchErr   *FetchError
		urlErr     *url.Error
		netErr     net.Error
	)

	switch {
	case errors.Is(err, ErrNoTrackData):
		return ErrorResult{Error: msgNoTrackData}
	case errors.As(err, &statusErr), errors.As(err, &apiErr), errors.As(err, &fetchErr):
		return ErrorResult{Error: msgFetchFailed}
	case errors.As(err, &networkErr), errors.As(err, &urlErr), errors.As(err, &netErr):
		return ErrorResult{Error: msgFetchFailed}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorResult{Error: msgFetchFailed}
	default:
		return ErrorResult{Error: err.Error()}
	}
}
