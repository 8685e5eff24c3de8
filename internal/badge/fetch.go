package badge

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxImageSize caps how much of an image response is read into memory.
const maxImageSize = 5 << 20

// ErrImageTooLarge is returned for responses larger than maxImageSize.
var ErrImageTooLarge = errors.New("image too large")

// Image is a fetched binary resource.
type Image struct {
	MIME string
	Data []byte
}

// DataURI encodes the image as data:<mime>;base64,<payload>.
func (i *Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIME, base64.StdEncoding.EncodeToString(i.Data))
}

// ImageFetcher downloads images and inlines them as data URIs.
type ImageFetcher struct {
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// NewImageFetcher creates an ImageFetcher. A nil client uses
// http.DefaultClient; timeout bounds each fetch when positive.
func NewImageFetcher(client *http.Client, timeout time.Duration, logger zerolog.Logger) *ImageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageFetcher{
		client:  client,
		timeout: timeout,
		logger:  logger.With().Str("component", "images").Logger(),
	}
}

// Fetch downloads the resource at rawURL. A data: URI is decoded locally
// without a network call.
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("empty image url")
	}
	if strings.HasPrefix(rawURL, "data:") {
		return parseDataURI(rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrImageTooLarge, rawURL, maxImageSize)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return &Image{MIME: mimeType, Data: data}, nil
}

// DataURI fetches rawURL and returns it as a data URI, or "" on any failure.
// Failures are logged, never returned.
func (f *ImageFetcher) DataURI(ctx context.Context, rawURL string) string {
	if strings.HasPrefix(rawURL, "data:") {
		return rawURL
	}

	img, err := f.Fetch(ctx, rawURL)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", rawURL).Msg("Failed to fetch image")
		return ""
	}
	return img.DataURI()
}

// parseDataURI decodes a base64 data URI into an Image.
func parseDataURI(uri string) (*Image, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}

	mediaType := strings.TrimSuffix(header, ";base64")
	if mediaType == header {
		return nil, fmt.Errorf("data uri is not base64 encoded")
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if _, _, err := mime.ParseMediaType(mediaType); err != nil {
		return nil, fmt.Errorf("invalid data uri media type: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data uri payload: %w", err)
	}

	return &Image{MIME: mediaType, Data: data}, nil
}
