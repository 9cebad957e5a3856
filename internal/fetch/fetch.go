package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// UserAgent identifies shot-diff in outbound HTTP requests.
	UserAgent = "shot-diff/1.0"

	// DefaultMaxBytes caps a single remote image body at 10MB. Screenshots
	// compress far below this; anything larger is either not a screenshot
	// or an attempt to exhaust memory.
	DefaultMaxBytes = 10 * 1024 * 1024

	// DefaultTimeout bounds the whole download of one image.
	DefaultTimeout = 30 * time.Second
)

// allowedContentTypes lists the image MIME types accepted for download.
// They match the formats the loader can decode from remote sources.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	// ErrInvalidURL is returned for URLs that are not absolute http or
	// https URLs with a host.
	ErrInvalidURL = errors.New("invalid image URL: must be an absolute http or https URL")

	// ErrBadStatus is returned when the remote server answers with a
	// status other than 200 OK.
	ErrBadStatus = errors.New("download failed")

	// ErrContentType is returned when the response is not an accepted
	// image type (image/jpeg, image/png, image/webp).
	ErrContentType = errors.New("unsupported content type")

	// ErrTooLarge is returned when the response body exceeds the
	// configured byte limit, whether announced via Content-Length or
	// discovered while streaming.
	ErrTooLarge = errors.New("image too large")
)

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Client downloads remote images with size and content-type limits.
// The zero value is not usable; construct instances with NewClient.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-download timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxBytes sets the response body size limit. Defaults to
// DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithUserAgent sets the User-Agent header for outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a download client with sane limits applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxBytes:   DefaultMaxBytes,
		userAgent:  UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download fetches a remote image and stores it at path.
//
// The URL must pass ValidateURL. The response must be 200 OK, carry an
// accepted image content type, and fit within the byte limit; the limit is
// enforced while reading, so an endless or oversized body never fully
// buffers. A Content-Length above the limit fails before any body byte is
// read.
func (c *Client) Download(ctx context.Context, rawURL, path string) error {
	if err := ValidateURL(rawURL); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: server returned %s", ErrBadStatus, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if base, _, found := strings.Cut(contentType, ";"); found {
		contentType = base
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: got %q", ErrContentType, contentType)
	}

	if resp.ContentLength > c.maxBytes {
		return fmt.Errorf("%w: %d bytes announced, limit is %d", ErrTooLarge, resp.ContentLength, c.maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, c.maxBytes)
	}

	if err := os.WriteFile(path, body, 0600); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}

	return nil
}
