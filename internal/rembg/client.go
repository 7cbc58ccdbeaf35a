// Package rembg implements the segmentation backend against a
// rembg-compatible HTTP inference server.
//
// The server is expected to expose POST /api/remove accepting a multipart
// "file" field and model/alpha-matting query parameters, returning the
// segmented image as PNG. Model weights live server-side; a "session" here
// is the warmed-up pairing of client and model.
package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/pixelcut/rembg-mcp/internal/session"
)

// Client talks to one inference server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

var _ session.Backend = (*Client)(nil)

// New creates a client for the server at baseURL. timeout bounds a single
// request, including model warm-up.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// LoadSession warms up model on the server by running a 1x1 inference, so
// the weights are paged in once instead of on the first real request. This
// is the expensive step the session cache amortizes.
func (c *Client) LoadSession(ctx context.Context, model string) (session.Session, error) {
	warm := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if _, err := c.remove(ctx, model, warm, session.SegmentOptions{}); err != nil {
		return nil, fmt.Errorf("warming up model %q: %w", model, err)
	}
	c.log.Debug("model warmed up", zap.String("model", model))
	return &modelSession{client: c, model: model}, nil
}

// modelSession binds the client to one model.
type modelSession struct {
	client *Client
	model  string
}

func (s *modelSession) Segment(ctx context.Context, img image.Image, opts session.SegmentOptions) (image.Image, error) {
	return s.client.remove(ctx, s.model, img, opts)
}

// Close is a no-op: the server owns the weights and reclaims them itself.
func (s *modelSession) Close() error { return nil }

func (c *Client) remove(ctx context.Context, model string, img image.Image, opts session.SegmentOptions) (image.Image, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "input.png")
	if err != nil {
		return nil, fmt.Errorf("building request body: %w", err)
	}
	if err := imaging.Encode(part, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding input image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building request body: %w", err)
	}

	u, err := url.Parse(c.baseURL + "/api/remove")
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	q := u.Query()
	q.Set("model", model)
	if opts.AlphaMatting {
		q.Set("a", "true")
		q.Set("af", strconv.Itoa(opts.ForegroundThreshold))
		q.Set("ab", strconv.Itoa(opts.BackgroundThreshold))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inference server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inference server returned %s: %s",
			resp.Status, strings.TrimSpace(string(msg)))
	}

	out, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding inference result: %w", err)
	}
	return out, nil
}
