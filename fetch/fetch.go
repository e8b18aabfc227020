// Package fetch downloads tiles from HTTP tile servers.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ndavid/robosat.pink/tile"
)

var ErrInvalidTemplate = errors.New("rsp: invalid tile URL template")

const defaultTimeout = 10 * time.Second

// Client fetches tiles from a tile server. Failures to produce a tile
// (transport errors, non-200 statuses, body read failures) collapse to an
// empty result with a nil error; only a cancelled or expired context
// surfaces as an error.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

type Option func(*Client)

// WithTimeout bounds each tile request. The default is 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http.Timeout = timeout }
}

// WithUserAgent sets the User-Agent header. Public tile servers usually
// require an identifying one.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "robosat-pink/1.0",
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExpandTemplate fills the {x}, {y} and {z} placeholders of a tile URL
// template. All three must be present.
func ExpandTemplate(urlTemplate string, tileID tile.ID) (string, error) {
	for _, placeholder := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(urlTemplate, placeholder) {
			return "", fmt.Errorf("%w: placeholder %v not found", ErrInvalidTemplate, placeholder)
		}
	}

	expanded := urlTemplate
	expanded = strings.ReplaceAll(expanded, "{x}", strconv.Itoa(tileID.X))
	expanded = strings.ReplaceAll(expanded, "{y}", strconv.Itoa(tileID.Y))
	expanded = strings.ReplaceAll(expanded, "{z}", strconv.Itoa(tileID.Z))
	return expanded, nil
}

// Tile fetches one tile. An empty result with a nil error means the server
// had no such tile or the request failed.
func (c *Client) Tile(ctx context.Context, urlTemplate string, tileID tile.ID) ([]byte, error) {
	tileURL, err := ExpandTemplate(urlTemplate, tileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Debug("rsp: tile fetch failed", "url", tileURL, "error", err)
		return make([]byte, 0), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("rsp: tile fetch failed", "url", tileURL, "status", resp.StatusCode)
		return make([]byte, 0), nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Debug("rsp: tile body read failed", "url", tileURL, "error", err)
		return make([]byte, 0), nil
	}
	return data, nil
}
