package raster

import (
	"log/slog"

	"github.com/ndavid/robosat.pink/tile"
)

// Source decodes tiles from a byte-level store into pixel buffers. Tiles
// that are absent, unreadable or fail to decode all come back as nil; the
// cause is not distinguished, callers treat every nil as a missing tile.
type Source struct {
	reader tile.Reader
	bands  []int
	logger *slog.Logger
}

type SourceOption func(*Source)

// WithBands selects which decoded channels fetched tiles carry, in order.
func WithBands(bands ...int) SourceOption {
	return func(s *Source) {
		s.bands = bands
	}
}

// WithLogger routes fetch and decode diagnostics to the given logger.
func WithLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger
	}
}

func NewSource(reader tile.Reader, opts ...SourceOption) *Source {
	s := &Source{
		reader: reader,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchTile returns the decoded pixels of the tile, or nil when the tile is
// absent or cannot be decoded.
func (s *Source) FetchTile(tileID tile.ID) *Buffer {
	data, err := s.reader.ReadTile(tileID)
	if err != nil {
		s.logger.Debug("rsp: tile read failed", "tile", tileID, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	buf, err := Decode(data, s.bands...)
	if err != nil {
		s.logger.Debug("rsp: tile decode failed", "tile", tileID, "error", err)
		return nil
	}
	return buf
}

// Resolve implements Resolver by exact-address lookup of the tile at
// (center.X+dx, center.Y+dy). Addresses past the pyramid edge simply miss.
func (s *Source) Resolve(center tile.ID, dx, dy int) *Buffer {
	return s.FetchTile(center.Adjacent(dx, dy))
}
