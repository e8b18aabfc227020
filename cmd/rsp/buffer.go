package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/subcommands"
	"github.com/ndavid/robosat.pink/batch"
	"github.com/ndavid/robosat.pink/cover"
	"github.com/ndavid/robosat.pink/raster"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/schollz/progressbar/v3"
)

type bufferCmd struct {
	config config

	inputPath  string
	outputPath string
	coverPath  string
	overlap    int
	bands      string
	workers    int
}

func (c *bufferCmd) Name() string     { return "buffer" }
func (c *bufferCmd) Synopsis() string { return "composite tiles with their neighbors' margins" }
func (c *bufferCmd) Usage() string {
	return "rsp buffer -i <store> -o <store> [-cover <csv> -overlap <px> -bands <list> -j <n>]\n"
}
func (c *bufferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input store (xyz directory or .mbtiles file)")
	f.StringVar(&c.outputPath, "o", "", "Output store (xyz directory or .mbtiles file)")
	f.StringVar(&c.coverPath, "cover", "", "Cover CSV restricting which tiles to buffer")
	f.IntVar(&c.overlap, "overlap", c.config.Overlap, "Buffer margin in pixels")
	f.StringVar(&c.bands, "bands", "", "Comma-separated input bands, e.g. 0,1,2")
	f.IntVar(&c.workers, "j", c.config.Workers, "Parallel workers (0 for all CPUs)")
}

func parseBands(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	bands := make([]int, 0, len(parts))
	for _, part := range parts {
		band, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not a band number", part)
		}
		bands = append(bands, band)
	}
	return bands, nil
}

func (c *bufferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		log.Println("both -i and -o are required")
		return subcommands.ExitUsageError
	}

	bands, err := parseBands(c.bands)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	reader, err := openStore(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	var worklist []tile.ID
	if c.coverPath != "" {
		worklist, err = cover.ReadFile(c.coverPath)
	} else {
		worklist, err = scanTiles(reader)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if len(worklist) == 0 {
		log.Printf("no tiles found in %s", c.inputPath)
		return subcommands.ExitFailure
	}

	// Adjacent tiles share neighbor reads; order the work accordingly.
	batch.SortHilbert(worklist)

	writer, err := createStore(c.outputPath, "png", tilesetMetadata(tilesetName(c.outputPath), "png", worklist))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	sourceOpts := []raster.SourceOption{raster.WithLogger(slog.Default())}
	if len(bands) > 0 {
		sourceOpts = append(sourceOpts, raster.WithBands(bands...))
	}
	source := raster.NewSource(reader, sourceOpts...)

	var skipped atomic.Int64
	var writeMu sync.Mutex
	bar := progressbar.New(len(worklist))

	err = batch.Run(ctx, c.workers, worklist, func(_ context.Context, tileID tile.ID) error {
		center := source.FetchTile(tileID)
		if center == nil {
			skipped.Add(1)
			bar.Add(1)
			return nil
		}

		buffered, err := raster.Composite(tileID, center, source, c.overlap)
		if err != nil {
			return err
		}
		data, err := raster.EncodePNG(buffered)
		if err != nil {
			return err
		}

		// Writers are not required to be goroutine-safe.
		writeMu.Lock()
		err = writer.WriteTile(tileID, data)
		writeMu.Unlock()
		if err != nil {
			return err
		}

		bar.Add(1)
		return nil
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if n := skipped.Load(); n > 0 {
		log.Printf("%d of %d tiles skipped (absent or unreadable)", n, len(worklist))
	}

	return subcommands.ExitSuccess
}
