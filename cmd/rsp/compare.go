package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/subcommands"
	"github.com/ndavid/robosat.pink/batch"
	"github.com/ndavid/robosat.pink/colors"
	"github.com/ndavid/robosat.pink/label"
	"github.com/ndavid/robosat.pink/raster"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/schollz/progressbar/v3"
)

type compareCmd struct {
	config config

	imagesPath  string
	labelsPath  string
	outputPath  string
	paletteSpec string
	maxColors   int
	workers     int
}

func (c *compareCmd) Name() string { return "compare" }
func (c *compareCmd) Synopsis() string {
	return "render side-by-side image and label previews"
}
func (c *compareCmd) Usage() string {
	return "rsp compare -images <store> -labels <store> -o <store> [-palette <colors> -q <n> -j <n>]\n"
}
func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.imagesPath, "images", "", "Image store (xyz directory or .mbtiles file)")
	f.StringVar(&c.labelsPath, "labels", "", "Label store (xyz directory or .mbtiles file)")
	f.StringVar(&c.outputPath, "o", "", "Output store (xyz directory or .mbtiles file)")
	f.StringVar(&c.paletteSpec, "palette", c.config.Palette, "Comma-separated class colors")
	f.IntVar(&c.maxColors, "q", 64, "Colors kept in the quantized preview PNGs")
	f.IntVar(&c.workers, "j", c.config.Workers, "Parallel workers (0 for all CPUs)")
}

func (c *compareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.imagesPath == "" || c.labelsPath == "" || c.outputPath == "" {
		log.Println("-images, -labels and -o are required")
		return subcommands.ExitUsageError
	}

	specs := strings.Split(c.paletteSpec, ",")
	for i := range specs {
		specs[i] = strings.TrimSpace(specs[i])
	}
	palette, err := colors.Make(specs...)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	// Label tiles are stored in the complementary palette of the class
	// colors; render them the same way.
	palette = colors.Complementary(palette)

	images, err := openStore(c.imagesPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := images.(io.Closer); ok {
		defer closer.Close()
	}

	labels, err := openStore(c.labelsPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := labels.(io.Closer); ok {
		defer closer.Close()
	}

	// Labels define the coverage to preview.
	worklist, err := scanTiles(labels)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if len(worklist) == 0 {
		log.Printf("no tiles found in %s", c.labelsPath)
		return subcommands.ExitFailure
	}

	writer, err := createStore(c.outputPath, "png", tilesetMetadata(tilesetName(c.outputPath), "png", worklist))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	source := raster.NewSource(images, raster.WithBands(0, 1, 2))

	var missed atomic.Int64
	var writeMu sync.Mutex
	bar := progressbar.New(len(worklist))

	err = batch.Run(ctx, c.workers, worklist, func(_ context.Context, tileID tile.ID) error {
		img := source.FetchTile(tileID)
		if img == nil {
			missed.Add(1)
			bar.Add(1)
			return nil
		}

		data, err := labels.ReadTile(tileID)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			missed.Add(1)
			bar.Add(1)
			return nil
		}

		classes, err := label.Decode(data)
		if err != nil {
			return err
		}
		colorized, err := label.Colorize(classes, palette)
		if err != nil {
			return err
		}

		stacked, err := raster.HStack(img, colorized)
		if err != nil {
			return err
		}
		out, err := raster.EncodeIndexedPNG(stacked, c.maxColors)
		if err != nil {
			return err
		}

		writeMu.Lock()
		err = writer.WriteTile(tileID, out)
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

	if n := missed.Load(); n > 0 {
		log.Printf("%d of %d tiles had no matching image", n, len(worklist))
	}

	return subcommands.ExitSuccess
}
