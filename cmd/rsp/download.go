package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/subcommands"
	"github.com/ndavid/robosat.pink/batch"
	"github.com/ndavid/robosat.pink/cover"
	"github.com/ndavid/robosat.pink/fetch"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/ndavid/robosat.pink/xyz"
	"github.com/schollz/progressbar/v3"
)

type downloadCmd struct {
	config config

	urlTemplate string
	coverPath   string
	outputPath  string
	ext         string
	timeout     time.Duration
	workers     int
}

func (c *downloadCmd) Name() string     { return "download" }
func (c *downloadCmd) Synopsis() string { return "download tiles listed in a cover into an xyz tree" }
func (c *downloadCmd) Usage() string {
	return "rsp download -url <template> -cover <csv> -o <dir> [-ext <ext> -timeout <d> -j <n>]\n"
}
func (c *downloadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.urlTemplate, "url", "", "Tile server URL template with {z} {x} {y} placeholders")
	f.StringVar(&c.coverPath, "cover", "", "Cover CSV listing the tiles to download")
	f.StringVar(&c.outputPath, "o", "", "Output xyz directory")
	f.StringVar(&c.ext, "ext", "png", "File extension for downloaded tiles")
	f.DurationVar(&c.timeout, "timeout", c.config.Timeout, "Per-tile HTTP timeout")
	f.IntVar(&c.workers, "j", c.config.Workers, "Parallel workers (0 for all CPUs)")
}

func (c *downloadCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.urlTemplate == "" || c.coverPath == "" || c.outputPath == "" {
		log.Println("-url, -cover and -o are required")
		return subcommands.ExitUsageError
	}
	if _, err := fetch.ExpandTemplate(c.urlTemplate, tile.ID{}); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	worklist, err := cover.ReadFile(c.coverPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if len(worklist) == 0 {
		log.Printf("no tiles listed in %s", c.coverPath)
		return subcommands.ExitFailure
	}

	writer, err := xyz.NewWriter(c.outputPath, c.ext)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	client := fetch.NewClient(
		fetch.WithTimeout(c.timeout),
		fetch.WithUserAgent(c.config.UserAgent),
	)

	var missed atomic.Int64
	bar := progressbar.New(len(worklist))

	err = batch.Run(ctx, c.workers, worklist, func(ctx context.Context, tileID tile.ID) error {
		data, err := client.Tile(ctx, c.urlTemplate, tileID)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			missed.Add(1)
			bar.Add(1)
			return nil
		}
		if err := writer.WriteTile(tileID, data); err != nil {
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
		log.Printf("%d of %d tiles not retrieved", n, len(worklist))
	}

	return subcommands.ExitSuccess
}
