package main

import (
	"context"
	"flag"
	"io"
	"log"
	"slices"

	"github.com/google/subcommands"
	"github.com/ndavid/robosat.pink/cover"
	"github.com/ndavid/robosat.pink/tile"
)

type coverCmd struct {
	inputPath  string
	outputPath string
}

func (c *coverCmd) Name() string     { return "cover" }
func (c *coverCmd) Synopsis() string { return "export a store's tile addresses to a cover CSV" }
func (c *coverCmd) Usage() string {
	return "rsp cover -i <store> -o <csv>\n"
}
func (c *coverCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input store (xyz directory or .mbtiles file)")
	f.StringVar(&c.outputPath, "o", "", "Output cover CSV path")
}

func (c *coverCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		log.Println("both -i and -o are required")
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

	worklist, err := scanTiles(reader)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	slices.SortFunc(worklist, tile.Compare)

	if err := cover.WriteFile(c.outputPath, worklist); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
