package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&bufferCmd{config: cfg}, "")
	subcommands.Register(&downloadCmd{config: cfg}, "")
	subcommands.Register(&coverCmd{}, "")
	subcommands.Register(&compareCmd{config: cfg}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
