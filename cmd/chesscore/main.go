// Package main is the entry point for the chesscore UCI engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kvchess/chesscore/internal/config"
	"github.com/kvchess/chesscore/internal/engine"
	"github.com/kvchess/chesscore/internal/telemetry"
	"github.com/kvchess/chesscore/internal/uci"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML engine config file")
	verbosity := flag.Int("v", 0, "log verbosity (higher is more verbose)")
	showVersion := flag.Bool("version", false, "print engine identity and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	log := telemetry.NewLogger(*verbosity)
	if err != nil {
		log.Error(err, "failed to load config, using defaults", "path", *configPath)
	}

	if *showVersion {
		fmt.Printf("%s by %s\n", cfg.Name, cfg.Author)
		return
	}

	eng := engine.New(cfg, log)
	proto := uci.New(os.Stdin, os.Stdout, eng, log)
	os.Exit(proto.Run())
}
