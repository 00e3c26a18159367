// Emberfell is a deterministic, data-driven turn-based RPG.
// Usage: emberfell [--version] [--plain] [--tiles] [<content_directory>]
package main

import (
	"fmt"
	"os"

	"github.com/okrause/emberfell/cli"
	"github.com/okrause/emberfell/config"
	"github.com/okrause/emberfell/loader"
	"github.com/okrause/emberfell/tilemap"
	"github.com/okrause/emberfell/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	tiles := false
	var contentDir string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("emberfell %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--tiles":
			tiles = true
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}

	// Load and compile Lua campaign content.
	defs, err := loader.Load(cfg.ContentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading campaign: %v\n", err)
		os.Exit(1)
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		cli.New(defs, cfg).Run()
		return
	}

	if tiles {
		if err := tilemap.Run(defs, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(defs, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
