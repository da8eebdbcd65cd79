package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/bomberman-legend/internal/game"
	"github.com/amalg/bomberman-legend/internal/maps"
	"github.com/amalg/bomberman-legend/internal/ui"
)

func main() {
	mode := flag.String("mode", "survivor", "Pre-selected mode: survivor or legend")
	name := flag.String("name", "Player", "Player one name")
	name2 := flag.String("name2", "Player 2", "Player two name (legend mode)")
	mapName := flag.String("map", "", "Stored map to play on (default: random terrain)")
	mapsDir := flag.String("maps-dir", "maps", "Directory holding stored maps")
	lives := flag.Int("lives", 0, "Starting lives for humans (default from config)")
	tickRate := flag.Int("tick-rate", 0, "Simulation ticks per second (default from config)")
	broadcast := flag.Bool("refill-all", false, "Give every player a bomb back on each detonation")
	delayed := flag.Bool("delayed-respawn", false, "Keep damaged players off the board for a while")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	config := game.DefaultConfig()
	if *lives > 0 {
		config.Lives = *lives
	}
	if *tickRate > 0 {
		config.TickRate = *tickRate
	}
	if *broadcast {
		config.RefillScope = game.RefillBroadcast
	}
	if *delayed {
		config.RespawnPolicy = game.RespawnDelayed
	}

	opts := ui.Options{
		Config: config,
		Names:  [2]string{*name, *name2},
	}
	switch *mode {
	case "survivor":
		opts.Mode = game.ModeSurvivor
	case "legend":
		opts.Mode = game.ModeLegend
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want survivor or legend)\n", *mode)
		os.Exit(2)
	}

	if *mapName != "" {
		store, err := maps.NewStore(*mapsDir, config.Width, config.Height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		layout, err := store.Load(*mapName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
			os.Exit(1)
		}
		opts.Layout = &layout
	}

	p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
