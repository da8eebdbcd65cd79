package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomberman-legend/internal/game"
	"github.com/amalg/bomberman-legend/internal/maps"
)

var (
	wallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	crateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0772B"))
	spawnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8844")).Bold(true)
)

func main() {
	dir := flag.String("dir", "maps", "Directory holding stored maps")
	name := flag.String("name", "", "Name of the map to generate")
	description := flag.String("desc", "", "Map description")
	density := flag.Float64("density", game.DefaultConfig().DestructibleDensity, "Destructible wall density (0.0 to 1.0)")
	seed := flag.Int64("seed", 0, "Random seed (default: current time)")
	list := flag.Bool("list", false, "List stored maps")
	show := flag.String("show", "", "Print a stored map")
	del := flag.String("delete", "", "Delete a stored map")
	flag.Parse()

	config := game.DefaultConfig()
	store, err := maps.NewStore(*dir, config.Width, config.Height)
	if err != nil {
		fail(err)
	}

	switch {
	case *list:
		layouts, err := store.List()
		if err != nil {
			fail(err)
		}
		if len(layouts) == 0 {
			fmt.Println("No maps stored in", *dir)
			return
		}
		for _, l := range layouts {
			fmt.Printf("%-20s %s\n", nameStyle.Render(l.Name), l.Description)
		}

	case *show != "":
		l, err := store.Load(*show)
		if err != nil {
			fail(err)
		}
		fmt.Println(nameStyle.Render(l.Name), l.Description)
		fmt.Println(preview(l))

	case *del != "":
		if err := store.Delete(*del); err != nil {
			if errors.Is(err, maps.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "No map named %q\n", *del)
				os.Exit(1)
			}
			fail(err)
		}
		fmt.Println("Deleted", *del)

	default:
		if *name == "" {
			fmt.Fprintln(os.Stderr, "A -name is required to generate a map")
			flag.Usage()
			os.Exit(2)
		}
		if *density < 0 || *density > 1 {
			fmt.Fprintln(os.Stderr, "Density must be between 0.0 and 1.0")
			os.Exit(2)
		}
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}

		terrain := game.GenerateTerrain(config.Width, config.Height, *density, rand.New(rand.NewSource(*seed)))
		game.EnforceSpawnSafety(terrain, game.SpawnPositions(config.Width, config.Height))

		l := maps.Layout{
			Name:        *name,
			Description: *description,
			Width:       config.Width,
			Height:      config.Height,
			Terrain:     terrain,
		}
		if err := store.Save(l); err != nil {
			fail(err)
		}
		fmt.Printf("Generated map %q (%dx%d, seed %d) in %s\n", *name, config.Width, config.Height, *seed, *dir)
		fmt.Println(preview(l))
	}
}

// preview draws a layout with spawn corners marked.
func preview(l maps.Layout) string {
	spawns := make(map[game.Position]bool)
	for _, p := range game.SpawnPositions(l.Width, l.Height) {
		spawns[p] = true
	}

	var b strings.Builder
	for y, row := range l.Terrain {
		for x, t := range row {
			switch {
			case spawns[game.Position{X: x, Y: y}]:
				b.WriteString(spawnStyle.Render("SS"))
			case t == game.Wall:
				b.WriteString(wallStyle.Render("██"))
			case t == game.DestructibleWall:
				b.WriteString(crateStyle.Render("▒▒"))
			default:
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
