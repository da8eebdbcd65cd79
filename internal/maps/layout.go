package maps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amalg/bomberman-legend/internal/game"
)

// MinPlayableCells is the fewest non-Wall cells a layout may have.
const MinPlayableCells = 20

var (
	// ErrNotFound is returned when no layout is stored under a name.
	ErrNotFound = errors.New("map not found")
	// ErrInvalidLayout wraps every validation failure.
	ErrInvalidLayout = errors.New("invalid map layout")
)

// Layout is a named terrain grid. Only terrain is persisted: bombs,
// power-ups and entities are never part of a map.
type Layout struct {
	Name        string            `msgpack:"name"`
	Description string            `msgpack:"description"`
	Width       int               `msgpack:"width"`
	Height      int               `msgpack:"height"`
	Terrain     [][]game.TileType `msgpack:"terrain"`
}

// FromGrid captures the terrain of a live grid.
func FromGrid(name, description string, g *game.Grid) Layout {
	return Layout{
		Name:        name,
		Description: description,
		Width:       g.Width,
		Height:      g.Height,
		Terrain:     g.Terrain(),
	}
}

// Validate checks that a layout is playable on a width x height board:
// right size, known tiles, enough open cells and no blocked spawn.
func Validate(l Layout, width, height int) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLayout)
	}
	if l.Width != width || l.Height != height {
		return fmt.Errorf("%w: %dx%d, want %dx%d", ErrInvalidLayout, l.Width, l.Height, width, height)
	}
	if err := game.CheckDimensions(l.Terrain, width, height); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	playable := 0
	for y, row := range l.Terrain {
		for x, t := range row {
			switch t {
			case game.Empty, game.DestructibleWall:
				playable++
			case game.Wall:
			default:
				return fmt.Errorf("%w: unknown tile %d at (%d,%d)", ErrInvalidLayout, t, x, y)
			}
		}
	}
	if playable < MinPlayableCells {
		return fmt.Errorf("%w: %d playable cells, need %d", ErrInvalidLayout, playable, MinPlayableCells)
	}

	for _, sp := range game.SpawnPositions(width, height) {
		if t := l.Terrain[sp.Y][sp.X]; t != game.Empty {
			return fmt.Errorf("%w: spawn (%d,%d) blocked by %s", ErrInvalidLayout, sp.X, sp.Y, t)
		}
	}
	return nil
}

// slug turns a map name into a file-system safe base name.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
