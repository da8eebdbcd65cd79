package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomberman-legend/internal/game"
)

// Color palette
var (
	// Tile styles
	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	destructibleStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#8B6914")).
				Foreground(lipgloss.Color("#A0772B"))

	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#1a1a2e"))

	bombStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	fuseStyle = bombStyle.Blink(true)

	fireStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ff6600")).
			Foreground(lipgloss.Color("#ffcc00")).
			Bold(true)

	embersStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7a2e00")).
			Foreground(lipgloss.Color("#ff6600"))

	powerUpStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#44ffff")).
			Bold(true)

	// Human colors, then bot colors
	playerColors = []lipgloss.Color{
		lipgloss.Color("#00ff88"), // Green
		lipgloss.Color("#4488ff"), // Blue
		lipgloss.Color("#ff44ff"), // Magenta
		lipgloss.Color("#ff8844"), // Orange
	}

	enemyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#cc3333")).
			Bold(true)

	yellowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffff44")).
			Bold(true)

	deadPlayerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true).
			Blink(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#ff8844")).
			Bold(true)
)

var powerUpGlyphs = map[game.PowerUpType]string{
	game.PowerUpExtraBomb: "+b",
	game.PowerUpRange:     "+r",
	game.PowerUpSpeed:     "+s",
	game.PowerUpLife:      "+♥",
}

// snapshot holds per-frame lookups keyed by position.
type snapshot struct {
	fire    map[game.Position]float64 // Strongest intensity per cell
	actors  map[game.Position]string
	fuseLow map[game.Position]bool
}

func takeSnapshot(b *game.Board) snapshot {
	now := b.Now()
	s := snapshot{
		fire:    make(map[game.Position]float64),
		actors:  make(map[game.Position]string),
		fuseLow: make(map[game.Position]bool),
	}

	for _, e := range b.Explosions {
		if v := e.Intensity(now); v > s.fire[e.Pos] {
			s.fire[e.Pos] = v
		}
	}
	for _, bomb := range b.Bombs {
		s.fuseLow[bomb.Pos] = bomb.Fuse(now, b.Config.BombTimer) < time.Second
	}

	// Later entries win: enemies are drawn under players
	for _, e := range b.Enemies {
		if e.Alive {
			s.actors[e.Pos] = enemyStyle.Render("oo")
		}
	}
	for _, e := range b.Bombers {
		if e.Alive {
			s.actors[e.Pos] = enemyStyle.Render("@@")
		}
	}
	for _, e := range b.Yellows {
		if e.Alive {
			s.actors[e.Pos] = yellowStyle.Render("YY")
		}
	}
	for i, p := range b.Players {
		if p.OnBoard() {
			s.actors[p.Pos] = renderPlayer(i, p)
		}
	}
	return s
}

func renderPlayer(idx int, p *game.Player) string {
	color := playerColors[idx%len(playerColors)]
	style := lipgloss.NewStyle().
		Background(lipgloss.Color("#1a1a2e")).
		Foreground(color).
		Bold(true)
	if p.IsBot() {
		return style.Render(fmt.Sprintf("B%d", idx))
	}
	return style.Foreground(lipgloss.Color("#1a1a2e")).Background(color).Render(fmt.Sprintf("P%d", idx+1))
}

// RenderBoard converts the board into a styled terminal string.
func RenderBoard(b *game.Board) string {
	if b == nil {
		return "No game in progress"
	}

	s := takeSnapshot(b)
	var rows []string
	for y := 0; y < b.Grid.Height; y++ {
		var cells []string
		for x := 0; x < b.Grid.Width; x++ {
			cells = append(cells, renderCell(b.Grid.Cell(x, y), game.Position{X: x, Y: y}, s))
		}
		rows = append(rows, strings.Join(cells, ""))
	}

	return strings.Join(rows, "\n")
}

// renderCell renders a single board cell with the appropriate style.
// Each cell is 2 characters wide for a square-ish appearance.
func renderCell(cell *game.Cell, pos game.Position, s snapshot) string {
	// Priority: Actor > Fire > Bomb > Power-up > Tile
	if actor, ok := s.actors[pos]; ok {
		return actor
	}

	if v, ok := s.fire[pos]; ok {
		if v > 0.5 {
			return fireStyle.Render("▓▓")
		}
		return embersStyle.Render("░░")
	}

	if cell.Bomb != nil {
		if s.fuseLow[pos] {
			return fuseStyle.Render("<>")
		}
		return bombStyle.Render("()")
	}

	if cell.PowerUp != nil {
		return powerUpStyle.Render(powerUpGlyphs[*cell.PowerUp])
	}

	switch cell.Terrain {
	case game.Wall:
		return wallStyle.Render("██")
	case game.DestructibleWall:
		return destructibleStyle.Render("▒▒")
	default:
		return emptyStyle.Render("  ")
	}
}

// RenderHUD renders the heads-up display showing player info and game status.
func RenderHUD(b *game.Board) string {
	if b == nil {
		return ""
	}

	var parts []string

	// Title
	parts = append(parts, titleStyle.Render("💣 BOMBERMAN · "+b.Mode.String()))
	parts = append(parts, "")

	switch b.Status {
	case game.StatusPaused:
		parts = append(parts, pausedStyle.Render("⏸ PAUSED (press [p] to resume)"))
	case game.StatusPlaying:
		parts = append(parts, errorStyle.Render("🔥 GAME IN PROGRESS"))
	default:
		parts = append(parts, dimStyle.Render(b.Status.String()))
	}
	parts = append(parts, "")

	// Player list
	parts = append(parts, dimStyle.Render("Players:"))
	for i, p := range b.Players {
		nameStyle := lipgloss.NewStyle().Foreground(playerColors[i%len(playerColors)])
		status := "❤️ "
		if !p.IsAlive() {
			status = "💀"
			nameStyle = deadPlayerStyle
		}
		boost := ""
		if p.SpeedBoost {
			boost = " ⚡"
		}

		parts = append(parts, fmt.Sprintf("%s %s ×%d [💣%d/%d 🔥%d]%s  %d pts",
			status,
			nameStyle.Render(p.Name),
			p.Lives,
			p.AvailableBombs,
			p.MaxBombs,
			p.Range,
			boost,
			p.Score,
		))
	}

	enemies := 0
	for _, e := range b.Enemies {
		if e.Alive {
			enemies++
		}
	}
	if b.Mode == game.ModeSurvivor {
		parts = append(parts, "", dimStyle.Render(fmt.Sprintf("Wanderers left: %d", enemies)))
	}

	parts = append(parts, "")
	if b.Mode == game.ModeLegend {
		parts = append(parts, hintStyle.Render("P1: WASD + Space | P2: Arrows + Enter"))
	} else {
		parts = append(parts, hintStyle.Render("WASD/Arrows: Move | Space: Bomb"))
	}
	parts = append(parts, hintStyle.Render("P: Pause | Q: Menu"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// RenderMenu renders the mode selection screen.
func RenderMenu(cursor int, modes []game.Mode) string {
	parts := []string{titleStyle.Render("💣 BOMBERMAN"), ""}
	for i, mode := range modes {
		label := "  " + mode.String() + "  "
		if i == cursor {
			label = selectedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	parts = append(parts, "", hintStyle.Render("↑/↓: Choose | Enter: Play | Q: Quit"))
	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// RenderResult renders the scoreboard of a finished game.
func RenderResult(r *game.Result) string {
	if r == nil {
		return ""
	}

	var parts []string
	if r.Status == game.StatusVictory {
		parts = append(parts, winnerStyle.Render("🏆 VICTORY!"))
	} else {
		parts = append(parts, titleStyle.Render("💀 GAME OVER"))
	}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("%s · %s", r.Mode, r.Duration.Round(time.Second))), "")

	for _, p := range r.Players {
		kind := ""
		if p.Bot {
			kind = " (bot)"
		}
		parts = append(parts, fmt.Sprintf("%-10s%-6s %6d pts  ×%d", p.Name, kind, p.Score, p.Lives))
	}

	parts = append(parts, "", hintStyle.Render("Enter: Menu | R: Replay | Q: Quit"))
	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}
