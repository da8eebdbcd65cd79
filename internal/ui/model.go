package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomberman-legend/internal/game"
	"github.com/amalg/bomberman-legend/internal/maps"
)

// scene is the screen currently shown.
type scene int

const (
	sceneMenu scene = iota
	scenePlay
	sceneResult
)

var menuModes = []game.Mode{game.ModeSurvivor, game.ModeLegend}

// tickMsg drives the simulation. gen ties it to one game so ticks left over
// from an abandoned game are dropped.
type tickMsg struct {
	gen int
}

// Options configures a TUI session.
type Options struct {
	Config game.GameConfig
	Names  [2]string
	Layout *maps.Layout // Optional fixed terrain
	Mode   game.Mode    // Pre-selected menu entry
}

// Model is the Bubbletea model for a local game.
type Model struct {
	opts     Options
	scene    scene
	cursor   int
	board    *game.Board
	result   *game.Result
	gen      int
	err      error
	quitting bool
}

// NewModel creates a TUI model showing the mode menu.
func NewModel(opts Options) Model {
	m := Model{opts: opts}
	for i, mode := range menuModes {
		if mode == opts.Mode {
			m.cursor = i
		}
	}
	return m
}

// Init implements tea.Model. Nothing runs until a game is started.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and simulation ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.gen != m.gen || m.scene != scenePlay {
			return m, nil
		}
		m.board.Update()
		if m.board.Status.Terminal() {
			r := m.board.Result()
			m.result = &r
			m.scene = sceneResult
			log.Printf("[UI] %s ended: %s", r.Mode, r.Status)
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the current scene.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye! 👋\n"
	}

	var body string
	switch m.scene {
	case scenePlay:
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			RenderBoard(m.board),
			"  ",
			RenderHUD(m.board),
		)
	case sceneResult:
		body = RenderResult(m.result)
	default:
		body = RenderMenu(m.cursor, menuModes)
	}

	if m.err != nil {
		body += "\n" + errorStyle.Render("Error: "+m.err.Error())
	}
	return body + "\n"
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	rate := m.opts.Config.TickRate
	if rate <= 0 {
		rate = game.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// startGame builds a board for mode and starts ticking.
func (m Model) startGame(mode game.Mode) (tea.Model, tea.Cmd) {
	var opts []game.Option
	if m.opts.Layout != nil {
		opts = append(opts, game.WithTerrain(m.opts.Layout.Terrain))
	}

	var (
		board *game.Board
		err   error
	)
	switch mode {
	case game.ModeLegend:
		board, err = game.NewLegendBoard(m.opts.Config, m.opts.Names, opts...)
	default:
		board, err = game.NewSurvivorBoard(m.opts.Config, m.opts.Names[0], opts...)
	}
	if err != nil {
		m.err = fmt.Errorf("start %s: %w", mode, err)
		return m, nil
	}

	for _, p := range board.Humans() {
		name := p.Name
		p.OnGameOver = func(score int) {
			log.Printf("[UI] %s is out with %d points", name, score)
		}
	}

	m.board = board
	m.result = nil
	m.err = nil
	m.scene = scenePlay
	m.gen++
	log.Printf("[UI] Starting %s", mode)
	return m, m.tick()
}

// handleKey processes keyboard input for the current scene.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.scene {
	case sceneMenu:
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "w":
			m.cursor = (m.cursor + len(menuModes) - 1) % len(menuModes)
		case "down", "s":
			m.cursor = (m.cursor + 1) % len(menuModes)
		case "enter", " ":
			return m.startGame(menuModes[m.cursor])
		}

	case scenePlay:
		switch key {
		case "q", "esc":
			// Abandon the game; the pending tick is dropped by gen
			m.scene = sceneMenu
			m.gen++
			m.board = nil
			return m, nil
		case "p":
			m.board.TogglePause()
			return m, nil
		}
		dispatchKey(m.board, key)

	case sceneResult:
		switch key {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter", " ":
			m.scene = sceneMenu
		case "r":
			return m.startGame(m.result.Mode)
		}
	}

	return m, nil
}

// binding maps a key to one player's intent.
type binding struct {
	player int
	bomb   bool
	dir    game.Direction
}

var survivorKeys = map[string]binding{
	"up": {0, false, game.DirUp}, "w": {0, false, game.DirUp},
	"down": {0, false, game.DirDown}, "s": {0, false, game.DirDown},
	"left": {0, false, game.DirLeft}, "a": {0, false, game.DirLeft},
	"right": {0, false, game.DirRight}, "d": {0, false, game.DirRight},
	" ": {0, true, 0},
}

// Legend: player one on WASD + space, player two on arrows + enter.
var legendKeys = map[string]binding{
	"w": {0, false, game.DirUp}, "s": {0, false, game.DirDown},
	"a": {0, false, game.DirLeft}, "d": {0, false, game.DirRight},
	" ": {0, true, 0},
	"up": {1, false, game.DirUp}, "down": {1, false, game.DirDown},
	"left": {1, false, game.DirLeft}, "right": {1, false, game.DirRight},
	"enter": {1, true, 0},
}

// dispatchKey turns a key into a move or bomb on the right player.
func dispatchKey(b *game.Board, key string) bool {
	keys := survivorKeys
	if b.Mode == game.ModeLegend {
		keys = legendKeys
	}
	bind, ok := keys[key]
	if !ok {
		return false
	}
	humans := b.Humans()
	if bind.player >= len(humans) {
		return false
	}

	p := humans[bind.player]
	if bind.bomb {
		return b.PlaceBomb(p)
	}
	return b.MovePlayer(p, bind.dir)
}
