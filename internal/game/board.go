package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// Board is the authoritative game state and the only thing that mutates it.
// It is driven by a single caller: Update once per tick, plus the per-player
// entry points MovePlayer, PlaceBomb and TogglePause in between. Nothing in
// it is safe for concurrent use.
type Board struct {
	Mode   Mode
	Config GameConfig
	Grid   *Grid
	Status GameStatus

	Players    []*Player // Humans first, then bots
	Bombs      []*Bomb
	Explosions []*Explosion
	Enemies    []*Enemy  // Survivor
	Bombers    []*Bomber // Legend
	Yellows    []*Yellow // Legend

	rules       rules
	now         func() time.Time
	rng         *rand.Rand
	startedAt   time.Time
	pausedAt    time.Time
	endedAt     time.Time
	detonations int
}

// Option customises board construction.
type Option func(*options)

type options struct {
	now     func() time.Time
	rng     *rand.Rand
	terrain [][]TileType
}

// WithClock replaces time.Now as the board's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRand sets the random source used for terrain, drops and AI.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithTerrain replaces random terrain generation with a supplied layout.
// Spawn safety is still enforced on a copy of it.
func WithTerrain(terrain [][]TileType) Option {
	return func(o *options) { o.terrain = terrain }
}

// rules is the mode-specific part of the simulation.
type rules interface {
	// advance runs one turn of every AI-controlled entity.
	advance(b *Board, now time.Time)
	// explosionHit applies mode-specific effects of a fire mark at pos.
	explosionHit(b *Board, pos Position)
	// outcome returns the status the board should be in.
	outcome(b *Board) GameStatus
}

func newBoard(config GameConfig, mode Mode, r rules, opts []Option) (*Board, error) {
	if config.Width < 5 || config.Height < 5 {
		return nil, fmt.Errorf("board %dx%d is too small (minimum 5x5)", config.Width, config.Height)
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.now().UnixNano()))
	}

	var terrain [][]TileType
	if o.terrain != nil {
		terrain = make([][]TileType, len(o.terrain))
		for y, row := range o.terrain {
			terrain[y] = append([]TileType(nil), row...)
		}
	} else {
		terrain = GenerateTerrain(config.Width, config.Height, config.DestructibleDensity, o.rng)
	}

	if err := CheckDimensions(terrain, config.Width, config.Height); err != nil {
		return nil, fmt.Errorf("invalid terrain: %w", err)
	}
	EnforceSpawnSafety(terrain, SpawnPositions(config.Width, config.Height))

	grid := NewGrid(config.Width, config.Height)
	if err := grid.SetTerrain(terrain); err != nil {
		return nil, fmt.Errorf("apply terrain: %w", err)
	}

	b := &Board{
		Mode:   mode,
		Config: config,
		Grid:   grid,
		Status: StatusPlaying,
		rules:  r,
		now:    o.now,
		rng:    o.rng,
	}
	b.startedAt = b.now()
	return b, nil
}

// Now returns the board's current time. Renderers use it for fuse and fade
// effects.
func (b *Board) Now() time.Time {
	return b.now()
}

// Humans returns the players driven by input.
func (b *Board) Humans() []*Player {
	out := make([]*Player, 0, 2)
	for _, p := range b.Players {
		if !p.IsBot() {
			out = append(out, p)
		}
	}
	return out
}

// Bots returns the AI-controlled players.
func (b *Board) Bots() []*Player {
	out := make([]*Player, 0, len(b.Players))
	for _, p := range b.Players {
		if p.IsBot() {
			out = append(out, p)
		}
	}
	return out
}

// PlayerByID looks a player up by id.
func (b *Board) PlayerByID(id string) *Player {
	for _, p := range b.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MovePlayer is the movement entry point for one player.
func (b *Board) MovePlayer(p *Player, dir Direction) bool {
	moved := p.Move(dir, b.Grid, b.Status, b.Config.PowerUpScore)
	if moved {
		b.syncOccupancy()
	}
	return moved
}

// Update advances the simulation by one tick: bombs, then explosions, then
// AI-controlled entities. It does nothing unless the game is playing.
func (b *Board) Update() {
	if b.Status != StatusPlaying {
		return
	}
	now := b.now()

	b.tickBombs(now)
	b.purgeExplosions(now)
	b.reviveDowned(now)
	b.rules.advance(b, now)
	b.syncOccupancy()
	b.checkOutcome(now)
}

// TogglePause switches between playing and paused. Terminal states are left
// alone. On resume every timer is pushed forward by the paused time.
func (b *Board) TogglePause() GameStatus {
	switch b.Status {
	case StatusPlaying:
		b.Status = StatusPaused
		b.pausedAt = b.now()
	case StatusPaused:
		b.shiftTimers(b.now().Sub(b.pausedAt))
		b.Status = StatusPlaying
	}
	return b.Status
}

// damage applies one hit to p and returns it to play according to the
// respawn policy. A player who lost its last life leaves the board.
func (b *Board) damage(p *Player, now time.Time) {
	if !p.OnBoard() {
		return
	}
	p.TakeDamage(now)
	switch {
	case !p.Alive:
		b.Grid.At(p.Pos).HasPlayer = false
	case b.Config.RespawnPolicy == RespawnDelayed:
		p.takeOff(b.Grid)
	default:
		p.RespawnAtStart(b.Grid)
	}
}

func (b *Board) reviveDowned(now time.Time) {
	if b.Config.RespawnPolicy != RespawnDelayed {
		return
	}
	for _, p := range b.Players {
		p.TryRespawn(b.Grid, now, b.Config.RespawnDelay)
	}
}

// syncOccupancy rebuilds every occupancy flag from the entity lists.
func (b *Board) syncOccupancy() {
	for y := 0; y < b.Grid.Height; y++ {
		for x := 0; x < b.Grid.Width; x++ {
			c := b.Grid.Cell(x, y)
			c.HasPlayer = false
			c.HasEnemy = false
		}
	}
	for _, p := range b.Players {
		if p.OnBoard() {
			b.Grid.At(p.Pos).HasPlayer = true
		}
	}
	for _, e := range b.Enemies {
		if e.Alive {
			b.Grid.At(e.Pos).HasEnemy = true
		}
	}
	for _, e := range b.Bombers {
		if e.Alive {
			b.Grid.At(e.Pos).HasEnemy = true
		}
	}
	for _, e := range b.Yellows {
		if e.Alive {
			b.Grid.At(e.Pos).HasEnemy = true
		}
	}
}

func (b *Board) checkOutcome(now time.Time) {
	next := b.rules.outcome(b)
	if next == b.Status {
		return
	}
	b.Status = next
	b.endedAt = now
	log.Printf("[GAME] %s finished: %s after %s", b.Mode, next, now.Sub(b.startedAt).Round(time.Second))
}

func (b *Board) shiftTimers(d time.Duration) {
	if d <= 0 {
		return
	}
	b.startedAt = b.startedAt.Add(d)
	for _, bomb := range b.Bombs {
		bomb.PlantedAt = bomb.PlantedAt.Add(d)
	}
	for _, e := range b.Explosions {
		e.StartedAt = e.StartedAt.Add(d)
	}
	for _, p := range b.Players {
		p.shift(d)
	}
	for _, e := range b.Enemies {
		e.shift(d)
	}
	for _, e := range b.Bombers {
		e.shift(d)
	}
	for _, e := range b.Yellows {
		e.shift(d)
	}
}

// PlayerResult is one line of a finished game's scoreboard.
type PlayerResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lives int    `json:"lives"`
	Bot   bool   `json:"bot"`
}

// Result is handed from the game scene to whatever shows the outcome.
type Result struct {
	Mode     Mode           `json:"mode"`
	Status   GameStatus     `json:"status"`
	Players  []PlayerResult `json:"players"`
	Duration time.Duration  `json:"duration"`
}

// Result summarises the game so far.
func (b *Board) Result() Result {
	end := b.endedAt
	switch {
	case b.Status == StatusPaused:
		end = b.pausedAt
	case !b.Status.Terminal():
		end = b.now()
	}

	players := make([]PlayerResult, 0, len(b.Players))
	for _, p := range b.Players {
		players = append(players, PlayerResult{
			Name:  p.Name,
			Score: p.Score,
			Lives: p.Lives,
			Bot:   p.IsBot(),
		})
	}
	return Result{
		Mode:     b.Mode,
		Status:   b.Status,
		Players:  players,
		Duration: end.Sub(b.startedAt),
	}
}
