package game

import "time"

// Intent is what a controller wants its player to do this tick.
type Intent struct {
	PlaceBomb bool
	Move      bool
	Dir       Direction
}

// Controller decides the intents of an AI-driven player.
type Controller interface {
	Decide(b *Board, self *Player, now time.Time) Intent
}

// shifter is implemented by anything holding timestamps that must be moved
// forward when the game resumes from a pause.
type shifter interface {
	shift(d time.Duration)
}

// PursuitController chases the nearest human. When it is next to its target
// with a bomb in hand it drops one; otherwise it closes the distance, and it
// occasionally lays a bomb on its way. Everything, including the random
// BotBombChance drop, happens on its own turn, once every BotMoveDelay,
// not on every tick.
type PursuitController struct {
	lastTurn time.Time
}

// Decide implements Controller.
func (c *PursuitController) Decide(b *Board, self *Player, now time.Time) Intent {
	delay := b.Config.BotMoveDelay
	if self.SpeedBoost {
		delay /= 2
	}
	if now.Sub(c.lastTurn) < delay {
		return Intent{}
	}
	c.lastTurn = now

	canBomb := self.AvailableBombs > 0 && b.Grid.At(self.Pos).Bomb == nil
	target := b.nearestHuman(self.Pos)
	if target != nil && canBomb && self.Pos.Adjacent(target.Pos) {
		return Intent{PlaceBomb: true}
	}

	var in Intent
	if target != nil {
		in.Dir, in.Move = b.stepToward(self.Pos, target.Pos, blockPlayers)
	}
	if !in.Move {
		in.Dir, in.Move = b.randomStep(self.Pos, blockPlayers)
	}
	if canBomb && b.rng.Float64() < b.Config.BotBombChance {
		in.PlaceBomb = true
	}
	return in
}

func (c *PursuitController) shift(d time.Duration) {
	c.lastTurn = c.lastTurn.Add(d)
}

type blocker int

const (
	blockNone blocker = iota
	blockPlayers
	blockOccupied // Players and enemies
)

// passable is Grid.Walkable plus an optional occupancy restriction.
func (b *Board) passable(p Position, block blocker) bool {
	if !b.Grid.Walkable(p) {
		return false
	}
	cell := b.Grid.At(p)
	switch block {
	case blockPlayers:
		return !cell.HasPlayer
	case blockOccupied:
		return !cell.HasPlayer && !cell.HasEnemy
	}
	return true
}

// stepToward returns the axis step that shortens the Manhattan distance from
// from to to, trying the longer axis first.
func (b *Board) stepToward(from, to Position, block blocker) (Direction, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y

	var horiz, vert []Direction
	if dx > 0 {
		horiz = []Direction{DirRight}
	} else if dx < 0 {
		horiz = []Direction{DirLeft}
	}
	if dy > 0 {
		vert = []Direction{DirDown}
	} else if dy < 0 {
		vert = []Direction{DirUp}
	}

	candidates := append(horiz, vert...)
	if abs(dy) > abs(dx) {
		candidates = append(vert, horiz...)
	}
	for _, d := range candidates {
		if b.passable(from.Step(d), block) {
			return d, true
		}
	}
	return 0, false
}

// randomStep picks a uniformly random passable direction.
func (b *Board) randomStep(from Position, block blocker) (Direction, bool) {
	for _, i := range b.rng.Perm(len(Directions)) {
		d := Directions[i]
		if b.passable(from.Step(d), block) {
			return d, true
		}
	}
	return 0, false
}

// nearestHuman returns the closest human on the board, or nil.
func (b *Board) nearestHuman(from Position) *Player {
	var best *Player
	bestDist := 0
	for _, p := range b.Humans() {
		if !p.OnBoard() {
			continue
		}
		if d := from.Manhattan(p.Pos); best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
