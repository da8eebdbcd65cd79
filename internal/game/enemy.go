package game

import (
	"time"

	"github.com/google/uuid"
)

// Enemy is a Survivor-mode wanderer. It has no lives: one explosion kills it.
type Enemy struct {
	ID       string   `json:"id"`
	Pos      Position `json:"pos"`
	Alive    bool     `json:"alive"`
	lastMove time.Time
}

// NewEnemy creates a living wanderer at pos.
func NewEnemy(pos Position, now time.Time) *Enemy {
	return &Enemy{ID: uuid.NewString(), Pos: pos, Alive: true, lastMove: now}
}

// advance moves the enemy one cell in a random direction once its move
// delay has passed. A blocked pick means it stays put this turn.
func (e *Enemy) advance(b *Board, now time.Time) {
	if !e.Alive || now.Sub(e.lastMove) < b.Config.EnemyMoveDelay {
		return
	}
	e.lastMove = now

	next := e.Pos.Step(Directions[b.rng.Intn(len(Directions))])
	if !b.Grid.Walkable(next) {
		return
	}
	b.relocateEnemy(&e.Pos, next)
}

func (e *Enemy) kill(g *Grid) {
	e.Alive = false
	g.At(e.Pos).HasEnemy = false
}

func (e *Enemy) shift(d time.Duration) {
	e.lastMove = e.lastMove.Add(d)
}
