package game

import (
	"fmt"
	"log"
	"time"
)

// minEnemySpawnDistance keeps wanderers away from the human's corner.
const minEnemySpawnDistance = 4

// NewSurvivorBoard sets up one human in the top-left corner, pursuit bots in
// the remaining corners and wandering enemies scattered on open cells.
func NewSurvivorBoard(config GameConfig, name string, opts ...Option) (*Board, error) {
	b, err := newBoard(config, ModeSurvivor, survivorRules{}, opts)
	if err != nil {
		return nil, err
	}

	spawns := SpawnPositions(config.Width, config.Height)
	b.Players = append(b.Players, NewPlayer(name, spawns[0], config.Lives, config.StartBombs, config.StartRange))

	bots := config.BotCount
	if bots > len(spawns)-1 {
		bots = len(spawns) - 1
	}
	for i := 1; i <= bots; i++ {
		bot := NewPlayer(fmt.Sprintf("Bot %d", i), spawns[i], config.BotLives, config.StartBombs, config.StartRange)
		bot.Controller = &PursuitController{lastTurn: b.startedAt}
		b.Players = append(b.Players, bot)
	}

	b.placeEnemies(config.EnemyCount, spawns[0])
	b.syncOccupancy()

	log.Printf("[GAME] Survivor board ready: %d bots, %d enemies", bots, len(b.Enemies))
	return b, nil
}

// NewLegendBoard sets up two humans in opposite corners with the bomber and
// the yellow enemy in the other two.
func NewLegendBoard(config GameConfig, names [2]string, opts ...Option) (*Board, error) {
	b, err := newBoard(config, ModeLegend, legendRules{}, opts)
	if err != nil {
		return nil, err
	}

	spawns := SpawnPositions(config.Width, config.Height)
	b.Players = append(b.Players,
		NewPlayer(names[0], spawns[0], config.Lives, config.StartBombs, config.StartRange),
		NewPlayer(names[1], spawns[3], config.Lives, config.StartBombs, config.StartRange),
	)
	b.Bombers = append(b.Bombers, NewBomber(spawns[1], b.startedAt))
	b.Yellows = append(b.Yellows, NewYellow(spawns[2], b.startedAt))
	b.syncOccupancy()

	log.Printf("[GAME] Legend board ready: %s vs %s", names[0], names[1])
	return b, nil
}

// placeEnemies scatters wanderers on empty cells outside the spawn safe
// zones and not too close to the human.
func (b *Board) placeEnemies(count int, human Position) {
	safe := SafeZone(SpawnPositions(b.Grid.Width, b.Grid.Height), b.Grid.Width, b.Grid.Height)

	var open []Position
	for y := 1; y < b.Grid.Height-1; y++ {
		for x := 1; x < b.Grid.Width-1; x++ {
			p := Position{X: x, Y: y}
			if b.Grid.At(p).Terrain != Empty || safe.Has(p) || p.Manhattan(human) < minEnemySpawnDistance {
				continue
			}
			open = append(open, p)
		}
	}

	b.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	if count > len(open) {
		count = len(open)
	}
	for _, p := range open[:count] {
		b.Enemies = append(b.Enemies, NewEnemy(p, b.startedAt))
	}
}

type survivorRules struct{}

func (survivorRules) advance(b *Board, now time.Time) {
	for _, p := range b.Bots() {
		if !p.OnBoard() {
			continue
		}
		in := p.Controller.Decide(b, p, now)
		if in.PlaceBomb {
			b.PlaceBomb(p)
		}
		if in.Move {
			b.MovePlayer(p, in.Dir)
		}
	}
	for _, e := range b.Enemies {
		e.advance(b, now)
	}
}

// explosionHit kills any wanderer standing in the fire.
func (survivorRules) explosionHit(b *Board, pos Position) {
	for _, e := range b.Enemies {
		if e.Alive && e.Pos == pos {
			e.kill(b.Grid)
			log.Printf("[GAME] Enemy %s destroyed at (%d,%d)", e.ID, pos.X, pos.Y)
		}
	}
}

// outcome: the human dying ends the game; outliving every bot wins it.
func (survivorRules) outcome(b *Board) GameStatus {
	humans := b.Humans()
	if len(humans) == 0 {
		return b.Status
	}
	human := humans[0]
	if !human.Alive {
		return StatusGameOver
	}

	bots := b.Bots()
	if len(bots) == 0 {
		return b.Status
	}
	for _, bot := range bots {
		if bot.Alive {
			return b.Status
		}
	}
	human.Score += b.Config.VictoryBonus
	return StatusVictory
}

type legendRules struct{}

func (legendRules) advance(b *Board, now time.Time) {
	for _, e := range b.Bombers {
		e.advance(b, now)
	}
	for _, e := range b.Yellows {
		e.advance(b, now)
	}
}

// explosionHit: only players take damage in Legend mode.
func (legendRules) explosionHit(*Board, Position) {}

// outcome: the game ends when both humans are out of lives. Clearing the
// enemies is not a win condition.
func (legendRules) outcome(b *Board) GameStatus {
	for _, p := range b.Humans() {
		if p.Alive {
			return b.Status
		}
	}
	return StatusGameOver
}
