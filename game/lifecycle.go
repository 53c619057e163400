package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// Death causes recorded in lifetimes.csv.
const (
	causeBounds    = "bounds"
	causeCollision = "collision"
)

// spawnBot creates an autopilot-driven snake.
func (g *Game) spawnBot() ecs.Entity {
	s, id := g.newSnake()
	p := components.Player{Snake: s, ID: id, Name: fmt.Sprintf("bot-%d", id), BornAt: g.SimTime()}
	intent := components.Intent{}
	bot := components.Bot{NoiseOffset: g.rng.Float64() * 1000}

	e := g.botMapper.NewEntity(&p, &intent, &bot)
	g.lifetimeTracker.Register(id, p.Name, g.tick, s.Length())
	return e
}

// spawnHuman creates the mouse-driven snake at the world center.
func (g *Game) spawnHuman() ecs.Entity {
	id := g.nextID
	g.nextID++
	center := vmath.V(g.cfg.World.Width/2, g.cfg.World.Height/2)
	s := snake.New(g.cfg.Snake, center, 0)

	p := components.Player{Snake: s, ID: id, Name: "player", BornAt: g.SimTime()}
	intent := components.Intent{}

	e := g.humanMapper.NewEntity(&p, &intent)
	g.lifetimeTracker.Register(id, p.Name, g.tick, s.Length())
	return e
}

// newSnake creates a snake at a random position clear of the walls.
func (g *Game) newSnake() (*snake.Snake, uint32) {
	id := g.nextID
	g.nextID++

	w, h := g.cfg.World.Width, g.cfg.World.Height
	margin := min(g.cfg.Autopilot.BoundaryBuffer, w/4, h/4)
	pos := vmath.V(
		margin+g.rng.Float64()*(w-2*margin),
		margin+g.rng.Float64()*(h-2*margin),
	)
	heading := g.rng.Float64()*2*math.Pi - math.Pi
	return snake.New(g.cfg.Snake, pos, heading), id
}

// onDeath records a death and scatters part of the body back as pellets.
// The snake itself stays on the field until respawnDead replaces it.
func (g *Game) onDeath(a *actor, cause string) {
	now := g.SimTime()
	a.diedAt = now
	if p := g.playerMap.Get(a.entity); p != nil {
		p.DiedAt = now
	}

	s := a.snake
	g.points = g.points[:0]
	for _, seg := range s.Segments() {
		g.points = append(g.points, seg.Pos)
	}
	dropped := g.pellets.Scatter(g.points, s.Length()*g.cfg.Pellets.DeathDropFraction)

	g.collector.RecordDeath()
	g.collector.RecordDrop(dropped)

	if r := g.lifetimeTracker.Finish(a.id, g.tick, g.cfg.Physics.DT, cause); r != nil {
		if err := g.outputManager.WriteLifetime(*r); err != nil {
			slog.Error("failed to write lifetime", "error", err)
		}
	}

	slog.Info("snake died",
		"id", a.id,
		"cause", cause,
		"tick", g.tick,
		"snake", s.Snapshot(),
		"dropped", dropped,
	)
}

// respawn gives a dead player a fresh snake under a new id.
func (g *Game) respawn(e ecs.Entity) {
	p := g.playerMap.Get(e)
	if p == nil {
		return
	}

	var s *snake.Snake
	var id uint32
	if g.hasHuman && e == g.human {
		id = g.nextID
		g.nextID++
		s = snake.New(g.cfg.Snake, vmath.V(g.cfg.World.Width/2, g.cfg.World.Height/2), 0)
	} else {
		s, id = g.newSnake()
		p.Name = fmt.Sprintf("bot-%d", id)
	}

	p.Snake = s
	p.ID = id
	p.BornAt = g.SimTime()
	p.DiedAt = 0

	g.collector.RecordRespawn()
	g.lifetimeTracker.Register(id, p.Name, g.tick, s.Length())

	slog.Info("snake respawned", "id", id, "name", p.Name, "tick", g.tick)
}
