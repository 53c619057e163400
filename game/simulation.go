package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/systems"
	"github.com/pthm-cable/slither/telemetry"
)

// actor is a per-tick copy of one player, gathered while the player query is
// open so that later phases can create and remove pellet entities.
type actor struct {
	entity ecs.Entity
	snake  *snake.Snake
	id     uint32
	diedAt float64
}

// step runs a single tick of the simulation.
func (g *Game) step(dt float64) {
	dt = min(dt, g.cfg.Physics.MaxDT)
	if dt <= 0 {
		return
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.updateBotIntents()

	g.perfCollector.StartPhase(telemetry.PhaseSnakes)
	g.tickSnakes(dt)

	g.perfCollector.StartPhase(telemetry.PhasePickups)
	g.collectPellets()

	g.perfCollector.StartPhase(telemetry.PhaseBounds)
	g.enforceBounds()

	g.perfCollector.StartPhase(telemetry.PhaseRespawn)
	g.respawnDead()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updateBotIntents asks the autopilot for every live bot's intent.
func (g *Game) updateBotIntents() {
	t := g.SimTime()
	query := g.bots.Query()
	for query.Next() {
		p, intent, bot := query.Get()
		if !p.Snake.IsAlive() {
			*intent = components.Intent{}
			continue
		}
		*intent = g.autopilot.Steer(p.Snake, bot, t)
	}
}

// tickSnakes advances every live snake by its intent and gathers the actor list.
func (g *Game) tickSnakes(dt float64) {
	g.actors = g.actors[:0]

	query := g.players.Query()
	for query.Next() {
		p, intent := query.Get()
		s := p.Snake
		g.actors = append(g.actors, actor{entity: query.Entity(), snake: s, id: p.ID, diedAt: p.DiedAt})
		if !s.IsAlive() {
			continue
		}

		burned, decayed := s.LengthBurned(), s.LengthDecayed()
		s.Tick(snake.Input{Direction: intent.Direction, Boost: intent.Boost}, dt)

		g.collector.RecordLengthLoss(s.LengthBurned()-burned, s.LengthDecayed()-decayed)
		if s.IsBoosting() {
			g.collector.RecordBoost(dt)
			g.lifetimeTracker.RecordBoost(p.ID, dt)
		}
		g.lifetimeTracker.UpdateLength(p.ID, s.Length(), s.LengthBurned(), s.LengthDecayed())
	}
}

// collectPellets feeds every live head, then tops the field back up.
func (g *Game) collectPellets() {
	for _, a := range g.actors {
		s := a.snake
		if !s.IsAlive() {
			continue
		}
		value, eaten := g.pellets.Collect(s.Position(), s.HeadRadius())
		if eaten == 0 {
			continue
		}
		s.Grow(value)
		s.AddValue(value)
		g.collector.RecordPickup(eaten, value)
		g.lifetimeTracker.RecordPickup(a.id, eaten, value)
	}
	g.pellets.Replenish()
}

// enforceBounds kills snakes that left the world and, when enabled, snakes
// whose head ran into another body.
func (g *Game) enforceBounds() {
	for i := range g.actors {
		if g.bounds.Enforce(g.actors[i].snake) {
			g.onDeath(&g.actors[i], causeBounds)
		}
	}

	if !g.cfg.World.HeadBodyCollisions {
		return
	}
	g.snakes = g.snakes[:0]
	for _, a := range g.actors {
		g.snakes = append(g.snakes, a.snake)
	}
	g.hits = systems.HeadBodyHits(g.snakes, g.hits[:0])
	for _, i := range g.hits {
		g.actors[i].snake.Kill()
		g.onDeath(&g.actors[i], causeCollision)
	}
}

// respawnDead replaces snakes that have been dead for the respawn delay.
func (g *Game) respawnDead() {
	now := g.SimTime()
	for _, a := range g.actors {
		if a.snake.IsAlive() || now-a.diedAt < g.cfg.Autopilot.RespawnDelay {
			continue
		}
		g.respawn(a.entity)
	}
}
