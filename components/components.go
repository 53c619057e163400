// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// Player attaches a snake to an entity. The snake owns its own state; the
// component only carries identity and lifecycle bookkeeping.
type Player struct {
	Snake  *snake.Snake
	ID     uint32
	Name   string
	BornAt float64 // sim seconds
	DiedAt float64 // sim seconds, valid once Snake is dead
}

// Intent is the control signal polled by the snake each tick.
type Intent struct {
	Direction vmath.Vec2
	Boost     bool
}

// Bot marks an autopilot-driven player.
type Bot struct {
	NoiseOffset float64 // decorrelates wander between bots
	Target      vmath.Vec2
	HasTarget   bool
}

// Pellet is a pickup. Value is added to both length and value when eaten.
type Pellet struct {
	Value  float64
	Radius float64
}
