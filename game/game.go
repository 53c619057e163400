// Package game wires the snake core to its collaborators: the ECS world,
// pellets, bot autopilot, bounds, camera, rendering and telemetry.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/camera"
	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/inspector"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/systems"
	"github.com/pthm-cable/slither/telemetry"
	"github.com/pthm-cable/slither/ui"
	"github.com/pthm-cable/slither/vmath"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Bots           int // < 0 uses the configured bot count
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world       *ecs.World
	botMapper   *ecs.Map3[components.Player, components.Intent, components.Bot]
	humanMapper *ecs.Map2[components.Player, components.Intent]
	playerMap   *ecs.Map1[components.Player]
	intentMap   *ecs.Map1[components.Intent]
	players     *ecs.Filter2[components.Player, components.Intent]
	bots        *ecs.Filter3[components.Player, components.Intent, components.Bot]

	pellets   *systems.PelletField
	autopilot *systems.Autopilot
	bounds    systems.Bounds

	pelletFilter *ecs.Filter2[components.Position, components.Pellet]

	// Scratch buffers reused every tick
	actors []actor
	snakes []*snake.Snake
	hits   []int
	points []vmath.Vec2
	snap   snake.Snapshot

	// Human player (graphical mode only)
	human    ecs.Entity
	hasHuman bool

	// Telemetry
	collector       *telemetry.Collector
	perfCollector   *telemetry.PerfCollector
	lifetimeTracker *telemetry.LifetimeTracker
	outputManager   *telemetry.OutputManager
	statsCallback   func(telemetry.WindowStats)
	logStats        bool

	// Rendering (nil when headless)
	camera    *camera.Camera
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *inspector.Inspector
	targets   []inspector.Target
	zoomBias  float32
	showPerf  bool

	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	nextID         uint32
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:   cfg,
		rng:   rng,
		seed:  opts.Seed,
		world: world,

		botMapper:   ecs.NewMap3[components.Player, components.Intent, components.Bot](world),
		humanMapper: ecs.NewMap2[components.Player, components.Intent](world),
		playerMap:   ecs.NewMap1[components.Player](world),
		intentMap:   ecs.NewMap1[components.Intent](world),
		players:     ecs.NewFilter2[components.Player, components.Intent](world),
		bots:        ecs.NewFilter3[components.Player, components.Intent, components.Bot](world),

		pelletFilter: ecs.NewFilter2[components.Position, components.Pellet](world),

		bounds: systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},

		collector:       telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		statsCallback:   opts.StatsCallback,
		logStats:        opts.LogStats,

		headless:       opts.Headless,
		stepsPerUpdate: steps,
		zoomBias:       1,
	}

	g.pellets = systems.NewPelletField(world, cfg.Pellets, cfg.World.Width, cfg.World.Height, rng)
	noise := systems.NewWanderNoise(opts.Seed, cfg.Autopilot.WanderScale)
	g.autopilot = systems.NewAutopilot(cfg.Autopilot, cfg.World.Width, cfg.World.Height, noise, g.pellets)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.pellets.Fill()

	bots := opts.Bots
	if bots < 0 {
		bots = cfg.Autopilot.Bots
	}
	for i := 0; i < bots; i++ {
		g.spawnBot()
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("game started",
		"seed", opts.Seed,
		"bots", bots,
		"pellets", g.pellets.Count(),
		"world_w", cfg.World.Width,
		"world_h", cfg.World.Height,
	)
	return g
}

// UpdateHeadless runs StepsPerUpdate simulation ticks without rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.cfg.Physics.DT)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns simulated seconds since start.
func (g *Game) SimTime() float64 {
	return float64(g.tick) * g.cfg.Physics.DT
}

// Pellets returns the pellet field.
func (g *Game) Pellets() *systems.PelletField {
	return g.pellets
}

// Unload flushes and closes output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
