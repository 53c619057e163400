package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/telemetry"
	"github.com/pthm-cable/slither/vmath"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, bots int) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{
		Config:         cfg,
		Seed:           1,
		Headless:       true,
		StepsPerUpdate: 1,
		Bots:           bots,
	})
	t.Cleanup(g.Unload)
	return g
}

func playerEntities(g *Game) []ecs.Entity {
	var out []ecs.Entity
	query := g.players.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// ---------- Setup ----------

func TestNewGame_SpawnsBotsAndPellets(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, 4)

	if n := len(playerEntities(g)); n != 4 {
		t.Errorf("expected 4 players, got %d", n)
	}
	if g.Pellets().Count() != cfg.Pellets.TargetCount {
		t.Errorf("expected %d pellets, got %d", cfg.Pellets.TargetCount, g.Pellets().Count())
	}
	if g.hasHuman {
		t.Error("headless game should have no human player")
	}

	for _, e := range playerEntities(g) {
		p := g.playerMap.Get(e)
		if !g.bounds.Contains(p.Snake.Position()) {
			t.Errorf("snake %d spawned outside the world at %v", p.ID, p.Snake.Position())
		}
	}
}

// ---------- Simulation ----------

func TestUpdateHeadless_FlushesStatsWindows(t *testing.T) {
	cfg := testConfig(t)
	var windows []telemetry.WindowStats
	g := NewGameWithOptions(Options{
		Config:         cfg,
		Seed:           2,
		Headless:       true,
		StepsPerUpdate: 60,
		Bots:           3,
		StatsWindowSec: 2,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	defer g.Unload()

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 600 {
		t.Fatalf("expected tick 600, got %d", g.Tick())
	}
	if len(windows) != 5 {
		t.Fatalf("expected 5 stats windows, got %d", len(windows))
	}
	for _, w := range windows {
		if w.Alive+w.Deaths < 1 || w.Alive > 3 {
			t.Errorf("implausible population in window %+v", w)
		}
		if w.Pellets <= 0 {
			t.Errorf("pellet field emptied: %+v", w)
		}
	}
}

func TestStep_PickupGrowsSnake(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pellets.TargetCount = 0
	g := newHeadless(t, cfg, 1)

	e := playerEntities(g)[0]
	p := g.playerMap.Get(e)
	p.Snake = snake.New(cfg.Snake, vmath.V(3000, 3000), 0)
	g.lifetimeTracker.Register(p.ID, p.Name, g.tick, p.Snake.Length())

	g.Pellets().Spawn(3000, 3000, 3, cfg.Pellets.Radius)
	g.step(cfg.Physics.DT)

	s := g.playerMap.Get(e).Snake
	if math.Abs(s.Length()-(cfg.Snake.InitialLength+3)) > 1e-9 {
		t.Errorf("length = %v, want %v", s.Length(), cfg.Snake.InitialLength+3)
	}
	if s.Value() != 3 {
		t.Errorf("value = %v, want 3", s.Value())
	}
	if g.Pellets().Count() != 0 {
		t.Errorf("pellet should be consumed, %d left", g.Pellets().Count())
	}
	if r := g.lifetimeTracker.Get(p.ID); r == nil || r.PelletsEaten != 1 {
		t.Errorf("lifetime pickup not recorded: %+v", r)
	}
}

func TestStep_BoundsDeathAndRespawn(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pellets.TargetCount = 0
	g := newHeadless(t, cfg, 1)

	e := playerEntities(g)[0]
	p := g.playerMap.Get(e)
	oldID := p.ID
	// Heading west one unit from the wall: the first step leaves the world.
	p.Snake = snake.New(cfg.Snake, vmath.V(1, 3000), math.Pi)

	g.step(cfg.Physics.DT)

	p = g.playerMap.Get(e)
	if p.Snake.IsAlive() {
		t.Fatalf("snake should have died at the wall, head at %v", p.Snake.Position())
	}
	if g.lifetimeTracker.Count() != 0 {
		t.Error("lifetime should be finished on death")
	}
	if g.Pellets().Count() == 0 {
		t.Error("death should scatter pellets over the body")
	}
	if g.Pellets().Count() > cfg.Pellets.DeathDropMax {
		t.Errorf("dropped %d pellets, cap is %d", g.Pellets().Count(), cfg.Pellets.DeathDropMax)
	}

	delay := int(math.Ceil(cfg.Autopilot.RespawnDelay/cfg.Physics.DT)) + 1
	for i := 0; i < delay; i++ {
		g.step(cfg.Physics.DT)
	}

	p = g.playerMap.Get(e)
	if !p.Snake.IsAlive() {
		t.Fatal("snake should have respawned")
	}
	if p.ID == oldID {
		t.Error("respawned snake should get a new id")
	}
	if p.DiedAt != 0 {
		t.Errorf("DiedAt should reset, got %v", p.DiedAt)
	}
	if g.lifetimeTracker.Get(p.ID) == nil {
		t.Error("respawned snake should be tracked")
	}
}

func TestStep_HeadBodyCollisionsOptional(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		cfg := testConfig(t)
		cfg.Pellets.TargetCount = 0
		cfg.World.HeadBodyCollisions = enabled
		g := newHeadless(t, cfg, 2)

		es := playerEntities(g)
		a, b := g.playerMap.Get(es[0]), g.playerMap.Get(es[1])
		// b's head sits on a's body, pointing away from a's head.
		a.Snake = snake.New(cfg.Snake, vmath.V(3000, 3000), 0)
		b.Snake = snake.New(cfg.Snake, vmath.V(2982, 3000), math.Pi/2)

		g.step(cfg.Physics.DT)

		b = g.playerMap.Get(es[1])
		if b.Snake.IsAlive() == enabled {
			t.Errorf("head-body collisions %v: b alive = %v", enabled, b.Snake.IsAlive())
		}
		if !g.playerMap.Get(es[0]).Snake.IsAlive() {
			t.Errorf("head-body collisions %v: a should survive", enabled)
		}
	}
}

// ---------- Output ----------

func TestOutputDir_WritesStatsAndConfig(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "out")
	g := NewGameWithOptions(Options{
		Config:         cfg,
		Seed:           3,
		Headless:       true,
		StepsPerUpdate: 120,
		Bots:           2,
		StatsWindowSec: 1,
		OutputDir:      dir,
	})
	g.UpdateHeadless()
	g.Unload()

	for _, name := range []string{telemetry.StatsFile, telemetry.PerfFile, telemetry.ConfigFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
