package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mirewood/sim/internal/ai"
	"github.com/mirewood/sim/internal/config"
	"github.com/mirewood/sim/internal/core/event"
	coresys "github.com/mirewood/sim/internal/core/system"
	"github.com/mirewood/sim/internal/data"
	"github.com/mirewood/sim/internal/persist"
	"github.com/mirewood/sim/internal/scripting"
	"github.com/mirewood/sim/internal/system"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            mirewood  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      turn-based creature simulation       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config.toml"
	if p := os.Getenv("MIREWOOD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load data tables
	printSection("data")

	speciesTable, err := data.LoadSpeciesTable(filepath.Join(cfg.Sim.DataDir, "species.yaml"))
	if err != nil {
		return fmt.Errorf("load species table: %w", err)
	}
	printStat("species", speciesTable.Count())

	spawnList, err := data.LoadSpawnList(filepath.Join(cfg.Sim.DataDir, "spawns.yaml"))
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}

	mapTable, err := data.LoadMapTable(filepath.Join(cfg.Sim.DataDir, "maps.yaml"), cfg.Sim.DataDir)
	if err != nil {
		return fmt.Errorf("load map table: %w", err)
	}
	printStat("maps", mapTable.Count())

	mapData := mapTable.Get(cfg.Sim.MapID)
	if mapData == nil {
		return fmt.Errorf("map %d not in map table", cfg.Sim.MapID)
	}

	// 4. Build the world and spawn creatures
	st := world.NewState(buildGrid(mapData), cfg.Sim.Seed)
	bus := event.NewBus()

	spawned := spawnCreatures(st, bus, speciesTable, spawnList, log)
	printStat("creatures", spawned)

	var player *world.Creature
	if cfg.Player.Enabled {
		player, err = spawnPlayer(st, bus, speciesTable, cfg.Player)
		if err != nil {
			return fmt.Errorf("spawn player: %w", err)
		}
		printStat("player", 1)
	}

	// 5. Init Lua formula engine
	luaEngine, err := scripting.NewEngine(cfg.Sim.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua formulas loaded")

	// 6. Open the run recorder
	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	var recorder *persist.Recorder
	if cfg.Recorder.Enabled {
		db, err := persist.Open(cfg.Recorder.Path)
		if err != nil {
			return fmt.Errorf("recorder db: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(startCtx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		recorder, err = persist.NewRecorder(startCtx, db, cfg.Sim.Seed, cfg.Sim.MapID, st.Len())
		if err != nil {
			return fmt.Errorf("recorder: %w", err)
		}
		printOK(fmt.Sprintf("recording run %s", recorder.RunID()))
	}
	fmt.Println()

	// 7. Create systems and register with runner
	deps := &system.Deps{
		World:     st,
		Bus:       bus,
		Scripting: luaEngine,
		Recorder:  recorder,
		Log:       log,
	}

	inputSys := system.NewInputSystem(deps)
	turnSys := system.NewTurnSystem(deps, inputSys)

	if err := attachPolicies(turnSys, st, speciesTable); err != nil {
		return err
	}
	if player != nil {
		if err := bindPlayerInput(inputSys, player, cfg.Player); err != nil {
			return err
		}
	}

	runner := coresys.NewRunner()
	runner.Register(inputSys)
	runner.Register(turnSys)
	runner.Register(system.NewRecorderSystem(deps))
	runner.Register(system.NewCleanupSystem(deps, turnSys.Forget))

	// 8. Run the turn loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TurnInterval)
	defer ticker.Stop()

	printSection("simulation")
	printReady(fmt.Sprintf("map %d (%s), %dx%d",
		mapData.Info.MapID, mapData.Info.Name, mapData.Info.Width, mapData.Info.Height))
	printReady(fmt.Sprintf("turn loop started (interval: %s, max turns: %d)",
		cfg.Sim.TurnInterval, cfg.Sim.MaxTurns))
	fmt.Println()

loop:
	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Sim.TurnInterval)
			if st.Turn > cfg.Sim.MaxTurns {
				log.Info("max turns reached", zap.Int("turns", cfg.Sim.MaxTurns))
				break loop
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			break loop
		}
	}

	// 9. Finalize
	turnsRun := st.Turn - 1
	if recorder != nil {
		finCtx, finCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer finCancel()
		if err := recorder.Finish(finCtx, turnsRun, st.Len()); err != nil {
			log.Error("finish run", zap.Error(err))
		}
		if n, err := recorder.EventCount(finCtx); err == nil {
			log.Info("run recorded",
				zap.String("run_id", recorder.RunID()),
				zap.String("events", humanize.Comma(int64(n))),
			)
		}
	}
	log.Info("simulation stopped",
		zap.Int("turns", turnsRun),
		zap.Int("creatures_left", st.Len()),
	)
	return nil
}

// buildGrid converts loaded tile data into a live grid. Map files use the
// same kind numbering as world.TileKind.
func buildGrid(m *data.MapData) *world.Grid {
	g := world.NewGrid(m.Info.Width, m.Info.Height)
	for x := 0; x < m.Info.Width; x++ {
		for y := 0; y < m.Info.Height; y++ {
			g.SetKind(x, y, world.TileKind(m.KindAt(x, y)))
		}
	}
	return g
}

// newCreature builds a live creature from its species template.
func newCreature(tmpl *data.Species, x, y int) *world.Creature {
	return &world.Creature{
		ID:             world.NextCreatureID(),
		Species:        tmpl.ID,
		Name:           tmpl.Name,
		Glyph:          tmpl.Glyph,
		Faction:        tmpl.Faction,
		X:              x,
		Y:              y,
		HP:             tmpl.HP,
		MaxHP:          tmpl.HP,
		Power:          tmpl.Power,
		Defense:        tmpl.Defense,
		BlocksMovement: tmpl.BlocksMovement,
		InputDriven:    tmpl.Policy == "input",
	}
}

// spawnCreatures places all spawn list entries and emits spawn events.
// When the listed cell is taken, the extra creature is scattered to a
// random walkable cell instead.
func spawnCreatures(st *world.State, bus *event.Bus, species *data.SpeciesTable, spawns []data.SpawnEntry, log *zap.Logger) int {
	total := 0
	for _, spawn := range spawns {
		tmpl := species.Get(spawn.Species)
		if tmpl == nil {
			log.Warn("spawn: unknown species", zap.String("species", spawn.Species))
			continue
		}
		count := spawn.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			x, y := spawn.X, spawn.Y
			if !st.Grid.Walkable(x, y) || st.BlockedAt(x, y, 0) {
				cell, ok := st.RandomWalkableCellExcept(x, y)
				if !ok {
					log.Warn("spawn: no free cell", zap.String("species", spawn.Species))
					continue
				}
				x, y = cell.X, cell.Y
			}
			c := newCreature(tmpl, x, y)
			st.Place(c)
			event.Emit(bus, event.CreatureSpawned{
				Turn:       st.Turn,
				CreatureID: c.ID,
				Species:    c.Species,
				X:          c.X,
				Y:          c.Y,
			})
			total++
		}
	}
	return total
}

// spawnPlayer places the input-driven creature at its configured cell.
func spawnPlayer(st *world.State, bus *event.Bus, species *data.SpeciesTable, cfg config.PlayerConfig) (*world.Creature, error) {
	tmpl := species.Get(cfg.Species)
	if tmpl == nil {
		return nil, fmt.Errorf("species %q not in species table", cfg.Species)
	}
	if !st.Grid.Walkable(cfg.X, cfg.Y) {
		return nil, fmt.Errorf("start cell (%d,%d) not walkable", cfg.X, cfg.Y)
	}
	c := newCreature(tmpl, cfg.X, cfg.Y)
	c.InputDriven = true
	st.Place(c)
	event.Emit(bus, event.CreatureSpawned{
		Turn:       st.Turn,
		CreatureID: c.ID,
		Species:    c.Species,
		X:          c.X,
		Y:          c.Y,
	})
	return c, nil
}

// attachPolicies binds every non-input creature to its species policy.
func attachPolicies(turnSys *system.TurnSystem, st *world.State, species *data.SpeciesTable) error {
	for _, c := range st.All() {
		if c.InputDriven {
			continue
		}
		tmpl := species.Get(c.Species)
		if tmpl == nil {
			return fmt.Errorf("species %q missing for creature %d", c.Species, c.ID)
		}
		p, err := ai.New(tmpl.Policy, st)
		if err != nil {
			return fmt.Errorf("creature %d: %w", c.ID, err)
		}
		turnSys.Attach(c.ID, p)
	}
	return nil
}

// bindPlayerInput feeds the player creature from its configured script, or
// a stand-still source when no script is given.
func bindPlayerInput(inputSys *system.InputSystem, player *world.Creature, cfg config.PlayerConfig) error {
	if len(cfg.Script) == 0 {
		inputSys.Bind(player.ID, system.StandStill{})
		return nil
	}
	actions, err := system.ParseScript(cfg.Script)
	if err != nil {
		return fmt.Errorf("player script: %w", err)
	}
	inputSys.Bind(player.ID, system.NewQueueSource(actions))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
