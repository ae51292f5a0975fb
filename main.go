package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hashhunt/pkg/engine/input"
	"hashhunt/pkg/engine/terminal"
	"hashhunt/pkg/game/config"
	"hashhunt/pkg/game/devtools"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/logging"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/renderer"
	ebitenrenderer "hashhunt/pkg/game/renderer/ebiten"
	"hashhunt/pkg/game/renderer/tui"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
)

func main() {
	configPath := flag.String("config", "hashhunt.yaml", "settings file (missing file uses defaults)")
	rendererName := flag.String("renderer", "", "tui or ebiten (overrides the settings file)")
	seed := flag.Int64("seed", 0, "terrain seed, 0 for a random world (for developer testing)")
	storagePath := flag.String("storage", "", "progress file (overrides the settings file)")
	memory := flag.Bool("memory", false, "keep progress in memory only")
	reset := flag.Bool("reset", false, "wipe saved progress before starting")
	dumpMap := flag.String("dump-map", "", "write the map to this file and exit")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the settings file)")
	writeConfig := flag.Bool("write-config", false, "write the effective settings to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashhunt: %v\n", err)
		os.Exit(1)
	}
	if *rendererName != "" {
		cfg.Renderer = *rendererName
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}
	if *memory {
		cfg.Storage.Path = ""
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "hashhunt: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "hashhunt: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(*configPath)
		return
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashhunt: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, *reset, *dumpMap); err != nil {
		log.Error("game stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "hashhunt: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger, reset bool, dumpPath string) error {
	if err := input.ApplyBindings(cfg.Keys); err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}
	if err := i18n.Load(cfg.Language); err != nil {
		log.Warn("language not available, using default", zap.String("language", cfg.Language), zap.Error(err))
	}

	store := openStorage(cfg.Storage, log)
	unsubscribe := store.Subscribe(func(c storage.Change) {
		log.Debug("progress saved", zap.String("field", string(c.Field)))
	})
	defer unsubscribe()

	if reset {
		store.ClearAll()
		log.Info("progress wiped")
	}

	policy, err := leveling.NewPolicy(cfg.Leveling.Policy, cfg.Leveling.BucketSize, cfg.Leveling.Growth)
	if err != nil {
		return err
	}

	g, seed := gameplay.BuildGame(cfg.World.Seed, store, policy)
	if err := g.Zones.Validate(g.Terrain.Size()); err != nil {
		return fmt.Errorf("zone registry: %w", err)
	}
	log.Info("game started",
		zap.Int64("seed", seed),
		zap.String("renderer", cfg.Renderer),
		zap.String("policy", policy.Name()),
		zap.Bool("returning", g.Character != nil))

	if dumpPath != "" {
		path, err := devtools.DumpMap(g, dumpPath)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	svc := missions.NewService(missions.Options{
		Client:     missions.NewSimulator(),
		Wallet:     missions.StaticWallet{Addr: cfg.Wallet.Address, Chain: cfg.Wallet.ChainID},
		Store:      store,
		Policy:     policy,
		Rewards:    rewards(cfg.Missions.Rewards),
		Logger:     log,
		ShareTicks: cfg.Missions.ShareTicks,
		ShareTick:  cfg.Missions.ShareTick,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	snapshots := store.Watch(ctx, cfg.Storage.SyncInterval)

	switch cfg.Renderer {
	case config.RendererEbiten:
		r := ebitenrenderer.New(ebitenrenderer.Options{
			Service:     svc,
			Params:      gameplay.DefaultParams(),
			Snapshots:   snapshots,
			Logger:      log,
			CellSize:    cfg.World.CellSize,
			ViewportMax: cfg.World.ViewportMax,
			Timeout:     cfg.Missions.Timeout,
		})
		renderer.SetRenderer(r)
		r.Init()
		if err := r.Run(g); err != nil {
			return err
		}
	default:
		if err := runTUI(ctx, cfg, log, g, svc, snapshots); err != nil {
			return err
		}
	}

	log.Info("game closed", zap.Int("zones_visited", g.Visited.Len()))
	fmt.Println(renderer.FormatText("%s", i18n.T("GOODBYE")))
	return nil
}

// openStorage returns the configured store, falling back to memory when the file cannot be used
func openStorage(cfg config.StorageConfig, log *zap.Logger) *storage.GameStorage {
	if cfg.Path == "" {
		return storage.New(storage.NewMemoryBackend(), cfg.KeyPrefix, log)
	}
	store := storage.New(storage.NewFileBackend(cfg.Path), cfg.KeyPrefix, log)
	if !store.IsAvailable() {
		log.Warn("progress file not writable, keeping progress in memory", zap.String("path", cfg.Path))
		return storage.New(storage.NewMemoryBackend(), cfg.KeyPrefix, log)
	}
	return store
}

func rewards(table map[string]int) missions.Rewards {
	r := missions.DefaultRewards()
	for k, v := range table {
		r[missions.Kind(k)] = v
	}
	return r
}

// runTUI is the terminal game loop. Input blocks, so changes from other sessions are picked up
// after each key press.
func runTUI(ctx context.Context, cfg config.Config, log *zap.Logger, g *state.Game, svc *missions.Service, snapshots <-chan storage.Snapshot) error {
	if !terminal.IsInteractive() {
		return errors.New("the terminal renderer needs an interactive terminal; try -renderer ebiten")
	}

	t := tui.New(cfg.World.ViewportMax)
	renderer.SetRenderer(t)
	t.Init()

	if g.Character == nil {
		t.Clear()
		t.RenderFrame(g)
		if err := t.PromptCharacter(g); err != nil {
			return fmt.Errorf("character creation: %w", err)
		}
		log.Info("character created", zap.String("name", g.Character.Name))
	}

	for !g.Quit {
		if ctx.Err() != nil {
			return nil
		}
		drainSnapshots(g, snapshots)

		t.Clear()
		t.RenderFrame(g)

		if g.Pending != nil {
			runPending(ctx, t, g, svc, cfg.Missions.Timeout, log)
			continue
		}
		gameplay.ProcessIntent(g, t.GetInput())
	}
	return nil
}

func drainSnapshots(g *state.Game, snapshots <-chan storage.Snapshot) {
	for {
		select {
		case s, ok := <-snapshots:
			if !ok {
				return
			}
			gameplay.ApplySnapshot(g, s)
		default:
			return
		}
	}
}

// runPending collects the parameters of the queued mission and runs it on a goroutine. The
// terminal keeps redrawing on countdown ticks; dismiss or quit cancels the mission.
func runPending(ctx context.Context, t *tui.TUIRenderer, g *state.Game, svc *missions.Service, timeout time.Duration, log *zap.Logger) {
	params, err := t.PromptParams(*g.Pending)
	if err != nil {
		g.Pending = nil
		return
	}

	req, c, ok := gameplay.BeginMission(g)
	if !ok {
		return
	}
	t.Clear()
	t.RenderFrame(g)

	runCtx := gameplay.MissionContext(ctx, g, req, timeout)
	ticks := make(chan int, 16)
	done := make(chan struct{})
	var out missions.Outcome
	go func() {
		defer close(done)
		out, err = gameplay.RunMission(runCtx, svc, c, req, params, func(remaining int) {
			select {
			case ticks <- remaining:
			default:
			}
		})
	}()
	t.WaitMission(g, ticks, done)
	gameplay.FinishMission(g, req, out, err)

	if err != nil {
		log.Warn("mission failed", zap.String("mission", gameplay.RequestName(req)), zap.Error(err))
		return
	}
	log.Info("mission complete",
		zap.String("kind", string(out.Kind)),
		zap.Int("exp", out.Exp),
		zap.Int("level", out.Character.Level))
}
