package main

import (
	"context"
	_ "embed"
	"log"
	"log/slog"
	"time"

	graphfile "galaxyassist/internal/adapter/graph/file"
	neo4jgraph "galaxyassist/internal/adapter/graph/neo4j"
	httpadapter "galaxyassist/internal/adapter/http"
	staticloot "galaxyassist/internal/adapter/loot/static"
	metricsinmem "galaxyassist/internal/adapter/metrics/inmemory"
	"galaxyassist/internal/adapter/mover/dryrun"
	"galaxyassist/internal/adapter/mover/gameclient"
	gormrepo "galaxyassist/internal/adapter/repo/gorm"
	"galaxyassist/internal/adapter/repo/memory"
	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/app/replay"
	"galaxyassist/internal/app/route"
	"galaxyassist/internal/app/target"
	"galaxyassist/internal/config"
	"galaxyassist/internal/domain/travel"
	"galaxyassist/internal/logging"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

//go:embed sample_network.yaml
var sampleNetwork []byte

func main() {
	// a missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	ctx := context.Background()
	db := mustOpenDB(ctx, cfg, logger)
	store := memory.NewStore()

	source, closeSource := mustBuildGraphSource(ctx, cfg, db, store, logger)
	defer closeSource()
	loot, err := buildLootTable(cfg, db)
	if err != nil {
		log.Fatalf("build loot table: %v", err)
	}
	runs, txManager := buildRunStore(db, store)
	mover, closeMover := mustBuildMover(ctx, cfg, logger)
	defer closeMover()

	graphs := route.NewCachedGraph(source, cfg.Graph.CacheTTL)
	if _, err := graphs.Graph(ctx); err != nil {
		log.Fatalf("load shuttle graph: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RouteUC: route.UseCase{
			Graphs:    graphs,
			Mover:     mover,
			Runs:      runs,
			TxManager: txManager,
			Metrics:   kpiRecorder,
			Logger:    logger,
			Now:       time.Now,
		},
		TargetUC: target.UseCase{
			Loot:    loot,
			Metrics: kpiRecorder,
			Rand:    grindRand(cfg.Grind),
		},
		ReplayUC: replay.UseCase{Runs: runs},
		Graphs:   graphs,
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.HTTP.Addr))
	h.RegisterRoutes(s)

	logger.Info("galaxyassist server listening", "addr", cfg.HTTP.Addr, "graph_source", string(cfg.Graph.Source))
	s.Spin()
}

func mustOpenDB(ctx context.Context, cfg config.Config, logger *slog.Logger) *gorm.DB {
	if cfg.DB.DSN == "" {
		return nil
	}
	db, err := gormrepo.OpenPostgres(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.DB.MigrationsDir)
	if err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", "versions", applied)
	}
	return db
}

func mustBuildGraphSource(ctx context.Context, cfg config.Config, db *gorm.DB, store *memory.Store, logger *slog.Logger) (ports.ShuttleGraphSource, func()) {
	noop := func() {}
	switch cfg.Graph.Source {
	case config.GraphSourcePostgres:
		repo := gormrepo.NewShuttleGraphRepo(db)
		if err := importGraphFile(ctx, cfg.Graph.File, repo.ReplaceStops, logger); err != nil {
			log.Fatalf("import shuttle graph: %v", err)
		}
		return repo, noop
	case config.GraphSourceNeo4j:
		client, err := neo4jgraph.NewClient(ctx, neo4jgraph.Options{
			URI:            cfg.Neo4j.URI,
			Database:       cfg.Neo4j.Database,
			Username:       cfg.Neo4j.Username,
			Password:       cfg.Neo4j.Password,
			MaxConnections: cfg.Neo4j.MaxConnections,
		})
		if err != nil {
			log.Fatalf("connect neo4j: %v", err)
		}
		src := neo4jgraph.Source{Client: client}
		if err := importGraphFile(ctx, cfg.Graph.File, src.ReplaceStops, logger); err != nil {
			log.Fatalf("import shuttle graph: %v", err)
		}
		return src, func() { _ = client.Close(context.Background()) }
	default:
		src, err := buildLocalGraphSource(cfg.Graph, store)
		if err != nil {
			log.Fatalf("build shuttle graph: %v", err)
		}
		return src, noop
	}
}

// buildLocalGraphSource covers the sources that need no external service.
func buildLocalGraphSource(cfg config.GraphConfig, store *memory.Store) (ports.ShuttleGraphSource, error) {
	if cfg.Source == config.GraphSourceFile {
		return graphfile.Source{Path: cfg.File}, nil
	}
	stops, err := graphfile.Parse(sampleNetwork)
	if err != nil {
		return nil, err
	}
	store.SeedStops(stops)
	return memory.NewShuttleGraph(store), nil
}

func importGraphFile(ctx context.Context, path string, replace func(context.Context, []travel.ShuttleStop) error, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	stops, err := graphfile.Source{Path: path}.LoadStops(ctx)
	if err != nil {
		return err
	}
	if err := replace(ctx, stops); err != nil {
		return err
	}
	logger.Info("shuttle graph imported", "file", path, "stops", len(stops))
	return nil
}

func buildLootTable(cfg config.Config, db *gorm.DB) (ports.LootTable, error) {
	if cfg.Grind.LootFile != "" {
		return staticloot.LoadFile(cfg.Grind.LootFile)
	}
	if db != nil {
		return gormrepo.NewLootTableRepo(db), nil
	}
	return staticloot.Default(), nil
}

func buildRunStore(db *gorm.DB, store *memory.Store) (ports.NavigationRunRepository, ports.TxManager) {
	if db != nil {
		return gormrepo.NewNavigationRunRepo(db), gormrepo.NewTxManager(db)
	}
	return memory.NewNavigationRunRepo(store), memory.NewTxManager(store)
}

func mustBuildMover(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Mover, func()) {
	if cfg.Game.WebsocketURL == "" {
		logger.Warn("GAME_WS_URL not set, movement is logged only")
		return dryrun.New(logger), func() {}
	}
	client, err := gameclient.Dial(ctx, cfg.Game.WebsocketURL, gameclient.Options{
		CommandTimeout: cfg.Game.CommandTimeout,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("connect game bridge: %v", err)
	}
	return client, func() { _ = client.Close() }
}

func grindRand(cfg config.GrindConfig) *target.LockedRand {
	if cfg.SeedSet {
		return target.NewLockedRand(cfg.Seed)
	}
	return target.NewLockedRand(time.Now().UnixNano())
}
