package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sourcegraph/conc"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/anguiley99-beep/prediction-foot-africa/internal/config"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/match"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/prediction"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/domain/user"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/infrastructure/repository/memory"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/infrastructure/repository/postgres"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/interfaces/httpapi"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/cache"
	idgen "github.com/anguiley99-beep/prediction-foot-africa/internal/platform/id"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/logging"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/platform/notify"
	"github.com/anguiley99-beep/prediction-foot-africa/internal/usecase"
)

// App owns the HTTP server plus everything that has to be torn down with it:
// the storage connection and the background leaderboard watcher.
type App struct {
	Server *http.Server

	db          *sqlx.DB
	unsubscribe func()
	stopWatch   context.CancelFunc
	workers     *conc.WaitGroup
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	hub := notify.NewHub()

	var (
		db             *sqlx.DB
		userRepo       user.Repository
		matchRepo      match.Repository
		predictionRepo prediction.Repository
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		opened, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened

		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed data: %w", err)
			}
		}

		userRepo = postgres.NewUserRepository(db)
		matchRepo = postgres.NewMatchRepository(db, hub)
		predictionRepo = postgres.NewPredictionRepository(db, hub)
	case config.StorageDriverMemory:
		var (
			users   []user.User
			matches []match.Match
		)
		if cfg.SeedDemoData {
			users = memory.SeedUsers()
			matches = memory.SeedMatches()
		}
		userRepo = memory.NewUserRepository(users)
		matchRepo = memory.NewMatchRepository(matches, hub)
		predictionRepo = memory.NewPredictionRepository(hub)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	matchSvc := usecase.NewMatchService(matchRepo, predictionRepo, idgen.NewRandomGenerator(), logger)
	predictionSvc := usecase.NewPredictionService(matchRepo, predictionRepo, logger)
	leaderboardSvc := usecase.NewLeaderboardService(userRepo, matchRepo, predictionRepo, store, logger)

	handler := httpapi.NewHandler(matchSvc, predictionSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	// Every repository write publishes a change event; one watcher folds
	// them into leaderboard recomputes for the lifetime of the app.
	events, unsubscribe := hub.Subscribe(cfg.NotifyBuffer)
	watchCtx, stopWatch := context.WithCancel(context.Background())

	workers := conc.NewWaitGroup()
	workers.Go(func() {
		leaderboardSvc.Watch(watchCtx, events)
	})

	return &App{
		Server:      server,
		db:          db,
		unsubscribe: unsubscribe,
		stopWatch:   stopWatch,
		workers:     workers,
	}, nil
}

// Close stops the leaderboard watcher and releases the storage connection.
// Shutting down the HTTP server itself is the caller's job.
func (a *App) Close() error {
	a.unsubscribe()
	a.stopWatch()
	a.workers.Wait()

	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
