package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/keyforge-games/keyforge/internal/buildinfo"
	"github.com/keyforge-games/keyforge/internal/cache"
	"github.com/keyforge-games/keyforge/internal/config"
	"github.com/keyforge-games/keyforge/internal/database"
	leaderboardDb "github.com/keyforge-games/keyforge/internal/database/leaderboard/database"
	scoreDb "github.com/keyforge-games/keyforge/internal/database/score/database"
	userDb "github.com/keyforge-games/keyforge/internal/database/user/database"
	"github.com/keyforge-games/keyforge/internal/dictionary"
	"github.com/keyforge-games/keyforge/internal/gateway"
	"github.com/keyforge-games/keyforge/internal/identity"
	"github.com/keyforge-games/keyforge/internal/logging"
	"github.com/keyforge-games/keyforge/internal/persist"
	"github.com/keyforge-games/keyforge/internal/room"
	"github.com/keyforge-games/keyforge/internal/roomstore"
	"github.com/keyforge-games/keyforge/internal/server"
	"github.com/keyforge-games/keyforge/internal/shutdown"
	"github.com/keyforge-games/keyforge/internal/textsource"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

var version string

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, version, buildinfo.GithubURL)

	ctx, done := shutdown.New()
	defer done()

	cfg := config.Config{}
	if err := envconfig.Process("", &cfg); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(cfg.Debug)

	if err := realMain(ctx, cfg, done); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, cfg config.Config, done func()) error {
	logger := logging.FromContext(ctx).Named("main.realMain")

	db, err := database.NewFromEnv(ctx, &cfg.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}

	defer db.Close(ctx)

	userCache, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	scoreCache, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	dict := dictionary.NewService(cfg.DictionaryURL, cfg.DictionaryTTL)
	go func() {
		// Warm the word list so the first test doesn't pay for the fetch.
		if err := dict.Load(ctx); err != nil {
			logger.Warnf("dictionary warm-up: %v", err)
		}
	}()

	store, err := roomstore.New(ctx, db)
	if err != nil {
		return fmt.Errorf("roomstore.New: %w", err)
	}

	persister := persist.New(scoreDb.New(db, scoreCache), userDb.New(db, userCache), leaderboardDb.New(db))
	rooms := room.NewCoordinator(store, cfg.CountdownTicks)
	gw := gateway.New(&cfg, textsource.New(dict), dict, rooms, persister, identity.StaticProvider{})

	srv, err := server.New(cfg.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return srv.ServeHTTP(ctx, &http.Server{Handler: gw.Router(ctx)})
	})

	group.Go(func() error {
		profSrv, err := server.New(cfg.ProfPort)
		if err != nil {
			return fmt.Errorf("pprof server.New: %w", err)
		}
		return profSrv.ServeHTTP(ctx, &http.Server{Handler: http.DefaultServeMux})
	})

	if err := group.Wait(); err != nil {
		done()
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
