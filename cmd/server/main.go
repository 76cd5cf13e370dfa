package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	goalladder "github.com/Ashenafi-pixel/goal-ladder"
	"github.com/Ashenafi-pixel/goal-ladder/config"
	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
	"github.com/Ashenafi-pixel/goal-ladder/logger"
	"github.com/Ashenafi-pixel/goal-ladder/round"
	"github.com/Ashenafi-pixel/goal-ladder/server"
)

func main() {
	// Load .env so DATABASE_URL is set: cwd .env or project root .env/.env.local
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../.env.local")

	if err := run(config.Load()); err != nil {
		fmt.Fprintf(os.Stderr, "goal-ladder: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer lg.Sync()

	db, err := goalladder.GetDB()
	if err != nil {
		lg.Warn("database unavailable, running file-only", zap.Error(err))
		db = nil
	}

	catalog := games.DefaultCatalog()
	if cfg.CatalogFile != "" {
		if err := catalog.LoadFile(cfg.CatalogFile); err != nil {
			return fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
		}
	}
	if db != nil {
		if err := catalog.LoadFromDB(); err != nil {
			lg.Warn("load catalog from db", zap.Error(err))
		}
	}

	ladders := gamemath.NewStore(cfg.DataDir)
	if cfg.LadderFile != "" {
		l, err := gamemath.LoadFile(cfg.LadderFile)
		if err != nil {
			return err
		}
		if err := ladders.Register(l); err != nil {
			return fmt.Errorf("register ladder %s: %w", l.ModelID, err)
		}
		lg.Info("ladder registered", zap.String("model_id", l.ModelID), zap.Int("columns", len(l.Thresholds)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := round.NewResultsStore(cfg.DataDir, db, lg.Named("results"))
	if err := results.EnsureSchema(ctx); err != nil {
		lg.Warn("result mirror disabled", zap.Error(err))
		results = round.NewResultsStore(cfg.DataDir, nil, lg.Named("results"))
	}

	srv := server.New(cfg, catalog, ladders, results, lg)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	lg.Info("ladder stopped")
	return nil
}
