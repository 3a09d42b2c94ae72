package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fundledger/internal/adapter/memstore"
	"fundledger/internal/adapter/repo"
	"fundledger/internal/domain"
	"fundledger/internal/http/handlers"
	httpapi "fundledger/internal/http/httpapi"
	"fundledger/internal/infra"
	"fundledger/internal/ledger"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	var store domain.Transactor
	switch cfg.StorageDriver {
	case infra.StorageDriverMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		store = memstore.New()
	default:
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		store = repo.NewStore(infra.NewSQLRunner(dbpool, logger))
	}

	svc := ledger.NewService(store, logger)
	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("storage", cfg.StorageDriver).Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
