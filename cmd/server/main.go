package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medisys/hospital-api/internal/api"
	"github.com/medisys/hospital-api/internal/infrastructure/config"
	mongodb "github.com/medisys/hospital-api/internal/infrastructure/db/mongo"
	redisdb "github.com/medisys/hospital-api/internal/infrastructure/db/redis"
	"github.com/medisys/hospital-api/pkg/logger"
)

// @title        Hospital Management API
// @version      1.0
// @description  Role-based hospital management REST API for admins, doctors, patients, and receptionists.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAppointmentRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewPrescriptionRepository(db).EnsureIndexes(ctx)
}
