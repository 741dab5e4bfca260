package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skillswap/skillswap-api/internal/api"
	"github.com/skillswap/skillswap-api/internal/infrastructure/db/mongo"
	"github.com/skillswap/skillswap-api/internal/infrastructure/db/redis"
	"github.com/skillswap/skillswap-api/internal/infrastructure/notify"
	"github.com/skillswap/skillswap-api/internal/pkg/config"
	"github.com/skillswap/skillswap-api/pkg/logger"
)

// @title           SkillSwap API
// @version         1.0
// @description     Swap matching and lifecycle engine for one-to-one skill exchanges.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongo.NewSkillRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("skill indexes failed")
	}
	if err := mongo.NewSwapRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("swap indexes failed")
	}

	broadcaster := notify.NewBroadcaster(log)
	defer broadcaster.Close()

	// The skill-list cache refreshes itself from engine events.
	cacheEvents, cancelCacheSub := broadcaster.Subscribe()
	defer cancelCacheSub()
	skillCache := redis.NewSkillCache(rdb, log)
	go skillCache.InvalidateOn(ctx, cacheEvents)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Cache:     skillCache,
		Notifier:  broadcaster,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("skillswap api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
