package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/TTPzZ/hermit-home/config"
	"github.com/TTPzZ/hermit-home/controllers"
	"github.com/TTPzZ/hermit-home/database"
	"github.com/TTPzZ/hermit-home/routes"
	"github.com/TTPzZ/hermit-home/store"
	"github.com/TTPzZ/hermit-home/ws"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	logger.Info().Str("database", cfg.Database).Msg("MongoDB connected")

	db := client.Database(cfg.Database)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}

	st := store.NewMongoStore(db)
	hub := ws.NewHub(logger, cfg.AllowedOrigins...)

	router := gin.Default()
	routes.InitRoutes(router, routes.Deps{
		Readings:   controllers.NewReadingController(st, hub, logger),
		Thresholds: controllers.NewThresholdController(st, logger),
		Control:    controllers.NewControlController(st, logger),
		Auth:       controllers.NewAuthController(st, []byte(cfg.JWTSecret), logger),
		Hub:        hub,
		JWTSecret:  []byte(cfg.JWTSecret),
	})

	corsOrigins := cfg.AllowedOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}
	logger.Info().Msg("stopped")
}
