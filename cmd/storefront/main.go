package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"time"

	"os/signal"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NandakishoreN09/Grabit/internal/cart"
	"github.com/NandakishoreN09/Grabit/internal/checkout"
	"github.com/NandakishoreN09/Grabit/internal/config"
	"github.com/NandakishoreN09/Grabit/internal/db"
	"github.com/NandakishoreN09/Grabit/internal/events"
	"github.com/NandakishoreN09/Grabit/internal/feed"
	httpserver "github.com/NandakishoreN09/Grabit/internal/http"
	"github.com/NandakishoreN09/Grabit/internal/menu"
	"github.com/NandakishoreN09/Grabit/internal/order"
	"github.com/NandakishoreN09/Grabit/internal/sequence"
	"github.com/NandakishoreN09/Grabit/internal/user"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	database := db.MustOpen(cfg.DatabaseDSN, logger)
	defer database.Close()

	menuRepo := menu.NewRepository(database)
	orderRepo := order.NewRepository(database)
	userRepo := user.NewRepository(database)
	adminRepo := user.NewAdminRepository(database)
	seqRepo := sequence.NewRepository(database)

	// Catch the counter up with any orders created before it existed.
	syncCtx, syncCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seqRepo.SyncWithOrders(syncCtx); err != nil {
		logger.Fatal().Err(err).Msg("sync order sequence")
	}
	syncCancel()

	var mirror cart.Mirror
	if cfg.RedisAddr != "" {
		mirror = cart.NewRedisMirror(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, carts will not survive restarts")
		mirror = cart.NewMemoryMirror()
	}
	cartStore := cart.NewStore(mirror, logger)

	rabbitConn := events.MustDialRabbit(cfg.RabbitURL, logger)
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn)
	if err != nil {
		logger.Fatal().Err(err).Msg("create event publisher")
	}

	hub := feed.NewHub()
	orderFeed := feed.NewOrderFeed(orderRepo, hub)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := events.StartOrderStatusConsumer(ctx, rabbitConn, hub, logger); err != nil {
		logger.Fatal().Err(err).Msg("start order status consumer")
	}

	checkoutSvc := checkout.NewService(cartStore, orderRepo, seqRepo, userRepo, publisher, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Menu:             httpserver.NewMenuHandler(menuRepo),
		Cart:             httpserver.NewCartHandler(cartStore, menuRepo, checkoutSvc),
		Orders:           httpserver.NewOrderHandler(orderRepo, orderFeed),
		Admin:            httpserver.NewAdminHandler(orderRepo, orderFeed, publisher, logger),
		Profile:          httpserver.NewProfileHandler(userRepo),
		Admins:           adminRepo,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: SSE streams stay open until the client leaves.
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		logger.Fatal().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := publisher.Close(); err != nil {
		logger.Error().Err(err).Msg("publisher close error")
	}
}
