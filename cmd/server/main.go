package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/court_booking/internal/app"
	"github.com/Freeeeeet/court_booking/internal/config"
	"github.com/Freeeeeet/court_booking/internal/controller"
	"github.com/Freeeeeet/court_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/court_booking/internal/controller/state"
	"github.com/Freeeeeet/court_booking/internal/repository"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting court booking",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
	)

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	store := repository.NewStore(pool)

	var locker service.Locker = service.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = service.NewRedisLocker(rdb, cfg.LockTTL, logger)
		logger.Info("Using redis court locks", zap.String("addr", cfg.RedisAddr))
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := service.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
		logger.Info("Publishing booking events", zap.String("exchange", cfg.AMQPExchange))
	}

	bookingService := service.NewBookingService(store, locker, events, logger)
	catalogService := service.NewCatalogService(store, logger)
	scheduleService := service.NewScheduleService(store, logger)

	api := httpapi.NewAPI(bookingService, catalogService, scheduleService, cfg.Location, logger)
	httpServer := app.NewHTTPServer(cfg.HTTPAddr, api.Router(httpapi.DefaultRateLimit), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})

	if cfg.BotEnabled() {
		drafts := state.NewManager()

		scheduler := app.NewScheduler(drafts, cfg.DraftTTL, logger)
		scheduler.Start(gctx)
		defer scheduler.Stop()

		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			return err
		}

		botController := controller.NewBotController(b, bookingService, catalogService, drafts, cfg.Location, logger)
		if err := botController.RegisterHandlers(gctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		g.Go(func() error {
			return botController.Start(gctx)
		})
	} else {
		logger.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	return g.Wait()
}
