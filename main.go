package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fomo-app/internal/batch"
	"fomo-app/internal/batch/batch_api"
	"fomo-app/internal/config"
	"fomo-app/internal/database/migrations"
	"fomo-app/internal/events"
	events_db "fomo-app/internal/events/db"
	"fomo-app/internal/events/event_api"
	"fomo-app/internal/events/qr"
	"fomo-app/internal/facet"
	"fomo-app/internal/friendship"
	friendship_db "fomo-app/internal/friendship/db"
	"fomo-app/internal/friendship/friendship_api"
	friendship_redis "fomo-app/internal/friendship/redis"
	"fomo-app/internal/kafka"
	"fomo-app/internal/logger"
	"fomo-app/internal/query"
	"fomo-app/internal/query/feed_api"
	"fomo-app/internal/responses"
	responses_db "fomo-app/internal/responses/db"
	"fomo-app/internal/responses/response_api"
	"fomo-app/internal/users"
	users_db "fomo-app/internal/users/db"
	"fomo-app/internal/users/user_api"
)

func verifyConnections(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	var bunDB *bun.DB

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to %s (attempt %d/%d)", cfg.Database.Driver, i+1, maxRetries))
		switch cfg.Database.Driver {
		case "sqlite":
			sqldb, err = sql.Open(sqliteshim.ShimName, cfg.Database.DSN)
		default:
			sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		}
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to database after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if cfg.Database.Driver == "sqlite" {
		bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	} else {
		bunDB = bun.NewDB(sqldb, pgdialect.New())
	}
	logger.Info("DATABASE", "✅ Database connection successful")

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting fomo-app initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	logger.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, logger)
	defer bunDB.Close()
	defer redisClient.Close()

	migrateOpts := migrations.DefaultOptions()
	migrateOpts.AutoMigrate = os.Getenv("AUTO_MIGRATE") == "true"
	if cfg.Database.Driver == "postgres" && migrateOpts.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrateOpts)
		if err := runner.MigrateUp(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		logger.Info("DATABASE", "Migrations applied")
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics)
		producer.Mock = cfg.Kafka.MockMode
		defer producer.Close()

		if cfg.Kafka.MockMode {
			logger.Warn("KAFKA", "Mock mode enabled, events are logged but not published")
		} else {
			requiredTopics := []string{
				cfg.Kafka.Topics.ResponseRecorded,
				cfg.Kafka.Topics.FriendshipUpdated,
				cfg.Kafka.Topics.EventCreated,
			}
			if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
				logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
			} else {
				logger.Info("KAFKA", "Required topics ensured successfully")
			}
		}
	} else {
		logger.Warn("KAFKA", "Kafka disabled, activity events will not be published")
	}

	// Services. The kafka publishers are nil-safe when Kafka is disabled.
	var responseKafka responses.KafkaPublisher
	var friendshipKafka friendship.KafkaPublisher
	var eventKafka events.KafkaPublisher
	if producer != nil {
		responseKafka = producer
		friendshipKafka = producer
		eventKafka = producer
	}

	responseService := responses.NewResponseService(&responses_db.DB{Bun: bunDB}, responseKafka)
	friendshipService := friendship.NewFriendshipService(
		&friendship_db.DB{Bun: bunDB},
		friendship_redis.NewRedis(redisClient, cfg.Redis.PairLockTTL),
		friendshipKafka,
	)
	eventService := events.NewEventService(&events_db.DB{Bun: bunDB}, eventKafka)
	userService := users.NewUserService(&users_db.DB{Bun: bunDB})

	engine := query.NewEngine(responseService)
	facetService := facet.NewFacetService(engine, userService, facet.NewCache(redisClient, cfg.Redis.FacetCacheTTL))
	processor := batch.NewProcessor(responseService, friendshipService, logger)

	shareQR := qr.NewShareQRGenerator(cfg.Share.BaseURL)

	eventHandler := event_api.NewHandler(eventService, shareQR, logger)
	responseHandler := response_api.NewHandler(responseService, logger)
	friendshipHandler := friendship_api.NewHandler(friendshipService, logger)
	userHandler := user_api.NewHandler(userService, logger)
	feedHandler := feed_api.NewHandler(eventService, engine, facetService, logger)
	batchHandler := batch_api.NewHandler(processor, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		eventHandler.RegisterRoutes(r)
		responseHandler.RegisterRoutes(r)
		friendshipHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		feedHandler.RegisterRoutes(r)
		batchHandler.RegisterRoutes(r)
	})
	logger.Info("ROUTER", "Routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 fomo-app running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ fomo-app shutdown complete")
	}
}
