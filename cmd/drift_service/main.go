package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	bottleapp "drift_chronicles_service/internal/bottle/app"
	bottlerepo "drift_chronicles_service/internal/bottle/repository"
	chatapp "drift_chronicles_service/internal/chat/app"
	chatrepo "drift_chronicles_service/internal/chat/repository"
	identityapp "drift_chronicles_service/internal/identity/app"
	identitydomain "drift_chronicles_service/internal/identity/domain"
	identityrepo "drift_chronicles_service/internal/identity/repository"

	"drift_chronicles_service/internal/api/handlers"
	"drift_chronicles_service/internal/api/router"
	"drift_chronicles_service/pkg/config"
	"drift_chronicles_service/pkg/database"
	"drift_chronicles_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.DriftService, config.EnvConfig.DriftServiceLogPath)
	cfg := config.LoadConfig[config.Drift](config.EnvConfig.DriftService, config.EnvConfig.DriftServiceYAMLPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Mongo holds the bottle pool, chats and transcripts
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    mongoURI,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval) * time.Second,
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", mongoURI)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// Redis carries chat update pub/sub and identity sessions. Sentinel
	// when the env provides it, standalone otherwise.
	var redisClient *redis.Client
	masterName, sentinelAddrs := config.GetRedisSetting()
	if len(sentinelAddrs) > 0 {
		redisClient, err = database.NewRedisFailoverClient(masterName, sentinelAddrs, cfg.Redis.RedisDB)
	} else {
		redisClient, err = database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.RedisDB)
	}
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// PostgreSQL stores credentialed accounts only
	pgConn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgConn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil || pgPool == nil {
		logger.Log.Fatal("Unable to connect to postgreSQL after retries", zap.Error(err))
	}
	defer pgPool.Close()

	// Kafka lifecycle events are side-band, a failed connect only disables them
	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Warn("Kafka unavailable, lifecycle events disabled", zap.Error(err))
		kafkaWriter = nil
	} else {
		defer kafkaWriter.Close()
	}
	events := database.NewKafkaPublisher(kafkaWriter)

	// repositories
	bottleRepo := bottlerepo.NewMongoBottleRepository(mongo)
	profileRepo := bottlerepo.NewMongoProfileRepository(mongo.Database)
	chatRepo := chatrepo.NewMongoChatRepository(mongo)
	messageRepo := chatrepo.NewMongoMessageRepository(mongo.Database)
	broker := chatrepo.NewRedisMessageBroker(redisClient)
	accountRepo := identityrepo.NewAccountRepository(pgPool)
	sessionRepo := database.NewRedisRepository[identitydomain.Session](redisClient)

	// usecases
	tracker := bottleapp.NewSessionTracker()
	matchmakerUC := bottleapp.NewMatchmakingUseCase(bottleRepo, tracker, cfg.CandidateLimit)
	bottleUC := bottleapp.NewBottleUseCase(bottleRepo, profileRepo, chatRepo, events)
	chatUC := chatapp.NewChatUseCase(chatRepo, messageRepo, broker, events)
	identityUC := identityapp.NewIdentityUseCase(accountRepo, profileRepo, sessionRepo, matchmakerUC, cfg.SessionTTL)

	sweep := bottleapp.NewOrphanReconciler(bottleRepo, chatRepo, cfg.ReconcileInterval, cfg.CandidateLimit)
	go sweep.Run(ctx)

	// fiber
	app := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.DriftServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	app.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(app,
		handlers.NewIdentityHandler(identityUC),
		handlers.NewBottleHandler(bottleUC, matchmakerUC),
		handlers.NewChatHandler(chatUC),
		chatapp.NewLiveFeedHandler(chatUC),
	)

	port := ":" + cfg.Port
	log.Printf("Drift Service listening on %s", port)
	if err := app.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
