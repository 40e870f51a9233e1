package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/container"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/go-ddd-user-approval/internal/interface/queue"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-approval-worker", cfg.Env, cfg.LogLevel)
	container.SetConfig(cfg)
	container.SetLogger(logger)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQApprovalQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.UsesMemoryStorage() {
		mc := mongodb.NewClient(cfg.MongoURI, cfg.MongoDBName)
		if err := mongodb.RunMigrations(ctx, mc, cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		defer func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mc.Close(cctx)
		}()
		container.SetMongo(mc)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	container.SetRedis(rdb)

	if cfg.SearchEnabled {
		if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err == nil {
			container.SetES(es)
		} else {
			logger.WithError(err).Warn("elasticsearch unavailable; registered users are not indexed")
		}
	}

	users, _ := container.BuildUsers()
	var notifier approval.Notifier
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.Fatalf("email publisher: %v", err)
		}
		defer pub.Close()
		notifier = rabbitmq.NewWelcomeNotifier(pub, cfg)
	}
	workflow := approval.NewWorkflow(
		approval.NewValidateTask(user.NewValidateUser(users)),
		approval.NewRegisterTask(user.NewCreateUser(users, nil)),
		container.BuildRuns(),
		notifier,
		logger,
	)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	workers := cfg.ApprovalWorkerConcurrency
	if workers < 1 {
		workers = 1
	}
	// prefetch bounds in-flight runs to what the consumers can work on
	if err := ch.Qos(workers, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueueWithDLQ(ch, cfg.RabbitMQApprovalQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQApprovalQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	consumer := queue.NewApprovalConsumer(workflow, logger)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error { return consumer.Run(gctx, msgs) })
	}

	logger.Infof("approval worker listening on queue=%s workers=%d", cfg.RabbitMQApprovalQueue, workers)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("approval worker stopped")
		return
	}
	logger.Info("approval worker exited properly")
}
