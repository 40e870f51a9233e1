package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/container"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-user-approval/internal/router"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// MongoDB (connects lazily; migrations force the first connect)
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
	} else {
		logger.Warn("STORAGE_DRIVER=memory; users are lost on restart")
	}

	// Redis (run store + rate limits)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	container.SetRedis(rdb)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn))

	// Elasticsearch is optional
	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; search disabled")
		} else {
			if err := search.EnsureUsersIndex(ctx, es, cfg.ESUsersIndex); err != nil {
				logger.WithError(err).Warn("users index not ensured")
			}
			container.SetES(es)
		}
	}

	// RabbitMQ is optional; without it POST /api/approvals answers 503
	if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQApprovalQueue); err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable; approvals disabled")
	} else {
		defer pub.Close()
		container.SetApprovalPub(pub)
	}

	r := router.NewEngine(cfg, logger)
	reg := router.NewRegistry(r)
	router.InitModules(reg, router.DepsFromContainer())
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
