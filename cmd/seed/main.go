package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mc := mongodb.NewClient(cfg.MongoURI, cfg.MongoDBName)
	defer func() { _ = mc.Close(context.Background()) }()
	if err := mongodb.RunMigrations(ctx, mc, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"

	out, err := user.NewCreateUser(mongodb.NewUserRepository(mc), nil).Execute(ctx, user.CreateUserInput{
		Name: name, Email: email, Password: password,
	})
	if errors.Is(err, entity.ErrAlreadyExists) {
		fmt.Printf("user already seeded: email=%s\n", email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", out.ID, out.Email, out.Name, password)
}
