package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"estagio/internal/common"
	"estagio/internal/config"
	"estagio/internal/database"
	"estagio/internal/domain/user"
	"estagio/internal/repository/postgres"
	"estagio/internal/security"
)

// Seeds the initial technician account so the portal has an administrator
// before any student registers. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	db, err := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxIdle:     time.Minute,
		ConnMaxLifetime: 5 * time.Minute,
	}, nil)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	email := strings.ToLower(strings.TrimSpace(getEnv("SEED_TECH_EMAIL", "tecnico@estagio.local")))
	password := getEnv("SEED_TECH_PASSWORD", "")
	fullName := getEnv("SEED_TECH_NAME", "Técnico de Estágio")
	if password == "" {
		log.Fatal("SEED_TECH_PASSWORD is required")
	}

	users := postgres.NewUserRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if existing, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("technician already seeded id=%s email=%s", existing.ID, existing.Email)
		return
	} else if !common.Is(err, common.CodeNotFound) {
		log.Fatalf("failed to check technician: %v", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	created, err := users.Create(ctx, user.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleTechnician,
		Settings:     user.DefaultSettings(),
	})
	if err != nil {
		log.Fatalf("failed to seed technician: %v", err)
	}
	log.Printf("technician seeded id=%s email=%s", created.ID, created.Email)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
