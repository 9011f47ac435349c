package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/container"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/persistence"
	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

// seed creates an active admin account through the regular create pipeline.
// The activation email is only logged.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	store, closeStore, err := container.OpenAccountStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open account store: %v", err)
	}
	defer closeStore()

	repo := persistence.NewAccountRepository(persistence.Options{
		Store:          store,
		Hasher:         helpers.NewHasher(cfg.HashSecret),
		Notifier:       mailer.NewLogNotifier(logger),
		Links:          mailer.NewLinkBuilder(cfg.ClientHost),
		DefaultPicture: cfg.DefaultProfilePicture,
		Logger:         logger,
	})

	in := repository.NewAccount{
		Fullname: getenv("SEED_ADMIN_FULLNAME", "Administrator"),
		Username: getenv("SEED_ADMIN_USERNAME", "admin"),
		Email:    getenv("SEED_ADMIN_EMAIL", "admin@example.com"),
		Password: getenv("SEED_ADMIN_PASSWORD", "Admin123"),
		Role:     entity.RoleAdmin,
	}
	a, err := repo.Create(ctx, in)
	if errors.Is(err, apperror.ErrConflict) {
		logger.WithField("username", in.Username).Info("admin account already exists")
		return
	}
	if err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}
	if a, err = repo.ActivateByCode(ctx, a.ActivationCode); err != nil {
		logger.Fatalf("failed to activate admin: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"id":             a.ID,
		"username":       a.Username,
		"email":          a.Email,
		"activationCode": a.ActivationCode,
	}).Info("seeded admin account")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
