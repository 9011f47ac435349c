package router

import (
	"github.com/oksasatya/go-account-service/config"
	appaccount "github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/container"
	repoaccount "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/cache"
	"github.com/oksasatya/go-account-service/internal/infrastructure/persistence"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/internal/router/modules"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

// NewAccountRepository builds the create pipeline over the container's store,
// decorated with the Redis cache when one is configured.
func NewAccountRepository() repoaccount.AccountRepository {
	cfg := container.GetConfig()
	var repo repoaccount.AccountRepository = persistence.NewAccountRepository(persistence.Options{
		Store:          container.GetAccountStore(),
		Hasher:         container.GetHasher(),
		Notifier:       container.GetNotifier(),
		Links:          mailer.NewLinkBuilder(cfg.ClientHost),
		Mail:           mailSettings(cfg),
		DefaultPicture: cfg.DefaultProfilePicture,
		Logger:         container.GetLogger(),
	})
	if rdb := container.GetRedis(); rdb != nil {
		repo = cache.NewAccountRepository(repo, rdb, cfg.AccountCacheTTL, container.GetLogger())
	}
	return repo
}

func mailSettings(cfg *config.Config) persistence.MailSettings {
	return persistence.MailSettings{
		AppName: cfg.AppName,
		From:    cfg.MailFrom,
		Subject: cfg.MailSubject,
	}
}

func buildAuthHandler() *handlers.AuthHandler {
	service := appaccount.NewService(
		NewAccountRepository(),
		container.GetHasher(),
		container.GetTokens(),
		container.GetLogger(),
	)
	return handlers.NewAuthHandler(service, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Use(middleware.RequestIDMiddleware())
	r.AddRoot(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(buildAuthHandler(), container.GetTokens()))
}
