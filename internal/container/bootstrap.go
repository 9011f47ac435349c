package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-account-service/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-account-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

// OpenAccountStore connects the storage backend selected by cfg.StorageDriver.
// The returned cleanup releases the connection.
func OpenAccountStore(ctx context.Context, c *config.Config, log *logrus.Logger) (repository.AccountStore, func(), error) {
	switch c.StorageDriver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, c.PostgresDSN(), postgres.PoolOptions{
			MaxConns:    c.DBMaxConns,
			MinConns:    c.DBMinConns,
			MaxConnLife: c.DBMaxConnLife,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(c.PostgresDSN(), log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return postgres.NewAccountStore(pool), pool.Close, nil

	case config.StorageMongo:
		client, err := mongodb.Connect(ctx, c.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		store := mongodb.NewAccountStore(client, c.MongoDatabase, c.MongoCollection)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return store, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorageMemory:
		log.Warn("using in-memory account store; data is lost on restart")
		return memory.NewAccountStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
}

// NewNotifier picks the mail transport. With sending disabled, mail is only
// logged.
func NewNotifier(c *config.Config, log *logrus.Logger) (mailer.Notifier, func(), error) {
	if !c.MailSendEnabled {
		return mailer.NewLogNotifier(log), func() {}, nil
	}
	switch c.MailTransport {
	case config.MailQueue:
		pub, err := helpers.NewRabbitPublisher(c.RabbitMQURL, c.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		return mailer.NewQueueNotifier(pub), pub.Close, nil
	case config.MailDirect:
		if c.MailgunDomain == "" || c.MailgunAPIKey == "" {
			return nil, nil, fmt.Errorf("mailgun not configured")
		}
		return mailer.NewMailgun(c.MailgunDomain, c.MailgunAPIKey, c.MailgunSender), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown mail transport %q", c.MailTransport)
}
