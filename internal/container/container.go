package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg          *config.Config
	logger       *logrus.Logger
	redisClient  *redis.Client
	accountStore repository.AccountStore

	tokens *helpers.TokenIssuer
	hasher *helpers.Hasher

	notifier mailer.Notifier
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func GetLogger() *logrus.Logger                 { return logger }
func SetRedis(r *redis.Client)                  { redisClient = r }
func GetRedis() *redis.Client                   { return redisClient }
func SetAccountStore(s repository.AccountStore) { accountStore = s }
func GetAccountStore() repository.AccountStore  { return accountStore }
func SetTokens(t *helpers.TokenIssuer)          { tokens = t }
func GetTokens() *helpers.TokenIssuer           { return tokens }
func SetHasher(h *helpers.Hasher)               { hasher = h }
func GetHasher() *helpers.Hasher                { return hasher }
func SetNotifier(n mailer.Notifier)             { notifier = n }
func GetNotifier() mailer.Notifier              { return notifier }
