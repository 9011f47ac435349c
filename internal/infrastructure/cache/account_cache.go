package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// AccountRepository caches projected accounts by id in Redis. Only
// PublicAccount values are cached, so digests never reach Redis.
// Redis failures fall through to the wrapped repository.
type AccountRepository struct {
	repository.AccountRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewAccountRepository(inner repository.AccountRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *AccountRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AccountRepository{AccountRepository: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func accountKey(id string) string {
	return "account:" + id
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.PublicAccount, error) {
	if cached, err := r.load(ctx, id); err != nil {
		r.logger.WithError(err).WithField("key", accountKey(id)).Warn("account cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	a, err := r.AccountRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, a)
	return a, nil
}

// ActivateByCode refreshes the cached entry so me reflects the new state.
func (r *AccountRepository) ActivateByCode(ctx context.Context, code string) (*entity.PublicAccount, error) {
	a, err := r.AccountRepository.ActivateByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.store(ctx, a)
	return a, nil
}

// load returns nil without error on a cache miss.
func (r *AccountRepository) load(ctx context.Context, id string) (*entity.PublicAccount, error) {
	raw, err := r.rdb.Get(ctx, accountKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var a entity.PublicAccount
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) store(ctx context.Context, a *entity.PublicAccount) {
	key := accountKey(a.ID)
	raw, err := json.Marshal(a)
	if err == nil {
		err = r.rdb.Set(ctx, key, raw, r.ttl).Err()
	}
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("account cache write failed")
		// a stale entry must not outlive a failed refresh
		_ = r.rdb.Del(ctx, key).Err()
	}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
