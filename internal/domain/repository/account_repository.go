package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned by stores when a username or email is taken.
	ErrDuplicate = errors.New("duplicate account")
)

// NewAccount holds the fields submitted at registration. Password is plaintext
// and is hashed by the repository before anything is persisted.
type NewAccount struct {
	Fullname string
	Username string
	Email    string
	Password string
	Role     entity.Role
}

// AccountRepository is the persistence boundary consumed by the lifecycle
// orchestrator. Every read except FindByIdentifier is projected to
// PublicAccount so the digest never escapes.
type AccountRepository interface {
	Create(ctx context.Context, in NewAccount) (*entity.PublicAccount, error)
	// FindByIdentifier matches identifier against email or username. It is the
	// only read returning the digest, for credential comparison.
	FindByIdentifier(ctx context.Context, identifier string, activeOnly bool) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.PublicAccount, error)
	// ActivateByCode sets IsActive on the account owning code, whatever its
	// current state, and returns the updated record.
	ActivateByCode(ctx context.Context, code string) (*entity.PublicAccount, error)
}

// AccountStore is the engine-level contract each storage backend implements.
// Stores enforce username/email uniqueness and report it as ErrDuplicate.
type AccountStore interface {
	Insert(ctx context.Context, a *entity.Account) error
	FindByIdentifier(ctx context.Context, identifier string, activeOnly bool) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	ActivateByCode(ctx context.Context, code string) (*entity.Account, error)
}
