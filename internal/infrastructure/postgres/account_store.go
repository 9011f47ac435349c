package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

const uniqueViolation = "23505"

const accountColumns = `id, fullname, username, email, password_digest, role, profile_picture,
	is_active, activation_code, created_at, updated_at`

type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Insert(ctx context.Context, a *entity.Account) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, fullname, username, email, password_digest, role,
			profile_picture, is_active, activation_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at
	`, a.ID, a.Fullname, a.Username, a.Email, a.PasswordDigest, string(a.Role),
		a.ProfilePicture, a.IsActive, a.ActivationCode, a.CreatedAt)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (s *AccountStore) FindByIdentifier(ctx context.Context, identifier string, activeOnly bool) (*entity.Account, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE (email = $1 OR username = $1) AND ($2 = FALSE OR is_active)
		ORDER BY created_at
		LIMIT 1
	`, identifier, activeOnly)
	return scanAccount(row)
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id)
	return scanAccount(row)
}

func (s *AccountStore) ActivateByCode(ctx context.Context, code string) (*entity.Account, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE accounts
		SET is_active = TRUE, updated_at = now()
		WHERE id = (
			SELECT id FROM accounts WHERE activation_code = $1 ORDER BY created_at LIMIT 1
		)
		RETURNING `+accountColumns, code)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	var role string
	if err := row.Scan(&a.ID, &a.Fullname, &a.Username, &a.Email, &a.PasswordDigest, &role,
		&a.ProfilePicture, &a.IsActive, &a.ActivationCode, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.Role = entity.Role(role)
	return a, nil
}

// mapWriteError converts unique constraint violations into repository.ErrDuplicate.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

var _ repository.AccountStore = (*AccountStore)(nil)
