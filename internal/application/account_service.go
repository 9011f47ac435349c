package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

// Service drives the account lifecycle: Pending on register, Active after
// activation. Only active accounts can log in.
type Service struct {
	Repo     repo.AccountRepository
	Hasher   *helpers.Hasher
	Tokens   *helpers.TokenIssuer
	Validate *validator.Validate
	Logger   *logrus.Logger
}

func NewService(r repo.AccountRepository, hasher *helpers.Hasher, tokens *helpers.TokenIssuer, logger *logrus.Logger) *Service {
	return &Service{
		Repo:     r,
		Hasher:   hasher,
		Tokens:   tokens,
		Validate: validation.New(),
		Logger:   logger,
	}
}

type RegisterInput struct {
	Fullname        string `json:"fullname" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,accountpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register validates in and creates a pending account. Nothing is persisted
// when validation fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.PublicAccount, error) {
	if err := s.Validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.Message(err), validation.ToDetails(err))
	}
	a, err := s.Repo.Create(ctx, repo.NewAccount{
		Fullname: in.Fullname,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}
	s.log().WithField("account_id", a.ID).Info("account registered")
	return a, nil
}

// Login resolves the identifier among active accounts and returns a bearer
// token. Unknown, inactive and wrong-password cases fail identically.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	a, err := s.Repo.FindByIdentifier(ctx, in.Identifier, true)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", apperror.Authentication(err)
		}
		return "", fmt.Errorf("find account: %w", err)
	}
	if !s.Hasher.Matches(a.PasswordDigest, in.Password) {
		return "", apperror.Authentication(errors.New("password mismatch"))
	}
	token, _, err := s.Tokens.Issue(helpers.Identity{ID: a.ID, Role: string(a.Role)})
	if err != nil {
		s.log().WithError(err).WithField("account_id", a.ID).Error("issue token failed")
		return "", err
	}
	return token, nil
}

// Me returns the account of an already authenticated caller.
func (s *Service) Me(ctx context.Context, accountID string) (*entity.PublicAccount, error) {
	a, err := s.Repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return a, nil
}

// Activate marks the account owning code active. Repeating it succeeds.
func (s *Service) Activate(ctx context.Context, code string) (*entity.PublicAccount, error) {
	if code == "" {
		return nil, apperror.NotFound("activation code not found")
	}
	a, err := s.Repo.ActivateByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound("activation code not found")
		}
		return nil, err
	}
	s.log().WithField("account_id", a.ID).Info("account activated")
	return a, nil
}

func (s *Service) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}
