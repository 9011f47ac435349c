package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/apperror"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	"github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// MailSettings configures the activation email sent after registration
type MailSettings struct {
	AppName  string
	From     string
	Subject  string
	Template string
}

// Options holds the collaborators of AccountRepository. Logger, Now and NewID
// may be left nil.
type Options struct {
	Store          repository.AccountStore
	Hasher         *helpers.Hasher
	Notifier       mailer.Notifier
	Links          mailer.LinkBuilder
	Mail           MailSettings
	DefaultPicture string
	Logger         *logrus.Logger
	Now            func() time.Time
	NewID          func() string
}

// AccountRepository implements repository.AccountRepository over any
// AccountStore. Create runs an explicit pipeline:
// hash password, derive activation code from id, persist, then notify.
type AccountRepository struct {
	store          repository.AccountStore
	hasher         *helpers.Hasher
	notifier       mailer.Notifier
	links          mailer.LinkBuilder
	mail           MailSettings
	defaultPicture string
	logger         *logrus.Logger
	now            func() time.Time
	newID          func() string
}

func NewAccountRepository(opts Options) *AccountRepository {
	r := &AccountRepository{
		store:          opts.Store,
		hasher:         opts.Hasher,
		notifier:       opts.Notifier,
		links:          opts.Links,
		mail:           opts.Mail,
		defaultPicture: opts.DefaultPicture,
		logger:         opts.Logger,
		now:            opts.Now,
		newID:          opts.NewID,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	if r.defaultPicture == "" {
		r.defaultPicture = "user.jpg"
	}
	if r.mail.Template == "" {
		r.mail.Template = templates.RegistrationSuccess
	}
	if r.logger == nil {
		r.logger = logrus.StandardLogger()
	}
	return r
}

func (r *AccountRepository) Create(ctx context.Context, in repository.NewAccount) (*entity.PublicAccount, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperror.Validation("role must be one of: admin, user", map[string]string{"role": "must be one of: admin, user"})
	}

	now := r.now().UTC()
	id := r.newID()
	a := &entity.Account{
		ID:             id,
		Fullname:       in.Fullname,
		Username:       in.Username,
		Email:          in.Email,
		PasswordDigest: r.hasher.Hash(in.Password),
		Role:           role,
		ProfilePicture: r.defaultPicture,
		IsActive:       false,
		ActivationCode: r.hasher.Hash(id),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := r.store.Insert(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("username or email already registered", err)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// the email must not be cancelled with the request that created the account
	r.notifyCreated(context.WithoutCancel(ctx), a)
	return entity.Project(a), nil
}

// notifyCreated sends the activation email. Failures are logged and dropped:
// the account is already persisted.
func (r *AccountRepository) notifyCreated(ctx context.Context, a *entity.Account) {
	if r.notifier == nil {
		return
	}
	fields := logrus.Fields{"account_id": a.ID, "email": a.Email}
	r.logger.WithFields(fields).Info("sending activation email")

	data := templates.ActivationEmailData{
		AppName:        r.mail.AppName,
		Username:       a.Username,
		Fullname:       a.Fullname,
		Email:          a.Email,
		CreatedAt:      a.CreatedAt,
		ActivationLink: r.links.Activation(a.ActivationCode),
	}
	content, err := r.notifier.Render(r.mail.Template, data.ToMap())
	if err != nil {
		helpers.LogError(r.logger, "render activation email failed", err, fields)
		return
	}
	if err := r.notifier.Send(ctx, r.mail.From, a.Email, r.mail.Subject, content); err != nil {
		helpers.LogError(r.logger, "send activation email failed", err, fields)
	}
}

func (r *AccountRepository) FindByIdentifier(ctx context.Context, identifier string, activeOnly bool) (*entity.Account, error) {
	return r.store.FindByIdentifier(ctx, identifier, activeOnly)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.PublicAccount, error) {
	a, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity.Project(a), nil
}

func (r *AccountRepository) ActivateByCode(ctx context.Context, code string) (*entity.PublicAccount, error) {
	a, err := r.store.ActivateByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return entity.Project(a), nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
