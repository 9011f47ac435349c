package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// AccountStore keeps accounts in process memory. Used for local development
// without infrastructure and in tests.
type AccountStore struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Account
	order []string
	now   func() time.Time
}

func NewAccountStore() *AccountStore {
	return &AccountStore{byID: map[string]*entity.Account{}, now: time.Now}
}

func (s *AccountStore) Insert(_ context.Context, a *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[a.ID]; ok {
		return fmt.Errorf("%w: id", repository.ErrDuplicate)
	}
	for _, existing := range s.byID {
		if existing.Username == a.Username {
			return fmt.Errorf("%w: username", repository.ErrDuplicate)
		}
		if existing.Email == a.Email {
			return fmt.Errorf("%w: email", repository.ErrDuplicate)
		}
	}
	cp := *a
	s.byID[a.ID] = &cp
	s.order = append(s.order, a.ID)
	return nil
}

// FindByIdentifier returns the earliest inserted match, mirroring a
// natural-order scan in the other stores.
func (s *AccountStore) FindByIdentifier(_ context.Context, identifier string, activeOnly bool) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		a := s.byID[id]
		if a.Email != identifier && a.Username != identifier {
			continue
		}
		if activeOnly && !a.IsActive {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s *AccountStore) FindByID(_ context.Context, id string) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *AccountStore) ActivateByCode(_ context.Context, code string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		a := s.byID[id]
		if a.ActivationCode != code {
			continue
		}
		a.IsActive = true
		a.UpdatedAt = s.now().UTC()
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

// Len returns the number of stored accounts
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

var _ repository.AccountStore = (*AccountStore)(nil)
