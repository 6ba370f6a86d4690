// Package memory provides a memory-based account repository for monolith and
// test mode.
package memory

import (
	"context"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/ledger/domain"
)

// AccountRepository implements domain.AccountRepository using memory
type AccountRepository struct {
	accounts map[int64]*domain.Account
	nextID   int64
	mu       sync.RWMutex
}

// NewAccountRepository creates a new memory account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int64]*domain.Account),
		nextID:   1,
	}
}

func (r *AccountRepository) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	// Return a copy so callers mutate their own snapshot.
	snapshot := *account
	return &snapshot, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.UserID == 0 {
		account.UserID = r.nextID
		r.nextID++
	} else if _, ok := r.accounts[account.UserID]; ok {
		return domain.ErrAccountExists
	}
	if account.UserID >= r.nextID {
		r.nextID = account.UserID + 1
	}

	stored := *account
	r.accounts[account.UserID] = &stored
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.UserID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return domain.ErrVersionConflict
	}

	next := *account
	next.Version++
	r.accounts[account.UserID] = &next
	account.Version = next.Version
	return nil
}
