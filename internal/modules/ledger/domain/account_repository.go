package domain

import "context"

// AccountRepository is the storage contract for account records.
//
// Update is a compare-and-swap: it writes the record only if the stored
// version matches account.Version, incrementing the version on success, and
// returns ErrVersionConflict otherwise. Concurrent settlements against the
// same account serialize through this.
type AccountRepository interface {
	Get(ctx context.Context, userID int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
}
