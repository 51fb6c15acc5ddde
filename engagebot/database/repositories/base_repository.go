package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

// BaseRepository bounds every statement by a query timeout and tags
// driver failures with the operation that hit them.
type BaseRepository struct {
	db           *bun.DB
	queryTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:           db,
		queryTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError carries the failed operation and the key it was run for.
// It always unwraps to ledger.ErrStorageUnavailable as well as the driver
// error.
type RepositoryError struct {
	Operation string
	Entity    string
	Key       any
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("%s %s %v: %v", re.Operation, re.Entity, re.Key, re.Err)
}

func (re *RepositoryError) Unwrap() []error {
	return []error{ledger.ErrStorageUnavailable, re.Err}
}

// TimedOut reports whether the statement ran past its deadline.
func (re *RepositoryError) TimedOut() bool {
	return errors.Is(re.Err, context.DeadlineExceeded)
}

func (br *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.queryTimeout)
}

func (br *BaseRepository) storageError(operation, entity string, key any, err error) error {
	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Key:       key,
		Err:       err,
	}
}

// inTx runs fn in one transaction bounded by the query timeout. Errors
// returned by fn roll the transaction back and are passed through as is.
func (br *BaseRepository) inTx(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	ctx, cancel := br.withTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(ctx, nil, fn)
}
