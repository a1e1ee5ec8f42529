package repository

import (
	"context"
	"errors"

	"nakliye/pkg/pagination"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// TransactionManager runs a function inside one database transaction. Repositories
// called with the context passed to fn join that transaction through GetDB.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, nested := ctx.Value(txKey).(*gorm.DB); nested {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// GetDB returns the transaction bound to ctx, or the root handle.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func paginate(q *gorm.DB, page, limit int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = pagination.DefaultLimit
	}
	p := pagination.Params{Page: page, Limit: limit}
	return q.Offset(p.Offset()).Limit(p.Limit)
}
