package repositories

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor runs work inside one database transaction.
type Transactor interface {
	// WithinTransaction calls fn with a context carrying the transaction. Every
	// repository call made with that context joins it. The transaction commits
	// when fn returns nil and rolls back otherwise. Nested calls reuse the outer
	// transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func withinTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
