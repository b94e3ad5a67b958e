package database

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner runs a callback inside one database transaction. Multi-step
// workflows (staff deactivation, order creation, price rotation) go through
// this so they commit or roll back as a unit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
