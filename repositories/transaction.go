package repositories

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

const txKey ctxKey = "tx"

// TransactionManager runs a unit of work inside one database transaction.
// Repositories called with the derived context join that transaction.
type TransactionManager struct {
	conn Connector
}

func NewTransactionManager(conn Connector) *TransactionManager {
	return &TransactionManager{conn: conn}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	db, err := tm.conn.Conn(ctx)
	if err != nil {
		return err
	}

	return translateError("transaction", db.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	}))
}

func GetTxFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey).(*gorm.DB)
	return tx
}

// getExecutor returns the transaction carried by ctx, or a fresh handle.
func getExecutor(ctx context.Context, conn Connector) (*gorm.DB, error) {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx, nil
	}
	return conn.Conn(ctx)
}
