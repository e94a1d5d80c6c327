package dao

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务边界：fn 内通过 ctx 传播事务连接，
// fn 返回 error 即整体回滚
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
