package dao

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx 把事务连接塞进 context，Repo 查询会自动复用
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

// Repo 泛型DAO基类
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Model 返回绑定了 context（及事务）的查询对象
func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	var m T
	return r.conn(ctx).Model(&m)
}

func (r *Repo[T]) conn(ctx context.Context) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return r.Db.WithContext(ctx)
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.conn(ctx).Create(data).Error
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	err := r.conn(ctx).Where(where, args...).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	var m T
	err := r.conn(ctx).Model(&m).Where(where, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repo[T]) FindCount(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	var m T
	err := r.conn(ctx).Model(&m).Where(where, args...).Count(&count).Error
	return count, err
}

func (r *Repo[T]) DeleteByWhere(ctx context.Context, where string, args ...any) (int64, error) {
	var m T
	res := r.conn(ctx).Where(where, args...).Delete(&m)
	return res.RowsAffected, res.Error
}
