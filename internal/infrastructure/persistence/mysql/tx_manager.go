package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的键(非导出类型,避免外部包冲突)
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction:fn返回error自动ROLLBACK,返回nil自动COMMIT
// 2. 事务DB通过context传递,各Repository的getDB按键提取,
//    同一事务内的所有仓储操作自动落在同一连接上
// 3. 嵌套调用时GORM自动使用SAVEPOINT
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在事务中执行fn
// 下单用例的典型用法:锁价、建单、删购物车全部在fn内完成,
// 任一步失败整体回滚,不会留下半成品订单
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB 从context提取事务DB,没有事务时回退到默认连接
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
