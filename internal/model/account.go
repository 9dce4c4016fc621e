package model

// Account 身份凭证表 — 对应 accounts
//
// 由 Identity Provider 所有：仅注册/管理员开通时创建，
// 仅管理员显式操作或开通回滚时删除。email 在本表唯一
// （身份提供方语义），与用户目录的弱唯一性无关。
type Account struct {
	ProviderUserID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"provider_user_id"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// [自证通过] internal/model/account.go
