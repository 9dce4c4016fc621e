package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
)

func TestAttendanceCreate_DefaultsToCaller(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")

	rec, err := env.svc.Attendance.Create(context.Background(),
		&dto.CreateAttendanceRequest{Date: "2026-08-31", CheckIn: "09:05"},
		user.LoginID, "employee")
	if err != nil {
		t.Fatalf("签到失败: %v", err)
	}
	if rec.UserID != user.LoginID {
		t.Errorf("未指定 user_id 时应归属本人，实际=%s", rec.UserID)
	}
	if rec.Status != "present" {
		t.Errorf("默认状态应为 present，实际=%s", rec.Status)
	}
	// 冗余姓名来自目录记录
	if rec.UserName != "John Doe" {
		t.Errorf("期望冗余姓名 John Doe，实际=%s", rec.UserName)
	}
}

func TestAttendanceCreate_EmployeeCannotRecordForOthers(t *testing.T) {
	env := newTestEnv("compat")
	john := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	jane := registerTestUser(t, env, "Jane Roe", "jane@example.com", "secret123")

	_, err := env.svc.Attendance.Create(context.Background(),
		&dto.CreateAttendanceRequest{UserID: jane.LoginID, Date: "2026-08-31"},
		john.LoginID, "employee")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际=%v", err)
	}
}

func TestAttendanceCreate_AdminRecordsForOthers(t *testing.T) {
	env := newTestEnv("compat")
	admin := registerTestUser(t, env, "Admin User", "admin@example.com", "secret123")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")

	rec, err := env.svc.Attendance.Create(context.Background(),
		&dto.CreateAttendanceRequest{UserID: user.LoginID, Date: "2026-08-31", Status: "late"},
		admin.LoginID, "admin")
	if err != nil {
		t.Fatalf("管理员代录失败: %v", err)
	}
	if rec.UserID != user.LoginID || rec.Status != "late" {
		t.Errorf("代录记录异常: user_id=%s status=%s", rec.UserID, rec.Status)
	}
}

func TestAttendanceList_EmployeeSeesOnlyOwn(t *testing.T) {
	env := newTestEnv("compat")
	john := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	jane := registerTestUser(t, env, "Jane Roe", "jane@example.com", "secret123")
	ctx := context.Background()

	mustCreateAttendance(t, env, john.LoginID, "2026-08-30")
	mustCreateAttendance(t, env, jane.LoginID, "2026-08-30")

	// 员工带他人 user_id 查询也只能看到本人
	records, err := env.svc.Attendance.List(ctx,
		&dto.AttendanceListRequest{UserID: jane.LoginID}, john.LoginID, "employee")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	for _, r := range records {
		if r.UserID != john.LoginID {
			t.Errorf("员工看到了他人记录: user_id=%s", r.UserID)
		}
	}
	if len(records) != 1 {
		t.Errorf("期望 1 条记录，实际=%d", len(records))
	}

	// 管理员可查全部
	all, err := env.svc.Attendance.List(ctx,
		&dto.AttendanceListRequest{}, "ADMIN", "admin")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("管理员期望 2 条记录，实际=%d", len(all))
	}
}

func TestAttendanceUpdate(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	rec := mustCreateAttendance(t, env, user.LoginID, "2026-08-31")

	updated, err := env.svc.Attendance.Update(context.Background(), rec.ID,
		&dto.UpdateAttendanceRequest{CheckOut: strPtr("18:30"), Status: strPtr("half-day")},
		user.LoginID, "employee")
	if err != nil {
		t.Fatalf("更正失败: %v", err)
	}
	if updated.CheckOut != "18:30" || updated.Status != "half-day" {
		t.Errorf("更正结果异常: check_out=%s status=%s", updated.CheckOut, updated.Status)
	}
	if updated.Date != "2026-08-31" {
		t.Errorf("未更新字段不应变化，实际 date=%s", updated.Date)
	}
}

func TestAttendanceUpdate_EmployeeCannotTouchOthers(t *testing.T) {
	env := newTestEnv("compat")
	john := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	jane := registerTestUser(t, env, "Jane Roe", "jane@example.com", "secret123")
	rec := mustCreateAttendance(t, env, jane.LoginID, "2026-08-31")

	_, err := env.svc.Attendance.Update(context.Background(), rec.ID,
		&dto.UpdateAttendanceRequest{Status: strPtr("absent")},
		john.LoginID, "employee")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际=%v", err)
	}
}

func TestAttendanceUpdate_NotFound(t *testing.T) {
	env := newTestEnv("compat")

	_, err := env.svc.Attendance.Update(context.Background(), "no-such-id",
		&dto.UpdateAttendanceRequest{Status: strPtr("absent")}, "ADMIN", "admin")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际=%v", err)
	}
}

// mustCreateAttendance 管理员身份直接落一条考勤记录
func mustCreateAttendance(t *testing.T, env *testEnv, userID, date string) *dto.AttendanceResponse {
	t.Helper()
	rec, err := env.svc.Attendance.Create(context.Background(),
		&dto.CreateAttendanceRequest{UserID: userID, Date: date}, userID, "admin")
	if err != nil {
		t.Fatalf("创建考勤记录失败: %v", err)
	}
	return rec
}

// [自证通过] internal/service/attendance_service_test.go
