package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/config"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/identity"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/repository"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/mailer"
)

// ── Mock Repository 实现 ──

// mockUserRepo 内存用户目录，按插入顺序保存（GetByEmail 返回最早一条）
type mockUserRepo struct {
	users      []*model.User
	failGetAll bool // 模拟目录读取失败（触发序号随机退化）
	failPut    bool // 模拟目录写入失败（触发开通回滚路径）
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	if m.failGetAll {
		return nil, errors.New("permission denied")
	}
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, loginID string) (*model.User, error) {
	for _, u := range m.users {
		if u.LoginID == loginID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	return m.GetByID(ctx, loginID)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Put(ctx context.Context, user *model.User) error {
	if m.failPut {
		return errors.New("write failed")
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) Patch(ctx context.Context, loginID string, fields map[string]interface{}) error {
	for _, u := range m.users {
		if u.LoginID != loginID {
			continue
		}
		for k, v := range fields {
			switch k {
			case "name":
				u.Name = v.(string)
			case "role":
				u.Role = v.(string)
			case "department":
				u.Department = v.(string)
			case "job_title":
				u.JobTitle = v.(string)
			case "salary":
				u.Salary = v.(float64)
			case "phone":
				u.Phone = v.(string)
			case "address":
				u.Address = v.(string)
			}
		}
		u.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Delete(ctx context.Context, loginID string) error {
	for i, u := range m.users {
		if u.LoginID == loginID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// mockAccountRepo 内存凭证存储（email 唯一）
type mockAccountRepo struct {
	accounts []*model.Account
}

func (m *mockAccountRepo) Create(ctx context.Context, account *model.Account) error {
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if account.ProviderUserID == "" {
		account.ProviderUserID = uuid.New().String()
	}
	m.accounts = append(m.accounts, account)
	return nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) UpdatePassword(ctx context.Context, providerUserID, passwordHash string) error {
	for _, a := range m.accounts {
		if a.ProviderUserID == providerUserID {
			a.PasswordHash = passwordHash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Delete(ctx context.Context, providerUserID string) error {
	for i, a := range m.accounts {
		if a.ProviderUserID == providerUserID {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

// mockAttendanceRepo 内存考勤存储
type mockAttendanceRepo struct {
	records []*model.AttendanceRecord
}

func (m *mockAttendanceRepo) List(ctx context.Context, userID string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, r := range m.records {
		if userID == "" || r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) GetByID(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	for _, r := range m.records {
		if r.AttendanceID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	if record.AttendanceID == "" {
		record.AttendanceID = uuid.New().String()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	m.records = append(m.records, record)
	return nil
}

func (m *mockAttendanceRepo) Put(ctx context.Context, record *model.AttendanceRecord) error {
	return m.Create(ctx, record)
}

func (m *mockAttendanceRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	for _, r := range m.records {
		if r.AttendanceID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "status":
				r.Status = v.(string)
			case "check_in":
				r.CheckIn = v.(string)
			case "check_out":
				r.CheckOut = v.(string)
			}
		}
		r.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

// mockLeaveRepo 内存请假存储
type mockLeaveRepo struct {
	records []*model.LeaveRecord
}

func (m *mockLeaveRepo) List(ctx context.Context, userID string) ([]model.LeaveRecord, error) {
	var out []model.LeaveRecord
	for _, r := range m.records {
		if userID == "" || r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockLeaveRepo) ListByStatus(ctx context.Context, status string) ([]model.LeaveRecord, error) {
	var out []model.LeaveRecord
	for _, r := range m.records {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockLeaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRecord, error) {
	for _, r := range m.records {
		if r.LeaveID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Create(ctx context.Context, record *model.LeaveRecord) error {
	if record.LeaveID == "" {
		record.LeaveID = uuid.New().String()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	m.records = append(m.records, record)
	return nil
}

func (m *mockLeaveRepo) Put(ctx context.Context, record *model.LeaveRecord) error {
	return m.Create(ctx, record)
}

func (m *mockLeaveRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	for _, r := range m.records {
		if r.LeaveID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "status":
				r.Status = v.(string)
			case "reason":
				r.Reason = v.(string)
			}
		}
		r.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

// mockCounterRepo 内存开通计数器（strict 模式）
type mockCounterRepo struct {
	counts   map[string]int
	failNext bool
}

func (m *mockCounterRepo) NextCount(ctx context.Context, companyName string, year int) (int, error) {
	if m.failNext {
		return 0, errors.New("counter unavailable")
	}
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	key := fmt.Sprintf("%s:%d", companyName, year)
	n := m.counts[key]
	m.counts[key] = n + 1
	return n, nil
}

// ── 测试环境组装 ──

type testEnv struct {
	cfg      *config.Config
	users    *mockUserRepo
	accounts *mockAccountRepo
	att      *mockAttendanceRepo
	leaves   *mockLeaveRepo
	counters *mockCounterRepo
	repo     *repository.Repository
	tokens   *jwt.Manager
	idp      *identity.Provider
	svc      *Service
}

// newTestEnv 按指定开通模式组装全套内存依赖
func newTestEnv(mode string) *testEnv {
	logger := zap.NewNop()

	cfg := &config.Config{
		Provisioning: config.ProvisioningConfig{
			Mode:           mode,
			DefaultCompany: "Dayflow",
		},
		Migration: config.MigrationConfig{
			TempPassword: "TempPassword123!",
		},
	}

	users := &mockUserRepo{}
	accounts := &mockAccountRepo{}
	att := &mockAttendanceRepo{}
	leaves := &mockLeaveRepo{}
	counters := &mockCounterRepo{}

	repo := &repository.Repository{
		Account:    accounts,
		User:       users,
		Attendance: att,
		Leave:      leaves,
		Counter:    counters,
	}

	tokens := jwt.NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-0123456789",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 168 * time.Hour,
		ResetTokenTTL:           30 * time.Minute,
	})

	mail := mailer.NewMailer(&config.MailConfig{}, logger)
	idp := identity.NewProvider(accounts, tokens, mail, "http://localhost:8080", logger)

	return &testEnv{
		cfg:      cfg,
		users:    users,
		accounts: accounts,
		att:      att,
		leaves:   leaves,
		counters: counters,
		repo:     repo,
		tokens:   tokens,
		idp:      idp,
		svc:      NewService(cfg, repo, idp, tokens, nil, logger),
	}
}

// [自证通过] internal/service/mock_repos_test.go
