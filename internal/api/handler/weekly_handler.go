package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// WeeklyHandler 周课表模块 HTTP 处理器
type WeeklyHandler struct {
	weeklySvc service.WeeklyService
}

// NewWeeklyHandler 创建 WeeklyHandler
func NewWeeklyHandler(weeklySvc service.WeeklyService) *WeeklyHandler {
	return &WeeklyHandler{weeklySvc: weeklySvc}
}

// AddSlot 添加周课表节次
// POST /api/v1/weekly-slots
func (h *WeeklyHandler) AddSlot(c *gin.Context) {
	var req dto.AddWeeklySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.weeklySvc.AddSlot(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDayOfWeek):
			response.BadRequest(c, 16001, "星期编号必须在 1-6 之间")
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodClosed):
			response.Conflict(c, 14009, "学期已关闭")
		case errors.Is(err, service.ErrAmbientNotFound):
			response.NotFound(c, 12006, "场地不存在")
		case errors.Is(err, service.ErrAmbientInactive):
			response.Conflict(c, 12007, "场地已停用")
		case errors.Is(err, service.ErrUnknownSlot):
			response.BadRequest(c, 16002, "节次序号超出学期时间模型范围")
		case errors.Is(err, service.ErrUnassignedGroup):
			response.Conflict(c, 15004, "该班组在本学期未分配教师")
		case errors.Is(err, service.ErrSlotTaken):
			response.Conflict(c, 16003, "该节次已被占用")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// RemoveSlot 删除周课表节次
// DELETE /api/v1/periods/:id/weekly-slots?ambient_id=1&day_of_week=2&slot_ordinal=3
func (h *WeeklyHandler) RemoveSlot(c *gin.Context) {
	periodID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	ambientID, err := strconv.Atoi(c.Query("ambient_id"))
	if err != nil || ambientID <= 0 {
		response.BadRequest(c, 10001, "查询参数无效: ambient_id")
		return
	}
	dayOfWeek, err := strconv.Atoi(c.Query("day_of_week"))
	if err != nil || dayOfWeek < 1 || dayOfWeek > 6 {
		response.BadRequest(c, 10001, "查询参数无效: day_of_week")
		return
	}
	slotOrdinal, err := strconv.Atoi(c.Query("slot_ordinal"))
	if err != nil || slotOrdinal < 1 {
		response.BadRequest(c, 10001, "查询参数无效: slot_ordinal")
		return
	}

	err = h.weeklySvc.RemoveSlot(c.Request.Context(), periodID, ambientID, int16(dayOfWeek), int16(slotOrdinal))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodClosed):
			response.Conflict(c, 14009, "学期已关闭")
		case errors.Is(err, service.ErrWeeklySlotNotFound):
			response.NotFound(c, 16004, "周课表节次不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// ListByPeriod 查询学期周课表
// GET /api/v1/periods/:id/weekly-schedules
func (h *WeeklyHandler) ListByPeriod(c *gin.Context) {
	periodID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.weeklySvc.ListByPeriod(c.Request.Context(), periodID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
