package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// ReservationHandler 预约模块 HTTP 处理器
type ReservationHandler struct {
	reservationSvc service.ReservationService
}

// NewReservationHandler 创建 ReservationHandler
func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// Create 创建预约
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reservationSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		var conflict *service.DoubleBookingError
		switch {
		case errors.As(err, &conflict):
			response.ErrorWithDetails(c, http.StatusConflict, 17001, "场地在该日期该节次已被占用", conflict.Error())
		case errors.Is(err, service.ErrDoubleBooking):
			response.Conflict(c, 17001, "场地在该日期该节次已被占用")
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodNotActive):
			response.Conflict(c, 14010, "学期未激活")
		case errors.Is(err, service.ErrPeriodClosed):
			response.Conflict(c, 14009, "学期已关闭")
		case errors.Is(err, service.ErrOutOfScope):
			response.Forbidden(c, 17002, "无权操作该院系的资源")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 14002, "日期格式无效")
		case errors.Is(err, service.ErrDateOutOfPeriod):
			response.BadRequest(c, 17003, "预约日期不在学期范围内")
		case errors.Is(err, service.ErrAmbientNotFound):
			response.NotFound(c, 12006, "场地不存在")
		case errors.Is(err, service.ErrAmbientInactive):
			response.Conflict(c, 12007, "场地已停用")
		case errors.Is(err, service.ErrUnknownSlot):
			response.BadRequest(c, 16002, "节次序号超出学期时间模型范围")
		case errors.Is(err, service.ErrUnassignedGroup):
			response.Conflict(c, 15004, "该班组在本学期未分配教师")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Cancel 取消预约
// POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.reservationSvc.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.NotFound(c, 17004, "预约不存在")
		case errors.Is(err, service.ErrAlreadyCancelled):
			response.Conflict(c, 17005, "预约已取消")
		case errors.Is(err, service.ErrOutOfScope):
			response.Forbidden(c, 17002, "无权操作该院系的资源")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Get 查询预约详情
// GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.reservationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.NotFound(c, 17004, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 查询预约列表
// GET /api/v1/reservations?period_id=1&requester_ci=1234567&status=CONFIRMED
func (h *ReservationHandler) List(c *gin.Context) {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "查询参数无效")
		return
	}

	result, err := h.reservationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
