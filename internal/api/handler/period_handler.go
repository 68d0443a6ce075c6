package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// PeriodHandler 学期模块 HTTP 处理器
type PeriodHandler struct {
	periodSvc service.PeriodService
}

// NewPeriodHandler 创建 PeriodHandler
func NewPeriodHandler(periodSvc service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodSvc: periodSvc}
}

// Create 创建学期
// POST /api/v1/periods
func (h *PeriodHandler) Create(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.periodSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSeason):
			response.BadRequest(c, 14001, "季节必须在 1-4 之间")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 14002, "日期格式无效")
		case errors.Is(err, service.ErrInvalidRange):
			response.BadRequest(c, 14003, "开始日期不能晚于结束日期")
		case errors.Is(err, service.ErrFacultyNotFound):
			response.NotFound(c, 12002, "院系不存在")
		case errors.Is(err, service.ErrTimeModelNotFound):
			response.NotFound(c, 13003, "时间模型不存在")
		case errors.Is(err, service.ErrPeriodExists):
			response.Conflict(c, 14004, "该院系同年同季已存在学期")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 查询学期
// GET /api/v1/periods/:id
func (h *PeriodHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.periodSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			response.NotFound(c, 14005, "学期不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 列出学期，可按院系过滤
// GET /api/v1/periods?faculty_id=1
func (h *PeriodHandler) List(c *gin.Context) {
	facultyID, _ := strconv.Atoi(c.Query("faculty_id"))

	result, err := h.periodSvc.List(c.Request.Context(), facultyID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Activate 激活学期（PLANNED → ACTIVE）
// POST /api/v1/periods/:id/activate
func (h *PeriodHandler) Activate(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.periodSvc.Activate(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodNotPlanned):
			response.Conflict(c, 14006, "仅 PLANNED 状态的学期可激活")
		case errors.Is(err, service.ErrPeriodConflict):
			response.Conflict(c, 14007, "该院系已有激活学期")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Close 关闭学期（ACTIVE → CLOSED）
// POST /api/v1/periods/:id/close
func (h *PeriodHandler) Close(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.periodSvc.Close(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodNotActive):
			response.Conflict(c, 14008, "仅 ACTIVE 状态的学期可关闭")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}
