package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// TimeModelHandler 时间模型模块 HTTP 处理器
type TimeModelHandler struct {
	timeModelSvc service.TimeModelService
}

// NewTimeModelHandler 创建 TimeModelHandler
func NewTimeModelHandler(timeModelSvc service.TimeModelService) *TimeModelHandler {
	return &TimeModelHandler{timeModelSvc: timeModelSvc}
}

// Create 创建时间模型并生成节次
// POST /api/v1/time-models
func (h *TimeModelHandler) Create(c *gin.Context) {
	var req dto.CreateTimeModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.timeModelSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDayStart):
			response.BadRequest(c, 13001, "起始时间格式无效")
		case errors.Is(err, service.ErrDuplicateName):
			response.Conflict(c, 13002, "时间模型名称已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 查询时间模型及其节次
// GET /api/v1/time-models/:id
func (h *TimeModelHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.timeModelSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTimeModelNotFound) {
			response.NotFound(c, 13003, "时间模型不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 列出时间模型
// GET /api/v1/time-models
func (h *TimeModelHandler) List(c *gin.Context) {
	result, err := h.timeModelSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除未被引用的时间模型
// DELETE /api/v1/time-models/:id
func (h *TimeModelHandler) Delete(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := h.timeModelSvc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrTimeModelNotFound):
			response.NotFound(c, 13003, "时间模型不存在")
		case errors.Is(err, service.ErrModelInUse):
			response.Conflict(c, 13004, "时间模型已被学期引用")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
