package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// FacultyHandler 院系模块 HTTP 处理器
type FacultyHandler struct {
	facultySvc service.FacultyService
}

// NewFacultyHandler 创建 FacultyHandler
func NewFacultyHandler(facultySvc service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultySvc: facultySvc}
}

// Create 创建院系
// POST /api/v1/faculties
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.facultySvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFacultyExists) {
			response.Conflict(c, 12001, "院系名称已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Get 查询院系
// GET /api/v1/faculties/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.facultySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.NotFound(c, 12002, "院系不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 列出院系
// GET /api/v1/faculties
func (h *FacultyHandler) List(c *gin.Context) {
	result, err := h.facultySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
