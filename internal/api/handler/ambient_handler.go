package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// AmbientHandler 场地模块 HTTP 处理器（含楼栋与场地类型）
type AmbientHandler struct {
	ambientSvc service.AmbientService
}

// NewAmbientHandler 创建 AmbientHandler
func NewAmbientHandler(ambientSvc service.AmbientService) *AmbientHandler {
	return &AmbientHandler{ambientSvc: ambientSvc}
}

// CreateType 创建场地类型
// POST /api/v1/ambient-types
func (h *AmbientHandler) CreateType(c *gin.Context) {
	var req dto.CreateAmbientTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ambientSvc.CreateType(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListTypes 列出场地类型
// GET /api/v1/ambient-types
func (h *AmbientHandler) ListTypes(c *gin.Context) {
	result, err := h.ambientSvc.ListTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CreateBlock 创建楼栋
// POST /api/v1/blocks
func (h *AmbientHandler) CreateBlock(c *gin.Context) {
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ambientSvc.CreateBlock(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.NotFound(c, 12002, "院系不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListBlocks 列出楼栋，可按院系过滤
// GET /api/v1/blocks?faculty_id=1
func (h *AmbientHandler) ListBlocks(c *gin.Context) {
	facultyID, _ := strconv.Atoi(c.Query("faculty_id"))

	result, err := h.ambientSvc.ListBlocks(c.Request.Context(), facultyID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create 创建场地
// POST /api/v1/ambients
func (h *AmbientHandler) Create(c *gin.Context) {
	var req dto.CreateAmbientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ambientSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlockNotFound):
			response.NotFound(c, 12004, "楼栋不存在")
		case errors.Is(err, service.ErrAmbientExists):
			response.Conflict(c, 12005, "同一楼栋内场地名称已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 查询场地
// GET /api/v1/ambients/:id
func (h *AmbientHandler) Get(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.ambientSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAmbientNotFound) {
			response.NotFound(c, 12006, "场地不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 列出场地，可按楼栋与启用状态过滤
// GET /api/v1/ambients?block_id=1&only_active=true
func (h *AmbientHandler) List(c *gin.Context) {
	blockID, _ := strconv.Atoi(c.Query("block_id"))
	onlyActive := c.Query("only_active") == "true"

	result, err := h.ambientSvc.List(c.Request.Context(), blockID, onlyActive)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新场地（改名、容量、启停用）
// PATCH /api/v1/ambients/:id
func (h *AmbientHandler) Update(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAmbientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ambientSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAmbientNotFound):
			response.NotFound(c, 12006, "场地不存在")
		case errors.Is(err, service.ErrAmbientExists):
			response.Conflict(c, 12005, "同一楼栋内场地名称已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}
