package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// AssignmentHandler 任课分配模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Assign 为班组分配教师
// POST /api/v1/assignments
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Assign(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			response.NotFound(c, 14005, "学期不存在")
		case errors.Is(err, service.ErrPeriodClosed):
			response.Conflict(c, 14009, "学期已关闭")
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, 12003, "班组不存在")
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 11004, "人员不存在")
		case errors.Is(err, service.ErrAlreadyAssigned):
			response.Conflict(c, 15001, "该班组在本学期已分配教师")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Unassign 解除任课分配
// DELETE /api/v1/periods/:id/assignments/:group_id
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	periodID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	groupID, ok := paramInt(c, "group_id")
	if !ok {
		return
	}

	if err := h.assignmentSvc.Unassign(c.Request.Context(), periodID, groupID); err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 15002, "任课分配不存在")
		case errors.Is(err, service.ErrAssignmentInUse):
			response.Conflict(c, 15003, "该班组已被周课表或预约引用")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// ListByPeriod 列出学期内的任课分配
// GET /api/v1/periods/:id/assignments
func (h *AssignmentHandler) ListByPeriod(c *gin.Context) {
	periodID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.assignmentSvc.ListByPeriod(c.Request.Context(), periodID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
