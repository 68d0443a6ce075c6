package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/service"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// WeeklyScheduleXLSX 导出学期周课表为 Excel
// GET /api/v1/periods/:id/weekly-schedules/export
func (h *ExportHandler) WeeklyScheduleXLSX(c *gin.Context) {
	periodID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	data, err := h.exportSvc.WeeklyScheduleXLSX(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			response.NotFound(c, 14005, "学期不存在")
			return
		}
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("weekly-schedule-%d.xlsx", periodID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ReservationICS 导出预约为 iCalendar
// GET /api/v1/reservations/:id/ics
func (h *ExportHandler) ReservationICS(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	ics, err := h.exportSvc.ReservationICS(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.NotFound(c, 17004, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("reservation-%d.ics", id)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
