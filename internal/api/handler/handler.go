package handler

import "github.com/JosuePerezValenzuela/Api-Reservas/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Faculty     *FacultyHandler
	Ambient     *AmbientHandler
	Group       *GroupHandler
	TimeModel   *TimeModelHandler
	Period      *PeriodHandler
	Assignment  *AssignmentHandler
	Weekly      *WeeklyHandler
	Reservation *ReservationHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Faculty:     NewFacultyHandler(svc.Faculty),
		Ambient:     NewAmbientHandler(svc.Ambient),
		Group:       NewGroupHandler(svc.Group),
		TimeModel:   NewTimeModelHandler(svc.TimeModel),
		Period:      NewPeriodHandler(svc.Period),
		Assignment:  NewAssignmentHandler(svc.Assignment),
		Weekly:      NewWeeklyHandler(svc.Weekly),
		Reservation: NewReservationHandler(svc.Reservation),
		Export:      NewExportHandler(svc.Export),
	}
}
