package service

import (
	"go.uber.org/zap"

	"github.com/JosuePerezValenzuela/Api-Reservas/config"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/jwt"
	"github.com/JosuePerezValenzuela/Api-Reservas/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Faculty     FacultyService
	Ambient     AmbientService
	Group       GroupService
	TimeModel   TimeModelService
	Period      PeriodService
	Assignment  AssignmentService
	Weekly      WeeklyService
	Reservation ReservationService
	Export      ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Faculty:     NewFacultyService(repo, logger),
		Ambient:     NewAmbientService(repo, logger),
		Group:       NewGroupService(repo, logger),
		TimeModel:   NewTimeModelService(repo, logger),
		Period:      NewPeriodService(repo, logger),
		Assignment:  NewAssignmentService(repo, logger),
		Weekly:      NewWeeklyService(repo, logger),
		Reservation: NewReservationService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
