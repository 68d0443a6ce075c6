package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ── 任课分配模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("任课分配不存在")
	ErrAlreadyAssigned    = errors.New("该班组在本学期已分配教师")
	ErrAssignmentInUse    = errors.New("该班组已被周课表或预约引用，不可解除分配")
)

// AssignmentService 任课分配业务接口
// (学期, 班组) 至多一条分配；被周课表或预约引用后不可解除
type AssignmentService interface {
	Assign(ctx context.Context, req *dto.AssignTeacherRequest) (*dto.AssignmentResponse, error)
	Unassign(ctx context.Context, periodID, groupID int) error
	ListByPeriod(ctx context.Context, periodID int) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Assign ──────────────────────

func (s *assignmentService) Assign(ctx context.Context, req *dto.AssignTeacherRequest) (*dto.AssignmentResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, req.PeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	// 关闭的学期不再接受任何排课变更
	if period.Status == model.PeriodStatusClosed {
		return nil, ErrPeriodClosed
	}

	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Person.GetByCI(ctx, req.CI); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Assignment.Exists(ctx, req.PeriodID, req.GroupID)
	if err != nil {
		s.logger.Error("查询任课分配失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyAssigned
	}

	assignment := &model.TeacherAssignment{
		AcademicPeriodID: req.PeriodID,
		GroupID:          req.GroupID,
		CI:               req.CI,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyAssigned
		}
		s.logger.Error("创建任课分配失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(assignment), nil
}

// ────────────────────── Unassign ──────────────────────

func (s *assignmentService) Unassign(ctx context.Context, periodID, groupID int) error {
	if _, err := s.repo.Assignment.Get(ctx, periodID, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询任课分配失败", zap.Error(err))
		return err
	}

	// 学期内只要有周课表节次或预约引用该班组即不可解除
	weeklyRefs, err := s.repo.Weekly.CountByGroup(ctx, periodID, groupID)
	if err != nil {
		s.logger.Error("统计周课表引用失败", zap.Error(err))
		return err
	}
	if weeklyRefs > 0 {
		return ErrAssignmentInUse
	}
	reservationRefs, err := s.repo.Reservation.CountByGroup(ctx, periodID, groupID)
	if err != nil {
		s.logger.Error("统计预约引用失败", zap.Error(err))
		return err
	}
	if reservationRefs > 0 {
		return ErrAssignmentInUse
	}

	return s.repo.Assignment.Delete(ctx, periodID, groupID)
}

// ────────────────────── ListByPeriod ──────────────────────

func (s *assignmentService) ListByPeriod(ctx context.Context, periodID int) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.ListByPeriod(ctx, periodID)
	if err != nil {
		s.logger.Error("列出任课分配失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *s.toResponse(&assignments[i]))
	}
	return result, nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *assignmentService) toResponse(a *model.TeacherAssignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		PeriodID:  a.AcademicPeriodID,
		GroupID:   a.GroupID,
		CI:        a.CI,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Group != nil {
		resp.GroupName = a.Group.GroupName
	}
	if a.Person != nil {
		resp.PersonName = a.Person.PersonName
	}
	return resp
}
