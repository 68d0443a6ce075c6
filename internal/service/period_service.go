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

// ── 学期模块业务错误 ──

var (
	ErrPeriodNotFound   = errors.New("学期不存在")
	ErrInvalidRange     = errors.New("学期开始日期不能晚于结束日期")
	ErrInvalidSeason    = errors.New("学期季节必须在 1-4 之间")
	ErrInvalidDate      = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrPeriodExists     = errors.New("该院系同年同季已存在学期")
	ErrPeriodConflict   = errors.New("该院系已有激活学期，请先关闭")
	ErrPeriodNotPlanned = errors.New("仅 PLANNED 状态的学期可激活")
	ErrPeriodNotActive  = errors.New("学期未激活")
	ErrPeriodClosed     = errors.New("学期已关闭")
)

// PeriodService 学期业务接口
// 状态机 PLANNED → ACTIVE → CLOSED，无逆向转换；
// 每个院系至多一个 ACTIVE 学期
type PeriodService interface {
	Create(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error)
	GetByID(ctx context.Context, id int) (*dto.PeriodResponse, error)
	List(ctx context.Context, facultyID int) ([]dto.PeriodResponse, error)
	Activate(ctx context.Context, id int) (*dto.PeriodResponse, error)
	Close(ctx context.Context, id int) (*dto.PeriodResponse, error)
}

type periodService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPeriodService 创建 PeriodService 实例
func NewPeriodService(repo *repository.Repository, logger *zap.Logger) PeriodService {
	return &periodService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *periodService) Create(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	if req.Season < 1 || req.Season > 4 {
		return nil, ErrInvalidSeason
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidRange
	}

	// 院系与时间模型必须存在
	if _, err := s.repo.Faculty.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.TimeModel.GetByID(ctx, req.TimeModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeModelNotFound
		}
		s.logger.Error("查询时间模型失败", zap.Error(err))
		return nil, err
	}

	// (院系, 年, 季) 唯一
	if _, err := s.repo.Period.GetByFacultyYearSeason(ctx, req.FacultyID, req.Year, req.Season); err == nil {
		return nil, ErrPeriodExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	period := &model.AcademicPeriod{
		FacultyID:   req.FacultyID,
		TimeModelID: req.TimeModelID,
		Season:      req.Season,
		Year:        req.Year,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      model.PeriodStatusPlanned,
	}

	if err := s.repo.Period.Create(ctx, period); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPeriodExists
		}
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(period), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *periodService) GetByID(ctx context.Context, id int) (*dto.PeriodResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(period), nil
}

// ────────────────────── List ──────────────────────

func (s *periodService) List(ctx context.Context, facultyID int) ([]dto.PeriodResponse, error) {
	periods, err := s.repo.Period.List(ctx, facultyID)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PeriodResponse, 0, len(periods))
	for i := range periods {
		result = append(result, *s.toResponse(&periods[i]))
	}
	return result, nil
}

// ────────────────────── Activate ──────────────────────

func (s *periodService) Activate(ctx context.Context, id int) (*dto.PeriodResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	if period.Status != model.PeriodStatusPlanned {
		return nil, ErrPeriodNotPlanned
	}

	// 同院系已有 ACTIVE 学期则拒绝（部分唯一索引在提交竞态时兜底）
	if _, err := s.repo.Period.GetActiveByFaculty(ctx, period.FacultyID); err == nil {
		return nil, ErrPeriodConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询激活学期失败", zap.Error(err))
		return nil, err
	}

	period.Status = model.PeriodStatusActive
	if err := s.repo.Period.Update(ctx, period); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPeriodConflict
		}
		s.logger.Error("激活学期失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学期已激活", zap.Int("period_id", period.ID), zap.Int("faculty_id", period.FacultyID))
	return s.toResponse(period), nil
}

// ────────────────────── Close ──────────────────────

func (s *periodService) Close(ctx context.Context, id int) (*dto.PeriodResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	if period.Status != model.PeriodStatusActive {
		return nil, ErrPeriodNotActive
	}

	period.Status = model.PeriodStatusClosed
	if err := s.repo.Period.Update(ctx, period); err != nil {
		s.logger.Error("关闭学期失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("学期已关闭", zap.Int("period_id", period.ID), zap.Int("faculty_id", period.FacultyID))
	return s.toResponse(period), nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *periodService) toResponse(p *model.AcademicPeriod) *dto.PeriodResponse {
	return &dto.PeriodResponse{
		ID:          p.ID,
		FacultyID:   p.FacultyID,
		TimeModelID: p.TimeModelID,
		Season:      p.Season,
		Year:        p.Year,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
