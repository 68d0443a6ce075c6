package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ── 院系模块业务错误 ──

var (
	ErrFacultyNotFound = errors.New("院系不存在")
	ErrFacultyExists   = errors.New("院系名称已存在")
)

// FacultyService 院系业务接口
type FacultyService interface {
	Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	GetByID(ctx context.Context, id int) (*dto.FacultyResponse, error)
	List(ctx context.Context) ([]dto.FacultyResponse, error)
}

type facultyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFacultyService 创建 FacultyService 实例
func NewFacultyService(repo *repository.Repository, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, logger: logger}
}

func (s *facultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	// 名称唯一性（大小写/空白不敏感）
	if _, err := s.repo.Faculty.GetByName(ctx, normalizeName(req.Name)); err == nil {
		return nil, ErrFacultyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}

	faculty := &model.Faculty{FacultyName: strings.TrimSpace(req.Name)}
	if err := s.repo.Faculty.Create(ctx, faculty); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrFacultyExists
		}
		s.logger.Error("创建院系失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(faculty), nil
}

func (s *facultyService) GetByID(ctx context.Context, id int) (*dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询院系失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(faculty), nil
}

func (s *facultyService) List(ctx context.Context) ([]dto.FacultyResponse, error) {
	faculties, err := s.repo.Faculty.List(ctx)
	if err != nil {
		s.logger.Error("列出院系失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FacultyResponse, 0, len(faculties))
	for i := range faculties {
		result = append(result, *s.toResponse(&faculties[i]))
	}
	return result, nil
}

func (s *facultyService) toResponse(f *model.Faculty) *dto.FacultyResponse {
	return &dto.FacultyResponse{
		ID:        f.ID,
		Name:      f.FacultyName,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
