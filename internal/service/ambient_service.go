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

// ── 场地模块业务错误 ──

var (
	ErrBlockNotFound       = errors.New("楼栋不存在")
	ErrAmbientTypeNotFound = errors.New("场地类型不存在")
	ErrAmbientNotFound     = errors.New("场地不存在")
	ErrAmbientExists       = errors.New("同一楼栋内场地名称已存在")
	ErrAmbientInactive     = errors.New("场地已停用，不可预约")
)

// AmbientService 场地及其楼栋/类型业务接口
type AmbientService interface {
	CreateType(ctx context.Context, req *dto.CreateAmbientTypeRequest) (*dto.AmbientTypeResponse, error)
	ListTypes(ctx context.Context) ([]dto.AmbientTypeResponse, error)

	CreateBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error)
	ListBlocks(ctx context.Context, facultyID int) ([]dto.BlockResponse, error)

	Create(ctx context.Context, req *dto.CreateAmbientRequest) (*dto.AmbientResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AmbientResponse, error)
	List(ctx context.Context, blockID int, onlyActive bool) ([]dto.AmbientResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAmbientRequest) (*dto.AmbientResponse, error)
}

type ambientService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAmbientService 创建 AmbientService 实例
func NewAmbientService(repo *repository.Repository, logger *zap.Logger) AmbientService {
	return &ambientService{repo: repo, logger: logger}
}

// ────────────────────── 场地类型 ──────────────────────

func (s *ambientService) CreateType(ctx context.Context, req *dto.CreateAmbientTypeRequest) (*dto.AmbientTypeResponse, error) {
	ambientType := &model.AmbientType{TypeName: strings.TrimSpace(req.Name)}
	if err := s.repo.Ambient.CreateType(ctx, ambientType); err != nil {
		s.logger.Error("创建场地类型失败", zap.Error(err))
		return nil, err
	}
	return &dto.AmbientTypeResponse{ID: ambientType.ID, Name: ambientType.TypeName}, nil
}

func (s *ambientService) ListTypes(ctx context.Context) ([]dto.AmbientTypeResponse, error) {
	types, err := s.repo.Ambient.ListTypes(ctx)
	if err != nil {
		s.logger.Error("列出场地类型失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AmbientTypeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, dto.AmbientTypeResponse{ID: t.ID, Name: t.TypeName})
	}
	return result, nil
}

// ────────────────────── 楼栋 ──────────────────────

func (s *ambientService) CreateBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error) {
	if _, err := s.repo.Faculty.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}

	block := &model.Block{
		FacultyID: req.FacultyID,
		BlockName: strings.TrimSpace(req.Name),
	}
	if err := s.repo.Ambient.CreateBlock(ctx, block); err != nil {
		s.logger.Error("创建楼栋失败", zap.Error(err))
		return nil, err
	}
	return s.toBlockResponse(block), nil
}

func (s *ambientService) ListBlocks(ctx context.Context, facultyID int) ([]dto.BlockResponse, error) {
	blocks, err := s.repo.Ambient.ListBlocks(ctx, facultyID)
	if err != nil {
		s.logger.Error("列出楼栋失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *s.toBlockResponse(&blocks[i]))
	}
	return result, nil
}

// ────────────────────── 场地 ──────────────────────

func (s *ambientService) Create(ctx context.Context, req *dto.CreateAmbientRequest) (*dto.AmbientResponse, error) {
	if _, err := s.repo.Ambient.GetBlockByID(ctx, req.BlockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		s.logger.Error("查询楼栋失败", zap.Error(err))
		return nil, err
	}

	ambient := &model.Ambient{
		BlockID:       req.BlockID,
		AmbientTypeID: req.AmbientTypeID,
		AmbientName:   strings.TrimSpace(req.Name),
		Capacity:      req.Capacity,
		IsActive:      true,
	}
	if err := s.repo.Ambient.Create(ctx, ambient); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAmbientExists
		}
		s.logger.Error("创建场地失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ambient), nil
}

func (s *ambientService) GetByID(ctx context.Context, id int) (*dto.AmbientResponse, error) {
	ambient, err := s.repo.Ambient.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbientNotFound
		}
		s.logger.Error("查询场地失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(ambient), nil
}

func (s *ambientService) List(ctx context.Context, blockID int, onlyActive bool) ([]dto.AmbientResponse, error) {
	ambients, err := s.repo.Ambient.List(ctx, blockID, onlyActive)
	if err != nil {
		s.logger.Error("列出场地失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AmbientResponse, 0, len(ambients))
	for i := range ambients {
		result = append(result, *s.toResponse(&ambients[i]))
	}
	return result, nil
}

// Update 允许改名、改容量、启停用；停用的场地不再参与预约
func (s *ambientService) Update(ctx context.Context, id int, req *dto.UpdateAmbientRequest) (*dto.AmbientResponse, error) {
	ambient, err := s.repo.Ambient.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbientNotFound
		}
		s.logger.Error("查询场地失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		ambient.AmbientName = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		ambient.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		ambient.IsActive = *req.IsActive
	}

	if err := s.repo.Ambient.Update(ctx, ambient); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAmbientExists
		}
		s.logger.Error("更新场地失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(ambient), nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *ambientService) toBlockResponse(b *model.Block) *dto.BlockResponse {
	return &dto.BlockResponse{
		ID:        b.ID,
		FacultyID: b.FacultyID,
		Name:      b.BlockName,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func (s *ambientService) toResponse(a *model.Ambient) *dto.AmbientResponse {
	return &dto.AmbientResponse{
		ID:            a.ID,
		BlockID:       a.BlockID,
		AmbientTypeID: a.AmbientTypeID,
		Name:          a.AmbientName,
		Capacity:      a.Capacity,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
