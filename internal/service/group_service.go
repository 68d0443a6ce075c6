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

// ── 班组模块业务错误 ──

var ErrGroupNotFound = errors.New("班组不存在")

// GroupService 教学班组业务接口
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetByID(ctx context.Context, id int) (*dto.GroupResponse, error)
	List(ctx context.Context) ([]dto.GroupResponse, error)
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := &model.Group{
		GroupName: strings.TrimSpace(req.Name),
		Subject:   strings.TrimSpace(req.Subject),
	}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("创建班组失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(group), nil
}

func (s *groupService) GetByID(ctx context.Context, id int) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(group), nil
}

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.List(ctx)
	if err != nil {
		s.logger.Error("列出班组失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *s.toResponse(&groups[i]))
	}
	return result, nil
}

func (s *groupService) toResponse(g *model.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:        g.ID,
		Name:      g.GroupName,
		Subject:   g.Subject,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}
