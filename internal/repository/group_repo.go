package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// GroupRepository 教学班组数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int) (*model.Group, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo 创建 GroupRepository 实例
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id int) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetByIDs(ctx context.Context, ids []int) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&groups).Error
	return groups, err
}

func (r *groupRepo) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Order("group_name ASC").
		Find(&groups).Error
	return groups, err
}
