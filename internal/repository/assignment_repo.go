package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// AssignmentRepository 任课分配数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.TeacherAssignment) error
	Get(ctx context.Context, periodID, groupID int) (*model.TeacherAssignment, error)
	Exists(ctx context.Context, periodID, groupID int) (bool, error)
	ListByPeriod(ctx context.Context, periodID int) ([]model.TeacherAssignment, error)
	Delete(ctx context.Context, periodID, groupID int) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.TeacherAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) Get(ctx context.Context, periodID, groupID int) (*model.TeacherAssignment, error) {
	var assignment model.TeacherAssignment
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Person").
		Where("academic_period_id = ? AND group_id = ?", periodID, groupID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) Exists(ctx context.Context, periodID, groupID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeacherAssignment{}).
		Where("academic_period_id = ? AND group_id = ?", periodID, groupID).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) ListByPeriod(ctx context.Context, periodID int) ([]model.TeacherAssignment, error) {
	var assignments []model.TeacherAssignment
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Person").
		Where("academic_period_id = ?", periodID).
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Delete(ctx context.Context, periodID, groupID int) error {
	return r.db.WithContext(ctx).
		Where("academic_period_id = ? AND group_id = ?", periodID, groupID).
		Delete(&model.TeacherAssignment{}).Error
}
