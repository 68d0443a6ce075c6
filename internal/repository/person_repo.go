package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// PersonRepository 人员数据访问接口
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByCI(ctx context.Context, ci string) (*model.Person, error)
	GetByEmail(ctx context.Context, normalized string) (*model.Person, error)
	AddRole(ctx context.Context, role *model.PersonRole) error
	ListRoles(ctx context.Context, ci string) ([]model.PersonRole, error)
}

type personRepo struct {
	db *gorm.DB
}

// NewPersonRepo 创建 PersonRepository 实例
func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepo) GetByCI(ctx context.Context, ci string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("ci = ?", ci).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) GetByEmail(ctx context.Context, normalized string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("lower(btrim(email)) = ?", normalized).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) AddRole(ctx context.Context, role *model.PersonRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *personRepo) ListRoles(ctx context.Context, ci string) ([]model.PersonRole, error) {
	var roles []model.PersonRole
	err := r.db.WithContext(ctx).
		Where("ci = ?", ci).
		Find(&roles).Error
	return roles, err
}
