package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// PeriodRepository 学期数据访问接口
type PeriodRepository interface {
	Create(ctx context.Context, period *model.AcademicPeriod) error
	GetByID(ctx context.Context, id int) (*model.AcademicPeriod, error)
	GetByFacultyYearSeason(ctx context.Context, facultyID int, year, season int16) (*model.AcademicPeriod, error)
	GetActiveByFaculty(ctx context.Context, facultyID int) (*model.AcademicPeriod, error)
	List(ctx context.Context, facultyID int) ([]model.AcademicPeriod, error)
	Update(ctx context.Context, period *model.AcademicPeriod) error
}

type periodRepo struct {
	db *gorm.DB
}

// NewPeriodRepo 创建 PeriodRepository 实例
func NewPeriodRepo(db *gorm.DB) PeriodRepository {
	return &periodRepo{db: db}
}

func (r *periodRepo) Create(ctx context.Context, period *model.AcademicPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *periodRepo) GetByID(ctx context.Context, id int) (*model.AcademicPeriod, error) {
	var period model.AcademicPeriod
	err := r.db.WithContext(ctx).
		Preload("TimeModel").
		Where("id = ?", id).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepo) GetByFacultyYearSeason(ctx context.Context, facultyID int, year, season int16) (*model.AcademicPeriod, error) {
	var period model.AcademicPeriod
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND year = ? AND season = ?", facultyID, year, season).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepo) GetActiveByFaculty(ctx context.Context, facultyID int) (*model.AcademicPeriod, error) {
	var period model.AcademicPeriod
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND status = ?", facultyID, model.PeriodStatusActive).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepo) List(ctx context.Context, facultyID int) ([]model.AcademicPeriod, error) {
	var periods []model.AcademicPeriod
	db := r.db.WithContext(ctx)
	if facultyID > 0 {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Order("year DESC, season DESC").Find(&periods).Error
	return periods, err
}

func (r *periodRepo) Update(ctx context.Context, period *model.AcademicPeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}
