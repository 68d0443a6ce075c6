package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// WeeklyRepository 周课表数据访问接口
type WeeklyRepository interface {
	GetHeader(ctx context.Context, periodID, ambientID int, dayOfWeek int16) (*model.WeeklySchedule, error)
	CreateHeader(ctx context.Context, header *model.WeeklySchedule) error
	ListByPeriod(ctx context.Context, periodID int) ([]model.WeeklySchedule, error)

	GetSlot(ctx context.Context, headerID int, slotOrdinal int16) (*model.WeeklySlot, error)
	CreateSlot(ctx context.Context, slot *model.WeeklySlot) error
	DeleteSlot(ctx context.Context, headerID int, slotOrdinal int16) error

	// CountByGroup 统计学期内引用该班组的周课表节次数（解除任课分配前的占用检查）
	CountByGroup(ctx context.Context, periodID, groupID int) (int64, error)
}

type weeklyRepo struct {
	db *gorm.DB
}

// NewWeeklyRepo 创建 WeeklyRepository 实例
func NewWeeklyRepo(db *gorm.DB) WeeklyRepository {
	return &weeklyRepo{db: db}
}

func (r *weeklyRepo) GetHeader(ctx context.Context, periodID, ambientID int, dayOfWeek int16) (*model.WeeklySchedule, error) {
	var header model.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("academic_period_id = ? AND ambient_id = ? AND day_of_week = ?", periodID, ambientID, dayOfWeek).
		First(&header).Error
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *weeklyRepo) CreateHeader(ctx context.Context, header *model.WeeklySchedule) error {
	return r.db.WithContext(ctx).Create(header).Error
}

func (r *weeklyRepo) ListByPeriod(ctx context.Context, periodID int) ([]model.WeeklySchedule, error) {
	var headers []model.WeeklySchedule
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot_ordinal ASC")
		}).
		Preload("Slots.Group").
		Where("academic_period_id = ?", periodID).
		Order("ambient_id ASC, day_of_week ASC").
		Find(&headers).Error
	return headers, err
}

func (r *weeklyRepo) GetSlot(ctx context.Context, headerID int, slotOrdinal int16) (*model.WeeklySlot, error) {
	var slot model.WeeklySlot
	err := r.db.WithContext(ctx).
		Where("weekly_schedule_id = ? AND slot_ordinal = ?", headerID, slotOrdinal).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *weeklyRepo) CreateSlot(ctx context.Context, slot *model.WeeklySlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *weeklyRepo) DeleteSlot(ctx context.Context, headerID int, slotOrdinal int16) error {
	return r.db.WithContext(ctx).
		Where("weekly_schedule_id = ? AND slot_ordinal = ?", headerID, slotOrdinal).
		Delete(&model.WeeklySlot{}).Error
}

func (r *weeklyRepo) CountByGroup(ctx context.Context, periodID, groupID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WeeklySlot{}).
		Joins("JOIN weekly_schedules ws ON ws.id = weekly_slots.weekly_schedule_id").
		Where("ws.academic_period_id = ? AND weekly_slots.group_id = ?", periodID, groupID).
		Count(&count).Error
	return count, err
}
