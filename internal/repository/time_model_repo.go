package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// TimeModelRepository 时间模型数据访问接口
type TimeModelRepository interface {
	// Create 在单个事务中写入模型及其全部节次行
	Create(ctx context.Context, timeModel *model.TimeModel, slots []model.TimeSlot) error
	GetByID(ctx context.Context, id int) (*model.TimeModel, error)
	GetByName(ctx context.Context, normalized string) (*model.TimeModel, error)
	List(ctx context.Context) ([]model.TimeModel, error)
	Delete(ctx context.Context, id int) error
	// CountPeriodRefs 统计引用该模型的学期数（模型被引用后不可变更）
	CountPeriodRefs(ctx context.Context, id int) (int64, error)
	SlotExists(ctx context.Context, timeModelID int, slotOrdinal int16) (bool, error)
	GetSlots(ctx context.Context, timeModelID int) ([]model.TimeSlot, error)
}

type timeModelRepo struct {
	db *gorm.DB
}

// NewTimeModelRepo 创建 TimeModelRepository 实例
func NewTimeModelRepo(db *gorm.DB) TimeModelRepository {
	return &timeModelRepo{db: db}
}

func (r *timeModelRepo) Create(ctx context.Context, timeModel *model.TimeModel, slots []model.TimeSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(timeModel).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].TimeModelID = timeModel.ID
		}
		return tx.Create(&slots).Error
	})
}

func (r *timeModelRepo) GetByID(ctx context.Context, id int) (*model.TimeModel, error) {
	var timeModel model.TimeModel
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot_ordinal ASC")
		}).
		Where("id = ?", id).
		First(&timeModel).Error
	if err != nil {
		return nil, err
	}
	return &timeModel, nil
}

func (r *timeModelRepo) GetByName(ctx context.Context, normalized string) (*model.TimeModel, error) {
	var timeModel model.TimeModel
	err := r.db.WithContext(ctx).
		Where("lower(btrim(model_name)) = ?", normalized).
		First(&timeModel).Error
	if err != nil {
		return nil, err
	}
	return &timeModel, nil
}

func (r *timeModelRepo) List(ctx context.Context) ([]model.TimeModel, error) {
	var timeModels []model.TimeModel
	err := r.db.WithContext(ctx).
		Order("model_name ASC").
		Find(&timeModels).Error
	return timeModels, err
}

func (r *timeModelRepo) Delete(ctx context.Context, id int) error {
	// 节次行随模型级联删除（外键 ON DELETE CASCADE）
	return r.db.WithContext(ctx).
		Delete(&model.TimeModel{}, id).Error
}

func (r *timeModelRepo) CountPeriodRefs(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AcademicPeriod{}).
		Where("time_model_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *timeModelRepo) SlotExists(ctx context.Context, timeModelID int, slotOrdinal int16) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("time_model_id = ? AND slot_ordinal = ?", timeModelID, slotOrdinal).
		Count(&count).Error
	return count > 0, err
}

func (r *timeModelRepo) GetSlots(ctx context.Context, timeModelID int) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("time_model_id = ?", timeModelID).
		Order("slot_ordinal ASC").
		Find(&slots).Error
	return slots, err
}
