package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// ConflictIndex 冲突索引：回答"某场地在某日期某节次是否已被占用"
// 单一抽象、双数据源：已确认预约的具体节次 + 按星期几懒展开的周课表模式。
// 索引本身只做读判定；写入侧的原子占用由 reservation_slots 上的
// 部分唯一索引 uq_no_double_booking 在事务提交时保证。
type ConflictIndex interface {
	IsOccupied(ctx context.Context, periodID, ambientID int, date time.Time, timeModelID int, slotOrdinal int16) (bool, error)

	// HasConfirmedSlotOnWeekday 判断学期窗口内是否存在落在指定星期几的
	// 已确认预约占用单元；周课表添加模式前的反向冲突检查
	HasConfirmedSlotOnWeekday(ctx context.Context, ambientID int, startDate, endDate time.Time, dayOfWeek int16, timeModelID int, slotOrdinal int16) (bool, error)
}

type conflictIndex struct {
	db *gorm.DB
}

// NewConflictIndex 创建 ConflictIndex 实例
func NewConflictIndex(db *gorm.DB) ConflictIndex {
	return &conflictIndex{db: db}
}

func (c *conflictIndex) IsOccupied(ctx context.Context, periodID, ambientID int, date time.Time, timeModelID int, slotOrdinal int16) (bool, error) {
	// 数据源一：已确认预约占用的具体节次（单元状态随头行同事务维护）
	var count int64
	err := c.db.WithContext(ctx).
		Model(&model.ReservationSlot{}).
		Where("ambient_id = ?", ambientID).
		Where("reserved_date = ?", date).
		Where("time_model_id = ?", timeModelID).
		Where("slot_ordinal = ?", slotOrdinal).
		Where("status = ?", model.ReservationStatusConfirmed).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	// 数据源二：周课表模式，按 日期→星期几 展开
	// 周日没有周课表（day_of_week 1..6），不可能命中
	dow := DayOfWeek(date)
	if dow == 0 {
		return false, nil
	}

	err = c.db.WithContext(ctx).
		Model(&model.WeeklySlot{}).
		Joins("JOIN weekly_schedules ws ON ws.id = weekly_slots.weekly_schedule_id").
		Where("ws.academic_period_id = ?", periodID).
		Where("ws.ambient_id = ?", ambientID).
		Where("ws.day_of_week = ?", dow).
		Where("weekly_slots.slot_ordinal = ?", slotOrdinal).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *conflictIndex) HasConfirmedSlotOnWeekday(ctx context.Context, ambientID int, startDate, endDate time.Time, dayOfWeek int16, timeModelID int, slotOrdinal int16) (bool, error) {
	// ISODOW: 周一=1 .. 周六=6，与周课表的星期编号一致；周日(7)不会被传入
	var count int64
	err := c.db.WithContext(ctx).
		Model(&model.ReservationSlot{}).
		Where("ambient_id = ?", ambientID).
		Where("reserved_date BETWEEN ? AND ?", startDate, endDate).
		Where("time_model_id = ?", timeModelID).
		Where("slot_ordinal = ?", slotOrdinal).
		Where("status = ?", model.ReservationStatusConfirmed).
		Where("EXTRACT(ISODOW FROM reserved_date) = ?", dayOfWeek).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DayOfWeek 将日期映射到周课表的星期编号：1=周一 .. 6=周六，周日返回 0
func DayOfWeek(date time.Time) int16 {
	switch wd := date.Weekday(); wd {
	case time.Sunday:
		return 0
	default:
		return int16(wd)
	}
}
