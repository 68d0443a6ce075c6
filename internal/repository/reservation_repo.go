package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

// ReservationFilter 预约列表查询条件
type ReservationFilter struct {
	PeriodID    int
	RequesterCI string
	Status      string
}

// ReservationRepository 预约数据访问接口
type ReservationRepository interface {
	// Create 写入预约头及其全部子行；必须在外层事务内调用，
	// 部分唯一索引 uq_no_double_booking 冲突会使整个事务回滚
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id int) (*model.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error)
	Update(ctx context.Context, reservation *model.Reservation) error

	// ReleaseSlots 将预约的全部占用单元翻转为 CANCELLED，
	// 使其脱离部分唯一索引的覆盖范围（与头行状态在同一事务内维护）
	ReleaseSlots(ctx context.Context, reservationID int) error

	// CountByGroup 统计学期内引用该班组的有效预约数（解除任课分配前的占用检查）
	CountByGroup(ctx context.Context, periodID, groupID int) (int64, error)
	ListSlotsByDate(ctx context.Context, ambientID int, date time.Time) ([]model.ReservationSlot, error)
}

type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepo 创建 ReservationRepository 实例
func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, reservation *model.Reservation) error {
	// 子行（groups/dates/ambients/slots）通过关联一并写入
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepo) GetByID(ctx context.Context, id int) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Groups").
		Preload("Dates").
		Preload("Ambients").
		Preload("Slots").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepo) List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error) {
	var reservations []model.Reservation
	db := r.db.WithContext(ctx)
	if filter.PeriodID > 0 {
		db = db.Where("academic_period_id = ?", filter.PeriodID)
	}
	if filter.RequesterCI != "" {
		db = db.Where("requester_ci = ?", filter.RequesterCI)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	err := db.Order("created_at DESC").Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) Update(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepo) ReleaseSlots(ctx context.Context, reservationID int) error {
	return r.db.WithContext(ctx).
		Model(&model.ReservationSlot{}).
		Where("reservation_id = ?", reservationID).
		Update("status", model.ReservationStatusCancelled).Error
}

func (r *reservationRepo) CountByGroup(ctx context.Context, periodID, groupID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ReservationGroup{}).
		Where("academic_period_id = ? AND group_id = ?", periodID, groupID).
		Count(&count).Error
	return count, err
}

func (r *reservationRepo) ListSlotsByDate(ctx context.Context, ambientID int, date time.Time) ([]model.ReservationSlot, error) {
	var slots []model.ReservationSlot
	err := r.db.WithContext(ctx).
		Where("ambient_id = ? AND reserved_date = ? AND status = ?",
			ambientID, date, model.ReservationStatusConfirmed).
		Order("slot_ordinal ASC").
		Find(&slots).Error
	return slots, err
}
