package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ── 预约模块业务错误 ──

var (
	ErrReservationNotFound = errors.New("预约不存在")
	ErrDoubleBooking       = errors.New("场地在该日期该节次已被占用")
	ErrAlreadyCancelled    = errors.New("预约已取消")
	ErrOutOfScope          = errors.New("无权操作该院系的资源")
	ErrDateOutOfPeriod     = errors.New("预约日期不在学期范围内")
)

// DoubleBookingError 携带冲突单元明细的双重预订错误
// errors.Is(err, ErrDoubleBooking) 成立
type DoubleBookingError struct {
	AmbientID   int
	Date        time.Time
	SlotOrdinal int16
}

func (e *DoubleBookingError) Error() string {
	return fmt.Sprintf("场地 %d 在 %s 第 %d 节已被占用",
		e.AmbientID, e.Date.Format("2006-01-02"), e.SlotOrdinal)
}

// Unwrap 归并到统一的双重预订错误种类
func (e *DoubleBookingError) Unwrap() error { return ErrDoubleBooking }

// ReservationService 预约业务接口
// 候选占用集合 = 场地 × 日期 × 节次 的笛卡尔积，全量写入或全量不写；
// 取消翻转头行与占用单元的状态，行保留但不再参与冲突判定
type ReservationService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	Cancel(ctx context.Context, actor Actor, id int) (*dto.ReservationResponse, error)
	GetByID(ctx context.Context, id int) (*dto.ReservationResponse, error)
	List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, error)
}

type reservationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReservationService 创建 ReservationService 实例
func NewReservationService(repo *repository.Repository, logger *zap.Logger) ReservationService {
	return &reservationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *reservationService) Create(ctx context.Context, actor Actor, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, req.PeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	switch period.Status {
	case model.PeriodStatusActive:
	case model.PeriodStatusClosed:
		return nil, ErrPeriodClosed
	default:
		return nil, ErrPeriodNotActive
	}
	if !actor.CanAccessFaculty(period.FacultyID) {
		return nil, ErrOutOfScope
	}

	ambientIDs := dedupInts(req.AmbientIDs)
	slotOrdinals := dedupOrdinals(req.SlotOrdinals)
	groupIDs := dedupInts(req.GroupIDs)

	dates, err := s.parseDates(req.Dates, period)
	if err != nil {
		return nil, err
	}

	// 场地必须全部存在且激活
	ambients, err := s.repo.Ambient.GetByIDs(ctx, ambientIDs)
	if err != nil {
		s.logger.Error("查询场地失败", zap.Error(err))
		return nil, err
	}
	if len(ambients) != len(ambientIDs) {
		return nil, ErrAmbientNotFound
	}
	for i := range ambients {
		if !ambients[i].IsActive {
			return nil, ErrAmbientInactive
		}
	}

	// 节次必须全部存在于学期的时间模型中
	for _, ordinal := range slotOrdinals {
		exists, err := s.repo.TimeModel.SlotExists(ctx, period.TimeModelID, ordinal)
		if err != nil {
			s.logger.Error("查询节次失败", zap.Error(err))
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownSlot
		}
	}

	// 班组是附加元数据，但必须已在本学期分配教师
	for _, groupID := range groupIDs {
		assigned, err := s.repo.Assignment.Exists(ctx, req.PeriodID, groupID)
		if err != nil {
			s.logger.Error("查询任课分配失败", zap.Error(err))
			return nil, err
		}
		if !assigned {
			return nil, ErrUnassignedGroup
		}
	}

	reservation := &model.Reservation{
		AcademicPeriodID: req.PeriodID,
		RequesterCI:      actor.PersonID,
		Status:           model.ReservationStatusConfirmed,
		Reason:           req.Reason,
	}
	for _, groupID := range groupIDs {
		reservation.Groups = append(reservation.Groups, model.ReservationGroup{
			GroupID:          groupID,
			AcademicPeriodID: req.PeriodID,
		})
	}
	for _, date := range dates {
		reservation.Dates = append(reservation.Dates, model.ReservedDate{ReservedDate: date})
	}
	for _, ambientID := range ambientIDs {
		reservation.Ambients = append(reservation.Ambients, model.ReservationAmbient{AmbientID: ambientID})
	}
	for _, ambientID := range ambientIDs {
		for _, date := range dates {
			for _, ordinal := range slotOrdinals {
				reservation.Slots = append(reservation.Slots, model.ReservationSlot{
					AmbientID:    ambientID,
					ReservedDate: date,
					SlotOrdinal:  ordinal,
					TimeModelID:  period.TimeModelID,
					Status:       model.ReservationStatusConfirmed,
				})
			}
		}
	}

	// 冲突预检与写入在同一事务内；提交竞态由唯一约束兜底，
	// 任一冲突使整个预约回滚（全量写入或全量不写）
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for i := range reservation.Slots {
			slot := &reservation.Slots[i]
			occupied, err := tx.Conflict.IsOccupied(ctx, req.PeriodID,
				slot.AmbientID, slot.ReservedDate, slot.TimeModelID, slot.SlotOrdinal)
			if err != nil {
				s.logger.Error("冲突索引查询失败", zap.Error(err))
				return err
			}
			if occupied {
				return &DoubleBookingError{
					AmbientID:   slot.AmbientID,
					Date:        slot.ReservedDate,
					SlotOrdinal: slot.SlotOrdinal,
				}
			}
		}
		if err := tx.Reservation.Create(ctx, reservation); err != nil {
			if repository.IsUniqueViolation(err) {
				first := reservation.Slots[0]
				return &DoubleBookingError{
					AmbientID:   first.AmbientID,
					Date:        first.ReservedDate,
					SlotOrdinal: first.SlotOrdinal,
				}
			}
			s.logger.Error("创建预约失败", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("预约已创建",
		zap.Int("reservation_id", reservation.ID),
		zap.Int("period_id", req.PeriodID),
		zap.String("requester_ci", actor.PersonID),
		zap.Int("slot_count", len(reservation.Slots)))
	return s.toResponse(reservation), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *reservationService) Cancel(ctx context.Context, actor Actor, id int) (*dto.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	period, err := s.repo.Period.GetByID(ctx, reservation.AcademicPeriodID)
	if err != nil {
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	// 发起人本人或院系范围内的操作者可取消
	if actor.PersonID != reservation.RequesterCI && !actor.CanAccessFaculty(period.FacultyID) {
		return nil, ErrOutOfScope
	}

	if reservation.Status == model.ReservationStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	reservation.Status = model.ReservationStatusCancelled
	reservation.CancelledAt = &now
	// 头行状态与占用单元状态在同一事务内翻转：
	// 单元脱离部分唯一索引后，同一单元即可被重新预约
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Reservation.Update(ctx, reservation); err != nil {
			return err
		}
		return tx.Reservation.ReleaseSlots(ctx, reservation.ID)
	})
	if err != nil {
		s.logger.Error("取消预约失败", zap.Error(err))
		return nil, err
	}
	for i := range reservation.Slots {
		reservation.Slots[i].Status = model.ReservationStatusCancelled
	}

	s.logger.Info("预约已取消", zap.Int("reservation_id", id), zap.String("by", actor.PersonID))
	return s.toResponse(reservation), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *reservationService) GetByID(ctx context.Context, id int) (*dto.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(reservation), nil
}

// ────────────────────── List ──────────────────────

func (s *reservationService) List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.List(ctx, repository.ReservationFilter{
		PeriodID:    req.PeriodID,
		RequesterCI: req.RequesterCI,
		Status:      req.Status,
	})
	if err != nil {
		s.logger.Error("列出预约失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		result = append(result, *s.toResponse(&reservations[i]))
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

// parseDates 解析并去重日期，同时校验落在学期窗口内
func (s *reservationService) parseDates(values []string, period *model.AcademicPeriod) ([]time.Time, error) {
	seen := make(map[string]struct{}, len(values))
	dates := make([]time.Time, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}

		date, err := parseDate(value)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if date.Before(period.StartDate) || date.After(period.EndDate) {
			return nil, ErrDateOutOfPeriod
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func dedupInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Ints(result)
	return result
}

func dedupOrdinals(values []int16) []int16 {
	seen := make(map[int16]struct{}, len(values))
	result := make([]int16, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ────────────────────── 响应转换 ──────────────────────

func (s *reservationService) toResponse(r *model.Reservation) *dto.ReservationResponse {
	resp := &dto.ReservationResponse{
		ID:          r.ID,
		PeriodID:    r.AcademicPeriodID,
		RequesterCI: r.RequesterCI,
		Status:      r.Status,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.CancelledAt != nil {
		resp.CancelledAt = r.CancelledAt.Format(time.RFC3339)
	}
	for _, g := range r.Groups {
		resp.GroupIDs = append(resp.GroupIDs, g.GroupID)
	}
	for _, d := range r.Dates {
		resp.Dates = append(resp.Dates, formatDate(d.ReservedDate))
	}
	for _, a := range r.Ambients {
		resp.AmbientIDs = append(resp.AmbientIDs, a.AmbientID)
	}
	for _, slot := range r.Slots {
		resp.Slots = append(resp.Slots, dto.ReservationSlotResponse{
			AmbientID:   slot.AmbientID,
			Date:        formatDate(slot.ReservedDate),
			SlotOrdinal: slot.SlotOrdinal,
		})
	}
	return resp
}
