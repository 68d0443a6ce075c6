package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ── 时间模型模块业务错误 ──

var (
	ErrTimeModelNotFound = errors.New("时间模型不存在")
	ErrDuplicateName     = errors.New("时间模型名称已存在")
	ErrModelInUse        = errors.New("时间模型已被学期引用，不可修改或删除")
	ErrInvalidDayStart   = errors.New("起始时间格式无效，应为 HH:MM")
)

// TimeModelService 时间模型业务接口
// 模型创建时一次性生成全部节次行；被学期引用后结构不可变
type TimeModelService interface {
	Create(ctx context.Context, req *dto.CreateTimeModelRequest) (*dto.TimeModelResponse, error)
	GetByID(ctx context.Context, id int) (*dto.TimeModelResponse, error)
	List(ctx context.Context) ([]dto.TimeModelResponse, error)
	Delete(ctx context.Context, id int) error
}

type timeModelService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeModelService 创建 TimeModelService 实例
func NewTimeModelService(repo *repository.Repository, logger *zap.Logger) TimeModelService {
	return &timeModelService{repo: repo, logger: logger}
}

// normalizeName 名称归一化：忽略大小写与首尾空白
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ────────────────────── Create ──────────────────────

func (s *timeModelService) Create(ctx context.Context, req *dto.CreateTimeModelRequest) (*dto.TimeModelResponse, error) {
	dayStart, err := time.Parse("15:04", req.DayStart)
	if err != nil {
		// 允许带秒的格式
		dayStart, err = time.Parse("15:04:05", req.DayStart)
		if err != nil {
			return nil, ErrInvalidDayStart
		}
	}

	// 名称唯一性（大小写/空白不敏感）
	if _, err := s.repo.TimeModel.GetByName(ctx, normalizeName(req.Name)); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询时间模型失败", zap.Error(err))
		return nil, err
	}

	timeModel := &model.TimeModel{
		ModelName:   strings.TrimSpace(req.Name),
		Description: req.Description,
		SlotMinutes: req.SlotMinutes,
		DayStart:    dayStart.Format("15:04:05"),
		SlotsPerDay: req.SlotsPerDay,
	}

	// 生成连续节次：start = dayStart + (ordinal-1)*slotMinutes
	slots := make([]model.TimeSlot, 0, req.SlotsPerDay)
	for ordinal := 1; ordinal <= req.SlotsPerDay; ordinal++ {
		start := dayStart.Add(time.Duration(ordinal-1) * time.Duration(req.SlotMinutes) * time.Minute)
		end := start.Add(time.Duration(req.SlotMinutes) * time.Minute)
		slots = append(slots, model.TimeSlot{
			SlotOrdinal: int16(ordinal),
			StartTime:   start.Format("15:04:05"),
			EndTime:     end.Format("15:04:05"),
		})
	}

	if err := s.repo.TimeModel.Create(ctx, timeModel, slots); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		s.logger.Error("创建时间模型失败", zap.Error(err))
		return nil, err
	}

	timeModel.Slots = slots
	return s.toResponse(timeModel), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *timeModelService) GetByID(ctx context.Context, id int) (*dto.TimeModelResponse, error) {
	timeModel, err := s.repo.TimeModel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeModelNotFound
		}
		s.logger.Error("查询时间模型失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(timeModel), nil
}

// ────────────────────── List ──────────────────────

func (s *timeModelService) List(ctx context.Context) ([]dto.TimeModelResponse, error) {
	timeModels, err := s.repo.TimeModel.List(ctx)
	if err != nil {
		s.logger.Error("列出时间模型失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimeModelResponse, 0, len(timeModels))
	for i := range timeModels {
		result = append(result, *s.toResponse(&timeModels[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *timeModelService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.TimeModel.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeModelNotFound
		}
		s.logger.Error("查询时间模型失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	// 已被学期引用的模型不可删除
	refs, err := s.repo.TimeModel.CountPeriodRefs(ctx, id)
	if err != nil {
		s.logger.Error("统计时间模型引用失败", zap.Error(err))
		return err
	}
	if refs > 0 {
		return ErrModelInUse
	}

	return s.repo.TimeModel.Delete(ctx, id)
}

// ────────────────────── 响应转换 ──────────────────────

func (s *timeModelService) toResponse(m *model.TimeModel) *dto.TimeModelResponse {
	resp := &dto.TimeModelResponse{
		ID:          m.ID,
		Name:        m.ModelName,
		Description: m.Description,
		SlotMinutes: m.SlotMinutes,
		DayStart:    m.DayStart,
		SlotsPerDay: m.SlotsPerDay,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	for _, slot := range m.Slots {
		resp.Slots = append(resp.Slots, dto.TimeSlotResponse{
			SlotOrdinal: slot.SlotOrdinal,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
		})
	}
	return resp
}

// formatDate 统一日期输出格式
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// parseDate 统一日期解析格式
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式无效 %q: %w", value, err)
	}
	return t, nil
}
