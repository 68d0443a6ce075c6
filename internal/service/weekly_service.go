package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ── 周课表模块业务错误 ──

var (
	ErrWeeklySlotNotFound = errors.New("周课表节次不存在")
	ErrInvalidDayOfWeek   = errors.New("星期编号必须在 1-6 之间")
	ErrUnknownSlot        = errors.New("节次序号超出学期时间模型范围")
	ErrSlotTaken          = errors.New("该节次已被占用")
	ErrUnassignedGroup    = errors.New("该班组在本学期未分配教师")
)

// WeeklyService 周课表业务接口
// 周课表是循环占用模式：只记录 (场地, 星期几, 节次) → 班组，
// 预约校验时按日期懒展开，不生成具体日期行
type WeeklyService interface {
	AddSlot(ctx context.Context, req *dto.AddWeeklySlotRequest) (*dto.WeeklyScheduleResponse, error)
	RemoveSlot(ctx context.Context, periodID, ambientID int, dayOfWeek, slotOrdinal int16) error
	ListByPeriod(ctx context.Context, periodID int) ([]dto.WeeklyScheduleResponse, error)
}

type weeklyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWeeklyService 创建 WeeklyService 实例
func NewWeeklyService(repo *repository.Repository, logger *zap.Logger) WeeklyService {
	return &weeklyService{repo: repo, logger: logger}
}

// ────────────────────── AddSlot ──────────────────────

func (s *weeklyService) AddSlot(ctx context.Context, req *dto.AddWeeklySlotRequest) (*dto.WeeklyScheduleResponse, error) {
	if req.DayOfWeek < 1 || req.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	period, err := s.repo.Period.GetByID(ctx, req.PeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	if period.Status == model.PeriodStatusClosed {
		return nil, ErrPeriodClosed
	}

	ambient, err := s.repo.Ambient.GetByID(ctx, req.AmbientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbientNotFound
		}
		s.logger.Error("查询场地失败", zap.Error(err))
		return nil, err
	}
	if !ambient.IsActive {
		return nil, ErrAmbientInactive
	}

	// 节次必须存在于学期的时间模型中
	exists, err := s.repo.TimeModel.SlotExists(ctx, period.TimeModelID, req.SlotOrdinal)
	if err != nil {
		s.logger.Error("查询节次失败", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownSlot
	}

	// 班组必须在本学期有任课分配
	assigned, err := s.repo.Assignment.Exists(ctx, req.PeriodID, req.GroupID)
	if err != nil {
		s.logger.Error("查询任课分配失败", zap.Error(err))
		return nil, err
	}
	if !assigned {
		return nil, ErrUnassignedGroup
	}

	// 模式按星期几在学期窗口内循环展开，落点不得压在已确认的预约单元上
	occupied, err := s.repo.Conflict.HasConfirmedSlotOnWeekday(ctx, req.AmbientID,
		period.StartDate, period.EndDate, req.DayOfWeek, period.TimeModelID, req.SlotOrdinal)
	if err != nil {
		s.logger.Error("冲突索引查询失败", zap.Error(err))
		return nil, err
	}
	if occupied {
		return nil, ErrSlotTaken
	}

	// 头行按 (学期, 场地, 星期几) 取或建
	header, err := s.repo.Weekly.GetHeader(ctx, req.PeriodID, req.AmbientID, req.DayOfWeek)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		header = &model.WeeklySchedule{
			AcademicPeriodID: req.PeriodID,
			AmbientID:        req.AmbientID,
			DayOfWeek:        req.DayOfWeek,
		}
		if err := s.repo.Weekly.CreateHeader(ctx, header); err != nil {
			if repository.IsUniqueViolation(err) {
				// 并发建头：重读即可
				header, err = s.repo.Weekly.GetHeader(ctx, req.PeriodID, req.AmbientID, req.DayOfWeek)
				if err != nil {
					return nil, err
				}
			} else {
				s.logger.Error("创建周课表头失败", zap.Error(err))
				return nil, err
			}
		}
	} else if err != nil {
		s.logger.Error("查询周课表头失败", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Weekly.GetSlot(ctx, header.ID, req.SlotOrdinal); err == nil {
		return nil, ErrSlotTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询周课表节次失败", zap.Error(err))
		return nil, err
	}

	slot := &model.WeeklySlot{
		WeeklyScheduleID: header.ID,
		SlotOrdinal:      req.SlotOrdinal,
		TimeModelID:      period.TimeModelID,
		GroupID:          req.GroupID,
	}
	if err := s.repo.Weekly.CreateSlot(ctx, slot); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		s.logger.Error("创建周课表节次失败", zap.Error(err))
		return nil, err
	}

	header.Slots = append(header.Slots, *slot)
	return s.toResponse(header), nil
}

// ────────────────────── RemoveSlot ──────────────────────

func (s *weeklyService) RemoveSlot(ctx context.Context, periodID, ambientID int, dayOfWeek, slotOrdinal int16) error {
	period, err := s.repo.Period.GetByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return err
	}
	if period.Status == model.PeriodStatusClosed {
		return ErrPeriodClosed
	}

	header, err := s.repo.Weekly.GetHeader(ctx, periodID, ambientID, dayOfWeek)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWeeklySlotNotFound
		}
		s.logger.Error("查询周课表头失败", zap.Error(err))
		return err
	}
	if _, err := s.repo.Weekly.GetSlot(ctx, header.ID, slotOrdinal); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWeeklySlotNotFound
		}
		s.logger.Error("查询周课表节次失败", zap.Error(err))
		return err
	}

	return s.repo.Weekly.DeleteSlot(ctx, header.ID, slotOrdinal)
}

// ────────────────────── ListByPeriod ──────────────────────

func (s *weeklyService) ListByPeriod(ctx context.Context, periodID int) ([]dto.WeeklyScheduleResponse, error) {
	headers, err := s.repo.Weekly.ListByPeriod(ctx, periodID)
	if err != nil {
		s.logger.Error("列出周课表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeeklyScheduleResponse, 0, len(headers))
	for i := range headers {
		result = append(result, *s.toResponse(&headers[i]))
	}
	return result, nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *weeklyService) toResponse(h *model.WeeklySchedule) *dto.WeeklyScheduleResponse {
	resp := &dto.WeeklyScheduleResponse{
		ID:        h.ID,
		PeriodID:  h.AcademicPeriodID,
		AmbientID: h.AmbientID,
		DayOfWeek: h.DayOfWeek,
		Slots:     make([]dto.WeeklySlotResponse, 0, len(h.Slots)),
	}
	for _, slot := range h.Slots {
		item := dto.WeeklySlotResponse{
			SlotOrdinal: slot.SlotOrdinal,
			GroupID:     slot.GroupID,
		}
		if slot.Group != nil {
			item.GroupName = slot.Group.GroupName
		}
		resp.Slots = append(resp.Slots, item)
	}
	return resp
}
