package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/repository"
)

// ExportService 导出业务接口
// 周课表导出为 xlsx 网格（节次 × 星期，每场地一个工作表）；
// 预约导出为 iCalendar，连续节次合并为单个事件
type ExportService interface {
	WeeklyScheduleXLSX(ctx context.Context, periodID int) ([]byte, error)
	ReservationICS(ctx context.Context, reservationID int) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var dayNames = [7]string{"", "周一", "周二", "周三", "周四", "周五", "周六"}

// ────────────────────── WeeklyScheduleXLSX ──────────────────────

func (s *exportService) WeeklyScheduleXLSX(ctx context.Context, periodID int) ([]byte, error) {
	period, err := s.repo.Period.GetByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	slots, err := s.repo.TimeModel.GetSlots(ctx, period.TimeModelID)
	if err != nil {
		s.logger.Error("查询节次失败", zap.Error(err))
		return nil, err
	}
	headers, err := s.repo.Weekly.ListByPeriod(ctx, periodID)
	if err != nil {
		s.logger.Error("列出周课表失败", zap.Error(err))
		return nil, err
	}

	// 场地名称映射
	ambientIDSet := make(map[int]struct{}, len(headers))
	for i := range headers {
		ambientIDSet[headers[i].AmbientID] = struct{}{}
	}
	ambientIDs := make([]int, 0, len(ambientIDSet))
	for id := range ambientIDSet {
		ambientIDs = append(ambientIDs, id)
	}
	sort.Ints(ambientIDs)

	ambientNames := make(map[int]string, len(ambientIDs))
	if len(ambientIDs) > 0 {
		ambients, err := s.repo.Ambient.GetByIDs(ctx, ambientIDs)
		if err != nil {
			s.logger.Error("查询场地失败", zap.Error(err))
			return nil, err
		}
		for i := range ambients {
			ambientNames[ambients[i].ID] = ambients[i].AmbientName
		}
	}

	// (场地, 星期, 节次) → 班组名
	type cellKey struct {
		ambientID int
		day       int16
		ordinal   int16
	}
	cells := make(map[cellKey]string)
	for i := range headers {
		h := &headers[i]
		for _, slot := range h.Slots {
			label := fmt.Sprintf("班组 %d", slot.GroupID)
			if slot.Group != nil {
				label = slot.Group.GroupName
			}
			cells[cellKey{h.AmbientID, h.DayOfWeek, slot.SlotOrdinal}] = label
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for sheetIdx, ambientID := range ambientIDs {
		name := ambientNames[ambientID]
		if name == "" {
			name = fmt.Sprintf("场地 %d", ambientID)
		}
		sheet := fmt.Sprintf("%d-%s", ambientID, name)
		// Excel 工作表名上限 31 字符，按 rune 截断避免切碎多字节字符
		if runes := []rune(sheet); len(runes) > 31 {
			sheet = string(runes[:31])
		}
		if sheetIdx == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		// 表头：第一列节次时间，其后周一至周六
		if err := f.SetCellValue(sheet, "A1", "节次"); err != nil {
			return nil, err
		}
		for day := int16(1); day <= 6; day++ {
			cell, _ := excelize.CoordinatesToCellName(int(day)+1, 1)
			if err := f.SetCellValue(sheet, cell, dayNames[day]); err != nil {
				return nil, err
			}
		}

		for row, slot := range slots {
			cell, _ := excelize.CoordinatesToCellName(1, row+2)
			label := fmt.Sprintf("%d (%s-%s)", slot.SlotOrdinal,
				slot.StartTime[:5], slot.EndTime[:5])
			if err := f.SetCellValue(sheet, cell, label); err != nil {
				return nil, err
			}
			for day := int16(1); day <= 6; day++ {
				if group, ok := cells[cellKey{ambientID, day, slot.SlotOrdinal}]; ok {
					cell, _ := excelize.CoordinatesToCellName(int(day)+1, row+2)
					if err := f.SetCellValue(sheet, cell, group); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("写出周课表工作簿失败", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── ReservationICS ──────────────────────

func (s *exportService) ReservationICS(ctx context.Context, reservationID int) (string, error) {
	reservation, err := s.repo.Reservation.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.Error(err))
		return "", err
	}
	period, err := s.repo.Period.GetByID(ctx, reservation.AcademicPeriodID)
	if err != nil {
		s.logger.Error("查询学期失败", zap.Error(err))
		return "", err
	}

	// 节次时刻表
	slots, err := s.repo.TimeModel.GetSlots(ctx, period.TimeModelID)
	if err != nil {
		s.logger.Error("查询节次失败", zap.Error(err))
		return "", err
	}
	slotTimes := make(map[int16]model.TimeSlot, len(slots))
	for _, slot := range slots {
		slotTimes[slot.SlotOrdinal] = slot
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//api-reservas//ES")

	// 同一 (场地, 日期) 内连续节次合并为单个事件
	type dayKey struct {
		ambientID int
		date      string
	}
	grouped := make(map[dayKey][]int16)
	dates := make(map[dayKey]time.Time)
	for _, slot := range reservation.Slots {
		key := dayKey{slot.AmbientID, formatDate(slot.ReservedDate)}
		grouped[key] = append(grouped[key], slot.SlotOrdinal)
		dates[key] = slot.ReservedDate
	}

	keys := make([]dayKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].ambientID < keys[j].ambientID
	})

	for _, key := range keys {
		ordinals := grouped[key]
		sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })

		for _, run := range contiguousRuns(ordinals) {
			startSlot, okStart := slotTimes[run[0]]
			endSlot, okEnd := slotTimes[run[len(run)-1]]
			if !okStart || !okEnd {
				continue
			}
			start, err := combineDateTime(dates[key], startSlot.StartTime)
			if err != nil {
				return "", err
			}
			end, err := combineDateTime(dates[key], endSlot.EndTime)
			if err != nil {
				return "", err
			}

			uid := fmt.Sprintf("reservation-%d-%d-%s-%d@api-reservas",
				reservation.ID, key.ambientID, key.date, run[0])
			event := cal.AddEvent(uid)
			event.SetCreatedTime(reservation.CreatedAt)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(reservation.Reason)
			event.SetLocation(fmt.Sprintf("场地 %d", key.ambientID))
			event.SetDescription(fmt.Sprintf("预约 #%d · 申请人 %s", reservation.ID, reservation.RequesterCI))
			if reservation.Status == model.ReservationStatusCancelled {
				event.SetStatus(ics.ObjectStatusCancelled)
			} else {
				event.SetStatus(ics.ObjectStatusConfirmed)
			}
		}
	}

	return cal.Serialize(), nil
}

// contiguousRuns 把有序节次序列切分为连续段
func contiguousRuns(ordinals []int16) [][]int16 {
	var runs [][]int16
	for _, ordinal := range ordinals {
		if n := len(runs); n > 0 {
			last := runs[n-1]
			if ordinal == last[len(last)-1]+1 {
				runs[n-1] = append(last, ordinal)
				continue
			}
		}
		runs = append(runs, []int16{ordinal})
	}
	return runs
}

// combineDateTime 把日期与 "HH:MM:SS" 时刻合成时间点
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("时刻格式无效 %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
