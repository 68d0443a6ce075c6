package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
	"github.com/JosuePerezValenzuela/Api-Reservas/internal/model"
)

func TestWeeklyAddSlotRules(t *testing.T) {
	repo, mocks := newTestRepo()
	svc := NewWeeklyService(repo, zap.NewNop())
	ctx := context.Background()

	period := seedPeriod(mocks, 1, model.PeriodStatusActive, 4)
	ambient := seedAmbient(mocks, 1, "691A", true)
	group := seedAssignedGroup(mocks, period.ID, "1A", "1234567")
	unassigned := &model.Group{GroupName: "2B"}
	if err := mocks.group.Create(ctx, unassigned); err != nil {
		t.Fatalf("预置班组失败: %v", err)
	}

	base := dto.AddWeeklySlotRequest{
		PeriodID:    period.ID,
		AmbientID:   ambient.ID,
		DayOfWeek:   2,
		SlotOrdinal: 3,
		GroupID:     group.ID,
	}

	// 节次必须在学期时间模型内
	bad := base
	bad.SlotOrdinal = 99
	if _, err := svc.AddSlot(ctx, &bad); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("越界节次应返回 ErrUnknownSlot, 实际 %v", err)
	}

	// 班组必须已分配教师
	bad = base
	bad.GroupID = unassigned.ID
	if _, err := svc.AddSlot(ctx, &bad); !errors.Is(err, ErrUnassignedGroup) {
		t.Fatalf("未分配班组应返回 ErrUnassignedGroup, 实际 %v", err)
	}

	resp, err := svc.AddSlot(ctx, &base)
	if err != nil {
		t.Fatalf("合法添加应成功: %v", err)
	}
	if len(resp.Slots) != 1 || resp.Slots[0].SlotOrdinal != 3 {
		t.Fatalf("响应应包含节次 3, 实际 %+v", resp.Slots)
	}

	// 同 (场地, 星期, 节次) 不可重复占用
	other := seedAssignedGroup(mocks, period.ID, "3C", "1234567")
	taken := base
	taken.GroupID = other.ID
	if _, err := svc.AddSlot(ctx, &taken); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("已占用节次应返回 ErrSlotTaken, 实际 %v", err)
	}

	// 同一天其他节次可用（头行复用）
	second := base
	second.SlotOrdinal = 4
	if _, err := svc.AddSlot(ctx, &second); err != nil {
		t.Fatalf("同头行其他节次应成功: %v", err)
	}
}

func TestWeeklyAddSlotRejectsConfirmedReservation(t *testing.T) {
	repo, mocks := newTestRepo()
	svc := NewWeeklyService(repo, zap.NewNop())
	reservationSvc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()

	period := seedPeriod(mocks, 1, model.PeriodStatusActive, 4)
	ambient := seedAmbient(mocks, 1, "691A", true)
	group := seedAssignedGroup(mocks, period.ID, "1A", "1234567")

	// 周二（2025-03-11）第 3 节已被确认预约占用
	resp, err := reservationSvc.Create(ctx, adminActor, &dto.CreateReservationRequest{
		PeriodID:     period.ID,
		Reason:       "期中考试",
		AmbientIDs:   []int{ambient.ID},
		Dates:        []string{tuesday},
		SlotOrdinals: []int16{3},
	})
	if err != nil {
		t.Fatalf("预置预约失败: %v", err)
	}

	base := dto.AddWeeklySlotRequest{
		PeriodID:    period.ID,
		AmbientID:   ambient.ID,
		DayOfWeek:   2,
		SlotOrdinal: 3,
		GroupID:     group.ID,
	}

	// 模式在周二展开会压到该预约单元
	if _, err := svc.AddSlot(ctx, &base); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("与确认预约冲突应返回 ErrSlotTaken, 实际 %v", err)
	}

	// 周三同节次、周二其他节次均无冲突
	other := base
	other.DayOfWeek = 3
	if _, err := svc.AddSlot(ctx, &other); err != nil {
		t.Fatalf("周三同节次应成功: %v", err)
	}
	other = base
	other.SlotOrdinal = 4
	if _, err := svc.AddSlot(ctx, &other); err != nil {
		t.Fatalf("周二其他节次应成功: %v", err)
	}

	// 预约取消后占用释放，模式可以补上
	if _, err := reservationSvc.Cancel(ctx, adminActor, resp.ID); err != nil {
		t.Fatalf("取消预约失败: %v", err)
	}
	if _, err := svc.AddSlot(ctx, &base); err != nil {
		t.Fatalf("取消后添加模式应成功: %v", err)
	}
}

func TestWeeklyAddSlotRejectsClosedPeriodAndInactiveAmbient(t *testing.T) {
	repo, mocks := newTestRepo()
	svc := NewWeeklyService(repo, zap.NewNop())
	ctx := context.Background()

	closed := seedPeriod(mocks, 1, model.PeriodStatusClosed, 4)
	active := seedPeriod(mocks, 2, model.PeriodStatusActive, 4)
	ambient := seedAmbient(mocks, 1, "691A", true)
	inactive := seedAmbient(mocks, 2, "废弃教室", false)
	group := seedAssignedGroup(mocks, active.ID, "1A", "1234567")

	if _, err := svc.AddSlot(ctx, &dto.AddWeeklySlotRequest{
		PeriodID: closed.ID, AmbientID: ambient.ID, DayOfWeek: 2, SlotOrdinal: 1, GroupID: group.ID,
	}); !errors.Is(err, ErrPeriodClosed) {
		t.Fatalf("关闭学期应返回 ErrPeriodClosed, 实际 %v", err)
	}

	if _, err := svc.AddSlot(ctx, &dto.AddWeeklySlotRequest{
		PeriodID: active.ID, AmbientID: inactive.ID, DayOfWeek: 2, SlotOrdinal: 1, GroupID: group.ID,
	}); !errors.Is(err, ErrAmbientInactive) {
		t.Fatalf("停用场地应返回 ErrAmbientInactive, 实际 %v", err)
	}
}

func TestWeeklyRemoveSlot(t *testing.T) {
	repo, mocks := newTestRepo()
	svc := NewWeeklyService(repo, zap.NewNop())
	ctx := context.Background()

	period := seedPeriod(mocks, 1, model.PeriodStatusActive, 4)
	ambient := seedAmbient(mocks, 1, "691A", true)
	group := seedAssignedGroup(mocks, period.ID, "1A", "1234567")

	if _, err := svc.AddSlot(ctx, &dto.AddWeeklySlotRequest{
		PeriodID: period.ID, AmbientID: ambient.ID, DayOfWeek: 2, SlotOrdinal: 3, GroupID: group.ID,
	}); err != nil {
		t.Fatalf("添加节次失败: %v", err)
	}

	if err := svc.RemoveSlot(ctx, period.ID, ambient.ID, 2, 3); err != nil {
		t.Fatalf("删除节次应成功: %v", err)
	}
	if err := svc.RemoveSlot(ctx, period.ID, ambient.ID, 2, 3); !errors.Is(err, ErrWeeklySlotNotFound) {
		t.Fatalf("重复删除应返回 ErrWeeklySlotNotFound, 实际 %v", err)
	}
}
