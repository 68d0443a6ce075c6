package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JosuePerezValenzuela/Api-Reservas/internal/dto"
)

func TestTimeModelCreateGeneratesContiguousSlots(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewTimeModelService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), &dto.CreateTimeModelRequest{
		Name:        "标准 45 分钟",
		SlotMinutes: 45,
		DayStart:    "06:45",
		SlotsPerDay: 3,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if len(resp.Slots) != 3 {
		t.Fatalf("应生成 3 个节次, 实际 %d", len(resp.Slots))
	}
	want := []struct {
		ordinal int16
		start   string
		end     string
	}{
		{1, "06:45:00", "07:30:00"},
		{2, "07:30:00", "08:15:00"},
		{3, "08:15:00", "09:00:00"},
	}
	for i, w := range want {
		got := resp.Slots[i]
		if got.SlotOrdinal != w.ordinal || got.StartTime != w.start || got.EndTime != w.end {
			t.Errorf("节次 %d 应为 (%s-%s), 实际 (%s-%s)", w.ordinal, w.start, w.end, got.StartTime, got.EndTime)
		}
	}
}

func TestTimeModelCreateRejectsDuplicateName(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewTimeModelService(repo, zap.NewNop())
	ctx := context.Background()

	req := &dto.CreateTimeModelRequest{
		Name:        "标准模型",
		SlotMinutes: 45,
		DayStart:    "06:45",
		SlotsPerDay: 2,
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 大小写与空白不敏感
	dup := &dto.CreateTimeModelRequest{
		Name:        "  标准模型 ",
		SlotMinutes: 60,
		DayStart:    "08:00",
		SlotsPerDay: 4,
	}
	if _, err := svc.Create(ctx, dup); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("重名创建应返回 ErrDuplicateName, 实际 %v", err)
	}
}

func TestTimeModelCreateRejectsBadDayStart(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewTimeModelService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), &dto.CreateTimeModelRequest{
		Name:        "坏时间",
		SlotMinutes: 45,
		DayStart:    "25:99",
		SlotsPerDay: 2,
	})
	if !errors.Is(err, ErrInvalidDayStart) {
		t.Fatalf("非法起始时间应返回 ErrInvalidDayStart, 实际 %v", err)
	}
}

func TestTimeModelDeleteBlockedWhenReferenced(t *testing.T) {
	repo, mocks := newTestRepo()
	svc := NewTimeModelService(repo, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateTimeModelRequest{
		Name:        "被引用模型",
		SlotMinutes: 45,
		DayStart:    "06:45",
		SlotsPerDay: 2,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	mocks.timeModel.periodRefs[resp.ID] = 1
	if err := svc.Delete(ctx, resp.ID); !errors.Is(err, ErrModelInUse) {
		t.Fatalf("被学期引用的模型删除应返回 ErrModelInUse, 实际 %v", err)
	}

	mocks.timeModel.periodRefs[resp.ID] = 0
	if err := svc.Delete(ctx, resp.ID); err != nil {
		t.Fatalf("无引用后删除应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, resp.ID); !errors.Is(err, ErrTimeModelNotFound) {
		t.Fatalf("删除后查询应返回 ErrTimeModelNotFound, 实际 %v", err)
	}
}
