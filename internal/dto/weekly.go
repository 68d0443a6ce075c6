package dto

// ── 周课表模块 DTO ──

// AddWeeklySlotRequest 添加周课表节次请求
type AddWeeklySlotRequest struct {
	PeriodID    int   `json:"period_id"    binding:"required,gt=0"`
	AmbientID   int   `json:"ambient_id"   binding:"required,gt=0"`
	DayOfWeek   int16 `json:"day_of_week"  binding:"required,gte=1,lte=6"` // 1=周一 .. 6=周六
	SlotOrdinal int16 `json:"slot_ordinal" binding:"required,gte=1"`
	GroupID     int   `json:"group_id"     binding:"required,gt=0"`
}

// WeeklySlotResponse 周课表节次响应
type WeeklySlotResponse struct {
	SlotOrdinal int16  `json:"slot_ordinal"`
	GroupID     int    `json:"group_id"`
	GroupName   string `json:"group_name,omitempty"`
}

// WeeklyScheduleResponse 周课表（单场地单日）响应
type WeeklyScheduleResponse struct {
	ID        int                  `json:"id"`
	PeriodID  int                  `json:"period_id"`
	AmbientID int                  `json:"ambient_id"`
	DayOfWeek int16                `json:"day_of_week"`
	Slots     []WeeklySlotResponse `json:"slots"`
}
