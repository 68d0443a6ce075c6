package dto

// ── 时间模型模块 DTO ──

// CreateTimeModelRequest 创建时间模型请求
type CreateTimeModelRequest struct {
	Name        string `json:"name"          binding:"required,min=2,max=80"`
	Description string `json:"description"   binding:"max=500"`
	SlotMinutes int    `json:"slot_minutes"  binding:"required,gt=0"`
	DayStart    string `json:"day_start"     binding:"required"` // "06:45"
	SlotsPerDay int    `json:"slots_per_day" binding:"required,gt=0"`
}

// TimeSlotResponse 节次信息响应
type TimeSlotResponse struct {
	SlotOrdinal int16  `json:"slot_ordinal"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// TimeModelResponse 时间模型信息响应
type TimeModelResponse struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	SlotMinutes int                `json:"slot_minutes"`
	DayStart    string             `json:"day_start"`
	SlotsPerDay int                `json:"slots_per_day"`
	Slots       []TimeSlotResponse `json:"slots,omitempty"`
	CreatedAt   string             `json:"created_at"`
}
