package dto

// ── 预约模块 DTO ──

// CreateReservationRequest 创建预约请求
// ambient_ids × dates × slot_ordinals 的笛卡尔积构成候选占用集合
type CreateReservationRequest struct {
	PeriodID     int      `json:"period_id"     binding:"required,gt=0"`
	Reason       string   `json:"reason"        binding:"required,min=3,max=500"`
	AmbientIDs   []int    `json:"ambient_ids"   binding:"required,min=1,dive,gt=0"`
	Dates        []string `json:"dates"         binding:"required,min=1"` // "2025-03-10"
	SlotOrdinals []int16  `json:"slot_ordinals" binding:"required,min=1,dive,gte=1"`
	GroupIDs     []int    `json:"group_ids"     binding:"omitempty,dive,gt=0"`
}

// ReservationSlotResponse 预约占用单元响应
type ReservationSlotResponse struct {
	AmbientID   int    `json:"ambient_id"`
	Date        string `json:"date"`
	SlotOrdinal int16  `json:"slot_ordinal"`
}

// ReservationResponse 预约信息响应
type ReservationResponse struct {
	ID          int                       `json:"id"`
	PeriodID    int                       `json:"period_id"`
	RequesterCI string                    `json:"requester_ci"`
	Status      string                    `json:"status"`
	Reason      string                    `json:"reason"`
	AmbientIDs  []int                     `json:"ambient_ids"`
	Dates       []string                  `json:"dates"`
	GroupIDs    []int                     `json:"group_ids"`
	Slots       []ReservationSlotResponse `json:"slots"`
	CreatedAt   string                    `json:"created_at"`
	CancelledAt string                    `json:"cancelled_at,omitempty"`
}

// ReservationListRequest 预约列表查询
type ReservationListRequest struct {
	PeriodID    int    `form:"period_id"`
	RequesterCI string `form:"requester_ci"`
	Status      string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
}
