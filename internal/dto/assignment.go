package dto

// ── 任课分配模块 DTO ──

// AssignTeacherRequest 任课分配请求
type AssignTeacherRequest struct {
	PeriodID int    `json:"period_id" binding:"required,gt=0"`
	GroupID  int    `json:"group_id"  binding:"required,gt=0"`
	CI       string `json:"ci"        binding:"required,min=5,max=15"`
}

// AssignmentResponse 任课分配信息响应
type AssignmentResponse struct {
	PeriodID   int    `json:"period_id"`
	GroupID    int    `json:"group_id"`
	GroupName  string `json:"group_name,omitempty"`
	CI         string `json:"ci"`
	PersonName string `json:"person_name,omitempty"`
	CreatedAt  string `json:"created_at"`
}
