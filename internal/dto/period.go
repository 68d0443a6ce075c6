package dto

// ── 学期模块 DTO ──

// CreatePeriodRequest 创建学期请求
type CreatePeriodRequest struct {
	FacultyID   int    `json:"faculty_id"    binding:"required,gt=0"`
	TimeModelID int    `json:"time_model_id" binding:"required,gt=0"`
	Season      int16  `json:"season"        binding:"required"`
	Year        int16  `json:"year"          binding:"required,gte=2000"`
	StartDate   string `json:"start_date"    binding:"required"` // "2025-02-03"
	EndDate     string `json:"end_date"      binding:"required"`
}

// PeriodResponse 学期信息响应
type PeriodResponse struct {
	ID          int    `json:"id"`
	FacultyID   int    `json:"faculty_id"`
	TimeModelID int    `json:"time_model_id"`
	Season      int16  `json:"season"`
	Year        int16  `json:"year"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
