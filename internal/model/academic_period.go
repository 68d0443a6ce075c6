package model

import "time"

// 学期状态机：PLANNED → ACTIVE → CLOSED，不允许逆向转换
const (
	PeriodStatusPlanned = "PLANNED"
	PeriodStatusActive  = "ACTIVE"
	PeriodStatusClosed  = "CLOSED"
)

// AcademicPeriod 学期表 — 对应 academic_periods
// 每个学期绑定唯一时间模型；同一院系至多一个 ACTIVE 学期（数据库部分唯一索引兜底）
type AcademicPeriod struct {
	ID          int       `gorm:"primaryKey;autoIncrement"                   json:"id"`
	FacultyID   int       `gorm:"not null"                                   json:"faculty_id"`
	TimeModelID int       `gorm:"not null"                                   json:"time_model_id"`
	Season      int16     `gorm:"type:smallint;not null"                     json:"season"` // 1..4
	Year        int16     `gorm:"type:smallint;not null"                     json:"year"`
	StartDate   time.Time `gorm:"type:date;not null"                         json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                         json:"end_date"`
	Status      string    `gorm:"type:varchar(10);not null;default:'PLANNED'" json:"status"`
	BaseModel

	// 关联
	Faculty   *Faculty   `gorm:"foreignKey:FacultyID"   json:"faculty,omitempty"`
	TimeModel *TimeModel `gorm:"foreignKey:TimeModelID" json:"time_model,omitempty"`
}

// TableName 指定表名
func (AcademicPeriod) TableName() string { return "academic_periods" }
