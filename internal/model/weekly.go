package model

// WeeklySchedule 周课表头表 — 对应 weekly_schedules
// 每个 (学期, 场地, 星期几) 唯一；day_of_week: 1=周一 .. 6=周六
type WeeklySchedule struct {
	ID               int   `gorm:"primaryKey;autoIncrement" json:"id"`
	AcademicPeriodID int   `gorm:"not null"                 json:"academic_period_id"`
	AmbientID        int   `gorm:"not null"                 json:"ambient_id"`
	DayOfWeek        int16 `gorm:"type:smallint;not null"   json:"day_of_week"`
	BaseModel

	// 关联
	Slots []WeeklySlot `gorm:"foreignKey:WeeklyScheduleID" json:"slots,omitempty"`
}

// TableName 指定表名
func (WeeklySchedule) TableName() string { return "weekly_schedules" }

// WeeklySlot 周课表节次表 — 对应 weekly_slots
// 循环占用模式：不绑定具体日期，预约校验时按 日期→星期几 懒展开
// TimeModelID 必须等于所属学期的时间模型（服务层校验，外键兜底节次存在性）
type WeeklySlot struct {
	WeeklyScheduleID int   `gorm:"primaryKey"               json:"weekly_schedule_id"`
	SlotOrdinal      int16 `gorm:"primaryKey;type:smallint" json:"slot_ordinal"`
	TimeModelID      int   `gorm:"not null"                 json:"time_model_id"`
	GroupID          int   `gorm:"not null"                 json:"group_id"`
	BaseModel

	// 关联
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (WeeklySlot) TableName() string { return "weekly_slots" }
