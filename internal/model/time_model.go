package model

// TimeModel 时间模型表 — 对应 time_models
// 定义一天的节次网格：起始时间、每节分钟数、每天节数
type TimeModel struct {
	ID          int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	ModelName   string `gorm:"type:varchar(80);not null" json:"model_name"`
	Description string `gorm:"type:text"                 json:"description"`
	SlotMinutes int    `gorm:"not null"                  json:"slot_minutes"`
	DayStart    string `gorm:"type:time;not null"        json:"day_start"` // "06:45:00"
	SlotsPerDay int    `gorm:"not null"                  json:"slots_per_day"`
	BaseModel

	// 关联
	Slots []TimeSlot `gorm:"foreignKey:TimeModelID" json:"slots,omitempty"`
}

// TableName 指定表名
func (TimeModel) TableName() string { return "time_models" }

// TimeSlot 节次表 — 对应 time_slots
// 复合主键 (time_model_id, slot_ordinal)，节次序号从 1 开始连续编号
type TimeSlot struct {
	TimeModelID int    `gorm:"primaryKey"              json:"time_model_id"`
	SlotOrdinal int16  `gorm:"primaryKey;type:smallint" json:"slot_ordinal"`
	StartTime   string `gorm:"type:time;not null"      json:"start_time"` // "06:45:00"
	EndTime     string `gorm:"type:time;not null"      json:"end_time"`
	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }
