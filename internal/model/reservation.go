package model

import "time"

// 预约状态：取消后行保留但不再占用冲突索引
const (
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusCancelled = "CANCELLED"
)

// Reservation 预约头表 — 对应 reservations
type Reservation struct {
	ID               int        `gorm:"primaryKey;autoIncrement"                      json:"id"`
	AcademicPeriodID int        `gorm:"not null"                                      json:"academic_period_id"`
	RequesterCI      string     `gorm:"type:varchar(15);not null"                     json:"requester_ci"`
	Status           string     `gorm:"type:varchar(12);not null;default:'CONFIRMED'" json:"status"`
	Reason           string     `gorm:"type:text;not null"                            json:"reason"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	BaseModel

	// 关联（由预约独占，随预约级联删除）
	Groups   []ReservationGroup   `gorm:"foreignKey:ReservationID" json:"groups,omitempty"`
	Dates    []ReservedDate       `gorm:"foreignKey:ReservationID" json:"dates,omitempty"`
	Ambients []ReservationAmbient `gorm:"foreignKey:ReservationID" json:"ambients,omitempty"`
	Slots    []ReservationSlot    `gorm:"foreignKey:ReservationID" json:"slots,omitempty"`
}

// TableName 指定表名
func (Reservation) TableName() string { return "reservations" }

// ReservationGroup 预约覆盖的班组 — 对应 reservation_groups
// (academic_period_id, group_id) 外键指向任课分配表：班组必须在该学期有教师
type ReservationGroup struct {
	ReservationID    int `gorm:"primaryKey" json:"reservation_id"`
	GroupID          int `gorm:"primaryKey" json:"group_id"`
	AcademicPeriodID int `gorm:"not null"   json:"academic_period_id"`
	BaseModel
}

// TableName 指定表名
func (ReservationGroup) TableName() string { return "reservation_groups" }

// ReservedDate 预约覆盖的日期 — 对应 reserved_dates
type ReservedDate struct {
	ReservationID int       `gorm:"primaryKey"           json:"reservation_id"`
	ReservedDate  time.Time `gorm:"primaryKey;type:date" json:"reserved_date"`
	BaseModel
}

// TableName 指定表名
func (ReservedDate) TableName() string { return "reserved_dates" }

// ReservationAmbient 预约覆盖的场地 — 对应 reservation_ambients
type ReservationAmbient struct {
	ReservationID int `gorm:"primaryKey" json:"reservation_id"`
	AmbientID     int `gorm:"primaryKey" json:"ambient_id"`
	BaseModel
}

// TableName 指定表名
func (ReservationAmbient) TableName() string { return "reservation_ambients" }

// ReservationSlot 预约占用的具体单元 — 对应 reservation_slots
// 部分唯一索引 uq_no_double_booking 只覆盖 status='CONFIRMED' 的行：
// 并发双重预订在提交时被拦截，取消后的同一单元可被重新占用
type ReservationSlot struct {
	ReservationID int       `gorm:"primaryKey"                                    json:"reservation_id"`
	AmbientID     int       `gorm:"primaryKey"                                    json:"ambient_id"`
	ReservedDate  time.Time `gorm:"primaryKey;type:date"                          json:"reserved_date"`
	SlotOrdinal   int16     `gorm:"primaryKey;type:smallint"                      json:"slot_ordinal"`
	TimeModelID   int       `gorm:"not null"                                      json:"time_model_id"`
	Status        string    `gorm:"type:varchar(12);not null;default:'CONFIRMED'" json:"status"`
	BaseModel
}

// TableName 指定表名
func (ReservationSlot) TableName() string { return "reservation_slots" }
