package model

// TeacherAssignment 任课分配表 — 对应 teacher_assignments
// 复合主键 (academic_period_id, group_id)：一个班组在一个学期内只有一位教师
type TeacherAssignment struct {
	AcademicPeriodID int    `gorm:"primaryKey"                          json:"academic_period_id"`
	GroupID          int    `gorm:"primaryKey"                          json:"group_id"`
	CI               string `gorm:"column:ci;type:varchar(15);not null" json:"ci"`
	BaseModel

	// 关联
	Group  *Group  `gorm:"foreignKey:GroupID"          json:"group,omitempty"`
	Person *Person `gorm:"foreignKey:CI;references:CI" json:"person,omitempty"`
}

// TableName 指定表名
func (TeacherAssignment) TableName() string { return "teacher_assignments" }
