package model

// Group 教学班组表 — 对应 groups
type Group struct {
	ID        int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	GroupName string `gorm:"type:varchar(40);not null" json:"group_name"`
	Subject   string `gorm:"type:varchar(80)"          json:"subject"`
	BaseModel
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }
