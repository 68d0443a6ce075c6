package model

// Faculty 院系表 — 对应 faculties
type Faculty struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FacultyName string `gorm:"type:varchar(80);not null" json:"faculty_name"`
	BaseModel
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculties" }

// Block 教学楼/功能区表 — 对应 blocks
// 场地按楼栋归属，楼栋归属院系
type Block struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FacultyID int    `gorm:"not null"                 json:"faculty_id"`
	BlockName string `gorm:"type:varchar(80);not null" json:"block_name"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (Block) TableName() string { return "blocks" }
