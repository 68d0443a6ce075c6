package model

// AmbientType 场地类型表 — 对应 ambient_types（教室、实验室、礼堂等）
type AmbientType struct {
	ID       int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	TypeName string `gorm:"type:varchar(40);not null" json:"type_name"`
	BaseModel
}

// TableName 指定表名
func (AmbientType) TableName() string { return "ambient_types" }

// Ambient 可预约场地表 — 对应 ambients
// 同一楼栋内名称唯一；is_active=false 的场地不可预约
type Ambient struct {
	ID            int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	BlockID       int    `gorm:"not null"                  json:"block_id"`
	AmbientTypeID int    `gorm:"not null"                  json:"ambient_type_id"`
	AmbientName   string `gorm:"type:varchar(80);not null" json:"ambient_name"`
	Capacity      int16  `gorm:"type:smallint;not null"    json:"capacity"` // 1..32767
	IsActive      bool   `gorm:"not null;default:true"     json:"is_active"`
	BaseModel

	// 关联
	Block       *Block       `gorm:"foreignKey:BlockID"       json:"block,omitempty"`
	AmbientType *AmbientType `gorm:"foreignKey:AmbientTypeID" json:"ambient_type,omitempty"`
}

// TableName 指定表名
func (Ambient) TableName() string { return "ambients" }
