package model

// Person 人员表 — 对应 people（证件号为自然主键）
type Person struct {
	CI           string `gorm:"column:ci;type:varchar(15);primaryKey" json:"ci"`
	PersonName   string `gorm:"type:varchar(50);not null"             json:"person_name"`
	Email        string `gorm:"type:varchar(254);not null"            json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"            json:"-"`
	IsActive     bool   `gorm:"not null;default:true"                 json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Person) TableName() string { return "people" }

// PersonRole 人员角色表 — 对应 person_roles
// FacultyID 为 NULL 表示全局角色，否则限定在指定院系范围内
type PersonRole struct {
	ID        int    `gorm:"primaryKey;autoIncrement"              json:"id"`
	CI        string `gorm:"column:ci;type:varchar(15);not null"   json:"ci"`
	RoleName  string `gorm:"type:varchar(40);not null"             json:"role_name"`
	FacultyID *int   `json:"faculty_id,omitempty"`
	BaseModel

	// 关联
	Person *Person `gorm:"foreignKey:CI;references:CI" json:"person,omitempty"`
}

// TableName 指定表名
func (PersonRole) TableName() string { return "person_roles" }
