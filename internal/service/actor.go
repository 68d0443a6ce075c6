package service

// Actor 已认证的操作者身份
// 由认证中间件从 JWT 构造后传入，引擎信任该输入、不再重新推导
type Actor struct {
	PersonID   string
	Roles      []string
	Global     bool  // 全局权限：不受院系范围限制
	FacultyIDs []int // 授权院系范围（Global=false 时生效）
}

// CanAccessFaculty 判断操作者是否可操作指定院系的资源
func (a Actor) CanAccessFaculty(facultyID int) bool {
	if a.Global {
		return true
	}
	for _, id := range a.FacultyIDs {
		if id == facultyID {
			return true
		}
	}
	return false
}
