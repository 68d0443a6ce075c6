package dto

// ── 场地模块 DTO ──

// CreateFacultyRequest 创建院系请求
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80"`
}

// FacultyResponse 院系信息响应
type FacultyResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// CreateBlockRequest 创建楼栋请求
type CreateBlockRequest struct {
	FacultyID int    `json:"faculty_id" binding:"required,gt=0"`
	Name      string `json:"name"       binding:"required,min=2,max=80"`
}

// BlockResponse 楼栋信息响应
type BlockResponse struct {
	ID        int    `json:"id"`
	FacultyID int    `json:"faculty_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// CreateAmbientTypeRequest 创建场地类型请求
type CreateAmbientTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=40"`
}

// AmbientTypeResponse 场地类型响应
type AmbientTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateAmbientRequest 创建场地请求
type CreateAmbientRequest struct {
	BlockID       int    `json:"block_id"        binding:"required,gt=0"`
	AmbientTypeID int    `json:"ambient_type_id" binding:"required,gt=0"`
	Name          string `json:"name"            binding:"required,min=1,max=80"`
	Capacity      int16  `json:"capacity"        binding:"required,gte=1,lte=32767"`
}

// UpdateAmbientRequest 更新场地请求
type UpdateAmbientRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=80"`
	Capacity *int16  `json:"capacity" binding:"omitempty,gte=1,lte=32767"`
	IsActive *bool   `json:"is_active"`
}

// AmbientResponse 场地信息响应
type AmbientResponse struct {
	ID            int    `json:"id"`
	BlockID       int    `json:"block_id"`
	AmbientTypeID int    `json:"ambient_type_id"`
	Name          string `json:"name"`
	Capacity      int16  `json:"capacity"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

// ── 班组 DTO ──

// CreateGroupRequest 创建班组请求
type CreateGroupRequest struct {
	Name    string `json:"name"    binding:"required,min=1,max=40"`
	Subject string `json:"subject" binding:"max=80"`
}

// GroupResponse 班组信息响应
type GroupResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject,omitempty"`
	CreatedAt string `json:"created_at"`
}
