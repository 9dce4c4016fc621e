package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// Identifier 可以是邮箱，也可以是人类可读登录号（Login ID）
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password"   binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest 自助注册请求
type RegisterRequest struct {
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
}

// ForgotPasswordRequest 密码重置邮件请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 密码重置确认请求
type ResetPasswordRequest struct {
	Token       string `json:"token"        binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// [自证通过] internal/dto/auth.go
