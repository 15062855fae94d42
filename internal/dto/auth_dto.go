package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   string    `json:"expires_at"`
	User        AdminInfo `json:"user"`
}

// AdminInfo 管理员信息
type AdminInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
