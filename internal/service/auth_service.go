package service

import (
	"crypto/subtle"
	"fmt"

	"survey-go/internal/config"
	"survey-go/internal/dto"
	"survey-go/internal/utils"
)

// AuthService 管理员认证服务，账户来自配置
type AuthService struct {
	jwtManager   *utils.JWTManager
	username     string
	passwordHash string
}

// NewAuthService 创建认证服务，明文密码在启动时哈希
func NewAuthService(adminCfg config.AdminConfig, jwtManager *utils.JWTManager) (*AuthService, error) {
	passwordHash, err := utils.EnsureHashed(adminCfg.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	return &AuthService{
		jwtManager:   jwtManager,
		username:     adminCfg.Username,
		passwordHash: passwordHash,
	}, nil
}

// Login 管理员登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	// 用户名不匹配时仍比对密码
	passErr := utils.CheckPassword(req.Password, s.passwordHash)
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(s.username, utils.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.Format(timeLayout),
		User:        s.GetMe(s.username),
	}, nil
}

// GetMe 获取当前管理员信息
func (s *AuthService) GetMe(username string) dto.AdminInfo {
	return dto.AdminInfo{
		Username: username,
		Role:     utils.RoleAdmin,
	}
}
