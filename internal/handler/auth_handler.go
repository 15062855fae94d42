package handler

import (
	"errors"

	"survey-go/internal/dto"
	"survey-go/internal/middleware"
	"survey-go/internal/service"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 管理员登录
// @Summary 管理员登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		utils.Unauthorized(c, "用户名或密码错误")
		return
	}
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "登录成功", resp)
}

// GetMe 获取当前管理员信息
// @Summary 获取当前管理员信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.AdminInfo}
// @Router /api/admin/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	utils.SuccessResponse(c, h.authService.GetMe(username))
}
