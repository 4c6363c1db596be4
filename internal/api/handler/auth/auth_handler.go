package auth

import (
	"net/http"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *auth.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "登录参数错误")
		return
	}

	resp, err := h.authService.Login(&req, c.ClientIP())
	if err != nil {
		model.HandleError(c, http.StatusUnauthorized, err, "登录失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(resp))
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "注册参数错误")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "注册失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(user))
}

// GetCurrentUser 获取当前登录用户信息
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, model.Error(401, "未登录"))
		return
	}

	user, err := h.authService.GetUserByID(userID.(string))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "获取用户信息失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(user))
}

// ChangePassword 修改密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	userID, _ := c.Get("user_id")
	if err := h.authService.ChangePassword(userID.(string), req.OldPassword, req.NewPassword); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "修改密码失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}
