package user

import (
	"net/http"
	"strconv"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	repo *repository.UserRepository
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(repo *repository.UserRepository) *UserHandler {
	return &UserHandler{
		repo: repo,
	}
}

// ListUsers 获取用户列表
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := h.repo.FindAllUsersWithPagination(page, pageSize, c.Query("keyword"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取用户列表失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetUser 获取单个用户
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.repo.FindUserByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "用户不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(user))
}

// UpdateUserRole 更新用户角色
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required,oneof=head manager normal view"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	if err := h.repo.UpdateUserRole(c.Param("id"), req.Role); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新用户角色失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}

// UpdateUserStatus 更新用户状态
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=active inactive locked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	if err := h.repo.UpdateUserStatus(c.Param("id"), req.Status); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新用户状态失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}

// DeleteUser 删除用户（软删除）
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.repo.DeleteUser(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "删除用户失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}
