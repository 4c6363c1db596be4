package system

import (
	"net/http"
	"strconv"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	systemService "github.com/fisker/itops-backend/internal/service/system"
	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	service *systemService.DashboardService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(service *systemService.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// GetStats 获取仪表盘统计数据
func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, model.Success(h.service.GetStats()))
}

// OperationLogHandler 操作日志处理器
type OperationLogHandler struct {
	repo *repository.OperationLogRepository
}

// NewOperationLogHandler 创建操作日志处理器
func NewOperationLogHandler(repo *repository.OperationLogRepository) *OperationLogHandler {
	return &OperationLogHandler{
		repo: repo,
	}
}

// ListLogs 获取操作日志列表
func (h *OperationLogHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	logs, total, err := h.repo.FindAll(page, pageSize, c.Query("username"), c.Query("method"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取操作日志失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       logs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}
