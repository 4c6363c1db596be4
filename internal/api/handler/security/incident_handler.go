package security

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IncidentHandler 安全事件处理器
type IncidentHandler struct {
	repo *repository.IncidentRepository
}

// NewIncidentHandler 创建安全事件处理器
func NewIncidentHandler(repo *repository.IncidentRepository) *IncidentHandler {
	return &IncidentHandler{
		repo: repo,
	}
}

// ListIncidents 获取安全事件列表
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	incidents, total, err := h.repo.FindAll(page, pageSize,
		c.Query("type"), c.Query("severity"), c.Query("status"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取安全事件列表失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       incidents,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetIncident 获取单个安全事件
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	incident, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "安全事件不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(incident))
}

// CreateIncident 上报安全事件
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var incident model.SecurityIncident
	if err := c.ShouldBindJSON(&incident); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "安全事件参数错误")
		return
	}

	incident.ID = uuid.New().String()
	if incident.Status == "" {
		incident.Status = model.IncidentStatusOpen
	}
	if incident.Severity == "" {
		incident.Severity = model.SeverityMedium
	}
	if username, exists := c.Get("username"); exists && incident.ReportedBy == "" {
		incident.ReportedBy = username.(string)
	}

	if err := h.repo.Create(&incident); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "上报安全事件失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(incident))
}

// UpdateIncident 更新安全事件（状态流转、处理人、处置结论）
func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	incident, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "安全事件不存在")
		return
	}

	var req struct {
		Status     string `json:"status" binding:"omitempty,oneof=open investigating contained resolved"`
		Severity   string `json:"severity" binding:"omitempty,oneof=critical high medium low"`
		AssignedTo string `json:"assigned_to"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	if req.Status != "" {
		incident.Status = req.Status
		if req.Status == model.IncidentStatusResolved && incident.ResolvedAt == nil {
			now := time.Now()
			incident.ResolvedAt = &now
		}
	}
	if req.Severity != "" {
		incident.Severity = req.Severity
	}
	if req.AssignedTo != "" {
		incident.AssignedTo = req.AssignedTo
	}
	if req.Resolution != "" {
		incident.Resolution = req.Resolution
	}

	if err := h.repo.Update(incident); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新安全事件失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(incident))
}
