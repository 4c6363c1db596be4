package ticket

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler 工单处理器
type TicketHandler struct {
	repo *repository.TicketRepository
}

// NewTicketHandler 创建工单处理器
func NewTicketHandler(repo *repository.TicketRepository) *TicketHandler {
	return &TicketHandler{
		repo: repo,
	}
}

// generateTicketNumber 生成工单编号
func generateTicketNumber() string {
	return fmt.Sprintf("TKT-%s", time.Now().Format("20060102150405")+uuid.New().String()[:8])
}

// ListTickets 获取工单列表
func (h *TicketHandler) ListTickets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	tickets, total, err := h.repo.FindAll(page, pageSize,
		c.Query("status"), c.Query("category"), c.Query("keyword"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取工单列表失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       tickets,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetTicket 获取单个工单（含评论）
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "工单不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(ticket))
}

// CreateTicket 创建工单
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var ticket model.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "工单参数错误")
		return
	}

	ticket.ID = uuid.New().String()
	ticket.TicketNumber = generateTicketNumber()
	if ticket.Status == "" {
		ticket.Status = model.TicketStatusOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = model.PriorityMedium
	}

	// 创建人信息从认证上下文取，不信任请求体
	if userID, exists := c.Get("user_id"); exists {
		ticket.CreatedByID = userID.(string)
	}
	if username, exists := c.Get("username"); exists {
		ticket.CreatedBy = username.(string)
	}
	if dept, exists := c.Get("department"); exists {
		ticket.CreatedByDept = dept.(string)
	}

	if err := h.repo.Create(&ticket); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "创建工单失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(ticket))
}

// UpdateTicketStatus 更新工单状态
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	var req struct {
		Status     string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
		AssignedTo string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	ticket, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "工单不存在")
		return
	}

	ticket.Status = req.Status
	if req.AssignedTo != "" {
		ticket.AssignedTo = req.AssignedTo
	}
	if req.Status == model.TicketStatusResolved && ticket.ResolvedAt == nil {
		now := time.Now()
		ticket.ResolvedAt = &now
	}

	if err := h.repo.Update(ticket); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新工单失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(ticket))
}

// AddComment 追加工单评论
func (h *TicketHandler) AddComment(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "评论内容不能为空")
		return
	}

	if _, err := h.repo.FindByID(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusNotFound, err, "工单不存在")
		return
	}

	author := ""
	if username, exists := c.Get("username"); exists {
		author = username.(string)
	}

	comment := model.TicketComment{
		TicketID: c.Param("id"),
		Author:   author,
		Content:  req.Content,
	}
	if err := h.repo.AddComment(&comment); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "添加评论失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(comment))
}

// DeleteTicket 删除工单
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	if _, err := h.repo.FindByID(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusNotFound, err, "工单不存在")
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "删除工单失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}
