package procurement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fisker/itops-backend/internal/approval"
	"github.com/fisker/itops-backend/internal/model"
	procurementService "github.com/fisker/itops-backend/internal/service/procurement"
	"github.com/gin-gonic/gin"
)

// ProcurementHandler 采购审批处理器
type ProcurementHandler struct {
	service    *procurementService.ProcurementService
	userLoader func(userID string) (*model.User, error)
}

// NewProcurementHandler 创建采购审批处理器
// userLoader 按ID加载操作人，审批动作基于数据库里的用户信息而不是请求体
func NewProcurementHandler(service *procurementService.ProcurementService, userLoader func(userID string) (*model.User, error)) *ProcurementHandler {
	return &ProcurementHandler{
		service:    service,
		userLoader: userLoader,
	}
}

// currentUser 从认证上下文加载当前用户
func (h *ProcurementHandler) currentUser(c *gin.Context) (*model.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, model.Error(401, "未登录"))
		return nil, false
	}

	user, err := h.userLoader(userID.(string))
	if err != nil {
		model.HandleError(c, http.StatusUnauthorized, err, "加载用户信息失败")
		return nil, false
	}
	return user, true
}

// requestDetail 带当前用户可操作标记的申请详情
type requestDetail struct {
	*model.ProcurementRequest
	CanAct bool `json:"can_act"` // 当前用户能否审批当前步骤
}

// ListRequests 获取采购申请列表
func (h *ProcurementHandler) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := model.ProcurementFilter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Department: c.Query("department"),
		Keyword:    c.Query("keyword"),
	}

	requests, total, err := h.service.ListRequests(filter, page, pageSize)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取采购申请列表失败")
		return
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       requests,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetRequest 获取单条申请详情
// 响应带 can_act 字段，前端据此渲染审批按钮，服务端仍然独立校验
func (h *ProcurementHandler) GetRequest(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	request, err := h.service.GetRequest(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "采购申请不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(requestDetail{
		ProcurementRequest: request,
		CanAct:             h.service.CanActOn(request, user),
	}))
}

// CreateRequest 创建采购申请
func (h *ProcurementHandler) CreateRequest(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req model.CreateProcurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "采购申请参数错误")
		return
	}

	request, err := h.service.CreateRequest(&req, user)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "创建采购申请失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(request))
}

// Approve 批准当前级别
func (h *ProcurementHandler) Approve(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req model.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "审批参数错误")
		return
	}

	request, err := h.service.Approve(c.Param("id"), user, req.Note)
	if err != nil {
		h.handleActionError(c, err, "批准失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(requestDetail{
		ProcurementRequest: request,
		CanAct:             h.service.CanActOn(request, user),
	}))
}

// Reject 拒绝当前级别
func (h *ProcurementHandler) Reject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req model.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "审批参数错误")
		return
	}

	request, err := h.service.Reject(c.Param("id"), user, req.Reason)
	if err != nil {
		h.handleActionError(c, err, "拒绝失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(requestDetail{
		ProcurementRequest: request,
		CanAct:             h.service.CanActOn(request, user),
	}))
}

// handleActionError 按错误类型映射HTTP状态码
func (h *ProcurementHandler) handleActionError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, procurementService.ErrRequestNotFound):
		model.HandleError(c, http.StatusNotFound, err, context)
	case errors.Is(err, approval.ErrNotAuthorized):
		model.HandleError(c, http.StatusForbidden, err, context)
	case errors.Is(err, approval.ErrEmptyReason):
		model.HandleError(c, http.StatusBadRequest, err, context)
	case errors.Is(err, approval.ErrTerminalState), errors.Is(err, approval.ErrNoCurrentStep):
		model.HandleError(c, http.StatusConflict, err, context)
	default:
		model.HandleError(c, http.StatusInternalServerError, err, context)
	}
}
