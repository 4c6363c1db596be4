package software

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	softwareService "github.com/fisker/itops-backend/internal/service/software"
	"github.com/gin-gonic/gin"
)

// LicenseHandler 软件许可证处理器
type LicenseHandler struct {
	service *softwareService.LicenseService
}

// NewLicenseHandler 创建许可证处理器
func NewLicenseHandler(service *softwareService.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		service: service,
	}
}

// licenseForm 许可证请求体，license_key 只写不读
type licenseForm struct {
	Name       string     `json:"name" binding:"required"`
	Vendor     string     `json:"vendor"`
	Version    string     `json:"version"`
	Type       string     `json:"type" binding:"omitempty,oneof=perpetual subscription volume trial"`
	LicenseKey string     `json:"license_key"`
	Seats      int        `json:"seats"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Notes      string     `json:"notes"`
}

// ListLicenses 获取许可证列表
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	licenses, total, err := h.service.ListLicenses(page, pageSize,
		c.Query("type"), c.Query("status"), c.Query("keyword"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取许可证列表失败")
		return
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       licenses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetLicense 获取单条许可证（不含密钥明文）
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	license, err := h.service.GetLicense(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "许可证不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(license))
}

// RevealLicenseKey 查看许可证密钥明文
func (h *LicenseHandler) RevealLicenseKey(c *gin.Context) {
	key, err := h.service.RevealLicenseKey(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "获取许可证密钥失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(gin.H{"license_key": key}))
}

// CreateLicense 创建许可证
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var form licenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "许可证参数错误")
		return
	}

	seats := form.Seats
	if seats <= 0 {
		seats = 1
	}
	licenseType := form.Type
	if licenseType == "" {
		licenseType = model.LicenseTypeSubscription
	}

	license := &model.SoftwareLicense{
		Name:       form.Name,
		Vendor:     form.Vendor,
		Version:    form.Version,
		Type:       licenseType,
		Seats:      seats,
		Status:     model.LicenseStatusActive,
		ExpiryDate: form.ExpiryDate,
		Notes:      form.Notes,
	}

	if err := h.service.CreateLicense(license, form.LicenseKey); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "创建许可证失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(license))
}

// UpdateLicense 更新许可证
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	license, err := h.service.GetLicense(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "许可证不存在")
		return
	}

	var form licenseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "许可证参数错误")
		return
	}

	license.Name = form.Name
	license.Vendor = form.Vendor
	license.Version = form.Version
	if form.Type != "" {
		license.Type = form.Type
	}
	if form.Seats > 0 {
		license.Seats = form.Seats
	}
	license.ExpiryDate = form.ExpiryDate
	license.Notes = form.Notes

	if err := h.service.UpdateLicense(license, form.LicenseKey); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新许可证失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(license))
}

// DeleteLicense 删除许可证
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	if _, err := h.service.GetLicense(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusNotFound, err, "许可证不存在")
		return
	}

	if err := h.service.DeleteLicense(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "删除许可证失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}

// AssignSeat 分配席位
func (h *LicenseHandler) AssignSeat(c *gin.Context) {
	var req struct {
		Employee string `json:"employee" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	if err := h.service.AssignSeat(c.Param("id"), req.Employee); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "分配席位失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}

// RevokeSeat 回收席位
func (h *LicenseHandler) RevokeSeat(c *gin.Context) {
	var req struct {
		Employee string `json:"employee" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "参数错误")
		return
	}

	if err := h.service.RevokeSeat(c.Param("id"), req.Employee); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "回收席位失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}
