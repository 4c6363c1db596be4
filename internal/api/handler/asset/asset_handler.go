package asset

import (
	"net/http"
	"strconv"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssetHandler IT资产处理器
type AssetHandler struct {
	repo *repository.AssetRepository
}

// NewAssetHandler 创建资产处理器
func NewAssetHandler(repo *repository.AssetRepository) *AssetHandler {
	return &AssetHandler{
		repo: repo,
	}
}

// ListAssets 获取资产列表
func (h *AssetHandler) ListAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	assets, total, err := h.repo.FindAll(page, pageSize,
		c.Query("category"), c.Query("status"), c.Query("keyword"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "获取资产列表失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:       assets,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}))
}

// GetAsset 获取单个资产
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "资产不存在")
		return
	}

	c.JSON(http.StatusOK, model.Success(asset))
}

// CreateAsset 创建资产
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var asset model.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "资产参数错误")
		return
	}

	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	if asset.Status == "" {
		asset.Status = model.AssetStatusActive
	}

	if err := h.repo.Create(&asset); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "创建资产失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(asset))
}

// UpdateAsset 更新资产
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	existing, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		model.HandleError(c, http.StatusNotFound, err, "资产不存在")
		return
	}

	var asset model.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "资产参数错误")
		return
	}

	asset.ID = existing.ID
	asset.CreatedAt = existing.CreatedAt

	if err := h.repo.Update(&asset); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "更新资产失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(asset))
}

// DeleteAsset 删除资产
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if _, err := h.repo.FindByID(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusNotFound, err, "资产不存在")
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "删除资产失败")
		return
	}

	c.JSON(http.StatusOK, model.Success(nil))
}
