package repository

import (
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// AssetRepository IT资产仓储
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(asset *model.Asset) error {
	return r.db.Create(asset).Error
}

func (r *AssetRepository) FindByID(id string) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindAll 分页查询资产列表
func (r *AssetRepository) FindAll(page, pageSize int, category, status, keyword string) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	query := r.db.Model(&model.Asset{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR serial_number LIKE ? OR assigned_to LIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&assets).Error

	return assets, total, err
}

func (r *AssetRepository) Update(asset *model.Asset) error {
	return r.db.Save(asset).Error
}

func (r *AssetRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Asset{}).Error
}

// CountByStatus 按状态统计资产数量
func (r *AssetRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&model.Asset{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// FindWarrantyExpiring 查询保修在指定时间前到期的资产
func (r *AssetRepository) FindWarrantyExpiring(before time.Time) ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.Where("warranty_expiration IS NOT NULL AND warranty_expiration <= ? AND status = ?",
		before, model.AssetStatusActive).
		Order("warranty_expiration ASC").
		Find(&assets).Error
	return assets, err
}
