package repository

import (
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// LicenseRepository 软件许可证仓储
type LicenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

func (r *LicenseRepository) Create(license *model.SoftwareLicense) error {
	return r.db.Create(license).Error
}

func (r *LicenseRepository) FindByID(id string) (*model.SoftwareLicense, error) {
	var license model.SoftwareLicense
	err := r.db.Where("id = ?", id).First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// FindAll 分页查询许可证列表
func (r *LicenseRepository) FindAll(page, pageSize int, licenseType, status, keyword string) ([]model.SoftwareLicense, int64, error) {
	var licenses []model.SoftwareLicense
	var total int64

	query := r.db.Model(&model.SoftwareLicense{})

	if licenseType != "" {
		query = query.Where("type = ?", licenseType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR vendor LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&licenses).Error

	return licenses, total, err
}

func (r *LicenseRepository) Update(license *model.SoftwareLicense) error {
	return r.db.Save(license).Error
}

func (r *LicenseRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.SoftwareLicense{}).Error
}

// FindExpiring 查询在指定时间前到期的许可证
// 包含expiring状态，已标记即将到期的许可证过期后还要再转为expired
func (r *LicenseRepository) FindExpiring(before time.Time) ([]model.SoftwareLicense, error) {
	var licenses []model.SoftwareLicense
	err := r.db.Where("expiry_date IS NOT NULL AND expiry_date <= ? AND status IN ?",
		before, []string{model.LicenseStatusActive, model.LicenseStatusExpiring}).
		Order("expiry_date ASC").
		Find(&licenses).Error
	return licenses, err
}

// UpdateStatus 更新许可证状态
func (r *LicenseRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&model.SoftwareLicense{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountExpiring 统计在指定时间前到期的许可证数量
func (r *LicenseRepository) CountExpiring(before time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.SoftwareLicense{}).
		Where("expiry_date IS NOT NULL AND expiry_date <= ? AND status IN ?",
			before, []string{model.LicenseStatusActive, model.LicenseStatusExpiring}).
		Count(&count).Error
	return count, err
}
