package repository

import (
	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// VendorRepository 供应商仓储
type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(vendor *model.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *VendorRepository) FindByID(id string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.Where("id = ?", id).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindAll 分页查询供应商列表
func (r *VendorRepository) FindAll(page, pageSize int, category, status, keyword string) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	query := r.db.Model(&model.Vendor{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR contact_name LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&vendors).Error

	return vendors, total, err
}

func (r *VendorRepository) Update(vendor *model.Vendor) error {
	return r.db.Save(vendor).Error
}

func (r *VendorRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Vendor{}).Error
}
