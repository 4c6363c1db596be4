package repository

import (
	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// ProcurementRepository 采购申请仓储
type ProcurementRepository struct {
	db *gorm.DB
}

func NewProcurementRepository(db *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: db}
}

func (r *ProcurementRepository) Create(req *model.ProcurementRequest) error {
	return r.db.Create(req).Error
}

func (r *ProcurementRepository) FindByID(id string) (*model.ProcurementRequest, error) {
	var req model.ProcurementRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ProcurementRepository) FindByRequestNumber(number string) (*model.ProcurementRequest, error) {
	var req model.ProcurementRequest
	err := r.db.Where("request_number = ?", number).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindAll 按过滤条件分页查询，条件AND组合
// 关键字对标题/描述/申请编号做不区分大小写的子串匹配
func (r *ProcurementRepository) FindAll(filter model.ProcurementFilter, page, pageSize int) ([]model.ProcurementRequest, int64, error) {
	var requests []model.ProcurementRequest
	var total int64

	query := r.db.Model(&model.ProcurementRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(request_number) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&requests).Error

	return requests, total, err
}

// Update 整条覆盖保存
func (r *ProcurementRepository) Update(req *model.ProcurementRequest) error {
	return r.db.Save(req).Error
}

// CountByStatus 按状态统计数量
func (r *ProcurementRepository) CountByStatus(status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProcurementRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Transaction 在事务内执行回调，回调中使用事务绑定的仓储
func (r *ProcurementRepository) Transaction(fn func(txRepo *ProcurementRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewProcurementRepository(tx))
	})
}
