package repository

import (
	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// OperationLogRepository 操作日志仓储
type OperationLogRepository struct {
	db *gorm.DB
}

func NewOperationLogRepository(db *gorm.DB) *OperationLogRepository {
	return &OperationLogRepository{db: db}
}

func (r *OperationLogRepository) Create(log *model.OperationLog) error {
	return r.db.Create(log).Error
}

// FindAll 分页查询操作日志
func (r *OperationLogRepository) FindAll(page, pageSize int, username, method string) ([]model.OperationLog, int64, error) {
	var logs []model.OperationLog
	var total int64

	query := r.db.Model(&model.OperationLog{})

	if username != "" {
		query = query.Where("username = ?", username)
	}
	if method != "" {
		query = query.Where("method = ?", method)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("start_time DESC").
		Find(&logs).Error

	return logs, total, err
}
