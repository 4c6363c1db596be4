package repository

import (
	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// IncidentRepository 安全事件仓储
type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(incident *model.SecurityIncident) error {
	return r.db.Create(incident).Error
}

func (r *IncidentRepository) FindByID(id string) (*model.SecurityIncident, error) {
	var incident model.SecurityIncident
	err := r.db.Where("id = ?", id).First(&incident).Error
	if err != nil {
		return nil, err
	}
	return &incident, nil
}

// FindAll 分页查询安全事件列表
func (r *IncidentRepository) FindAll(page, pageSize int, incidentType, severity, status string) ([]model.SecurityIncident, int64, error) {
	var incidents []model.SecurityIncident
	var total int64

	query := r.db.Model(&model.SecurityIncident{})

	if incidentType != "" {
		query = query.Where("type = ?", incidentType)
	}
	if severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&incidents).Error

	return incidents, total, err
}

func (r *IncidentRepository) Update(incident *model.SecurityIncident) error {
	return r.db.Save(incident).Error
}

// CountOpen 统计未解决的安全事件数量
func (r *IncidentRepository) CountOpen() (int64, error) {
	var count int64
	err := r.db.Model(&model.SecurityIncident{}).
		Where("status IN ?", []string{model.IncidentStatusOpen, model.IncidentStatusInvestigating}).
		Count(&count).Error
	return count, err
}
