package repository

import (
	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

// TicketRepository 工单仓储
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ticket *model.Ticket) error {
	return r.db.Create(ticket).Error
}

func (r *TicketRepository) FindByID(id string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.db.Preload("Comments").Where("id = ?", id).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindAll 分页查询工单列表
func (r *TicketRepository) FindAll(page, pageSize int, status, category, keyword string) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	query := r.db.Model(&model.Ticket{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR ticket_number LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&tickets).Error

	return tickets, total, err
}

func (r *TicketRepository) Update(ticket *model.Ticket) error {
	return r.db.Save(ticket).Error
}

func (r *TicketRepository) Delete(id string) error {
	// 先删评论再删工单
	if err := r.db.Where("ticket_id = ?", id).Delete(&model.TicketComment{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&model.Ticket{}).Error
}

// AddComment 追加工单评论
func (r *TicketRepository) AddComment(comment *model.TicketComment) error {
	return r.db.Create(comment).Error
}

// CountByStatus 按状态统计工单数量
func (r *TicketRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ticket{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
