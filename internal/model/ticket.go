package model

import (
	"time"

	"gorm.io/datatypes"
)

// 工单状态常量
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// 工单分类常量
const (
	TicketCategoryHardware = "hardware"
	TicketCategorySoftware = "software"
	TicketCategoryNetwork  = "network"
	TicketCategoryAccess   = "access"
	TicketCategoryOther    = "other"
)

// Ticket 服务工单
type Ticket struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TicketNumber string `json:"ticket_number" gorm:"type:varchar(50);uniqueIndex"`
	Title        string `json:"title" gorm:"type:varchar(200);not null"`
	Description  string `json:"description" gorm:"type:text"`
	Category     string `json:"category" gorm:"type:varchar(20);default:'software';index"` // hardware, software, network, access, other
	Priority     string `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Status       string `json:"status" gorm:"type:varchar(20);default:'open';index"`

	// 申请人与处理人
	CreatedByID   string `json:"created_by_id" gorm:"type:varchar(36);not null;index"`
	CreatedBy     string `json:"created_by" gorm:"type:varchar(100);not null"`
	CreatedByDept string `json:"created_by_dept,omitempty" gorm:"type:varchar(100)"`
	AssignedTo    string `json:"assigned_to,omitempty" gorm:"type:varchar(100);index"`

	Attachments datatypes.JSON `json:"attachments,omitempty" gorm:"type:json"`

	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	Comments []TicketComment `json:"comments,omitempty" gorm:"foreignKey:TicketID"`
}

// TableName 指定表名
func (Ticket) TableName() string {
	return "tickets"
}

// TicketComment 工单评论
type TicketComment struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TicketID  string    `json:"ticket_id" gorm:"type:varchar(36);not null;index"`
	Author    string    `json:"author" gorm:"type:varchar(100);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (TicketComment) TableName() string {
	return "ticket_comments"
}
