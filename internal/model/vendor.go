package model

import (
	"time"
)

// 供应商状态常量
const (
	VendorStatusPending  = "pending"
	VendorStatusActive   = "active"
	VendorStatusInactive = "inactive"
)

// Vendor 供应商
type Vendor struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string `json:"name" gorm:"type:varchar(200);not null"`
	Category string `json:"category" gorm:"type:varchar(50);not null;index"` // hardware, software, services...
	Status   string `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// 联系人信息
	ContactName  string `json:"contact_name,omitempty" gorm:"type:varchar(100)"`
	ContactEmail string `json:"contact_email,omitempty" gorm:"type:varchar(100)"`
	ContactPhone string `json:"contact_phone,omitempty" gorm:"type:varchar(50)"`

	// 绩效评估
	Rating        float64 `json:"rating" gorm:"default:0"`                   // 0-5
	ResponseHours int     `json:"response_hours,omitempty" gorm:"default:0"` // 平均响应时长(小时)

	// 合规信息
	ComplianceStatus string     `json:"compliance_status,omitempty" gorm:"type:varchar(20)"` // compliant, pending, non_compliant
	LastAudit        *time.Time `json:"last_audit,omitempty"`

	Services StringArray `json:"services,omitempty" gorm:"type:json"` // 提供的服务列表
	Notes    string      `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Vendor) TableName() string {
	return "vendors"
}
