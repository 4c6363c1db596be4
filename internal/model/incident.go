package model

import (
	"time"
)

// 安全事件类型常量
const (
	IncidentTypeIntrusion = "intrusion"
	IncidentTypeMalware   = "malware"
	IncidentTypePolicy    = "policy"
	IncidentTypeSystem    = "system"
)

// 安全事件严重级别常量
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// 安全事件状态常量
const (
	IncidentStatusOpen          = "open"
	IncidentStatusInvestigating = "investigating"
	IncidentStatusContained     = "contained"
	IncidentStatusResolved      = "resolved"
)

// SecurityIncident 安全事件
type SecurityIncident struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Description string `json:"description" gorm:"type:text"`
	Type        string `json:"type" gorm:"type:varchar(20);not null;index"` // intrusion, malware, policy, system
	Severity    string `json:"severity" gorm:"type:varchar(20);default:'medium';index"`
	Status      string `json:"status" gorm:"type:varchar(20);default:'open';index"`

	// 影响范围
	AffectedSystems StringArray `json:"affected_systems,omitempty" gorm:"type:json"`
	AffectedUsers   int         `json:"affected_users" gorm:"default:0"`

	ReportedBy string `json:"reported_by" gorm:"type:varchar(100)"`
	AssignedTo string `json:"assigned_to,omitempty" gorm:"type:varchar(100);index"`
	Resolution string `json:"resolution,omitempty" gorm:"type:text"`

	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func (SecurityIncident) TableName() string {
	return "security_incidents"
}
