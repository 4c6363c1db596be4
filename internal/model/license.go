package model

import (
	"time"
)

// 软件许可类型常量
const (
	LicenseTypePerpetual    = "perpetual"
	LicenseTypeSubscription = "subscription"
	LicenseTypeVolume       = "volume"
	LicenseTypeTrial        = "trial"
)

// 软件许可状态常量
const (
	LicenseStatusActive   = "active"
	LicenseStatusExpiring = "expiring"
	LicenseStatusExpired  = "expired"
)

// SoftwareLicense 软件许可证
// LicenseKey 以 AES-256-GCM 加密落库，且不在 JSON 中输出
type SoftwareLicense struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name    string `json:"name" gorm:"type:varchar(200);not null"`
	Vendor  string `json:"vendor" gorm:"type:varchar(100);index"`
	Version string `json:"version" gorm:"type:varchar(50)"`
	Type    string `json:"type" gorm:"type:varchar(20);default:'subscription'"` // perpetual, subscription, volume, trial

	LicenseKey string `json:"-" gorm:"type:text"` // 密文存储

	// 席位占用
	Seats     int         `json:"seats" gorm:"default:1"`
	SeatsUsed int         `json:"seats_used" gorm:"default:0"`
	Assignees StringArray `json:"assignees,omitempty" gorm:"type:json"` // 已分配的员工

	Status     string     `json:"status" gorm:"type:varchar(20);default:'active';index"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty" gorm:"index"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SoftwareLicense) TableName() string {
	return "software_licenses"
}
