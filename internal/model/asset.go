package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 资产类别常量
const (
	AssetCategoryHardware = "hardware"
	AssetCategorySoftware = "software"
	AssetCategoryNetwork  = "network"
	AssetCategoryMobile   = "mobile"
	AssetCategoryOther    = "other"
)

// 资产状态常量
const (
	AssetStatusActive      = "active"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
	AssetStatusLost        = "lost"
)

// Asset IT资产
type Asset struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string `json:"name" gorm:"type:varchar(200);not null"`
	Category     string `json:"category" gorm:"type:varchar(20);not null;index"` // hardware, software, network, mobile, other
	Type         string `json:"type" gorm:"type:varchar(50);index"`              // laptop, desktop, server, switch...
	Model        string `json:"model" gorm:"type:varchar(100)"`
	SerialNumber string `json:"serial_number" gorm:"type:varchar(100);uniqueIndex"`
	Manufacturer string `json:"manufacturer" gorm:"type:varchar(100)"`
	Status       string `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Location     string `json:"location" gorm:"type:varchar(200)"`

	// 分配信息
	AssignedTo    string `json:"assigned_to,omitempty" gorm:"type:varchar(100);index"`
	AssignedEmail string `json:"assigned_email,omitempty" gorm:"type:varchar(100)"`
	Department    string `json:"department,omitempty" gorm:"type:varchar(100);index"`

	// 采购与保修信息
	PurchaseDate       *time.Time      `json:"purchase_date,omitempty"`
	PurchaseCost       decimal.Decimal `json:"purchase_cost" gorm:"type:decimal(14,2)"`
	Currency           string          `json:"currency" gorm:"type:varchar(10);default:'PKR'"`
	WarrantyExpiration *time.Time      `json:"warranty_expiration,omitempty" gorm:"index"`

	Specifications datatypes.JSON `json:"specifications,omitempty" gorm:"type:json"` // 规格参数（自由格式）
	Notes          string         `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
