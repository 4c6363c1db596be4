package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RequestStatus 采购申请状态
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending_approval" // 待审批
	RequestStatusApproved RequestStatus = "approved"         // 已批准（终态）
	RequestStatusRejected RequestStatus = "rejected"         // 已拒绝（终态）
)

// IsTerminal 是否为终态（终态后不允许任何审批动作）
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// RequestType 采购类型
const (
	RequestTypeHardware = "hardware"
	RequestTypeSoftware = "software"
	RequestTypeServices = "services"
	RequestTypeSupplies = "supplies"
)

// 申请优先级
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// ApprovalActionType 审批动作类型
type ApprovalActionType string

const (
	ActionApproved ApprovalActionType = "approved"
	ActionRejected ApprovalActionType = "rejected"
)

// StepCondition 审批步骤附加条件（目前仅库存核查，仅作提示，不参与机器判断）
type StepCondition struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ApprovalStep 审批链中的一个步骤
// 申请创建时生成，之后不可变
type ApprovalStep struct {
	Level      int            `json:"level"`      // 1-based，链内唯一且连续
	Role       string         `json:"role"`       // 要求的审批人角色: manager, head, director, ceo
	Department string         `json:"department"` // 要求的审批人部门
	Title      string         `json:"title"`      // 步骤名称
	Condition  *StepCondition `json:"condition,omitempty"`
}

// InventoryCheck 库存核查结果（仅出现在IT部门级审批记录上）
type InventoryCheck struct {
	Result string `json:"result"`
	Note   string `json:"note"`
}

// ApprovalAction 审批历史记录（追加写入，一个级别至多一条）
type ApprovalAction struct {
	Level          int                `json:"level"`
	Action         ApprovalActionType `json:"action"`
	By             string             `json:"by"`         // 操作人姓名快照
	Department     string             `json:"department"` // 操作人部门快照
	Note           string             `json:"note,omitempty"`
	Reason         string             `json:"reason,omitempty"`
	InventoryCheck *InventoryCheck    `json:"inventoryCheck,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
}

// ApprovalStepList 审批链，以 JSON 数组落库
type ApprovalStepList []ApprovalStep

// Scan 实现 sql.Scanner 接口
func (l *ApprovalStepList) Scan(value interface{}) error {
	if value == nil {
		*l = ApprovalStepList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return nil
}

// Value 实现 driver.Valuer 接口
func (l ApprovalStepList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// ApprovalActionList 审批历史，以 JSON 数组落库
type ApprovalActionList []ApprovalAction

// Scan 实现 sql.Scanner 接口
func (l *ApprovalActionList) Scan(value interface{}) error {
	if value == nil {
		*l = ApprovalActionList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return nil
}

// Value 实现 driver.Valuer 接口
func (l ApprovalActionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// ProcurementRequest 采购申请
//
// 状态机：pending_approval --approve*n--> approved
//                          \--reject----> rejected
// CurrentApprovalLevel 只增不减；进入终态后冻结
type ProcurementRequest struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RequestNumber string `json:"request_number" gorm:"type:varchar(50);uniqueIndex;not null"`

	// 申请描述字段，创建后不可变
	Title            string          `json:"title" gorm:"type:varchar(200);not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Type             string          `json:"type" gorm:"type:varchar(20);not null;index"` // hardware, software, services, supplies
	Priority         string          `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Department       string          `json:"department" gorm:"type:varchar(100);index"`
	Budget           decimal.Decimal `json:"budget" gorm:"type:decimal(14,2)"`
	Currency         string          `json:"currency" gorm:"type:varchar(10);default:'PKR'"`
	Quantity         int             `json:"quantity" gorm:"default:1"`
	Unit             string          `json:"unit" gorm:"type:varchar(20);default:'pieces'"`
	RequiredBy       *time.Time      `json:"required_by,omitempty"`
	Specifications   string          `json:"specifications,omitempty" gorm:"type:text"`
	Justification    string          `json:"justification,omitempty" gorm:"type:text"`
	VendorPreference string          `json:"vendor_preference,omitempty" gorm:"type:varchar(200)"`
	Attachments      datatypes.JSON  `json:"attachments,omitempty" gorm:"type:json"`

	// 审批状态
	Status               RequestStatus      `json:"status" gorm:"type:varchar(20);default:'pending_approval';index"`
	CurrentApprovalLevel int                `json:"current_approval_level" gorm:"default:1"`
	ApprovalHierarchy    ApprovalStepList   `json:"approval_hierarchy" gorm:"type:json"`
	ApprovalHistory      ApprovalActionList `json:"approval_history" gorm:"type:json"`

	// 创建人信息
	CreatedByID string `json:"created_by_id" gorm:"type:varchar(36);index"`
	CreatedBy   string `json:"created_by" gorm:"type:varchar(100)"`

	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"` // 批准时间
	RejectedAt *time.Time `json:"rejected_at,omitempty"` // 拒绝时间
}

// TableName 指定表名
func (ProcurementRequest) TableName() string {
	return "procurement_requests"
}

// CurrentStep 当前待审批的步骤；终态或越界时返回 nil
func (r *ProcurementRequest) CurrentStep() *ApprovalStep {
	if r.Status != RequestStatusPending {
		return nil
	}
	idx := r.CurrentApprovalLevel - 1
	if idx < 0 || idx >= len(r.ApprovalHierarchy) {
		return nil
	}
	return &r.ApprovalHierarchy[idx]
}

// CreateProcurementRequest 创建采购申请的请求体
type CreateProcurementRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description"`
	Type             string          `json:"type" binding:"required,oneof=hardware software services supplies"`
	Priority         string          `json:"priority"`
	Department       string          `json:"department"`
	Budget           decimal.Decimal `json:"budget"`
	Currency         string          `json:"currency"`
	Quantity         int             `json:"quantity"`
	Unit             string          `json:"unit"`
	RequiredBy       *time.Time      `json:"required_by"`
	Specifications   string          `json:"specifications"`
	Justification    string          `json:"justification"`
	VendorPreference string          `json:"vendor_preference"`
	Attachments      datatypes.JSON  `json:"attachments"`
}

// ApprovalActionRequest 审批动作请求体
type ApprovalActionRequest struct {
	Note   string `json:"note"`   // 批准备注，可选
	Reason string `json:"reason"` // 拒绝原因，拒绝时必填
}

// ProcurementFilter 采购申请列表过滤条件（全部可选，AND 组合）
type ProcurementFilter struct {
	Status     string // 状态精确匹配
	Type       string // 类型精确匹配
	Department string // 部门精确匹配
	Keyword    string // 标题/描述/申请编号 不区分大小写子串匹配
}
