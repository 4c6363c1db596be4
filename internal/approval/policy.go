package approval

import (
	"github.com/fisker/itops-backend/internal/model"
)

// 审批步骤要求的角色
const (
	StepRoleManager  = "manager"
	StepRoleHead     = "head"
	StepRoleDirector = "director"
	StepRoleCEO      = "ceo"
)

// 固定覆盖的部门
const (
	DeptIT         = "IT"
	DeptOperations = "Operations"
	DeptManagement = "Management"
)

// HierarchyPolicy 审批链生成策略
// 申请创建时调用一次，生成的链之后不可变
type HierarchyPolicy interface {
	// BuildHierarchy 根据申请人部门生成审批链
	BuildHierarchy(creatorDepartment string) model.ApprovalStepList
}

// StandardHierarchy 标准六级审批链
//
// 前三级跟随申请人部门，后三级固定走 IT -> 运营 -> 管理层。
// 所有申请走同一条链，不按金额或类型分流。
type StandardHierarchy struct{}

// NewStandardHierarchy 创建标准审批链策略
func NewStandardHierarchy() *StandardHierarchy {
	return &StandardHierarchy{}
}

// BuildHierarchy 生成固定的六级审批链
func (p *StandardHierarchy) BuildHierarchy(creatorDepartment string) model.ApprovalStepList {
	return model.ApprovalStepList{
		{
			Level:      1,
			Role:       StepRoleManager,
			Department: creatorDepartment,
			Title:      "Demand Raise",
		},
		{
			Level:      2,
			Role:       StepRoleManager,
			Department: creatorDepartment,
			Title:      "Manager Approval",
		},
		{
			Level:      3,
			Role:       StepRoleHead,
			Department: creatorDepartment,
			Title:      "Head Approval",
		},
		{
			Level:      4,
			Role:       StepRoleManager,
			Department: DeptIT,
			Title:      "IT Department",
			Condition: &model.StepCondition{
				Type:        "inventory_check",
				Description: "Check if item exists in inventory or proceed with vendor",
			},
		},
		{
			Level:      5,
			Role:       StepRoleDirector,
			Department: DeptOperations,
			Title:      "Director Operations",
		},
		{
			Level:      6,
			Role:       StepRoleCEO,
			Department: DeptManagement,
			Title:      "CEO",
		},
	}
}
