package approval

import (
	"testing"
)

// TestStandardHierarchyShape 测试标准审批链的结构
func TestStandardHierarchyShape(t *testing.T) {
	policy := NewStandardHierarchy()
	steps := policy.BuildHierarchy("Finance")

	if len(steps) != 6 {
		t.Fatalf("审批链长度 = %d, 期望 6", len(steps))
	}

	// 级别应为 1..6 连续
	for i, step := range steps {
		if step.Level != i+1 {
			t.Errorf("steps[%d].Level = %d, 期望 %d", i, step.Level, i+1)
		}
	}

	tests := []struct {
		name       string
		index      int
		role       string
		department string
		title      string
	}{
		{"第一级需求发起", 0, StepRoleManager, "Finance", "Demand Raise"},
		{"第二级经理审批", 1, StepRoleManager, "Finance", "Manager Approval"},
		{"第三级负责人审批", 2, StepRoleHead, "Finance", "Head Approval"},
		{"第四级IT部门固定覆盖", 3, StepRoleManager, "IT", "IT Department"},
		{"第五级运营总监固定覆盖", 4, StepRoleDirector, "Operations", "Director Operations"},
		{"第六级CEO固定覆盖", 5, StepRoleCEO, "Management", "CEO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := steps[tt.index]
			if step.Role != tt.role {
				t.Errorf("Role = %q, 期望 %q", step.Role, tt.role)
			}
			if step.Department != tt.department {
				t.Errorf("Department = %q, 期望 %q", step.Department, tt.department)
			}
			if step.Title != tt.title {
				t.Errorf("Title = %q, 期望 %q", step.Title, tt.title)
			}
		})
	}
}

// TestStandardHierarchyInventoryCondition 测试第四级附带库存核查条件
func TestStandardHierarchyInventoryCondition(t *testing.T) {
	steps := NewStandardHierarchy().BuildHierarchy("HR")

	for i, step := range steps {
		if i == 3 {
			if step.Condition == nil {
				t.Fatal("第四级应附带库存核查条件")
			}
			if step.Condition.Type != "inventory_check" {
				t.Errorf("Condition.Type = %q, 期望 inventory_check", step.Condition.Type)
			}
			if step.Condition.Description == "" {
				t.Error("Condition.Description 不应为空")
			}
			continue
		}
		if step.Condition != nil {
			t.Errorf("steps[%d] 不应附带条件", i)
		}
	}
}

// TestStandardHierarchyDepartmentOverride 测试后三级部门不随申请人部门变化
func TestStandardHierarchyDepartmentOverride(t *testing.T) {
	policy := NewStandardHierarchy()

	for _, dept := range []string{"Finance", "IT", "Sales", ""} {
		steps := policy.BuildHierarchy(dept)
		if steps[3].Department != "IT" {
			t.Errorf("申请人部门 %q 时第四级部门 = %q, 期望 IT", dept, steps[3].Department)
		}
		if steps[4].Department != "Operations" {
			t.Errorf("申请人部门 %q 时第五级部门 = %q, 期望 Operations", dept, steps[4].Department)
		}
		if steps[5].Department != "Management" {
			t.Errorf("申请人部门 %q 时第六级部门 = %q, 期望 Management", dept, steps[5].Department)
		}
	}
}
