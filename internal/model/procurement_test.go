package model

import (
	"reflect"
	"testing"
	"time"
)

// TestApprovalStepListRoundTrip 测试审批链落库序列化往返无损
func TestApprovalStepListRoundTrip(t *testing.T) {
	steps := ApprovalStepList{
		{Level: 1, Role: "manager", Department: "Finance", Title: "Demand Raise"},
		{Level: 4, Role: "manager", Department: "IT", Title: "IT Department",
			Condition: &StepCondition{Type: "inventory_check", Description: "Check if item exists in inventory or proceed with vendor"}},
	}

	value, err := steps.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}

	var decoded ApprovalStepList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}

	if !reflect.DeepEqual(steps, decoded) {
		t.Errorf("往返结果不一致:\n原始 = %+v\n解码 = %+v", steps, decoded)
	}

	// 二次序列化应与首次一致
	value2, err := decoded.Value()
	if err != nil {
		t.Fatalf("二次 Value 失败: %v", err)
	}
	if string(value.([]byte)) != string(value2.([]byte)) {
		t.Errorf("二次序列化不一致:\n%s\n%s", value, value2)
	}
}

// TestApprovalActionListRoundTrip 测试审批历史落库序列化往返无损
func TestApprovalActionListRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	actions := ApprovalActionList{
		{Level: 1, Action: ActionApproved, By: "张三", Department: "Finance", Note: "同意", Timestamp: ts},
		{Level: 4, Action: ActionApproved, By: "IT工程师", Department: "IT", Note: "走供应商",
			InventoryCheck: &InventoryCheck{Result: "checked", Note: "走供应商"}, Timestamp: ts},
	}

	value, err := actions.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}

	var decoded ApprovalActionList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}

	if !reflect.DeepEqual(actions, decoded) {
		t.Errorf("往返结果不一致:\n原始 = %+v\n解码 = %+v", actions, decoded)
	}
}

// TestListScanNil 测试空值扫描
func TestListScanNil(t *testing.T) {
	var steps ApprovalStepList
	if err := steps.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) 失败: %v", err)
	}
	if steps == nil || len(steps) != 0 {
		t.Errorf("Scan(nil) 结果 = %v, 期望空列表", steps)
	}

	var actions ApprovalActionList
	if err := actions.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) 失败: %v", err)
	}
	if actions == nil || len(actions) != 0 {
		t.Errorf("Scan(nil) 结果 = %v, 期望空列表", actions)
	}
}

// TestEmptyListValue 测试空列表序列化为空JSON数组
func TestEmptyListValue(t *testing.T) {
	var steps ApprovalStepList
	v, err := steps.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}
	if v != "[]" {
		t.Errorf("空列表 Value = %v, 期望 []", v)
	}
}

// TestCurrentStep 测试当前步骤计算
func TestCurrentStep(t *testing.T) {
	hierarchy := ApprovalStepList{
		{Level: 1, Role: "manager", Department: "Finance", Title: "Demand Raise"},
		{Level: 2, Role: "manager", Department: "Finance", Title: "Manager Approval"},
	}

	req := &ProcurementRequest{
		Status:               RequestStatusPending,
		CurrentApprovalLevel: 2,
		ApprovalHierarchy:    hierarchy,
	}
	step := req.CurrentStep()
	if step == nil || step.Level != 2 {
		t.Errorf("CurrentStep = %+v, 期望 level 2", step)
	}

	// 终态无当前步骤
	req.Status = RequestStatusApproved
	if req.CurrentStep() != nil {
		t.Error("终态申请 CurrentStep 应为 nil")
	}

	// 越界无当前步骤
	req.Status = RequestStatusPending
	req.CurrentApprovalLevel = 3
	if req.CurrentStep() != nil {
		t.Error("级别越界时 CurrentStep 应为 nil")
	}
}
