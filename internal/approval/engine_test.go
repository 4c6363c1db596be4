package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/fisker/itops-backend/internal/model"
)

func newPendingRequest(creatorDept string) *model.ProcurementRequest {
	return &model.ProcurementRequest{
		ID:                   "req-1",
		RequestNumber:        "PR-TEST-0001",
		Title:                "测试采购申请",
		Department:           creatorDept,
		Status:               model.RequestStatusPending,
		CurrentApprovalLevel: 1,
		ApprovalHierarchy:    NewStandardHierarchy().BuildHierarchy(creatorDept),
		ApprovalHistory:      model.ApprovalActionList{},
	}
}

// TestCanActOn 测试审批权限判定规则
func TestCanActOn(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		level    int
		actor    Actor
		expected bool
	}{
		// 普通级别：角色与部门精确匹配
		{"第一级部门经理可审批", 1, Actor{Name: "张三", Role: "manager", Department: "Finance"}, true},
		{"第一级其他部门经理不可审批", 1, Actor{Name: "李四", Role: "manager", Department: "Sales"}, false},
		{"第一级普通用户不可审批", 1, Actor{Name: "王五", Role: "normal", Department: "Finance"}, false},
		{"第三级部门负责人可审批", 3, Actor{Name: "赵六", Role: "head", Department: "Finance"}, true},
		{"第三级部门经理不可审批", 3, Actor{Name: "张三", Role: "manager", Department: "Finance"}, false},

		// IT部门级：只看部门，不看角色
		{"第四级IT经理可审批", 4, Actor{Name: "IT经理", Role: "manager", Department: "IT"}, true},
		{"第四级IT普通用户可审批", 4, Actor{Name: "IT工程师", Role: "normal", Department: "IT"}, true},
		{"第四级IT只读用户可审批", 4, Actor{Name: "IT实习生", Role: "view", Department: "IT"}, true},
		{"第四级非IT经理不可审批", 4, Actor{Name: "张三", Role: "manager", Department: "Finance"}, false},

		// director级：head角色 + Operations部门
		{"第五级运营负责人可审批", 5, Actor{Name: "运营负责人", Role: "head", Department: "Operations"}, true},
		{"第五级运营经理不可审批", 5, Actor{Name: "运营经理", Role: "manager", Department: "Operations"}, false},
		{"第五级管理层负责人不可审批", 5, Actor{Name: "管理层", Role: "head", Department: "Management"}, false},

		// ceo级：head角色 + Management部门
		{"第六级管理层负责人可审批", 6, Actor{Name: "管理层", Role: "head", Department: "Management"}, true},
		{"第六级运营负责人不可审批", 6, Actor{Name: "运营负责人", Role: "head", Department: "Operations"}, false},
		{"第六级管理层经理不可审批", 6, Actor{Name: "管理层经理", Role: "manager", Department: "Management"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newPendingRequest("Finance")
			req.CurrentApprovalLevel = tt.level
			if got := engine.CanActOn(req, tt.actor); got != tt.expected {
				t.Errorf("CanActOn(level=%d, %+v) = %v, 期望 %v", tt.level, tt.actor, got, tt.expected)
			}
		})
	}
}

// TestCanActOnTerminal 测试终态申请不允许任何人审批
func TestCanActOnTerminal(t *testing.T) {
	engine := NewEngine()
	actor := Actor{Name: "张三", Role: "manager", Department: "Finance"}

	req := newPendingRequest("Finance")
	req.Status = model.RequestStatusRejected
	if engine.CanActOn(req, actor) {
		t.Error("已拒绝的申请不应允许审批")
	}

	req = newPendingRequest("Finance")
	req.Status = model.RequestStatusApproved
	if engine.CanActOn(req, actor) {
		t.Error("已批准的申请不应允许审批")
	}
}

// TestApproveAdvancesLevel 测试批准推进审批级别
func TestApproveAdvancesLevel(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")
	now := time.Now()

	actor := Actor{Name: "张三", Role: "manager", Department: "Finance"}
	if err := engine.Approve(req, actor, "同意", now); err != nil {
		t.Fatalf("Approve 失败: %v", err)
	}

	if req.CurrentApprovalLevel != 2 {
		t.Errorf("CurrentApprovalLevel = %d, 期望 2", req.CurrentApprovalLevel)
	}
	if req.Status != model.RequestStatusPending {
		t.Errorf("Status = %q, 期望 pending_approval", req.Status)
	}
	if len(req.ApprovalHistory) != 1 {
		t.Fatalf("历史记录数 = %d, 期望 1", len(req.ApprovalHistory))
	}

	action := req.ApprovalHistory[0]
	if action.Level != 1 || action.Action != model.ActionApproved {
		t.Errorf("历史记录 = %+v, 期望 level=1 action=approved", action)
	}
	if action.By != "张三" || action.Department != "Finance" {
		t.Errorf("操作人快照 = %q/%q, 期望 张三/Finance", action.By, action.Department)
	}
	if action.Note != "同意" {
		t.Errorf("Note = %q, 期望 同意", action.Note)
	}
	if action.InventoryCheck != nil {
		t.Error("非IT级别不应附带库存核查结果")
	}
}

// TestApproveLevelFourAttachesInventoryCheck 测试第四级批准附带库存核查结果
func TestApproveLevelFourAttachesInventoryCheck(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")
	req.CurrentApprovalLevel = 4

	// IT部门普通用户也能过第四级
	actor := Actor{Name: "IT工程师", Role: "normal", Department: "IT"}
	if err := engine.Approve(req, actor, "库存无货，走供应商", time.Now()); err != nil {
		t.Fatalf("Approve 失败: %v", err)
	}

	action := req.ApprovalHistory[len(req.ApprovalHistory)-1]
	if action.InventoryCheck == nil {
		t.Fatal("第四级批准应附带库存核查结果")
	}
	if action.InventoryCheck.Result != "checked" {
		t.Errorf("InventoryCheck.Result = %q, 期望 checked", action.InventoryCheck.Result)
	}
	if action.InventoryCheck.Note != "库存无货，走供应商" {
		t.Errorf("InventoryCheck.Note = %q, 期望与审批备注一致", action.InventoryCheck.Note)
	}
}

// TestApproveFinalLevel 测试末级批准进入终态且级别冻结
func TestApproveFinalLevel(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")
	req.CurrentApprovalLevel = 6

	actor := Actor{Name: "管理层", Role: "head", Department: "Management"}
	if err := engine.Approve(req, actor, "最终批准", time.Now()); err != nil {
		t.Fatalf("Approve 失败: %v", err)
	}

	if req.Status != model.RequestStatusApproved {
		t.Errorf("Status = %q, 期望 approved", req.Status)
	}
	if req.CurrentApprovalLevel != 6 {
		t.Errorf("CurrentApprovalLevel = %d, 期望冻结在 6", req.CurrentApprovalLevel)
	}
	if req.ApprovedAt == nil {
		t.Error("ApprovedAt 应被设置")
	}
}

// TestApproveFullChain 测试完整审批链走到批准
func TestApproveFullChain(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")

	actors := []Actor{
		{Name: "财务经理", Role: "manager", Department: "Finance"},
		{Name: "财务经理", Role: "manager", Department: "Finance"},
		{Name: "财务负责人", Role: "head", Department: "Finance"},
		{Name: "IT工程师", Role: "normal", Department: "IT"},
		{Name: "运营负责人", Role: "head", Department: "Operations"},
		{Name: "管理层", Role: "head", Department: "Management"},
	}

	for i, actor := range actors {
		if err := engine.Approve(req, actor, "同意", time.Now()); err != nil {
			t.Fatalf("第 %d 级 Approve 失败: %v", i+1, err)
		}
	}

	if req.Status != model.RequestStatusApproved {
		t.Errorf("Status = %q, 期望 approved", req.Status)
	}
	if len(req.ApprovalHistory) != 6 {
		t.Fatalf("历史记录数 = %d, 期望 6", len(req.ApprovalHistory))
	}

	// 各级别历史唯一
	seen := map[int]bool{}
	for _, a := range req.ApprovalHistory {
		if seen[a.Level] {
			t.Errorf("级别 %d 出现多条历史记录", a.Level)
		}
		seen[a.Level] = true
	}
}

// TestRejectTerminatesAtAnyLevel 测试任意级别拒绝直接终止
func TestRejectTerminatesAtAnyLevel(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")
	req.CurrentApprovalLevel = 3

	actor := Actor{Name: "财务负责人", Role: "head", Department: "Finance"}
	if err := engine.Reject(req, actor, "预算不足", time.Now()); err != nil {
		t.Fatalf("Reject 失败: %v", err)
	}

	if req.Status != model.RequestStatusRejected {
		t.Errorf("Status = %q, 期望 rejected", req.Status)
	}
	if req.RejectedAt == nil {
		t.Error("RejectedAt 应被设置")
	}

	action := req.ApprovalHistory[len(req.ApprovalHistory)-1]
	if action.Action != model.ActionRejected || action.Reason != "预算不足" {
		t.Errorf("历史记录 = %+v, 期望 rejected/预算不足", action)
	}

	// 终态后任何动作都不再追加历史
	before := len(req.ApprovalHistory)
	if err := engine.Approve(req, actor, "再试一次", time.Now()); !errors.Is(err, ErrTerminalState) {
		t.Errorf("终态后 Approve 错误 = %v, 期望 ErrTerminalState", err)
	}
	if err := engine.Reject(req, actor, "再拒一次", time.Now()); !errors.Is(err, ErrTerminalState) {
		t.Errorf("终态后 Reject 错误 = %v, 期望 ErrTerminalState", err)
	}
	if len(req.ApprovalHistory) != before {
		t.Errorf("终态后历史记录数变为 %d, 期望保持 %d", len(req.ApprovalHistory), before)
	}
}

// TestRejectRequiresReason 测试拒绝原因必填
func TestRejectRequiresReason(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")

	actor := Actor{Name: "财务经理", Role: "manager", Department: "Finance"}
	if err := engine.Reject(req, actor, "", time.Now()); !errors.Is(err, ErrEmptyReason) {
		t.Errorf("空原因 Reject 错误 = %v, 期望 ErrEmptyReason", err)
	}
	if len(req.ApprovalHistory) != 0 {
		t.Error("校验失败时不应追加历史记录")
	}
	if req.Status != model.RequestStatusPending {
		t.Error("校验失败时状态不应变化")
	}
}

// TestApproveUnauthorized 测试无权用户批准被拒绝
func TestApproveUnauthorized(t *testing.T) {
	engine := NewEngine()
	req := newPendingRequest("Finance")

	actor := Actor{Name: "路人", Role: "normal", Department: "Sales"}
	if err := engine.Approve(req, actor, "同意", time.Now()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("无权 Approve 错误 = %v, 期望 ErrNotAuthorized", err)
	}
	if len(req.ApprovalHistory) != 0 || req.CurrentApprovalLevel != 1 {
		t.Error("无权操作不应改变申请状态")
	}
}
