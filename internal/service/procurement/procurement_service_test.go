package procurement

import (
	"errors"
	"testing"

	"github.com/fisker/itops-backend/internal/approval"
	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) *ProcurementService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.ProcurementRequest{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	repo := repository.NewProcurementRepository(db)
	return NewProcurementService(repo, approval.NewStandardHierarchy())
}

func testUser(name, role, department string) *model.User {
	return &model.User{
		ID:         "user-" + name,
		Email:      name + "@example.com",
		Name:       name,
		Role:       role,
		Department: department,
		Status:     model.UserStatusActive,
	}
}

// TestCreateRequestInitialState 测试新建申请的初始状态
func TestCreateRequestInitialState(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, err := svc.CreateRequest(&model.CreateProcurementRequest{
		Title:  "采购10台笔记本",
		Type:   model.RequestTypeHardware,
		Budget: decimal.NewFromInt(500000),
	}, creator)
	if err != nil {
		t.Fatalf("CreateRequest 失败: %v", err)
	}

	if req.Status != model.RequestStatusPending {
		t.Errorf("Status = %q, 期望 pending_approval", req.Status)
	}
	if req.CurrentApprovalLevel != 1 {
		t.Errorf("CurrentApprovalLevel = %d, 期望 1", req.CurrentApprovalLevel)
	}
	if len(req.ApprovalHierarchy) != 6 {
		t.Errorf("审批链长度 = %d, 期望 6", len(req.ApprovalHierarchy))
	}
	if len(req.ApprovalHistory) != 0 {
		t.Errorf("审批历史长度 = %d, 期望 0", len(req.ApprovalHistory))
	}
	if req.RequestNumber == "" {
		t.Error("RequestNumber 不应为空")
	}
	if req.Department != "Finance" {
		t.Errorf("Department = %q, 期望继承申请人部门 Finance", req.Department)
	}

	// 落库后再读出，审批链应往返无损
	loaded, err := svc.GetRequest(req.ID)
	if err != nil {
		t.Fatalf("GetRequest 失败: %v", err)
	}
	if len(loaded.ApprovalHierarchy) != 6 {
		t.Fatalf("读出的审批链长度 = %d, 期望 6", len(loaded.ApprovalHierarchy))
	}
	if loaded.ApprovalHierarchy[3].Department != "IT" {
		t.Errorf("第四级部门 = %q, 期望固定覆盖为 IT", loaded.ApprovalHierarchy[3].Department)
	}
	if loaded.ApprovalHierarchy[3].Condition == nil || loaded.ApprovalHierarchy[3].Condition.Type != "inventory_check" {
		t.Error("第四级库存核查条件落库后丢失")
	}
}

// TestFullApprovalFlow 测试完整审批流程走到批准
func TestFullApprovalFlow(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, err := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "服务器扩容", Type: model.RequestTypeHardware,
	}, creator)
	if err != nil {
		t.Fatalf("CreateRequest 失败: %v", err)
	}

	approvers := []*model.User{
		testUser("fm", model.RoleManager, "Finance"),
		testUser("fm", model.RoleManager, "Finance"),
		testUser("fh", model.RoleHead, "Finance"),
		testUser("it", model.RoleNormal, "IT"), // IT部门普通用户也能过第四级
		testUser("od", model.RoleHead, "Operations"),
		testUser("ceo", model.RoleHead, "Management"),
	}

	for i, approver := range approvers {
		updated, err := svc.Approve(req.ID, approver, "同意")
		if err != nil {
			t.Fatalf("第 %d 级审批失败: %v", i+1, err)
		}
		req = updated
	}

	if req.Status != model.RequestStatusApproved {
		t.Errorf("Status = %q, 期望 approved", req.Status)
	}
	if req.CurrentApprovalLevel != 6 {
		t.Errorf("CurrentApprovalLevel = %d, 期望冻结在 6", req.CurrentApprovalLevel)
	}
	if len(req.ApprovalHistory) != 6 {
		t.Fatalf("审批历史长度 = %d, 期望 6", len(req.ApprovalHistory))
	}

	// 第四级历史记录应附带库存核查结果
	var level4 *model.ApprovalAction
	for i := range req.ApprovalHistory {
		if req.ApprovalHistory[i].Level == 4 {
			level4 = &req.ApprovalHistory[i]
		}
	}
	if level4 == nil || level4.InventoryCheck == nil {
		t.Fatal("第四级历史记录应附带库存核查结果")
	}
	if level4.InventoryCheck.Result != "checked" {
		t.Errorf("InventoryCheck.Result = %q, 期望 checked", level4.InventoryCheck.Result)
	}
}

// TestRejectFlow 测试中途拒绝
func TestRejectFlow(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, _ := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "办公用品", Type: model.RequestTypeSupplies,
	}, creator)

	manager := testUser("fm", model.RoleManager, "Finance")
	updated, err := svc.Reject(req.ID, manager, "预算不足")
	if err != nil {
		t.Fatalf("Reject 失败: %v", err)
	}

	if updated.Status != model.RequestStatusRejected {
		t.Errorf("Status = %q, 期望 rejected", updated.Status)
	}

	// 终态后任何动作都应失败且不追加历史
	if _, err := svc.Approve(req.ID, manager, "再审一次"); !errors.Is(err, approval.ErrTerminalState) {
		t.Errorf("终态后 Approve 错误 = %v, 期望 ErrTerminalState", err)
	}
	loaded, _ := svc.GetRequest(req.ID)
	if len(loaded.ApprovalHistory) != 1 {
		t.Errorf("终态后历史长度 = %d, 期望保持 1", len(loaded.ApprovalHistory))
	}
}

// TestRejectRequiresReason 测试拒绝原因必填
func TestRejectRequiresReason(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, _ := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "测试", Type: model.RequestTypeSoftware,
	}, creator)

	manager := testUser("fm", model.RoleManager, "Finance")
	if _, err := svc.Reject(req.ID, manager, ""); !errors.Is(err, approval.ErrEmptyReason) {
		t.Errorf("空原因 Reject 错误 = %v, 期望 ErrEmptyReason", err)
	}
}

// TestUnauthorizedApprove 测试服务端强制校验审批权限
func TestUnauthorizedApprove(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, _ := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "测试", Type: model.RequestTypeSoftware,
	}, creator)

	// 其他部门经理无权审批第一级
	outsider := testUser("sales", model.RoleManager, "Sales")
	if _, err := svc.Approve(req.ID, outsider, "同意"); !errors.Is(err, approval.ErrNotAuthorized) {
		t.Errorf("无权 Approve 错误 = %v, 期望 ErrNotAuthorized", err)
	}

	loaded, _ := svc.GetRequest(req.ID)
	if loaded.CurrentApprovalLevel != 1 || len(loaded.ApprovalHistory) != 0 {
		t.Error("无权操作不应改变申请状态")
	}
}

// TestStaleApprovalRejected 测试基于过期快照的重复审批被前置条件拦截
func TestStaleApprovalRejected(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, _ := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "测试", Type: model.RequestTypeHardware,
	}, creator)

	manager := testUser("fm", model.RoleManager, "Finance")

	// 第一次审批推进到第二级
	if _, err := svc.Approve(req.ID, manager, "同意"); err != nil {
		t.Fatalf("第一次 Approve 失败: %v", err)
	}

	// 同一审批人基于过期快照重复提交：当前已是第二级，经理对第二级仍有权限，
	// 会作为第二级审批生效（同一角色连续两级），但不会重复写第一级历史
	if _, err := svc.Approve(req.ID, manager, "同意"); err != nil {
		t.Fatalf("第二次 Approve 失败: %v", err)
	}

	loaded, _ := svc.GetRequest(req.ID)
	if loaded.CurrentApprovalLevel != 3 {
		t.Errorf("CurrentApprovalLevel = %d, 期望 3", loaded.CurrentApprovalLevel)
	}
	levels := map[int]int{}
	for _, a := range loaded.ApprovalHistory {
		levels[a.Level]++
	}
	for level, count := range levels {
		if count > 1 {
			t.Errorf("级别 %d 写入了 %d 条历史记录", level, count)
		}
	}

	// 无权限的第三级审批人提交过期快照动作直接被拒
	if _, err := svc.Approve(req.ID, testUser("sales", model.RoleManager, "Sales"), "同意"); !errors.Is(err, approval.ErrNotAuthorized) {
		t.Errorf("过期快照无权 Approve 错误 = %v, 期望 ErrNotAuthorized", err)
	}
}

// TestListRequestsFilter 测试列表过滤
func TestListRequestsFilter(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")
	other := testUser("other", model.RoleNormal, "Sales")

	svc.CreateRequest(&model.CreateProcurementRequest{Title: "MacBook Pro 采购", Type: model.RequestTypeHardware}, creator)
	svc.CreateRequest(&model.CreateProcurementRequest{Title: "IDE 许可证", Type: model.RequestTypeSoftware}, creator)
	svc.CreateRequest(&model.CreateProcurementRequest{Title: "显示器", Type: model.RequestTypeHardware}, other)

	tests := []struct {
		name     string
		filter   model.ProcurementFilter
		expected int
	}{
		{"无过滤返回全部", model.ProcurementFilter{}, 3},
		{"按类型过滤", model.ProcurementFilter{Type: model.RequestTypeHardware}, 2},
		{"按部门过滤", model.ProcurementFilter{Department: "Sales"}, 1},
		{"按状态过滤", model.ProcurementFilter{Status: string(model.RequestStatusPending)}, 3},
		{"关键字不区分大小写", model.ProcurementFilter{Keyword: "macbook"}, 1},
		{"类型与部门AND组合", model.ProcurementFilter{Type: model.RequestTypeHardware, Department: "Finance"}, 1},
		{"无匹配", model.ProcurementFilter{Keyword: "不存在的关键字"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, total, err := svc.ListRequests(tt.filter, 1, 20)
			if err != nil {
				t.Fatalf("ListRequests 失败: %v", err)
			}
			if int(total) != tt.expected || len(results) != tt.expected {
				t.Errorf("结果数 = %d (total=%d), 期望 %d", len(results), total, tt.expected)
			}
		})
	}
}

// TestCanActOnRendering 测试渲染与强制校验共用同一权限谓词
func TestCanActOnRendering(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	req, _ := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "测试", Type: model.RequestTypeHardware,
	}, creator)

	manager := testUser("fm", model.RoleManager, "Finance")
	outsider := testUser("sales", model.RoleManager, "Sales")

	if !svc.CanActOn(req, manager) {
		t.Error("本部门经理应可审批第一级")
	}
	if svc.CanActOn(req, outsider) {
		t.Error("其他部门经理不应可审批第一级")
	}
}

// TestGetRequestByNumber 测试按申请编号查找
func TestGetRequestByNumber(t *testing.T) {
	svc := setupTestService(t)
	creator := testUser("creator", model.RoleNormal, "Finance")

	created, err := svc.CreateRequest(&model.CreateProcurementRequest{
		Title: "采购显示器", Type: model.RequestTypeHardware,
	}, creator)
	if err != nil {
		t.Fatalf("CreateRequest 失败: %v", err)
	}

	loaded, err := svc.GetRequest(created.RequestNumber)
	if err != nil {
		t.Fatalf("按编号 GetRequest 失败: %v", err)
	}
	if loaded.ID != created.ID {
		t.Errorf("按编号查到的 ID = %q, 期望 %q", loaded.ID, created.ID)
	}

	if _, err := svc.GetRequest("PR-00000000000000deadbeef"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("未知编号应返回 ErrRequestNotFound, 实际 %v", err)
	}
}
