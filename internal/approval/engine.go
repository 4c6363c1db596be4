package approval

import (
	"errors"
	"time"

	"github.com/fisker/itops-backend/internal/model"
)

// 审批引擎错误
var (
	ErrTerminalState = errors.New("申请已进入终态，不允许继续审批")
	ErrNotAuthorized = errors.New("当前用户无权审批该级别")
	ErrEmptyReason   = errors.New("拒绝时必须填写原因")
	ErrNoCurrentStep = errors.New("审批链中不存在当前级别对应的步骤")
)

// Actor 审批操作人
type Actor struct {
	Name       string
	Role       string
	Department string
}

// ActorFromUser 从用户模型构造操作人
func ActorFromUser(u *model.User) Actor {
	return Actor{
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
	}
}

// Engine 审批引擎
// 纯状态机，不做持久化，由调用方在事务内使用
type Engine struct{}

// NewEngine 创建审批引擎
func NewEngine() *Engine {
	return &Engine{}
}

// CanActOn 判断操作人能否审批当前步骤
//
// 规则按顺序命中其一即放行：
//  1. ceo 级：head 角色 + Management 部门
//  2. director 级：head 角色 + Operations 部门
//  3. IT 部门级：操作人在 IT 部门即可，不看角色
//  4. 其余级别：角色与部门均精确匹配
//
// 注意第3条与其他级别不对称，IT 部门整体作为一道关口放行，
// 这是既定业务规则，不要按第4条归一化。
func (e *Engine) CanActOn(req *model.ProcurementRequest, actor Actor) bool {
	step := req.CurrentStep()
	if step == nil {
		return false
	}

	switch {
	case step.Role == StepRoleCEO:
		return actor.Role == model.RoleHead && actor.Department == DeptManagement
	case step.Role == StepRoleDirector:
		return actor.Role == model.RoleHead && actor.Department == DeptOperations
	case step.Department == DeptIT:
		return actor.Department == DeptIT
	default:
		return actor.Role == step.Role && actor.Department == step.Department
	}
}

// Approve 对当前级别执行批准，就地修改 req
//
// 末级批准时状态置为 approved，级别冻结在链长；
// 否则级别加一。第4级（IT部门）的历史记录会附带库存核查结果。
func (e *Engine) Approve(req *model.ProcurementRequest, actor Actor, note string, now time.Time) error {
	if req.Status.IsTerminal() {
		return ErrTerminalState
	}
	step := req.CurrentStep()
	if step == nil {
		return ErrNoCurrentStep
	}
	if !e.CanActOn(req, actor) {
		return ErrNotAuthorized
	}

	action := model.ApprovalAction{
		Level:      req.CurrentApprovalLevel,
		Action:     model.ActionApproved,
		By:         actor.Name,
		Department: actor.Department,
		Note:       note,
		Timestamp:  now,
	}
	if step.Condition != nil && step.Condition.Type == "inventory_check" {
		action.InventoryCheck = &model.InventoryCheck{
			Result: "checked",
			Note:   note,
		}
	}
	req.ApprovalHistory = append(req.ApprovalHistory, action)

	if req.CurrentApprovalLevel == len(req.ApprovalHierarchy) {
		req.Status = model.RequestStatusApproved
		req.ApprovedAt = &now
	} else {
		req.CurrentApprovalLevel++
	}
	return nil
}

// Reject 对当前级别执行拒绝，就地修改 req
// 任何级别拒绝都直接进入终态，原因必填
func (e *Engine) Reject(req *model.ProcurementRequest, actor Actor, reason string, now time.Time) error {
	if req.Status.IsTerminal() {
		return ErrTerminalState
	}
	if req.CurrentStep() == nil {
		return ErrNoCurrentStep
	}
	if reason == "" {
		return ErrEmptyReason
	}
	if !e.CanActOn(req, actor) {
		return ErrNotAuthorized
	}

	req.ApprovalHistory = append(req.ApprovalHistory, model.ApprovalAction{
		Level:      req.CurrentApprovalLevel,
		Action:     model.ActionRejected,
		By:         actor.Name,
		Department: actor.Department,
		Reason:     reason,
		Timestamp:  now,
	})
	req.Status = model.RequestStatusRejected
	req.RejectedAt = &now
	return nil
}
