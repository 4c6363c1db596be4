package procurement

import (
	"errors"
	"fmt"
	"time"

	"github.com/fisker/itops-backend/internal/approval"
	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/fisker/itops-backend/pkg/distributed"
	"github.com/fisker/itops-backend/pkg/logger"
	"github.com/fisker/itops-backend/pkg/metrics"
	"github.com/fisker/itops-backend/pkg/redis"
	"github.com/google/uuid"
)

// 服务层错误
var (
	ErrRequestNotFound = errors.New("采购申请不存在")
)

// ProcurementService 采购审批服务
//
// 审批动作在数据库事务内执行：先重新读取最新状态再校验前置条件，
// 避免两个审批人基于同一份过期快照竞争写入时后写覆盖先写。
// Redis 可用时额外对单条申请加分布式锁，串行化跨实例的并发审批。
type ProcurementService struct {
	repo   *repository.ProcurementRepository
	policy approval.HierarchyPolicy
	engine *approval.Engine
}

// NewProcurementService 创建采购审批服务
func NewProcurementService(repo *repository.ProcurementRepository, policy approval.HierarchyPolicy) *ProcurementService {
	if policy == nil {
		policy = approval.NewStandardHierarchy()
	}
	return &ProcurementService{
		repo:   repo,
		policy: policy,
		engine: approval.NewEngine(),
	}
}

// generateRequestNumber 生成申请编号
func generateRequestNumber() string {
	return fmt.Sprintf("PR-%s", time.Now().Format("20060102150405")+uuid.New().String()[:8])
}

// CreateRequest 创建采购申请
// 审批链在创建时按策略生成，之后不可变；初始级别为1，状态为待审批
func (s *ProcurementService) CreateRequest(req *model.CreateProcurementRequest, creator *model.User) (*model.ProcurementRequest, error) {
	department := req.Department
	if department == "" {
		department = creator.Department
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	unit := req.Unit
	if unit == "" {
		unit = "pieces"
	}
	currency := req.Currency
	if currency == "" {
		currency = "PKR"
	}

	request := &model.ProcurementRequest{
		ID:                   uuid.New().String(),
		RequestNumber:        generateRequestNumber(),
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		Priority:             priority,
		Department:           department,
		Budget:               req.Budget,
		Currency:             currency,
		Quantity:             quantity,
		Unit:                 unit,
		RequiredBy:           req.RequiredBy,
		Specifications:       req.Specifications,
		Justification:        req.Justification,
		VendorPreference:     req.VendorPreference,
		Attachments:          req.Attachments,
		Status:               model.RequestStatusPending,
		CurrentApprovalLevel: 1,
		ApprovalHierarchy:    s.policy.BuildHierarchy(department),
		ApprovalHistory:      model.ApprovalActionList{},
		CreatedByID:          creator.ID,
		CreatedBy:            creator.Name,
	}

	if err := s.repo.Create(request); err != nil {
		return nil, fmt.Errorf("创建采购申请失败: %w", err)
	}

	metrics.ProcurementRequestsCreated.Inc()
	logger.Infof("采购申请已创建: %s (%s) by %s", request.RequestNumber, request.Title, creator.Name)
	return request, nil
}

// GetRequest 查询单条申请，支持按ID或申请编号（PR-开头）查找
func (s *ProcurementService) GetRequest(id string) (*model.ProcurementRequest, error) {
	req, err := s.repo.FindByID(id)
	if err == nil {
		return req, nil
	}

	req, err = s.repo.FindByRequestNumber(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// ListRequests 按条件分页查询
func (s *ProcurementService) ListRequests(filter model.ProcurementFilter, page, pageSize int) ([]model.ProcurementRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.FindAll(filter, page, pageSize)
}

// CanActOn 判断用户能否审批该申请的当前步骤
// 同一谓词既用于渲染前端操作按钮，也用于服务端强制校验
func (s *ProcurementService) CanActOn(req *model.ProcurementRequest, user *model.User) bool {
	return s.engine.CanActOn(req, approval.ActorFromUser(user))
}

// Approve 批准当前级别
func (s *ProcurementService) Approve(requestID string, user *model.User, note string) (*model.ProcurementRequest, error) {
	return s.applyAction(requestID, func(req *model.ProcurementRequest, now time.Time) error {
		if err := s.engine.Approve(req, approval.ActorFromUser(user), note, now); err != nil {
			return err
		}
		metrics.ProcurementApprovalActions.WithLabelValues("approved", fmt.Sprintf("%d", req.ApprovalHistory[len(req.ApprovalHistory)-1].Level)).Inc()
		return nil
	})
}

// Reject 拒绝当前级别，原因必填，任意级别拒绝都进入终态
func (s *ProcurementService) Reject(requestID string, user *model.User, reason string) (*model.ProcurementRequest, error) {
	return s.applyAction(requestID, func(req *model.ProcurementRequest, now time.Time) error {
		if err := s.engine.Reject(req, approval.ActorFromUser(user), reason, now); err != nil {
			return err
		}
		metrics.ProcurementApprovalActions.WithLabelValues("rejected", fmt.Sprintf("%d", req.ApprovalHistory[len(req.ApprovalHistory)-1].Level)).Inc()
		return nil
	})
}

// applyAction 在分布式锁与数据库事务保护下执行审批动作
// 事务内重新读取最新状态，过期快照上的重复提交会因前置条件校验失败而被拒绝
func (s *ProcurementService) applyAction(requestID string, action func(req *model.ProcurementRequest, now time.Time) error) (*model.ProcurementRequest, error) {
	// Redis 可用时对单条申请加锁，降级时靠事务内的重读兜底
	lock := distributed.NewRedisLock(redis.GetClient(), fmt.Sprintf("procurement:approval:%s", requestID), 10*time.Second)
	if acquired, err := lock.TryLock(); err == nil && acquired {
		defer lock.Unlock()
	}

	var result *model.ProcurementRequest
	err := s.repo.Transaction(func(txRepo *repository.ProcurementRepository) error {
		req, err := txRepo.FindByID(requestID)
		if err != nil {
			return ErrRequestNotFound
		}

		if err := action(req, time.Now()); err != nil {
			return err
		}

		if err := txRepo.Update(req); err != nil {
			return fmt.Errorf("保存审批结果失败: %w", err)
		}

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("采购申请 %s 状态: %s, 当前级别: %d", result.RequestNumber, result.Status, result.CurrentApprovalLevel)
	return result, nil
}
