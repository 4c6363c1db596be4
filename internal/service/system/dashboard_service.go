package system

import (
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/fisker/itops-backend/pkg/logger"
	"github.com/fisker/itops-backend/pkg/metrics"
)

// DashboardService 仪表盘统计服务
type DashboardService struct {
	assetRepo       *repository.AssetRepository
	ticketRepo      *repository.TicketRepository
	procurementRepo *repository.ProcurementRepository
	incidentRepo    *repository.IncidentRepository
	licenseRepo     *repository.LicenseRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	assetRepo *repository.AssetRepository,
	ticketRepo *repository.TicketRepository,
	procurementRepo *repository.ProcurementRepository,
	incidentRepo *repository.IncidentRepository,
	licenseRepo *repository.LicenseRepository,
) *DashboardService {
	return &DashboardService{
		assetRepo:       assetRepo,
		ticketRepo:      ticketRepo,
		procurementRepo: procurementRepo,
		incidentRepo:    incidentRepo,
		licenseRepo:     licenseRepo,
	}
}

// GetStats 汇总各模块统计数据
// 单项统计失败不阻塞整体返回，记日志后置零
func (s *DashboardService) GetStats() *model.DashboardStats {
	stats := &model.DashboardStats{}

	var err error
	if stats.TotalAssets, err = s.assetRepo.CountByStatus(""); err != nil {
		logger.Errorf("统计资产总数失败: %v", err)
	}
	if stats.ActiveAssets, err = s.assetRepo.CountByStatus(model.AssetStatusActive); err != nil {
		logger.Errorf("统计在用资产失败: %v", err)
	}
	if stats.OpenTickets, err = s.ticketRepo.CountByStatus(model.TicketStatusOpen); err != nil {
		logger.Errorf("统计未处理工单失败: %v", err)
	}
	if stats.ResolvedTickets, err = s.ticketRepo.CountByStatus(model.TicketStatusResolved); err != nil {
		logger.Errorf("统计已解决工单失败: %v", err)
	}
	if stats.PendingRequests, err = s.procurementRepo.CountByStatus(model.RequestStatusPending); err != nil {
		logger.Errorf("统计待审批采购申请失败: %v", err)
	}
	if stats.ApprovedRequests, err = s.procurementRepo.CountByStatus(model.RequestStatusApproved); err != nil {
		logger.Errorf("统计已批准采购申请失败: %v", err)
	}
	if stats.OpenIncidents, err = s.incidentRepo.CountOpen(); err != nil {
		logger.Errorf("统计未解决安全事件失败: %v", err)
	}
	if stats.ExpiringLicenses, err = s.licenseRepo.CountExpiring(time.Now().AddDate(0, 0, 30)); err != nil {
		logger.Errorf("统计即将到期许可证失败: %v", err)
	}

	// 同步到Prometheus指标
	metrics.ProcurementPendingRequests.Set(float64(stats.PendingRequests))
	metrics.TicketsOpen.Set(float64(stats.OpenTickets))
	metrics.LicensesExpiringSoon.Set(float64(stats.ExpiringLicenses))

	return stats
}
