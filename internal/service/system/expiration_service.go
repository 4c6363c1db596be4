package system

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/fisker/itops-backend/pkg/logger"
)

// ExpirationService 过期检测服务
// 周期性扫描软件许可证到期与资产保修到期，刷新状态并记录告警日志
type ExpirationService struct {
	licenseRepo   *repository.LicenseRepository
	assetRepo     *repository.AssetRepository
	checkInterval time.Duration

	mu        sync.Mutex
	stopChan  chan struct{}
	isRunning bool
}

// NewExpirationService 创建过期检测服务
func NewExpirationService(licenseRepo *repository.LicenseRepository, assetRepo *repository.AssetRepository) *ExpirationService {
	return &ExpirationService{
		licenseRepo:   licenseRepo,
		assetRepo:     assetRepo,
		checkInterval: time.Hour, // 默认每小时检查一次
	}
}

// Start 启动过期检测服务，Stop之后可以再次Start
func (s *ExpirationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("expiration service is already running")
	}

	// 每次启动使用新的停止信号，旧信号在上次Stop时已关闭
	s.stopChan = make(chan struct{})
	s.isRunning = true
	logger.Infof("Expiration service started, check interval: %v", s.checkInterval)

	go s.runPeriodicCheck(ctx, s.stopChan)
	return nil
}

// Stop 停止过期检测服务
func (s *ExpirationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	close(s.stopChan)
	s.isRunning = false
	logger.Infof("Expiration service stopped")
}

// runPeriodicCheck 运行定期检查
func (s *ExpirationService) runPeriodicCheck(ctx context.Context, stopChan <-chan struct{}) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// 延迟执行首次检查，等待数据库连接完全就绪
	time.Sleep(2 * time.Second)
	s.performCheck()

	for {
		select {
		case <-ticker.C:
			s.performCheck()
		case <-stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// performCheck 执行检查
func (s *ExpirationService) performCheck() {
	logger.Infof("Starting expiration check...")

	if err := s.checkLicenseExpiration(); err != nil {
		logger.Errorf("Failed to check license expiration: %v", err)
	}
	if err := s.checkWarrantyExpiration(); err != nil {
		logger.Errorf("Failed to check warranty expiration: %v", err)
	}
}

// checkLicenseExpiration 检查许可证到期
// 已到期的置为expired，30天内到期的置为expiring
func (s *ExpirationService) checkLicenseExpiration() error {
	now := time.Now()
	soon := now.AddDate(0, 0, 30)

	licenses, err := s.licenseRepo.FindExpiring(soon)
	if err != nil {
		return err
	}

	for _, license := range licenses {
		if license.ExpiryDate == nil {
			continue
		}

		status := model.LicenseStatusExpiring
		if license.ExpiryDate.Before(now) {
			status = model.LicenseStatusExpired
		}
		if license.Status == status {
			continue
		}

		if err := s.licenseRepo.UpdateStatus(license.ID, status); err != nil {
			logger.Errorf("更新许可证 %s 状态失败: %v", license.Name, err)
			continue
		}
		logger.Warnf("软件许可证 %s (%s) 状态变更为 %s, 到期时间: %s",
			license.Name, license.Vendor, status, license.ExpiryDate.Format("2006-01-02"))
	}

	return nil
}

// checkWarrantyExpiration 检查资产保修到期，仅记录告警
func (s *ExpirationService) checkWarrantyExpiration() error {
	soon := time.Now().AddDate(0, 0, 30)

	assets, err := s.assetRepo.FindWarrantyExpiring(soon)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		if asset.WarrantyExpiration == nil {
			continue
		}
		logger.Warnf("资产 %s (SN: %s) 保修将于 %s 到期",
			asset.Name, asset.SerialNumber, asset.WarrantyExpiration.Format("2006-01-02"))
	}

	return nil
}
