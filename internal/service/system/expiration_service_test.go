package system

import (
	"context"
	"testing"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupExpirationService(t *testing.T) (*ExpirationService, *repository.LicenseRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.SoftwareLicense{}, &model.Asset{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	licenseRepo := repository.NewLicenseRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	return NewExpirationService(licenseRepo, assetRepo), licenseRepo
}

func seedLicense(t *testing.T, repo *repository.LicenseRepository, id, status string, expiresIn time.Duration) {
	t.Helper()

	expiry := time.Now().Add(expiresIn)
	if err := repo.Create(&model.SoftwareLicense{
		ID:         id,
		Name:       "许可证-" + id,
		Vendor:     "TestVendor",
		Status:     status,
		ExpiryDate: &expiry,
	}); err != nil {
		t.Fatalf("写入测试许可证失败: %v", err)
	}
}

// TestCheckLicenseExpiration 测试许可证到期状态流转
// active → expiring → expired，已标记expiring的许可证过期后仍要转为expired
func TestCheckLicenseExpiration(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		expiresIn  time.Duration
		wantStatus string
	}{
		{"30天内到期的active置为expiring", model.LicenseStatusActive, 10 * 24 * time.Hour, model.LicenseStatusExpiring},
		{"已过期的active置为expired", model.LicenseStatusActive, -24 * time.Hour, model.LicenseStatusExpired},
		{"已过期的expiring置为expired", model.LicenseStatusExpiring, -24 * time.Hour, model.LicenseStatusExpired},
		{"未过期的expiring保持不变", model.LicenseStatusExpiring, 5 * 24 * time.Hour, model.LicenseStatusExpiring},
		{"远期到期的active保持不变", model.LicenseStatusActive, 60 * 24 * time.Hour, model.LicenseStatusActive},
		{"已是expired的不再变更", model.LicenseStatusExpired, -48 * time.Hour, model.LicenseStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupExpirationService(t)
			seedLicense(t, repo, "lic-1", tt.status, tt.expiresIn)

			if err := svc.checkLicenseExpiration(); err != nil {
				t.Fatalf("checkLicenseExpiration 失败: %v", err)
			}

			loaded, err := repo.FindByID("lic-1")
			if err != nil {
				t.Fatalf("读取许可证失败: %v", err)
			}
			if loaded.Status != tt.wantStatus {
				t.Errorf("Status = %q, 期望 %q", loaded.Status, tt.wantStatus)
			}
		})
	}
}

// TestCheckLicenseExpirationRepeatedSweeps 测试多轮扫描下的完整流转
// 第一轮标记expiring后，过期许可证在后续轮次仍会被扫描到并置为expired
func TestCheckLicenseExpirationRepeatedSweeps(t *testing.T) {
	svc, repo := setupExpirationService(t)
	seedLicense(t, repo, "lic-sweep", model.LicenseStatusActive, 10*24*time.Hour)

	if err := svc.checkLicenseExpiration(); err != nil {
		t.Fatalf("第一轮检查失败: %v", err)
	}
	loaded, err := repo.FindByID("lic-sweep")
	if err != nil {
		t.Fatalf("读取许可证失败: %v", err)
	}
	if loaded.Status != model.LicenseStatusExpiring {
		t.Fatalf("第一轮后 Status = %q, 期望 expiring", loaded.Status)
	}

	// 模拟时间推移至过期
	past := time.Now().Add(-24 * time.Hour)
	loaded.ExpiryDate = &past
	if err := repo.Update(loaded); err != nil {
		t.Fatalf("更新到期时间失败: %v", err)
	}

	if err := svc.checkLicenseExpiration(); err != nil {
		t.Fatalf("第二轮检查失败: %v", err)
	}
	loaded, err = repo.FindByID("lic-sweep")
	if err != nil {
		t.Fatalf("读取许可证失败: %v", err)
	}
	if loaded.Status != model.LicenseStatusExpired {
		t.Errorf("第二轮后 Status = %q, 期望 expired", loaded.Status)
	}
}

// TestExpirationServiceRestart 测试停止后可再次启动
func TestExpirationServiceRestart(t *testing.T) {
	svc, _ := setupExpirationService(t)
	ctx := context.Background()

	if err := svc.Start(ctx); err != nil {
		t.Fatalf("首次 Start 失败: %v", err)
	}
	if err := svc.Start(ctx); err == nil {
		t.Error("重复 Start 应返回错误")
	}

	svc.Stop()

	if err := svc.Start(ctx); err != nil {
		t.Errorf("Stop 后再次 Start 失败: %v", err)
	}
	svc.Stop()
	// 重复Stop不应panic
	svc.Stop()
}
