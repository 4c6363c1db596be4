package app

import (
	"github.com/fisker/itops-backend/internal/approval"
	"github.com/fisker/itops-backend/internal/service/auth"
	"github.com/fisker/itops-backend/internal/service/procurement"
	"github.com/fisker/itops-backend/internal/service/software"
	"github.com/fisker/itops-backend/internal/service/system"
	"github.com/fisker/itops-backend/pkg/config"
	"github.com/fisker/itops-backend/pkg/crypto"
)

// Services 包含所有业务服务实例
type Services struct {
	Auth        *auth.AuthService
	Procurement *procurement.ProcurementService
	License     *software.LicenseService
	Dashboard   *system.DashboardService
}

// BackgroundServices 包含所有后台服务实例
type BackgroundServices struct {
	Expiration *system.ExpirationService
}

// InitializeServices 初始化所有业务服务
func InitializeServices(repos *Repositories, cfg *config.Config) *Services {
	c := crypto.NewCrypto(cfg.Security.JWTSecret)

	return &Services{
		Auth:        auth.NewAuthService(repos.User, cfg.Security.JWTSecret),
		Procurement: procurement.NewProcurementService(repos.Procurement, approval.NewStandardHierarchy()),
		License:     software.NewLicenseService(repos.License, c),
		Dashboard: system.NewDashboardService(
			repos.Asset, repos.Ticket, repos.Procurement, repos.Incident, repos.License),
	}
}

// InitializeBackgroundServices 初始化后台服务
func InitializeBackgroundServices(repos *Repositories) *BackgroundServices {
	return &BackgroundServices{
		Expiration: system.NewExpirationService(repos.License, repos.Asset),
	}
}
