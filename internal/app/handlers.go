package app

import (
	"github.com/fisker/itops-backend/internal/api/handler"
)

// Handlers 包含所有 HTTP 处理器实例
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Asset        *handler.AssetHandler
	Ticket       *handler.TicketHandler
	Procurement  *handler.ProcurementHandler
	Vendor       *handler.VendorHandler
	Incident     *handler.IncidentHandler
	License      *handler.LicenseHandler
	Dashboard    *handler.DashboardHandler
	OperationLog *handler.OperationLogHandler
}

// InitializeHandlers 初始化所有 HTTP 处理器
func InitializeHandlers(repos *Repositories, services *Services) *Handlers {
	return &Handlers{
		Auth:         handler.NewAuthHandler(services.Auth),
		User:         handler.NewUserHandler(repos.User),
		Asset:        handler.NewAssetHandler(repos.Asset),
		Ticket:       handler.NewTicketHandler(repos.Ticket),
		Procurement:  handler.NewProcurementHandler(services.Procurement, repos.User.FindUserByID),
		Vendor:       handler.NewVendorHandler(repos.Vendor),
		Incident:     handler.NewIncidentHandler(repos.Incident),
		License:      handler.NewLicenseHandler(services.License),
		Dashboard:    handler.NewDashboardHandler(services.Dashboard),
		OperationLog: handler.NewOperationLogHandler(repos.OperationLog),
	}
}
