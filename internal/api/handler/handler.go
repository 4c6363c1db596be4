// Package handler 提供统一的 handler 导出
// 所有 handler 按功能模块分类到子目录中
package handler

import (
	// Auth handlers
	authHandler "github.com/fisker/itops-backend/internal/api/handler/auth"
	// User handlers
	userHandler "github.com/fisker/itops-backend/internal/api/handler/user"
	// Asset handlers
	assetHandler "github.com/fisker/itops-backend/internal/api/handler/asset"
	// Ticket handlers
	ticketHandler "github.com/fisker/itops-backend/internal/api/handler/ticket"
	// Procurement handlers
	procurementHandler "github.com/fisker/itops-backend/internal/api/handler/procurement"
	// Vendor handlers
	vendorHandler "github.com/fisker/itops-backend/internal/api/handler/vendor"
	// Security handlers
	securityHandler "github.com/fisker/itops-backend/internal/api/handler/security"
	// Software handlers
	softwareHandler "github.com/fisker/itops-backend/internal/api/handler/software"
	// System handlers
	systemHandler "github.com/fisker/itops-backend/internal/api/handler/system"
)

// Auth handlers
type AuthHandler = authHandler.AuthHandler

var NewAuthHandler = authHandler.NewAuthHandler

// User handlers
type UserHandler = userHandler.UserHandler

var NewUserHandler = userHandler.NewUserHandler

// Asset handlers
type AssetHandler = assetHandler.AssetHandler

var NewAssetHandler = assetHandler.NewAssetHandler

// Ticket handlers
type TicketHandler = ticketHandler.TicketHandler

var NewTicketHandler = ticketHandler.NewTicketHandler

// Procurement handlers
type ProcurementHandler = procurementHandler.ProcurementHandler

var NewProcurementHandler = procurementHandler.NewProcurementHandler

// Vendor handlers
type VendorHandler = vendorHandler.VendorHandler

var NewVendorHandler = vendorHandler.NewVendorHandler

// Security handlers
type IncidentHandler = securityHandler.IncidentHandler

var NewIncidentHandler = securityHandler.NewIncidentHandler

// Software handlers
type LicenseHandler = softwareHandler.LicenseHandler

var NewLicenseHandler = softwareHandler.NewLicenseHandler

// System handlers
type DashboardHandler = systemHandler.DashboardHandler
type OperationLogHandler = systemHandler.OperationLogHandler

var NewDashboardHandler = systemHandler.NewDashboardHandler
var NewOperationLogHandler = systemHandler.NewOperationLogHandler
