package app

import (
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/fisker/itops-backend/pkg/database"
)

// Repositories 包含所有 Repository 实例
type Repositories struct {
	User         *repository.UserRepository
	Asset        *repository.AssetRepository
	Ticket       *repository.TicketRepository
	Procurement  *repository.ProcurementRepository
	Vendor       *repository.VendorRepository
	Incident     *repository.IncidentRepository
	License      *repository.LicenseRepository
	OperationLog *repository.OperationLogRepository
}

// InitializeRepositories 初始化所有 Repository
func InitializeRepositories() *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(database.DB),
		Asset:        repository.NewAssetRepository(database.DB),
		Ticket:       repository.NewTicketRepository(database.DB),
		Procurement:  repository.NewProcurementRepository(database.DB),
		Vendor:       repository.NewVendorRepository(database.DB),
		Incident:     repository.NewIncidentRepository(database.DB),
		License:      repository.NewLicenseRepository(database.DB),
		OperationLog: repository.NewOperationLogRepository(database.DB),
	}
}
