package app

import (
	"github.com/fisker/itops-backend/pkg/config"
	"github.com/fisker/itops-backend/pkg/database"
	"github.com/fisker/itops-backend/pkg/logger"
)

// App 应用程序上下文
type App struct {
	Config             *config.Config
	Repos              *Repositories
	Services           *Services
	BackgroundServices *BackgroundServices
	Handlers           *Handlers
}

// Initialize 初始化应用程序
func Initialize(cfgPath string) (*App, error) {
	// 1. Bootstrap (logger, database, redis)
	cfg, err := Bootstrap(cfgPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			database.Close()
		}
	}()

	// 2. Initialize repositories
	repos := InitializeRepositories()
	logger.Infof("Repositories initialized")

	// 3. Initialize services
	services := InitializeServices(repos, cfg)
	logger.Infof("Services initialized")

	// 4. Initialize background services
	backgroundServices := InitializeBackgroundServices(repos)
	logger.Infof("Background services initialized")

	// 5. Initialize handlers
	handlers := InitializeHandlers(repos, services)
	logger.Infof("Handlers initialized")

	return &App{
		Config:             cfg,
		Repos:              repos,
		Services:           services,
		BackgroundServices: backgroundServices,
		Handlers:           handlers,
	}, nil
}
