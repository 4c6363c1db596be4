package app

import (
	"log"
	"os"

	"github.com/fisker/itops-backend/pkg/config"
	"github.com/fisker/itops-backend/pkg/database"
	"github.com/fisker/itops-backend/pkg/logger"
	pkgredis "github.com/fisker/itops-backend/pkg/redis"
)

// Bootstrap 初始化基础设施（logger, database, redis）
func Bootstrap(cfgPath string) (*config.Config, error) {
	// 支持通过环境变量指定配置文件路径
	if cfgPath == "" {
		cfgPath = os.Getenv("ITOPS_CONFIG")
		if cfgPath == "" {
			cfgPath = "config/config.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	logger.Infof("Database initialized successfully")

	// 按配置写入默认用户，便于开箱即用
	if cfg.Security.SeedDefaultUsers {
		if err := database.SeedDefaultUsers(); err != nil {
			logger.Warnf("Failed to seed default users: %v", err)
		}
	}

	// Initialize Redis (optional, for distributed features)
	if err := pkgredis.Init(&cfg.Redis); err != nil {
		logger.Warnf("Redis initialization failed: %v", err)
		logger.Info("   → System will use single-server mode (approval lock falls back to DB transaction)")
	} else if cfg.Redis.Enabled {
		logger.Infof("Redis initialized successfully - distributed approval lock enabled")
	} else {
		logger.Info("Redis is disabled in config - using single-server mode")
	}

	return cfg, nil
}
