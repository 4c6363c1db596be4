package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/pkg/config"
	"github.com/fisker/itops-backend/pkg/logger"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// InitDatabase 初始化数据库（支持 MySQL 和 PostgreSQL）
func InitDatabase(cfg *config.DatabaseConfig) error {
	var err error
	var dialector gorm.Dialector

	// 根据配置选择数据库驱动
	switch cfg.Driver {
	case "postgres", "postgresql":
		// PostgreSQL: 先创建数据库（如果不存在）
		if err := createPostgresDatabase(cfg); err != nil {
			return fmt.Errorf("failed to create PostgreSQL database: %w", err)
		}
		dialector = postgres.Open(cfg.DSN())
	case "mysql", "":
		// MySQL: 先创建数据库（如果不存在）
		if err := createMySQLDatabase(cfg); err != nil {
			return fmt.Errorf("failed to create MySQL database: %w", err)
		}
		dialector = mysql.Open(cfg.DSN())
	default:
		return fmt.Errorf("unsupported database driver: %s (supported: mysql, postgres)", cfg.Driver)
	}

	logger.Infof("Connecting to %s database...", cfg.Driver)

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})

	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 100 // 默认值
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10 // 默认值
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 3600 // 默认 1 小时
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	logger.Infof("Database connection pool configured: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%ds",
		maxOpenConns, maxIdleConns, connMaxLifetime)

	// 立即 Ping 数据库以确保连接可用
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Database connection verified successfully")
	return nil
}

// createMySQLDatabase 创建 MySQL 数据库（如果不存在）
// 使用 database/sql 而不是 GORM，避免影响主连接
func createMySQLDatabase(cfg *config.DatabaseConfig) error {
	// 连接到 MySQL 服务器（不指定数据库）
	dsnWithoutDB := fmt.Sprintf("%s:%s@tcp(%s:%d)/?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port)

	db, err := sql.Open("mysql", dsnWithoutDB)
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL server: %w", err)
	}
	defer db.Close()

	// 创建数据库
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.DBName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}

	return nil
}

// createPostgresDatabase 创建 PostgreSQL 数据库（如果不存在）
func createPostgresDatabase(cfg *config.DatabaseConfig) error {
	// 连接到默认的 postgres 数据库
	dsnWithoutDB := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password)

	db, err := sql.Open("postgres", dsnWithoutDB)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer db.Close()

	// PostgreSQL 不支持 IF NOT EXISTS，先检查数据库是否存在
	var exists bool
	checkQuery := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := db.QueryRow(checkQuery, cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		query := fmt.Sprintf("CREATE DATABASE \"%s\"", cfg.DBName)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
		}
		logger.Infof("Created PostgreSQL database: %s", cfg.DBName)
	}

	return nil
}

// AutoMigrateAll 自动迁移所有数据表
func AutoMigrateAll() error {
	return DB.AutoMigrate(
		&model.User{},
		&model.Asset{},
		&model.Ticket{},
		&model.TicketComment{},
		&model.ProcurementRequest{},
		&model.Vendor{},
		&model.SecurityIncident{},
		&model.SoftwareLicense{},
		&model.OperationLog{},
	)
}

// SeedDefaultUsers 写入内置演示账号（仅当用户表为空时）
// 账号与前端登录页提示保持一致，初始密码统一为 password123
func SeedDefaultUsers() error {
	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	defaults := []model.User{
		{
			ID:         uuid.New().String(),
			Email:      "head@example.com",
			Name:       "Head User",
			Role:       model.RoleHead,
			Department: "Management",
			Position:   "Department Head",
			Status:     "active",
			Permissions: model.StringArray{
				"admin", "manage_users",
			},
		},
		{
			ID:         uuid.New().String(),
			Email:      "manager@example.com",
			Name:       "Manager User",
			Role:       model.RoleManager,
			Department: "IT",
			Position:   "IT Manager",
			Status:     "active",
			Permissions: model.StringArray{
				"manage_assets", "manage_tickets",
			},
		},
		{
			ID:         uuid.New().String(),
			Email:      "normal@example.com",
			Name:       "Normal User",
			Role:       model.RoleNormal,
			Department: "Support",
			Position:   "Support Specialist",
			Status:     "active",
			Permissions: model.StringArray{
				"create_tickets", "view_assets",
			},
		},
		{
			ID:         uuid.New().String(),
			Email:      "view@example.com",
			Name:       "View User",
			Role:       model.RoleView,
			Department: "Operations",
			Position:   "Operations Analyst",
			Status:     "active",
			Permissions: model.StringArray{
				"view_only",
			},
		},
	}

	for i := range defaults {
		defaults[i].Password = string(hashed)
	}

	if err := DB.Create(&defaults).Error; err != nil {
		return fmt.Errorf("failed to seed default users: %w", err)
	}

	logger.Infof("Seeded %d default users (initial password: password123)", len(defaults))
	return nil
}
