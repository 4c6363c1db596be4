package router

import (
	"net/http"

	"github.com/fisker/itops-backend/internal/api/handler"
	"github.com/fisker/itops-backend/internal/api/middleware"
	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	assetHandler *handler.AssetHandler,
	ticketHandler *handler.TicketHandler,
	procurementHandler *handler.ProcurementHandler,
	vendorHandler *handler.VendorHandler,
	incidentHandler *handler.IncidentHandler,
	licenseHandler *handler.LicenseHandler,
	dashboardHandler *handler.DashboardHandler,
	operationLogHandler *handler.OperationLogHandler,
	authService *auth.AuthService,
	mode string,
) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()

	// 使用自定义的 recovery 中间件（打印详细错误信息）
	r.Use(middleware.RecoveryMiddleware())
	// 使用 Gin 的 Logger 中间件（记录请求日志）
	r.Use(gin.Logger())

	// 中间件
	r.Use(middleware.CORS())
	r.Use(middleware.MetricsMiddleware())

	// 公开API（不需要认证）
	api := r.Group("/api")
	{
		// 认证相关（公开）
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// 需要认证的API
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(authService))
	authenticated.Use(middleware.OperationLogMiddleware())
	{
		// 当前用户
		authenticated.GET("/auth/me", authHandler.GetCurrentUser)
		authenticated.POST("/auth/change-password", authHandler.ChangePassword)

		// 用户管理（仅负责人）
		users := authenticated.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id/role", middleware.RequireRoles(model.RoleHead), userHandler.UpdateUserRole)
			users.PUT("/:id/status", middleware.RequireRoles(model.RoleHead), userHandler.UpdateUserStatus)
			users.DELETE("/:id", middleware.RequireRoles(model.RoleHead), userHandler.DeleteUser)
		}

		// IT资产
		assets := authenticated.Group("/assets")
		{
			assets.GET("", assetHandler.ListAssets)
			assets.GET("/:id", assetHandler.GetAsset)
			assets.POST("", assetHandler.CreateAsset)
			assets.PUT("/:id", assetHandler.UpdateAsset)
			assets.DELETE("/:id", assetHandler.DeleteAsset)
		}

		// 工单
		tickets := authenticated.Group("/tickets")
		{
			tickets.GET("", ticketHandler.ListTickets)
			tickets.GET("/:id", ticketHandler.GetTicket)
			tickets.POST("", ticketHandler.CreateTicket)
			tickets.PUT("/:id/status", ticketHandler.UpdateTicketStatus)
			tickets.POST("/:id/comments", ticketHandler.AddComment)
			tickets.DELETE("/:id", ticketHandler.DeleteTicket)
		}

		// 采购审批
		procurement := authenticated.Group("/procurement/requests")
		{
			procurement.GET("", procurementHandler.ListRequests)
			procurement.GET("/:id", procurementHandler.GetRequest)
			procurement.POST("", procurementHandler.CreateRequest)
			procurement.POST("/:id/approve", procurementHandler.Approve)
			procurement.POST("/:id/reject", procurementHandler.Reject)
		}

		// 供应商
		vendors := authenticated.Group("/vendors")
		{
			vendors.GET("", vendorHandler.ListVendors)
			vendors.GET("/:id", vendorHandler.GetVendor)
			vendors.POST("", vendorHandler.CreateVendor)
			vendors.PUT("/:id", vendorHandler.UpdateVendor)
			vendors.DELETE("/:id", vendorHandler.DeleteVendor)
		}

		// 安全事件
		incidents := authenticated.Group("/security/incidents")
		{
			incidents.GET("", incidentHandler.ListIncidents)
			incidents.GET("/:id", incidentHandler.GetIncident)
			incidents.POST("", incidentHandler.CreateIncident)
			incidents.PUT("/:id", incidentHandler.UpdateIncident)
		}

		// 软件许可证
		licenses := authenticated.Group("/software/licenses")
		{
			licenses.GET("", licenseHandler.ListLicenses)
			licenses.GET("/:id", licenseHandler.GetLicense)
			licenses.GET("/:id/key", middleware.RequireRoles(model.RoleHead, model.RoleManager), licenseHandler.RevealLicenseKey)
			licenses.POST("", licenseHandler.CreateLicense)
			licenses.PUT("/:id", licenseHandler.UpdateLicense)
			licenses.DELETE("/:id", licenseHandler.DeleteLicense)
			licenses.POST("/:id/assign", licenseHandler.AssignSeat)
			licenses.POST("/:id/revoke", licenseHandler.RevokeSeat)
		}

		// 仪表盘与审计
		authenticated.GET("/dashboard/stats", dashboardHandler.GetStats)
		authenticated.GET("/audit/operation-logs", middleware.RequireRoles(model.RoleHead), operationLogHandler.ListLogs)
	}

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
