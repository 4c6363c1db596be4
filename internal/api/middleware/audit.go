package middleware

import (
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/pkg/database"
	"github.com/fisker/itops-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// OperationLogMiddleware 操作日志中间件
// 只记录非 GET 请求，异步落库
func OperationLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 开始时间
		startTime := time.Now()

		// 处理请求
		c.Next()

		// 结束时间
		endTime := time.Now()
		timeCost := endTime.Sub(startTime).Milliseconds()

		// 只记录非 GET 请求的操作日志
		if c.Request.Method == "GET" {
			return
		}

		// 获取当前用户
		username := ""
		if uname, exists := c.Get("username"); exists {
			username, _ = uname.(string)
		}

		operationLog := model.OperationLog{
			Username:  username,
			IP:        c.ClientIP(),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Desc:      getAPIDescription(c.Request.Method, c.FullPath()),
			Status:    c.Writer.Status(),
			StartTime: startTime,
			TimeCost:  timeCost,
			UserAgent: c.Request.UserAgent(),
		}

		// 异步保存操作日志，失败不影响请求处理
		go func() {
			if err := database.DB.Create(&operationLog).Error; err != nil {
				logger.Errorf("保存操作日志失败: %v", err)
			}
		}()
	}
}

// getAPIDescription 根据方法和路径推断操作描述
func getAPIDescription(method, path string) string {
	actions := map[string]string{
		"POST":   "创建",
		"PUT":    "更新",
		"PATCH":  "更新",
		"DELETE": "删除",
	}
	action, ok := actions[method]
	if !ok {
		return path
	}
	return action + " " + path
}
