package middleware

import (
	"strconv"
	"time"

	"github.com/fisker/itops-backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware Prometheus指标采集中间件
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配到路由的请求不按原始路径打点，避免标签爆炸
			path = "unmatched"
		}

		metrics.APIRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.APIRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(startTime).Seconds())
	}
}
