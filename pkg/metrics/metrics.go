package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Server Metrics

	// APIRequestsTotal API请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration API请求处理时长
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Procurement Metrics

	// ProcurementRequestsCreated 已创建的采购申请总数
	ProcurementRequestsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procurement_requests_created_total",
			Help: "Total number of procurement requests created",
		},
	)

	// ProcurementApprovalActions 审批动作总数（按动作类型和级别）
	ProcurementApprovalActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_approval_actions_total",
			Help: "Total number of approval actions applied to procurement requests",
		},
		[]string{"action", "level"},
	)

	// ProcurementPendingRequests 当前待审批的采购申请数量
	ProcurementPendingRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "procurement_pending_requests",
			Help: "Number of procurement requests currently pending approval",
		},
	)

	// Ticket Metrics

	// TicketsOpen 当前未关闭的工单数量
	TicketsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tickets_open",
			Help: "Number of tickets currently open or in progress",
		},
	)

	// License Metrics

	// LicensesExpiringSoon 30天内到期的软件许可证数量
	LicensesExpiringSoon = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "licenses_expiring_soon",
			Help: "Number of software licenses expiring within 30 days",
		},
	)
)
