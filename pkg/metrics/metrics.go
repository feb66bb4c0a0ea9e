// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// 1. HTTP层指标：请求总数、耗时分布、处理中请求数（由gin中间件记录）
// 2. 业务指标：购物车操作数、下单数、下单金额分布、支付状态变更数
//
// 通过 /metrics 端点暴露，由Prometheus定期抓取。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 指标在包加载时创建,埋点调用不依赖InitMetrics的调用时机,
// 未注册的指标可以正常累加,只是不会出现在/metrics输出中
var (
	// HTTPRequestsTotal HTTP请求总数（按方法、路径、状态码）
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时分布（秒）
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookshop_http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 处理中的HTTP请求数
	HTTPRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookshop_http_requests_in_progress",
			Help: "处理中的HTTP请求数",
		},
	)

	// CartOperationsTotal 购物车操作总数（按操作类型与结果）
	CartOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_cart_operations_total",
			Help: "购物车操作总数",
		},
		[]string{"operation", "result"},
	)

	// OrdersPlacedTotal 下单成功总数
	OrdersPlacedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookshop_orders_placed_total",
			Help: "下单成功总数",
		},
	)

	// OrderAmountYuan 下单金额分布（元）
	OrderAmountYuan = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookshop_order_amount_yuan",
			Help:    "下单金额分布（元）",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 5000},
		},
	)

	// PaymentStatusChangesTotal 支付状态变更总数（按目标状态）
	PaymentStatusChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_payment_status_changes_total",
			Help: "支付状态变更总数",
		},
		[]string{"to_status"},
	)

	registerOnce sync.Once
)

// InitMetrics 将所有指标注册到默认Registry
// 使用sync.Once保证重复调用安全（MustRegister重复注册会panic）
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPRequestsInProgress,
			CartOperationsTotal,
			OrdersPlacedTotal,
			OrderAmountYuan,
			PaymentStatusChangesTotal,
		)
	})
}

// ObserveCartOperation 记录一次购物车操作
func ObserveCartOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CartOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveOrderPlaced 记录一次成功下单
// amountFen为订单金额（分），直方图按元统计
func ObserveOrderPlaced(amountFen int64) {
	OrdersPlacedTotal.Inc()
	OrderAmountYuan.Observe(float64(amountFen) / 100.0)
}

// ObservePaymentStatusChange 记录一次支付状态变更
func ObservePaymentStatusChange(toStatus string) {
	PaymentStatusChangesTotal.WithLabelValues(toStatus).Inc()
}
