package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vitrine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ordersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "orders_created_total",
			Help:      "Total orders created through checkout.",
		},
	)

	paymentsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vitrine",
			Name:      "payments_confirmed_total",
			Help:      "Total payments confirmed via gateway webhooks.",
		},
	)
)

// OrderCreated 记录一次下单
func OrderCreated() {
	ordersCreatedTotal.Inc()
}

// PaymentConfirmed 记录一次支付确认
func PaymentConfirmed() {
	paymentsConfirmedTotal.Inc()
}

// Handler 暴露 /metrics 端点
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware 按路由模板采集请求量与耗时
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
