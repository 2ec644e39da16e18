package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec

	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge

	notificationsEnqueued *prometheus.CounterVec
	notificationsDropped  prometheus.Counter
	notificationsFailed   prometheus.Counter
}

// New создает и регистрирует метрики сервиса в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		httpRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),

		dbInUseConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		dbIdleConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		notificationsEnqueued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_enqueued_total",
			Help:        "Total number of notification intents enqueued",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		notificationsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_dropped_total",
			Help:        "Total number of notification intents dropped due to a full queue",
			ConstLabels: constLabels,
		}),

		notificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Total number of notification deliveries that failed",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest учитывает завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// HTTPRequestStarted увеличивает счетчик выполняющихся запросов
func (m *Metrics) HTTPRequestStarted() {
	m.httpRequestsInFlight.Inc()
}

// HTTPRequestFinished уменьшает счетчик выполняющихся запросов
func (m *Metrics) HTTPRequestFinished() {
	m.httpRequestsInFlight.Dec()
}

// ObserveDBQuery учитывает выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
}

// NotificationEnqueued учитывает поставленное в очередь уведомление
func (m *Metrics) NotificationEnqueued(kind string) {
	m.notificationsEnqueued.WithLabelValues(kind).Inc()
}

// NotificationDropped учитывает уведомление, отброшенное из-за переполнения очереди
func (m *Metrics) NotificationDropped() {
	m.notificationsDropped.Inc()
}

// NotificationFailed учитывает неудачную доставку уведомления
func (m *Metrics) NotificationFailed() {
	m.notificationsFailed.Inc()
}
