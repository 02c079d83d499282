package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Создается один раз в main и передается в middleware, dbmetrics и maintenance
type Metrics struct {
	// HTTP метрики
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Метрики запросов к БД
	dbQueryDuration *prometheus.HistogramVec

	// Метрики connection pool
	dbPoolOpen  prometheus.Gauge
	dbPoolInUse prometheus.Gauge
	dbPoolIdle  prometheus.Gauge

	// Доменные метрики движка слотов
	slotsGeneratedTotal   *prometheus.CounterVec
	maintenanceRunsTotal  *prometheus.CounterVec
	maintenanceLastRunTs  *prometheus.GaugeVec
	maintenancePhaseError *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
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

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),

		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),

		slotsGeneratedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_slots_generated_total",
			Help:        "Total number of calendar slots generated",
			ConstLabels: constLabels,
		}, []string{"trigger"}),

		maintenanceRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_maintenance_runs_total",
			Help:        "Total number of horizon maintenance runs",
			ConstLabels: constLabels,
		}, []string{"result"}),

		maintenanceLastRunTs: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "calendar_maintenance_last_run_timestamp_seconds",
			Help:        "Unix timestamp of the last completed maintenance phase",
			ConstLabels: constLabels,
		}, []string{"phase"}),

		maintenancePhaseError: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_maintenance_phase_errors_total",
			Help:        "Total number of per-phase maintenance errors",
			ConstLabels: constLabels,
		}, []string{"phase"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbPoolOpen.Set(float64(open))
	m.dbPoolInUse.Set(float64(inUse))
	m.dbPoolIdle.Set(float64(idle))
}

// AddSlotsGenerated увеличивает счётчик сгенерированных слотов
// trigger: "api" (вызов через HTTP) или "maintenance" (фоновое расширение горизонта)
func (m *Metrics) AddSlotsGenerated(trigger string, count int) {
	if m == nil {
		return
	}
	m.slotsGeneratedTotal.WithLabelValues(trigger).Add(float64(count))
}

// IncMaintenanceRun увеличивает счётчик запусков обслуживания
// result: "ok", "partial" или "skipped"
func (m *Metrics) IncMaintenanceRun(result string) {
	if m == nil {
		return
	}
	m.maintenanceRunsTotal.WithLabelValues(result).Inc()
}

// SetMaintenancePhaseDone отмечает время завершения фазы обслуживания
func (m *Metrics) SetMaintenancePhaseDone(phase string, at time.Time) {
	if m == nil {
		return
	}
	m.maintenanceLastRunTs.WithLabelValues(phase).Set(float64(at.Unix()))
}

// IncMaintenancePhaseError увеличивает счётчик ошибок фазы обслуживания
func (m *Metrics) IncMaintenancePhaseError(phase string) {
	if m == nil {
		return
	}
	m.maintenancePhaseError.WithLabelValues(phase).Inc()
}
