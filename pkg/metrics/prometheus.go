// Package metrics provides Prometheus metrics for the boxshot simulation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the simulation service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Gameplay
	shots            *prometheus.CounterVec
	hits             prometheus.Counter
	kills            prometheus.Counter
	pointsAwarded    prometheus.Counter
	energyRewarded   prometheus.Counter
	entitiesSpawned  prometheus.Counter
	entitiesEvicted  prometheus.Counter
	entitiesRemoved  prometheus.Counter
	liveEntities     prometheus.Gauge
	score            prometheus.Gauge
	energy           prometheus.Gauge
	gameOvers        prometheus.Counter
	resets           prometheus.Counter
	activeCallouts   prometheus.Gauge
	staleCallbacks   *prometheus.CounterVec
	droppedTicks     *prometheus.CounterVec
	jobLatency       *prometheus.HistogramVec

	// Command queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "boxshot",
		subsystem:        "arcade",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.shots = m.counterVec("shots_total", "Shots by outcome (hit, miss, rejected)", "outcome")
	m.hits = m.counter("hits_total", "Entity hits applied by shot resolution")
	m.kills = m.counter("kills_total", "Entities destroyed by hits")
	m.pointsAwarded = m.counter("points_awarded_total", "Score points awarded by hits")
	m.energyRewarded = m.counter("energy_rewarded_total", "Energy returned to the player by hits")
	m.entitiesSpawned = m.counter("entities_spawned_total", "Entities created by the spawn task")
	m.entitiesEvicted = m.counter("entities_evicted_total", "Entities dropped to keep the population under its cap")
	m.entitiesRemoved = m.counter("entities_removed_total", "Destroyed entities removed after their exit animation")
	m.liveEntities = m.gauge("live_entities", "Entities currently held by the store")
	m.score = m.gauge("score", "Current score")
	m.energy = m.gauge("energy", "Current energy")
	m.gameOvers = m.counter("game_overs_total", "Transitions from active to game over")
	m.resets = m.counter("resets_total", "Play-again resets")
	m.activeCallouts = m.gauge("active_callouts", "Score callouts currently visible")
	m.staleCallbacks = m.counterVec("stale_callbacks_total", "Deferred callbacks ignored because their state no longer exists", "kind")
	m.droppedTicks = m.counterVec("dropped_ticks_total", "Periodic ticks dropped because the command queue was full", "task")

	m.jobLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "job_latency_milliseconds",
		Help:        "Time spent executing a job on the simulation loop",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"job"})

	m.queueSize = m.gauge("queue_size", "Jobs waiting on the simulation loop")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the simulation command queue")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Rejected enqueue attempts", "reason")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpErrors = m.counterVec("http_errors_total", "HTTP error responses by endpoint, method and error type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		ConstLabels: m.constLabels,
	})
}

// RecordShot counts a shot attempt by outcome: "hit", "miss" or "rejected".
func RecordShot(outcome string) {
	globalManager.shots.WithLabelValues(outcome).Inc()
}

// RecordHit records one entity hit and what it paid out.
func RecordHit(points, reward float64, killed bool) {
	globalManager.hits.Inc()
	globalManager.pointsAwarded.Add(points)
	globalManager.energyRewarded.Add(reward)
	if killed {
		globalManager.kills.Inc()
	}
}

// RecordSpawn increments the spawned entities counter.
func RecordSpawn() {
	globalManager.entitiesSpawned.Inc()
}

// RecordEviction increments the evicted entities counter.
func RecordEviction() {
	globalManager.entitiesEvicted.Inc()
}

// RecordRemoval increments the removed entities counter.
func RecordRemoval() {
	globalManager.entitiesRemoved.Inc()
}

// UpdateLiveEntities sets the live entity gauge.
func UpdateLiveEntities(count int) {
	globalManager.liveEntities.Set(float64(count))
}

// UpdateEconomy sets the score and energy gauges.
func UpdateEconomy(score, energy float64) {
	globalManager.score.Set(score)
	globalManager.energy.Set(energy)
}

// RecordGameOver increments the game over counter.
func RecordGameOver() {
	globalManager.gameOvers.Inc()
}

// RecordReset increments the reset counter.
func RecordReset() {
	globalManager.resets.Inc()
}

// UpdateActiveCallouts sets the visible callout gauge.
func UpdateActiveCallouts(count int) {
	globalManager.activeCallouts.Set(float64(count))
}

// RecordStaleCallback counts a deferred callback that found nothing to act on.
func RecordStaleCallback(kind string) {
	globalManager.staleCallbacks.WithLabelValues(kind).Inc()
}

// RecordDroppedTick counts a periodic tick that could not be queued.
func RecordDroppedTick(task string) {
	globalManager.droppedTicks.WithLabelValues(task).Inc()
}

// RecordJobLatency records how long a loop job ran, in milliseconds.
func RecordJobLatency(job string, latencyMs float64) {
	globalManager.jobLatency.WithLabelValues(job).Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts a rejected enqueue by reason.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an error response for endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
