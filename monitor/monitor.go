// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SavedGames      prometheus.Gauge
	HighScores      prometheus.Gauge
	LiveSubscribers prometheus.Gauge
	GamesSaved      prometheus.Counter
	ScoresSubmitted prometheus.Counter
	RequestLatency  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		SavedGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saved_games",
			Help:      "Documents in the saved-games collection",
		}),
		HighScores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "high_scores",
			Help:      "Documents in the high-scores collection",
		}),
		LiveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscribers",
			Help:      "Open leaderboard feed connections",
		}),
		GamesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_saved_total",
			Help:      "Total save-game requests accepted",
		}),
		ScoresSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_submitted_total",
			Help:      "Total leaderboard submissions accepted",
		}),
		RequestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.SavedGames,
		m.HighScores,
		m.LiveSubscribers,
		m.GamesSaved,
		m.ScoresSubmitted,
		m.RequestLatency,
	)

	return m
}

type Monitor struct {
	metrics      *Metrics
	startTime    time.Time
	requestCount int64
	mutex        sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

// StartServer serves /metrics and the expvar endpoints on its own
// listener, away from the game API.
func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("requests", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.requestCount
	}))

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) SetSavedGames(count int64) {
	m.metrics.SavedGames.Set(float64(count))
}

func (m *Monitor) SetHighScores(count int64) {
	m.metrics.HighScores.Set(float64(count))
}

func (m *Monitor) SetLiveSubscribers(count int) {
	m.metrics.LiveSubscribers.Set(float64(count))
}

func (m *Monitor) IncGamesSaved() {
	m.metrics.GamesSaved.Inc()
}

func (m *Monitor) IncScoresSubmitted() {
	m.metrics.ScoresSubmitted.Inc()
}

func (m *Monitor) ObserveRequestLatency(duration time.Duration) {
	m.metrics.RequestLatency.Observe(duration.Seconds())
	m.mutex.Lock()
	m.requestCount++
	m.mutex.Unlock()
}
