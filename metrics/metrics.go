// Package metrics exports game counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blockfall"

// Metrics groups the collectors a running game updates. All methods are
// safe on a nil *Metrics, so callers can leave metrics off.
type Metrics struct {
	ticks        prometheus.Counter
	commands     *prometheus.CounterVec
	piecesLocked prometheus.Counter
	linesCleared prometheus.Counter
	clearSize    prometheus.Histogram
	gameOvers    prometheus.Counter
	restarts     prometheus.Counter
	queueLength  *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Fixed simulation steps executed.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Player commands handled, by command.",
		}, []string{"command"}),
		piecesLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the grid.",
		}),
		linesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Full rows removed.",
		}),
		clearSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lines_per_clear",
			Help:      "Rows removed by a single lock.",
			Buckets:   []float64{1, 2, 3, 4},
		}),
		gameOvers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_overs_total",
			Help:      "Spawns that found no room.",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Games re-initialized after game over or on request.",
		}),
		queueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_length",
			Help:      "Piece types waiting in the queue, by session.",
		}, []string{"session"}),
	}

	for _, c := range []prometheus.Collector{
		m.ticks, m.commands, m.piecesLocked, m.linesCleared,
		m.clearSize, m.gameOvers, m.restarts, m.queueLength,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Tick() {
	if m != nil {
		m.ticks.Inc()
	}
}

func (m *Metrics) Command(name string) {
	if m != nil {
		m.commands.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) PieceLocked() {
	if m != nil {
		m.piecesLocked.Inc()
	}
}

// LinesCleared records one lock that removed n rows; n of 0 is ignored.
func (m *Metrics) LinesCleared(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linesCleared.Add(float64(n))
	m.clearSize.Observe(float64(n))
}

func (m *Metrics) GameOver() {
	if m != nil {
		m.gameOvers.Inc()
	}
}

func (m *Metrics) Restart() {
	if m != nil {
		m.restarts.Inc()
	}
}

// QueueLength sets the gauge of one session. Sessions sharing a Metrics
// keep separate series.
func (m *Metrics) QueueLength(session string, n int) {
	if m != nil {
		m.queueLength.WithLabelValues(session).Set(float64(n))
	}
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
