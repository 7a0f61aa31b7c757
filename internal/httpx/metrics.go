package httpx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lgbarn/aichess-go/internal/game"
)

// Move sources and results used as metric labels.
const (
	sourceUser     = "user"
	sourceOpponent = "opponent"

	resultOK            = "ok"
	resultInvalidFormat = "invalid_format"
	resultIllegal       = "illegal"
	resultGameOver      = "game_over"
	resultNoMove        = "no_move"
	resultError         = "error"
)

type metrics struct {
	moves        *prometheus.CounterVec
	opponentTime prometheus.Histogram
	requests     *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, sessions *game.Manager) *metrics {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "aichess",
		Name:      "sessions",
		Help:      "Number of live game sessions.",
	}, func() float64 { return float64(sessions.Len()) })

	return &metrics{
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aichess",
			Name:      "moves_total",
			Help:      "Moves submitted, by source and result.",
		}, []string{"source", "result"}),
		opponentTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aichess",
			Name:      "opponent_seconds",
			Help:      "Time the opponent took to choose a move.",
			Buckets:   prometheus.DefBuckets,
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aichess",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"route", "code"}),
	}
}
