package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pow_challenges_issued_total",
		Help: "The number of challenges issued, by difficulty",
	}, []string{"difficulty"})

	verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pow_verifications_total",
		Help: "The number of verification attempts, by outcome",
	}, []string{"result"})

	introspections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pow_introspections_total",
		Help: "The number of token introspections, by outcome",
	}, []string{"result"})
)

func recordIssue(difficulty int) {
	challengesIssued.WithLabelValues(strconv.Itoa(difficulty)).Inc()
}

// resultLabel collapses an operation outcome into a bounded label set.
func resultLabel(ok string, err error) string {
	if err == nil {
		return ok
	}
	switch {
	case IsClientError(err):
		return "rejected"
	case IsChallengeUnusable(err):
		return "unusable"
	default:
		return "error"
	}
}
