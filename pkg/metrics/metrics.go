package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK             = "ok"
	OutcomeServiceError   = "service_error"
	OutcomeTransportError = "transport_error"

	PollCompleted = "completed"
	PollTimeout   = "timeout"
	PollError     = "error"
)

const namespace = "frejaeid"

// Collector groups the client metrics. The zero value is not usable; a nil
// pointer is.
type Collector struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	pollAttempts *prometheus.CounterVec
	polls        *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg. A nil reg
// falls back to prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total round trips to the Freja eID service",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of round trips to the Freja eID service",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		pollAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_attempts_total",
				Help:      "Get-result calls issued while polling",
			},
			[]string{"kind"},
		),
		polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "polls_total",
				Help:      "Finished polls by outcome",
			},
			[]string{"kind", "outcome"},
		),
	}

	var err error
	if c.requests, err = register(reg, c.requests); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, c.duration); err != nil {
		return nil, err
	}
	if c.pollAttempts, err = register(reg, c.pollAttempts); err != nil {
		return nil, err
	}
	if c.polls, err = register(reg, c.polls); err != nil {
		return nil, err
	}

	return c, nil
}

// register adds col to reg, reusing an identical collector registered earlier
func register[C prometheus.Collector](reg prometheus.Registerer, col C) (C, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return col, err
}

// ObserveRequest records one round trip
func (c *Collector) ObserveRequest(operation, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(operation, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObservePollAttempt records one get-result call made by a poll
func (c *Collector) ObservePollAttempt(kind string) {
	if c == nil {
		return
	}
	c.pollAttempts.WithLabelValues(kind).Inc()
}

// ObservePoll records the end of a poll
func (c *Collector) ObservePoll(kind, outcome string) {
	if c == nil {
		return
	}
	c.polls.WithLabelValues(kind, outcome).Inc()
}
