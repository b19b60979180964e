// Package metrics экспортирует счётчики загрузок в Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы запроса на загрузку.
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeFailed       = "failed"
	OutcomeBadRequest   = "bad_request"
)

// Observer получает телеметрию оркестратора загрузок.
type Observer interface {
	RecordAuth(ok bool)
	RecordPart(size int64, duration time.Duration, err error)
	RecordRequest(outcome string)
}

// Nop ничего не записывает.
type Nop struct{}

func (Nop) RecordAuth(bool) {}
func (Nop) RecordPart(int64, time.Duration, error) {}
func (Nop) RecordRequest(string) {}

// PrometheusObserver пишет метрики загрузок в реестр Prometheus.
type PrometheusObserver struct {
	authAttempts *prometheus.CounterVec
	parts        *prometheus.CounterVec
	partDuration prometheus.Histogram
	bytesWritten prometheus.Counter
	requests     *prometheus.CounterVec
}

// NewPrometheusObserver регистрирует метрики; повторная регистрация переиспользует существующие.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "upload_lite"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Upload credential checks by result.",
		}, []string{"result"}),
		parts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parts_total",
			Help:      "Multipart parts processed by result.",
		}, []string{"result"}),
		partDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "part_write_duration_seconds",
			Help:      "Time spent streaming one part to disk.",
			Buckets:   prometheus.DefBuckets,
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "written_bytes_total",
			Help:      "Bytes of successfully stored parts.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_requests_total",
			Help:      "Upload requests by outcome.",
		}, []string{"outcome"}),
	}

	if err := register(reg, &o.authAttempts); err != nil {
		return nil, err
	}
	if err := register(reg, &o.parts); err != nil {
		return nil, err
	}
	if err := register(reg, &o.partDuration); err != nil {
		return nil, err
	}
	if err := register(reg, &o.bytesWritten); err != nil {
		return nil, err
	}
	if err := register(reg, &o.requests); err != nil {
		return nil, err
	}

	return o, nil
}

// register подменяет коллектор уже зарегистрированным, если такой есть.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			*c = existing
			return nil
		}
	}

	return fmt.Errorf("register upload metric: %w", err)
}

func (o *PrometheusObserver) RecordAuth(ok bool) {
	if ok {
		o.authAttempts.WithLabelValues("granted").Inc()
		return
	}
	o.authAttempts.WithLabelValues("denied").Inc()
}

func (o *PrometheusObserver) RecordPart(size int64, duration time.Duration, err error) {
	o.partDuration.Observe(duration.Seconds())
	if err != nil {
		o.parts.WithLabelValues("failed").Inc()
		return
	}
	o.parts.WithLabelValues("stored").Inc()
	o.bytesWritten.Add(float64(size))
}

func (o *PrometheusObserver) RecordRequest(outcome string) {
	o.requests.WithLabelValues(outcome).Inc()
}

var _ Observer = (*PrometheusObserver)(nil)
var _ Observer = Nop{}
