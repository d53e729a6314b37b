package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nfvri/itm/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of prediction batches.
type Collector struct {
	gatherer prometheus.Gatherer

	Predictions   *prometheus.CounterVec
	Errors        *prometheus.CounterVec
	Loss          prometheus.Histogram
	BatchDuration prometheus.Histogram
}

// NewCollector registers the metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	predictions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itm_predictions_total",
		Help: "Number of link predictions, labeled by propagation mode and outcome.",
	}, []string{"mode", "outcome"}), "itm_predictions_total")
	if err != nil {
		return nil, err
	}

	errs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itm_prediction_errors_total",
		Help: "Number of rejected link predictions, labeled by error code.",
	}, []string{"code"}), "itm_prediction_errors_total")
	if err != nil {
		return nil, err
	}

	loss, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itm_basic_transmission_loss_db",
		Help:    "Predicted basic transmission loss in dB.",
		Buckets: prometheus.LinearBuckets(60, 20, 12),
	}), "itm_basic_transmission_loss_db")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itm_batch_duration_seconds",
		Help:    "Wall time of a prediction batch in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}), "itm_batch_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Predictions:   predictions,
		Errors:        errs,
		Loss:          loss,
		BatchDuration: duration,
	}, nil
}

// Observe records one prediction.
func (c *Collector) Observe(r model.Result) {
	if c == nil {
		return
	}
	switch {
	case !r.Valid():
		c.Predictions.WithLabelValues(r.Mode.String(), "error").Inc()
		c.Errors.WithLabelValues(strconv.Itoa(int(r.Err))).Inc()
		return
	case r.Warnings != model.NoWarnings:
		c.Predictions.WithLabelValues(r.Mode.String(), "warning").Inc()
	default:
		c.Predictions.WithLabelValues(r.Mode.String(), "ok").Inc()
	}
	c.Loss.Observe(r.Loss)
}

// ObserveBatch records the duration of a batch that started at start.
func (c *Collector) ObserveBatch(start time.Time) {
	if c == nil {
		return
	}
	c.BatchDuration.Observe(time.Since(start).Seconds())
}

// Handler exposes the registered metrics over HTTP.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the metrics in the text exposition format, for the
// node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.gatherer)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
