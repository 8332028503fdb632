// Package safemetrics exposes prometheus counters and histograms for SAFE
// sponge operations, following the Namespace/Subsystem registration style of
// drand's client metric bridge.
package safemetrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder records counts and durations for sponge absorb/squeeze calls and
// encryption outcomes. A Recorder is safe for concurrent use.
type Recorder interface {
	AbsorbCalls(backend string, elements int)
	SqueezeCalls(backend string, elements int)
	PermutationInvocations(backend string)
	PatternViolations(backend string, reason string)
	EncryptionSucceeded(backend string)
	DecryptionFailed(backend string, reason string)
	ObservePermutationDuration(backend string, seconds float64)
}

// PrometheusRecorder implements Recorder on top of prometheus collectors.
type PrometheusRecorder struct {
	absorbCalls            *prometheus.CounterVec
	squeezeCalls           *prometheus.CounterVec
	permutationInvocations *prometheus.CounterVec
	patternViolations      *prometheus.CounterVec
	encryptionSucceeded    *prometheus.CounterVec
	decryptionFailed       *prometheus.CounterVec
	permutationDuration    *prometheus.HistogramVec
}

// NewPrometheusRecorder builds a PrometheusRecorder and registers its
// collectors with registry.
func NewPrometheusRecorder(registry prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		absorbCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_sponge",
			Name:      "absorb_elements_total",
			Help:      "Number of field elements absorbed into a sponge, by backend.",
		}, []string{"backend"}),
		squeezeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_sponge",
			Name:      "squeeze_elements_total",
			Help:      "Number of field elements squeezed out of a sponge, by backend.",
		}, []string{"backend"}),
		permutationInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_sponge",
			Name:      "permutation_invocations_total",
			Help:      "Number of times the underlying permutation was invoked, by backend.",
		}, []string{"backend"}),
		patternViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_sponge",
			Name:      "pattern_violations_total",
			Help:      "Number of rejected calls that violated the declared io-pattern, by backend and reason.",
		}, []string{"backend", "reason"}),
		encryptionSucceeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_encryption",
			Name:      "succeeded_total",
			Help:      "Number of successful SAFE encrypt/decrypt round trips, by backend.",
		}, []string{"backend"}),
		decryptionFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safe_encryption",
			Name:      "decryption_failed_total",
			Help:      "Number of failed SAFE decryptions, by backend and failure reason.",
		}, []string{"backend", "reason"}),
		permutationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "safe_sponge",
			Name:      "permutation_duration_seconds",
			Help:      "Time spent inside a single permutation call, by backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}

	collectors := []prometheus.Collector{
		r.absorbCalls, r.squeezeCalls, r.permutationInvocations, r.patternViolations,
		r.encryptionSucceeded, r.decryptionFailed, r.permutationDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) AbsorbCalls(backend string, elements int) {
	r.absorbCalls.WithLabelValues(backend).Add(float64(elements))
}

func (r *PrometheusRecorder) SqueezeCalls(backend string, elements int) {
	r.squeezeCalls.WithLabelValues(backend).Add(float64(elements))
}

func (r *PrometheusRecorder) PermutationInvocations(backend string) {
	r.permutationInvocations.WithLabelValues(backend).Inc()
}

func (r *PrometheusRecorder) PatternViolations(backend, reason string) {
	r.patternViolations.WithLabelValues(backend, reason).Inc()
}

func (r *PrometheusRecorder) EncryptionSucceeded(backend string) {
	r.encryptionSucceeded.WithLabelValues(backend).Inc()
}

func (r *PrometheusRecorder) DecryptionFailed(backend string, reason string) {
	r.decryptionFailed.WithLabelValues(backend, reason).Inc()
}

func (r *PrometheusRecorder) ObservePermutationDuration(backend string, seconds float64) {
	r.permutationDuration.WithLabelValues(backend).Observe(seconds)
}

// NoopRecorder implements Recorder with no-ops, for callers that don't want
// to pay for metrics collection.
type NoopRecorder struct{}

func (NoopRecorder) AbsorbCalls(string, int)                     {}
func (NoopRecorder) SqueezeCalls(string, int)                    {}
func (NoopRecorder) PermutationInvocations(string)                {}
func (NoopRecorder) PatternViolations(string, string)             {}
func (NoopRecorder) EncryptionSucceeded(string)                   {}
func (NoopRecorder) DecryptionFailed(string, string)              {}
func (NoopRecorder) ObservePermutationDuration(string, float64)   {}
