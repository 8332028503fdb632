package safemetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vybium/safe/pkg/safe/safemetrics"
)

func TestPrometheusRecorderCountsAbsorbCalls(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := safemetrics.NewPrometheusRecorder(registry)
	require.NoError(t, err)

	recorder.AbsorbCalls("poseidon", 3)
	recorder.AbsorbCalls("poseidon", 2)

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range metricFamilies {
		if mf.GetName() != "safe_sponge_absorb_elements_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(5), total)
}

func TestPrometheusRecorderDecryptionFailureLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := safemetrics.NewPrometheusRecorder(registry)
	require.NoError(t, err)

	recorder.DecryptionFailed("tip5", "authentication")

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range metricFamilies {
		if mf.GetName() == "safe_encryption_decryption_failed_total" {
			found = true
		}
	}
	require.True(t, found)
}

func TestPrometheusRecorderPatternViolationLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := safemetrics.NewPrometheusRecorder(registry)
	require.NoError(t, err)

	recorder.PatternViolations("arion", "pattern-exhausted")

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range metricFamilies {
		if mf.GetName() == "safe_sponge_pattern_violations_total" {
			found = true
		}
	}
	require.True(t, found)
}

func TestNoopRecorderDoesNotPanic(t *testing.T) {
	var r safemetrics.Recorder = safemetrics.NoopRecorder{}
	r.AbsorbCalls("poseidon", 1)
	r.SqueezeCalls("poseidon", 1)
	r.PermutationInvocations("poseidon")
	r.PatternViolations("poseidon", "reason")
	r.EncryptionSucceeded("poseidon")
	r.DecryptionFailed("poseidon", "bad-tag")
	r.ObservePermutationDuration("poseidon", 0.01)
}
