// file: internal/metrics/metrics_test.go
// version: 1.0.0
// guid: 09122334-4556-677a-8b9c-0d1e2f304152

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(decodesCompleted)
	DecodeStarted()
	DecodeCompleted(25 * time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(decodesCompleted))

	beforeFailed := testutil.ToFloat64(decodesFailed)
	DecodeFailed()
	assert.Equal(t, beforeFailed+1, testutil.ToFloat64(decodesFailed))

	RecordsDecoded(map[string]int{"htim": 3, "hohm": 9})
	assert.Equal(t, float64(3), testutil.ToFloat64(recordsDecoded.WithLabelValues("htim")))

	ExportCompleted("csv")
	assert.Equal(t, float64(1), testutil.ToFloat64(exportsCompleted.WithLabelValues("csv")))

	LibraryDecoded(10, 2)
	assert.Equal(t, float64(10), testutil.ToFloat64(tracksGauge))
	assert.Equal(t, float64(2), testutil.ToFloat64(playlistsGauge))
}
