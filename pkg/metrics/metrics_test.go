package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.Rendered(20*time.Millisecond, 2, 4096)
	r.Rendered(10*time.Millisecond, 1, 2048)
	r.CacheHit()
	r.Failed()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.exports.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues(ResultCacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues(ResultError)))

	count, err := testutil.GatherAndCount(reg, "checkdisout_export_pages")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewTwiceOnSameRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
