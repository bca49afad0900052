package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/benz9527/xmap/lib/tree"
)

func insertAndErase(t *testing.T, name string, insert, erase int) {
	rbtree := tree.NewRBTree[int, int](tree.WithRBTreeStats[int, int](name))
	for i := 0; i < insert; i++ {
		rbtree.Insert(i, i)
	}
	for i := 0; i < erase; i++ {
		_, err := rbtree.Remove(i)
		require.NoError(t, err)
	}
}

func TestConsoleMetricsExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	shutdown, err := NewConsoleMetricsExporter(buf, time.Hour, time.Second)
	require.NoError(t, err)

	insertAndErase(t, "console", 16, 4)
	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	require.Contains(t, out, "xmap/rbtree/console")
	require.Contains(t, out, "rbtree.insert.count")
	require.Contains(t, out, "rbtree.erase.count")
	require.Contains(t, out, "rbtree.size")
}

func TestPrometheusMetricsExporter(t *testing.T) {
	reg := promclient.NewRegistry()
	shutdown, err := NewPrometheusMetricsExporter(reg)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	insertAndErase(t, "prometheus", 32, 8)

	families, err := reg.Gather()
	require.NoError(t, err)
	found := map[string]float64{}
	for _, mf := range families {
		name := mf.GetName()
		for _, m := range mf.GetMetric() {
			switch {
			case strings.HasPrefix(name, "rbtree_insert_count"),
				strings.HasPrefix(name, "rbtree_erase_count"):
				found[name] += m.GetCounter().GetValue()
			case strings.HasPrefix(name, "rbtree_size"):
				found[name] += m.GetGauge().GetValue()
			}
		}
	}
	for name, val := range found {
		switch {
		case strings.HasPrefix(name, "rbtree_insert_count"):
			require.Equal(t, float64(32), val)
		case strings.HasPrefix(name, "rbtree_erase_count"):
			require.Equal(t, float64(8), val)
		case strings.HasPrefix(name, "rbtree_size"):
			require.Equal(t, float64(24), val)
		}
	}
	require.Len(t, found, 3)
}

func TestManualMetricsReader(t *testing.T) {
	reader, shutdown := NewManualMetricsReader()
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	insertAndErase(t, "manual", 10, 3)

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	require.Equal(t, "xmap/rbtree/manual", rm.ScopeMetrics[0].Scope.Name)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, m.Name)
		switch m.Name {
		case "rbtree.insert.count":
			require.Equal(t, int64(10), sum.DataPoints[0].Value)
		case "rbtree.erase.count":
			require.Equal(t, int64(3), sum.DataPoints[0].Value)
		case "rbtree.size":
			require.Equal(t, int64(7), sum.DataPoints[0].Value)
		}
	}
}
