package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhahnFr/mh-tryCatch/pkg/trycatch"
)

func TestCollector_CountsRuntimeEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	rt := trycatch.New(trycatch.WithObserver(c))
	rt.Try(func() {
		rt.Try(func() {
			trycatch.ThrowTagged(rt, "str", "x")
		}, trycatch.CatchTag("int", func(int) {}))
	}, trycatch.CatchTag("str", func(string) {}))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("throw", "str")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("unmatched", "str")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("catch", "str")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues("enter", "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.maxDepth))
}

func TestCollector_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestEventSamples(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.Observe(trycatch.Event{Kind: trycatch.EventThrow, Tag: "int", Depth: 1})
	c.Observe(trycatch.Event{Kind: trycatch.EventThrow, Tag: "int", Depth: 1})
	c.Observe(trycatch.Event{Kind: trycatch.EventCatch, Tag: "int"})

	samples, err := EventSamples(reg)
	require.NoError(t, err)
	assert.Equal(t, []Sample{
		{Kind: "catch", Tag: "int", Value: 1},
		{Kind: "throw", Tag: "int", Value: 2},
	}, samples)
}
