// Package telemetry exports trycatch runtime events as Prometheus metrics.
package telemetry

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/mhahnFr/mh-tryCatch/pkg/trycatch"
)

const namespace = "trycatch"

// Collector is a trycatch.Observer counting events per kind and tag.
type Collector struct {
	events   *prometheus.CounterVec
	maxDepth prometheus.Gauge
	deepest  int
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Runtime state transitions by event kind and exception tag.",
		}, []string{"kind", "tag"}),
		maxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_scope_depth",
			Help:      "Deepest protected extent nesting observed.",
		}),
	}
	for _, col := range []prometheus.Collector{c.events, c.maxDepth} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe implements trycatch.Observer.
func (c *Collector) Observe(ev trycatch.Event) {
	c.events.WithLabelValues(ev.Kind.String(), string(ev.Tag)).Inc()
	if ev.Depth > c.deepest {
		c.deepest = ev.Depth
		c.maxDepth.Set(float64(ev.Depth))
	}
}

// Sample is one counter value read back from a registry.
type Sample struct {
	Kind  string
	Tag   string
	Value float64
}

// EventSamples gathers the events counter from g, sorted by kind then tag.
func EventSamples(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, family := range families {
		if family.GetName() != namespace+"_events_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			out = append(out, sampleOf(metric))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

func sampleOf(metric *dto.Metric) Sample {
	s := Sample{Value: metric.GetCounter().GetValue()}
	for _, label := range metric.GetLabel() {
		switch label.GetName() {
		case "kind":
			s.Kind = label.GetValue()
		case "tag":
			s.Tag = label.GetValue()
		}
	}
	return s
}
