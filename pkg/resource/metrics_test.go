package resource

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCountsLoads(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	g := newFakeGraph()

	fail := false
	r := New(func(info Info[int]) *Task[int] {
		if fail {
			return Fail[int](errTest)
		}
		return Done(1)
	},
		WithGraph[int](g),
		WithMetrics[int](m),
		WithName[int]("users"),
	)

	g.flush()
	fail = true
	r.Refetch()

	if got := testutil.ToFloat64(m.loads.WithLabelValues("users", "success")); got != 1 {
		t.Errorf("success loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loads.WithLabelValues("users", "error")); got != 1 {
		t.Errorf("error loads = %v, want 1", got)
	}
}

func TestMetricsCountsDedupsAndStale(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	g := newFakeGraph()

	var settles []func(int, error)
	r := New(func(info Info[int]) *Task[int] {
		task, settle := NewTask[int]()
		settles = append(settles, settle)
		return task
	},
		WithGraph[int](g),
		WithMetrics[int](m),
		WithName[int]("feed"),
	)

	// Same-turn refetch while the construction fetch is outstanding.
	r.Refetch()
	if got := testutil.ToFloat64(m.dedups.WithLabelValues("feed")); got != 1 {
		t.Errorf("dedups = %v, want 1", got)
	}

	// Supersede the first fetch, then let it settle late.
	g.flush()
	r.Refetch()
	settles[0](1, nil)
	settles[1](2, nil)

	if got := testutil.ToFloat64(m.loads.WithLabelValues("feed", "stale")); got != 1 {
		t.Errorf("stale loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loads.WithLabelValues("feed", "success")); got != 1 {
		t.Errorf("success loads = %v, want 1", got)
	}
}

var errTest = &ValueError{Message: "test failure", Value: "test failure"}
