package resource

// config collects construction options for a resource.
type config[T any] struct {
	initial   *T
	storage   Storage[T]
	graph     Graph
	name      string
	onSuccess func(T)
	onError   func(error)
	metrics   *Metrics
	tracer    loadTracer
}

// Option configures a resource at construction.
type Option[T any] func(*config[T])

// WithInitialValue seeds the data cell. The resource starts resolved, in
// state Ready, and the first fetch is a refresh rather than a pending
// load.
func WithInitialValue[T any](v T) Option[T] {
	return func(c *config[T]) {
		c.initial = &v
	}
}

// WithStorage replaces the factory backing the data cell, for example
// with a deep-reactive store. The default is SignalStorage.
func WithStorage[T any](s Storage[T]) Option[T] {
	return func(c *config[T]) {
		if s != nil {
			c.storage = s
		}
	}
}

// WithGraph replaces the reactive graph the engine runs on. The default
// is DefaultGraph (pkg/signals). Mainly useful for tests that need a
// manually pumped defer queue.
func WithGraph[T any](g Graph) Option[T] {
	return func(c *config[T]) {
		if g != nil {
			c.graph = g
		}
	}
}

// WithName labels the resource in metrics and traces.
func WithName[T any](name string) Option[T] {
	return func(c *config[T]) {
		if name != "" {
			c.name = name
		}
	}
}

// OnSuccess registers a callback invoked after a load finalizes with a
// value. Runs outside the batched cell update.
func OnSuccess[T any](fn func(T)) Option[T] {
	return func(c *config[T]) {
		c.onSuccess = fn
	}
}

// OnError registers a callback invoked after a load finalizes with an
// error.
func OnError[T any](fn func(error)) Option[T] {
	return func(c *config[T]) {
		c.onError = fn
	}
}

// WithMetrics records load counts, durations and refetch dedups to the
// given collector.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(c *config[T]) {
		c.metrics = m
	}
}

// WithTracer emits one span per load to the given tracer.
func WithTracer[T any](t loadTracer) Option[T] {
	return func(c *config[T]) {
		c.tracer = t
	}
}
