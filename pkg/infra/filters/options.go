package filters

// Option is a functional option for configuring the Manager.
type Option func(*manager)

// WithMetrics toggles the Prometheus filter decision metrics.
func WithMetrics(enabled bool) Option {
	return func(m *manager) {
		m.observe = enabled
	}
}
