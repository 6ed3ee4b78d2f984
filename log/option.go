package log

// Option transforms an immutable logger configuration, returning the
// modified copy. Options compose left to right, so later options win.
type Option func(config) config

// apply folds opts over c in order.
func (c config) apply(opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
