package observe

import "sort"

// Option configures a Store at construction time.
type Option func(*config)

// config collects option state before the store exists.
type config struct {
	registryOpts []RegistryOption
	seed         map[string]any
	seedOrder    []string
}

func newConfig(opts []Option) *config {
	cfg := &config{seed: make(map[string]any)}
	for _, opt := range opts {
		opt(cfg)
	}
	sort.Strings(cfg.seedOrder)
	return cfg
}

// WithRecovery makes handler panics non-fatal: the panic value is passed to
// fn and dispatch continues with the remaining handlers for that emission.
// Without this option a panicking handler aborts the rest of its dispatch
// and the panic propagates to the caller of Set.
func WithRecovery(fn func(event string, recovered any)) Option {
	return func(c *config) {
		c.registryOpts = append(c.registryOpts, WithPanicHandler(fn))
	}
}

// WithSeed writes the given properties into the store during construction,
// in sorted name order. Seeding goes through the normal write path: map values
// are wrapped, and any handlers registered by earlier options would fire —
// in practice nothing is subscribed yet, so seeding is silent.
// Reserved names in the seed are skipped.
func WithSeed(values map[string]any) Option {
	return func(c *config) {
		for name, v := range values {
			if _, reserved := reservedNames[name]; reserved {
				continue
			}
			if _, dup := c.seed[name]; !dup {
				c.seedOrder = append(c.seedOrder, name)
			}
			c.seed[name] = v
		}
	}
}
