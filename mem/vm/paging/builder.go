package paging

import "github.com/sarchlab/pagesim/sim"

// A Builder can build Managers.
type Builder struct {
	frameCount   int
	policy       Policy
	policyKind   PolicyKind
	seed         uint64
	sink         TraceSink
	traceEnabled bool
	hooks        []sim.Hook
}

// MakeBuilder creates a new Builder with the clock policy.
func MakeBuilder() Builder {
	return Builder{
		frameCount: 1,
		policyKind: PolicyClock,
	}
}

// WithFrameCount sets the number of physical frames.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithPolicy sets the replacement policy. It takes precedence over
// WithPolicyKind.
func (b Builder) WithPolicy(p Policy) Builder {
	b.policy = p
	return b
}

// WithPolicyKind selects one of the built-in policies.
func (b Builder) WithPolicyKind(kind PolicyKind) Builder {
	b.policyKind = kind
	return b
}

// WithSeed sets the seed of the random policy.
func (b Builder) WithSeed(seed uint64) Builder {
	b.seed = seed
	return b
}

// WithTraceSink sets where trace events go. By default, they are printed to
// the standard output.
func (b Builder) WithTraceSink(sink TraceSink) Builder {
	b.sink = sink
	return b
}

// WithTraceEnabled decides if the Manager starts with tracing enabled.
func (b Builder) WithTraceEnabled(enabled bool) Builder {
	b.traceEnabled = enabled
	return b
}

// WithHook registers a hook on the built Manager.
func (b Builder) WithHook(hook sim.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// Build returns a newly created Manager.
func (b Builder) Build(name string) (*Manager, error) {
	if b.frameCount <= 0 {
		return nil, newError(KindInvalidConfiguration, "build",
			"frame count must be positive, got %d", b.frameCount)
	}

	policy, err := b.createPolicy()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		name:         name,
		tables:       newTables(b.frameCount),
		policy:       policy,
		sink:         b.sink,
		traceEnabled: b.traceEnabled,
	}

	if m.sink == nil {
		m.sink = defaultTraceSink()
	}

	for _, h := range b.hooks {
		m.AcceptHook(h)
	}

	return m, nil
}

func (b Builder) createPolicy() (Policy, error) {
	if b.policy == nil {
		return NewPolicy(b.policyKind, b.frameCount, b.seed)
	}

	if c, ok := b.policy.(*ClockPolicy); ok && len(c.referenced) != b.frameCount {
		return nil, newError(KindInvalidConfiguration, "build",
			"clock policy sized for %d frames used with %d frames",
			len(c.referenced), b.frameCount)
	}

	return b.policy, nil
}
