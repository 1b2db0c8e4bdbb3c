package paging

import "strings"

// A Policy decides which occupied frame to give up when a page fault finds no
// free frame. A policy owns its bookkeeping; the Manager only drives it
// through these calls and never touches the policy state directly.
type Policy interface {
	// Name returns the short name of the policy.
	Name() string

	// SelectVictim returns an occupied frame to evict. It returns false only
	// if no frame is occupied, which the Manager never allows to happen.
	SelectVictim(view Residency) (Frame, bool)

	// UpdateAccessInfo records a read or a write of a resident page.
	UpdateAccessInfo(view Residency, page Page, isWrite bool)

	// PageLoaded is called after a page is loaded into a frame.
	PageLoaded(page Page, frame Frame)

	// PageEvicted is called after a page leaves a frame. Any state kept for
	// the page or the frame must be dropped here.
	PageEvicted(page Page, frame Frame)
}

// PolicyKind names one of the built-in policies.
type PolicyKind string

// The built-in policies.
const (
	PolicyClock  PolicyKind = "clock"
	PolicyLRU    PolicyKind = "lru"
	PolicyRandom PolicyKind = "random"
)

// PolicyKinds lists the built-in policies in a stable order.
var PolicyKinds = []PolicyKind{PolicyClock, PolicyLRU, PolicyRandom}

// ParsePolicyKind converts a user supplied policy name into a PolicyKind.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clock":
		return PolicyClock, nil
	case "lru":
		return PolicyLRU, nil
	case "random", "rand":
		return PolicyRandom, nil
	default:
		return "", newError(KindInvalidConfiguration, "parse policy",
			"unknown policy %q (must be clock, lru, or random)", s)
	}
}

// NewPolicy creates a built-in policy for a memory of frameCount frames. The
// seed is only used by the random policy.
func NewPolicy(kind PolicyKind, frameCount int, seed uint64) (Policy, error) {
	if frameCount <= 0 {
		return nil, newError(KindInvalidConfiguration, "new policy",
			"frame count must be positive, got %d", frameCount)
	}

	switch kind {
	case PolicyClock:
		return NewClockPolicy(frameCount), nil
	case PolicyLRU:
		return NewLRUPolicy(), nil
	case PolicyRandom:
		return NewRandomPolicy(seed), nil
	default:
		return nil, newError(KindInvalidConfiguration, "new policy",
			"unknown policy %q", string(kind))
	}
}

func (k PolicyKind) String() string {
	return string(k)
}
