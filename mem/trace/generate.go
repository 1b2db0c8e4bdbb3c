package trace

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/pagesim/mem/vm/paging"
)

// Pattern is the shape of a synthetic trace.
type Pattern string

// The synthetic trace patterns.
const (
	// PatternUniform references every page with equal probability.
	PatternUniform Pattern = "uniform"

	// PatternLoop walks pages 0, 1, ..., Pages-1 over and over.
	PatternLoop Pattern = "loop"

	// PatternHotSet sends most references to a small set of hot pages.
	PatternHotSet Pattern = "hotset"
)

// A Generator produces deterministic synthetic traces.
type Generator struct {
	Pattern    Pattern
	Pages      int
	Length     int
	WriteRatio float64
	Seed       uint64

	// HotFraction is the share of pages that are hot in PatternHotSet.
	HotFraction float64

	// HotProbability is the chance that a reference hits a hot page.
	HotProbability float64
}

// DefaultGenerator returns a uniform generator with the hot set parameters
// filled in.
func DefaultGenerator() Generator {
	return Generator{
		Pattern:        PatternUniform,
		Pages:          64,
		Length:         10000,
		WriteRatio:     0.25,
		Seed:           1,
		HotFraction:    0.2,
		HotProbability: 0.8,
	}
}

// Validate checks the generator parameters.
func (g Generator) Validate() error {
	switch g.Pattern {
	case PatternUniform, PatternLoop, PatternHotSet:
	default:
		return fmt.Errorf("unknown pattern %q (must be uniform, loop, or hotset)",
			g.Pattern)
	}

	if g.Pages <= 0 {
		return fmt.Errorf("page count must be positive, got %d", g.Pages)
	}

	if g.Length < 0 {
		return fmt.Errorf("length must not be negative, got %d", g.Length)
	}

	if g.WriteRatio < 0 || g.WriteRatio > 1 {
		return fmt.Errorf("write ratio must be in [0, 1], got %g", g.WriteRatio)
	}

	if g.Pattern == PatternHotSet {
		if g.HotFraction <= 0 || g.HotFraction > 1 {
			return fmt.Errorf("hot fraction must be in (0, 1], got %g",
				g.HotFraction)
		}

		if g.HotProbability < 0 || g.HotProbability > 1 {
			return fmt.Errorf("hot probability must be in [0, 1], got %g",
				g.HotProbability)
		}
	}

	return nil
}

// Generate calls emit with every record of the trace, stopping at the first
// error.
func (g Generator) Generate(emit func(Access) error) error {
	if err := g.Validate(); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(g.Seed, uint64(g.Pages)))

	hot := int(float64(g.Pages) * g.HotFraction)
	if hot < 1 {
		hot = 1
	}

	for i := 0; i < g.Length; i++ {
		var page int

		switch g.Pattern {
		case PatternLoop:
			page = i % g.Pages
		case PatternHotSet:
			if hot == g.Pages || rng.Float64() < g.HotProbability {
				page = rng.IntN(hot)
			} else {
				page = hot + rng.IntN(g.Pages-hot)
			}
		default:
			page = rng.IntN(g.Pages)
		}

		op := OpRead
		if rng.Float64() < g.WriteRatio {
			op = OpWrite
		}

		if err := emit(Access{Op: op, Page: paging.Page(page)}); err != nil {
			return err
		}
	}

	return nil
}
