package trace

import (
	"context"
	"io"

	"github.com/sarchlab/pagesim/mem/vm/paging"
)

// A Source yields trace records until it returns io.EOF.
type Source interface {
	Next() (Access, error)
}

// A Target is what a trace is replayed against. *paging.Manager is one.
type Target interface {
	Read(page paging.Page) error
	Write(page paging.Page) error
	EnableTrace()
	DisableTrace()
}

// Result counts what a replay did.
type Result struct {
	Reads  uint64 `json:"reads"`
	Writes uint64 `json:"writes"`
}

// Events returns the number of page references replayed.
func (r Result) Events() uint64 {
	return r.Reads + r.Writes
}

// Replay feeds every record of src to target. It stops at the end of the
// trace, at the first error, or when ctx is done. If onAccess is not nil, it
// is called after every page reference.
func Replay(
	ctx context.Context,
	src Source,
	target Target,
	onAccess func(Result),
) (Result, error) {
	var res Result

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		a, err := src.Next()
		if err == io.EOF {
			return res, nil
		}

		if err != nil {
			return res, err
		}

		switch a.Op {
		case OpTraceOn:
			target.EnableTrace()
			continue
		case OpTraceOff:
			target.DisableTrace()
			continue
		case OpWrite:
			if err := target.Write(a.Page); err != nil {
				return res, err
			}

			res.Writes++
		default:
			if err := target.Read(a.Page); err != nil {
				return res, err
			}

			res.Reads++
		}

		if onAccess != nil {
			onAccess(res)
		}
	}
}

// SliceSource replays records from memory.
type SliceSource struct {
	records []Access
	next    int
}

// NewSliceSource creates a Source over records.
func NewSliceSource(records []Access) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record or io.EOF.
func (s *SliceSource) Next() (Access, error) {
	if s.next >= len(s.records) {
		return Access{}, io.EOF
	}

	a := s.records[s.next]
	s.next++

	return a, nil
}
