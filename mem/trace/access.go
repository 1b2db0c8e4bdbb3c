// Package trace reads, writes, generates, and replays page reference traces,
// and records what a paging.Manager does while replaying them.
//
// A trace is a text file with one record per line:
//
//	R 1f      read page 0x1f
//	W 0x2a    write page 0x2a
//	debug     enable tracing on the manager
//	nodebug   disable it again
//
// Blank lines and lines starting with '#' are ignored.
package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/mem/vm/paging"
)

// Op is the operation of a trace record.
type Op int

// The trace operations.
const (
	OpRead Op = iota
	OpWrite
	OpTraceOn
	OpTraceOff
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	case OpTraceOn:
		return "debug"
	case OpTraceOff:
		return "nodebug"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// An Access is one record of a trace.
type Access struct {
	Op   Op
	Page paging.Page

	// Line is the line number the record was read from, or 0.
	Line int
}

// IsAccess tells if the record reads or writes a page.
func (a Access) IsAccess() bool {
	return a.Op == OpRead || a.Op == OpWrite
}

// String formats the record the way it appears in a trace file.
func (a Access) String() string {
	if !a.IsAccess() {
		return a.Op.String()
	}

	return fmt.Sprintf("%s %x", a.Op, int64(a.Page))
}

// ParseLine parses one line of a trace. It returns false for blank lines and
// comments.
func ParseLine(line string) (Access, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Access{}, false, nil
	}

	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case "debug":
		return directive(OpTraceOn, fields)
	case "nodebug":
		return directive(OpTraceOff, fields)
	case "r":
		return access(OpRead, fields)
	case "w":
		return access(OpWrite, fields)
	default:
		return Access{}, false, fmt.Errorf("unknown operation %q", fields[0])
	}
}

func directive(op Op, fields []string) (Access, bool, error) {
	if len(fields) != 1 {
		return Access{}, false, fmt.Errorf("%s takes no argument", op)
	}

	return Access{Op: op}, true, nil
}

func access(op Op, fields []string) (Access, bool, error) {
	if len(fields) != 2 {
		return Access{}, false,
			fmt.Errorf("%s needs exactly one page number", op)
	}

	s := strings.TrimPrefix(strings.ToLower(fields[1]), "0x")

	page, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return Access{}, false, fmt.Errorf("bad page number %q: %w", fields[1], err)
	}

	if page < 0 {
		return Access{}, false, fmt.Errorf("negative page number %q", fields[1])
	}

	return Access{Op: op, Page: paging.Page(page)}, true, nil
}
