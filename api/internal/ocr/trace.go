package ocr

import (
	"fmt"
	"strings"
)

// Trace is the ordered human-readable record of orchestration decisions for a
// single request. Append-only, built fresh per request, never persisted.
type Trace struct {
	lines []string
}

func (t *Trace) Add(line string) {
	t.lines = append(t.lines, line)
}

func (t *Trace) Addf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

func (t *Trace) String() string {
	return strings.Join(t.lines, "\n")
}
