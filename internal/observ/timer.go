// Package observ provides the lightweight phase timer behind the CLI
// --timings flag.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed pipeline step (extract, validate, encode, diff).
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phase durations in completion order. Not safe for
// concurrent use; a timer belongs to a single command invocation.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts timing a phase and returns the function that ends it,
// recording the elapsed time under name with an optional note.
func (t *Timer) Begin(name string) func(note string) {
	start := time.Now()
	return func(note string) {
		t.phases = append(t.phases, Phase{Name: name, Dur: time.Since(start), Note: note})
	}
}

// Phases returns the recorded phases in completion order.
func (t *Timer) Phases() []Phase { return t.phases }

// Total sums the recorded phase durations.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	return total
}

// Summary renders the recorded phases as a human-readable block.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range t.phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, millis(p.Dur))
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", millis(t.Total()))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
