// Package progress reports how far a long per-pixel pass has come. Reporting
// is observational only.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// DefaultEvery is how many increments a Counter lets pass between display
// updates.
const DefaultEvery = 5000

// Reporter opens one tracking session per pass.
type Reporter interface {
	Start(total uint64, label string) Tracker
}

// Tracker is a single session. Increment may be called from any goroutine.
type Tracker interface {
	Increment()
	Finish(message string)
}

// Display renders a session. SetPosition may be called concurrently.
type Display interface {
	SetPosition(n uint64)
	Finish(message string)
}

// Counter is a Tracker that counts every increment atomically and forwards the
// position to a Display only every Every increments.
type Counter struct {
	Every   uint64
	display Display
	n       atomic.Uint64
}

func NewCounter(d Display, every uint64) *Counter {
	if every == 0 {
		every = DefaultEvery
	}
	return &Counter{Every: every, display: d}
}

func (c *Counter) Increment() {
	if n := c.n.Add(1); n%c.Every == 0 {
		c.display.SetPosition(n)
	}
}

func (c *Counter) Finish(message string) {
	c.display.SetPosition(c.n.Load())
	c.display.Finish(message)
}

// Count returns the number of increments so far.
func (c *Counter) Count() uint64 {
	return c.n.Load()
}

// New returns the reporter called kind: "bar" draws to w, "log" writes slog
// records, "none" discards everything.
func New(kind string, w io.Writer) (Reporter, error) {
	switch kind {
	case "bar":
		return &Bar{Writer: w}, nil
	case "log":
		return &Log{Logger: slog.Default()}, nil
	case "none", "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown progress reporter %q", kind)
	}
}

type Nop struct{}

func (Nop) Start(uint64, string) Tracker { return nopTracker{} }

type nopTracker struct{}

func (nopTracker) Increment()    {}
func (nopTracker) Finish(string) {}
