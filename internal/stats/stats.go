// Package stats holds the atomic solve-statistics counters maintained
// across one search run: atomic fields so the counters stay cheap to
// bump on every search-tree node, with a nil-safe monitor so a solve
// run without a monitor attached pays nothing.
package stats

import (
	"sync/atomic"
	"time"
)

// Counters holds the running totals for a single solve. All fields are
// accessed through atomic operations so a caller may poll Snapshot
// concurrently with an in-progress solve for progress reporting.
type Counters struct {
	NodesExplored    atomic.Int64
	Backtracks       atomic.Int64
	SolutionsFound   atomic.Int64
	PropagationCalls atomic.Int64
	Contradictions   atomic.Int64
	SearchTimeNanos  atomic.Int64
	MaxDepth         atomic.Int64
}

// Snapshot is an immutable point-in-time read of Counters, the shape
// handed back to callers (e.g. through csp.CSP.Stats) rather than the
// live atomic struct.
type Snapshot struct {
	NodesExplored    int64
	Backtracks       int64
	SolutionsFound   int64
	PropagationCalls int64
	Contradictions   int64
	SearchTime       time.Duration
	MaxDepth         int64
}

// Monitor wraps a Counters pointer behind nil-safe methods: every method
// below tolerates a nil *Monitor without a nil-pointer panic. csp.CSP
// itself always allocates a Monitor for each solve.
type Monitor struct {
	c *Counters
}

// NewMonitor allocates a Monitor ready to record a fresh solve.
func NewMonitor() *Monitor {
	return &Monitor{c: &Counters{}}
}

func (m *Monitor) NodeExplored() {
	if m == nil {
		return
	}
	m.c.NodesExplored.Add(1)
}

func (m *Monitor) Backtrack() {
	if m == nil {
		return
	}
	m.c.Backtracks.Add(1)
}

func (m *Monitor) SolutionFound() {
	if m == nil {
		return
	}
	m.c.SolutionsFound.Add(1)
}

func (m *Monitor) Propagation() {
	if m == nil {
		return
	}
	m.c.PropagationCalls.Add(1)
}

func (m *Monitor) Contradiction() {
	if m == nil {
		return
	}
	m.c.Contradictions.Add(1)
}

func (m *Monitor) Depth(d int) {
	if m == nil {
		return
	}
	for {
		cur := m.c.MaxDepth.Load()
		if int64(d) <= cur || m.c.MaxDepth.CompareAndSwap(cur, int64(d)) {
			return
		}
	}
}

func (m *Monitor) AddSearchTime(d time.Duration) {
	if m == nil {
		return
	}
	m.c.SearchTimeNanos.Add(int64(d))
}

// Snapshot returns a consistent-enough point-in-time read of the
// counters. Safe to call on a nil Monitor; returns the zero Snapshot.
func (m *Monitor) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		NodesExplored:    m.c.NodesExplored.Load(),
		Backtracks:       m.c.Backtracks.Load(),
		SolutionsFound:   m.c.SolutionsFound.Load(),
		PropagationCalls: m.c.PropagationCalls.Load(),
		Contradictions:   m.c.Contradictions.Load(),
		SearchTime:       time.Duration(m.c.SearchTimeNanos.Load()),
		MaxDepth:         m.c.MaxDepth.Load(),
	}
}
