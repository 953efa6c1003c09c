package stats

import (
	"testing"
	"time"
)

func TestMonitorAccumulatesCounters(t *testing.T) {
	m := NewMonitor()
	m.NodeExplored()
	m.NodeExplored()
	m.Backtrack()
	m.SolutionFound()
	m.Propagation()
	m.Contradiction()
	m.Depth(3)
	m.Depth(1) // lower depth must not overwrite the max
	m.AddSearchTime(2 * time.Second)

	snap := m.Snapshot()
	if snap.NodesExplored != 2 {
		t.Errorf("NodesExplored = %d, want 2", snap.NodesExplored)
	}
	if snap.Backtracks != 1 {
		t.Errorf("Backtracks = %d, want 1", snap.Backtracks)
	}
	if snap.SolutionsFound != 1 {
		t.Errorf("SolutionsFound = %d, want 1", snap.SolutionsFound)
	}
	if snap.PropagationCalls != 1 {
		t.Errorf("PropagationCalls = %d, want 1", snap.PropagationCalls)
	}
	if snap.Contradictions != 1 {
		t.Errorf("Contradictions = %d, want 1", snap.Contradictions)
	}
	if snap.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", snap.MaxDepth)
	}
	if snap.SearchTime != 2*time.Second {
		t.Errorf("SearchTime = %v, want 2s", snap.SearchTime)
	}
}

func TestNilMonitorIsSafe(t *testing.T) {
	var m *Monitor
	m.NodeExplored()
	m.Backtrack()
	m.SolutionFound()
	m.Propagation()
	m.Contradiction()
	m.Depth(5)
	m.AddSearchTime(time.Second)

	if snap := m.Snapshot(); snap != (Snapshot{}) {
		t.Errorf("expected a nil monitor to snapshot to the zero value, got %+v", snap)
	}
}
