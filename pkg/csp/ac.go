package csp

// arc is one directed arc (x -> y) together with the binary constraint
// enforcing it, used by both AC-3 and AC-4's worklists.
type arc struct {
	x, y int
	c    Binary
}

// binaryArcs returns every directed arc derivable from the binary
// constraints in cs: each binary constraint c contributes (c.Var1() ->
// c.Var2()) via c itself and (c.Var2() -> c.Var1()) via c.Reverse().
// The scope length is checked as well as the interface: a unary
// LinearConstraint (or an enumerated constraint over some other arity)
// still satisfies Binary, but has no reversible arc to offer, and
// Reverse would panic on it. Constraints of any other arity contribute
// no arcs.
func binaryArcs(cs []Constraint) []arc {
	var arcs []arc
	for _, c := range cs {
		b, ok := c.(Binary)
		if !ok || len(b.Scope()) != 2 {
			continue
		}
		arcs = append(arcs, arc{x: b.Var1(), y: b.Var2(), c: b})
		arcs = append(arcs, arc{x: b.Var2(), y: b.Var1(), c: b.Reverse()})
	}
	return arcs
}

// hasSupportBinary reports whether some b in y's live domain at level
// keeps c feasible with x=a, y=b.
func hasSupportBinary(store *variableTable, c Binary, xID, a, yID, level int) bool {
	for _, b := range store.get(yID).Dom(level) {
		if c.IsFeasible(map[int]int{xID: a, yID: b}) {
			return true
		}
	}
	return false
}

// revise removes every value from x's live domain at level that has no
// support in y's live domain at the same level under constraint c; both
// read and write happen at that single level. Returns whether x's
// domain changed, and whether x's domain is still non-empty.
func revise(store *variableTable, c Binary, xID, yID, level int) (changed, ok bool) {
	xv := store.get(xID)
	for _, a := range xv.Dom(level) {
		if !hasSupportBinary(store, c, xID, a, yID, level) {
			xv.Remove(a, level)
			changed = true
		}
	}
	return changed, xv.Size(level) > 0
}

// ac3 enforces arc consistency over every binary constraint at the given
// level: a worklist
// of directed arcs is processed until empty; whenever revising (x, y)
// removes a value from x, every arc (z, x) for z != y is re-enqueued,
// since x's shrunk domain may invalidate support previously found for z.
// Returns false if some domain is emptied (contradiction). Called with
// level 0 as root preprocessing, or with the just-pushed level as MAC3
// look-ahead.
func ac3(store *variableTable, cs []Constraint, level int) bool {
	arcs := binaryArcs(cs)

	type queued struct {
		x, y int
		c    Binary
	}
	var queue []queued
	incoming := make(map[int][]queued) // incoming[y] = arcs (z -> y)
	for _, a := range arcs {
		q := queued{a.x, a.y, a.c}
		queue = append(queue, q)
		incoming[a.y] = append(incoming[a.y], q)
	}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		changed, feasible := revise(store, q.c, q.x, q.y, level)
		if !feasible {
			return false
		}
		if changed {
			for _, pred := range incoming[q.x] {
				if pred.x != q.y {
					queue = append(queue, pred)
				}
			}
		}
	}
	return true
}

// ac4 enforces arc consistency via the counter/supporter scheme: for
// every arc (x, y) and every x-value a, counters[arc][a] holds the
// number of y-values currently supporting a; supporters[(y,b)] holds
// every (x,a) pair that b supports. A value whose counter hits zero is
// removed and enqueued so its own supporters can be decremented in
// turn. Both initialization and removal operate at the single level
// parameter.
func ac4(store *variableTable, cs []Constraint, level int) bool {
	arcs := binaryArcs(cs)

	type pair struct{ varID, val int }
	// counters[arcIdx][a] counts y-values supporting x=a on that arc;
	// indexed by position rather than the arc struct itself, since arc
	// embeds an interface and so cannot be used as a map key once two
	// distinct Binary values happen to be uncomparable.
	counters := make([]map[int]int, len(arcs))
	type supportEntry struct {
		arcIdx int
		val    int
	}
	supporters := make(map[pair][]supportEntry) // (y,b) -> (arcIdx, a) it supports

	for i, a := range arcs {
		xv := store.get(a.x)
		yv := store.get(a.y)
		counters[i] = make(map[int]int)
		for _, av := range xv.Dom(level) {
			count := 0
			for _, bv := range yv.Dom(level) {
				if a.c.IsFeasible(map[int]int{a.x: av, a.y: bv}) {
					count++
					key := pair{a.y, bv}
					supporters[key] = append(supporters[key], supportEntry{i, av})
				}
			}
			counters[i][av] = count
		}
	}

	removed := make(map[pair]bool)
	var queue []pair

	enqueueRemoval := func(varID, val int) bool {
		key := pair{varID, val}
		if removed[key] {
			return true
		}
		v := store.get(varID)
		if !v.hasLive(val, level) {
			return true
		}
		v.Remove(val, level)
		removed[key] = true
		if v.Size(level) == 0 {
			return false
		}
		queue = append(queue, key)
		return true
	}

	for i, a := range arcs {
		xv := store.get(a.x)
		for _, av := range xv.Dom(level) {
			if counters[i][av] == 0 {
				if !enqueueRemoval(a.x, av) {
					return false
				}
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, supported := range supporters[p] {
			c := counters[supported.arcIdx]
			c[supported.val]--
			if c[supported.val] == 0 {
				xID := arcs[supported.arcIdx].x
				if !enqueueRemoval(xID, supported.val) {
					return false
				}
			}
		}
	}
	return true
}
