package engine

import "container/heap"

// =============================================================================
// Movement
// =============================================================================
//
// Shortest path uses a heap-based Dijkstra over the grid with uniform
// per-step cost. Dijkstra rather than plain BFS so the cost model can
// later grow terrain weights without reshaping the search.

type pathItem struct {
	pos   Position
	cost  int
	index int
}

type pathHeap []*pathItem

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	item := x.(*pathItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// ShortestPath finds the shortest orthogonal path from mover's position
// to dest, treating every other alive unit's cell as impassable except
// dest itself, which the path may end on even when occupied. Returns
// the path excluding the start cell but including dest, or nil if dest
// is unreachable.
func ShortestPath(state *BattleState, mover *BattleUnit, dest Position) []Position {
	if !dest.InBounds() {
		return nil
	}

	blocked := make(map[string]bool)
	for _, u := range state.AliveUnits() {
		if u.InstanceID == mover.InstanceID {
			continue
		}
		blocked[u.Pos.Key()] = true
	}

	start := mover.Pos
	if start == dest {
		return nil
	}

	dist := map[string]int{start.Key(): 0}
	prev := map[string]Position{}
	visited := map[string]bool{}

	pq := &pathHeap{{pos: start, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*pathItem)
		if visited[cur.pos.Key()] {
			continue
		}
		visited[cur.pos.Key()] = true

		if cur.pos == dest {
			break
		}

		for _, n := range OrthogonalNeighbors(cur.pos) {
			if blocked[n.Key()] && n != dest {
				continue
			}
			nd := cur.cost + 1
			if existing, ok := dist[n.Key()]; !ok || nd < existing {
				dist[n.Key()] = nd
				prev[n.Key()] = cur.pos
				heap.Push(pq, &pathItem{pos: n, cost: nd})
			}
		}
	}

	if _, ok := dist[dest.Key()]; !ok {
		return nil
	}

	var path []Position
	for at := dest; at != start; at = prev[at.Key()] {
		path = append([]Position{at}, path...)
	}
	return path
}

// ApplyMovement resolves a unit's movement-phase action: find the
// shortest path to dest, truncate at remaining speed, step through
// applying hard-intercept then soft-intercept checks, commit, then
// refresh occupancy, engagement, phalanx, and cavalry momentum.
func ApplyMovement(state BattleState, unitID string, dest Position, cfg MechanicsConfig) BattleState {
	ns := state.Clone()

	mover := ns.Unit(unitID)
	if mover == nil || !mover.Alive() {
		return ns
	}

	if mover.IsRouting {
		dest = RetreatDestination(mover)
	}

	if dest == mover.Pos {
		return ns
	}

	path := ShortestPath(&ns, mover, dest)
	if path == nil {
		diagnosticEvent(&ns, DiagnosticSkip, PhaseMovement, unitID, "no_path")
		return ns
	}

	if len(path) > mover.Speed {
		path = path[:mover.Speed]
	}
	if len(path) == 0 {
		return ns
	}

	startPos := mover.Pos
	distanceMoved := 0

	for _, step := range path {
		// The path search lets a search frontier reach an occupied
		// destination cell (so "move toward X" paths resolve); the
		// commit loop must still stop short of it.
		if ns.UnitAt(step) != nil {
			break
		}
		if hs, intercepted := CheckHardIntercept(ns, unitID, step, cfg); intercepted {
			ns = hs
			break
		}
		CheckSoftIntercept(&ns, unitID, step)

		mover = ns.Unit(unitID)
		if mover == nil || !mover.Alive() {
			break
		}
		mover.Pos = step
		distanceMoved++
	}

	ns.RebuildOccupancy()

	if distanceMoved > 0 {
		if mover := ns.Unit(unitID); mover != nil {
			emit(&ns, EventMove, unitID, "", map[string]any{
				"from":     startPos,
				"to":       mover.Pos,
				"distance": distanceMoved,
			})
		}
	}

	RecomputeEngagement(&ns)
	RecomputePhalanx(&ns, cfg)
	AccrueMomentum(&ns, unitID, distanceMoved, cfg)

	return ns
}
