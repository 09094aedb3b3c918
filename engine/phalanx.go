package engine

// =============================================================================
// Phalanx detection
// =============================================================================

// RecomputePhalanx recomputes inPhalanx for every living unit: a unit is
// inPhalanx when at least PhalanxMinAdjacentAllies living allies are
// orthogonally adjacent. Called at turn_start and whenever an adjacent
// unit dies or moves.
func RecomputePhalanx(state *BattleState, cfg MechanicsConfig) {
	for _, u := range state.AliveUnits() {
		count := 0
		for _, n := range OrthogonalNeighbors(u.Pos) {
			ally := state.UnitAt(n)
			if ally != nil && ally.Team == u.Team {
				count++
			}
		}
		u.InPhalanx = count >= cfg.PhalanxMinAdjacentAllies
	}
}
