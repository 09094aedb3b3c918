package engine

import "sort"

// =============================================================================
// Engagement / zones of control
// =============================================================================

// RecomputeEngagement updates engaged/engagedBy for every living unit
// from scratch, emitting engagement_changed only for units whose engaged
// state or engaging set actually changed.
func RecomputeEngagement(state *BattleState) {
	prevEngaged := make(map[string]bool)
	prevBy := make(map[string][]string)
	for _, u := range state.AliveUnits() {
		prevEngaged[u.InstanceID] = u.Engaged
		prevBy[u.InstanceID] = append([]string(nil), u.EngagedBy...)
	}

	for _, u := range state.AliveUnits() {
		var by []string
		for _, n := range OrthogonalNeighbors(u.Pos) {
			enemy := state.UnitAt(n)
			if enemy != nil && enemy.Team != u.Team {
				by = append(by, enemy.InstanceID)
			}
		}
		sort.Strings(by)
		u.Engaged = len(by) > 0
		u.EngagedBy = by
	}

	for _, u := range state.AliveUnits() {
		if u.Engaged != prevEngaged[u.InstanceID] || !stringSliceEqual(u.EngagedBy, prevBy[u.InstanceID]) {
			emit(state, EventEngagementChanged, u.InstanceID, "", map[string]any{
				"engaged":   u.Engaged,
				"engagedBy": u.EngagedBy,
			})
		}
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CheckHardIntercept implements the cavalry-vs-spearman hard intercept:
// a cavalry unit stepping within Manhattan distance 2 of an enemy
// spearman that is facing the passing cell triggers the same
// counter-resolution as the spear-wall counter, ends the move,
// and emits intercept_triggered. Returns the updated state and whether
// an intercept fired (the caller must stop the move when it did).
func CheckHardIntercept(state BattleState, moverID string, stepPos Position, cfg MechanicsConfig) (BattleState, bool) {
	mover := state.Unit(moverID)
	if mover == nil || !mover.HasCapability(CapCavalry) {
		return state, false
	}

	for _, u := range state.AliveUnits() {
		if u.Team == mover.Team || !u.HasCapability(CapSpearman) {
			continue
		}
		if ManhattanDistance(u.Pos, stepPos) > 2 {
			continue
		}
		if ArcFor(u.Facing, stepPos, u.Pos) != ArcFront {
			continue
		}

		ns := state.Clone()
		emit(&ns, EventInterceptTriggered, u.InstanceID, moverID, map[string]any{"reason": "hard_intercept"})
		raw := int(float64(u.ATK) * cfg.CounterDamageFrac)
		ApplyPhysicalDamage(&ns, moverID, u.InstanceID, raw, "intercept", cfg)
		if m := ns.Unit(moverID); m != nil {
			m.Momentum = 0
			m.ChargeCountered = true
		}
		return ns, true
	}

	return state, false
}

// CheckSoftIntercept marks that a mover has stepped into an enemy's zone
// of control. It never stops movement: it is a bookkeeping
// marker only, subsumed by the RecomputeEngagement call once the move
// commits. It is kept as a named step so the per-step check order in
// ApplyMovement stays explicit.
func CheckSoftIntercept(state *BattleState, moverID string, stepPos Position) bool {
	for _, u := range state.AliveUnits() {
		mover := state.Unit(moverID)
		if mover == nil || u.Team == mover.Team {
			continue
		}
		if IsOrthogonallyAdjacent(u.Pos, stepPos) {
			return true
		}
	}
	return false
}
