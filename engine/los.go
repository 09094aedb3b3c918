package engine

// =============================================================================
// Line of sight: direct & arc fire
// =============================================================================

// AttackDistance is the king-move (8-direction) distance used for range
// and line-of-sight checks, distinct from the orthogonal distance used by
// movement pathfinding.
func AttackDistance(a, b Position) int {
	return ChebyshevDistance(a, b)
}

// LOSResult is the outcome of a line-of-sight check for a ranged attack.
type LOSResult struct {
	Clear        bool
	Reason       string // set when !Clear: "blocked" or "arc_fire_too_close"
	BlockedBy    string
	AccuracyMult float64
	DodgeBonus   float64
}

// ResolveLineOfSight implements direct fire, arc fire, and partial cover
// for an attack at distance > 1. Arc-fire and siege units are declined
// with "arc_fire_too_close" below ArcFireMinRange; for every other unit,
// adjacent attacks (distance <= 1) always have line of sight and incur no
// cover bonus.
func ResolveLineOfSight(state *BattleState, attacker, target *BattleUnit, cfg MechanicsConfig) LOSResult {
	dist := AttackDistance(attacker.Pos, target.Pos)

	isArc := attacker.HasCapability(CapArcFire) || attacker.HasCapability(CapSiege)

	if isArc {
		if dist < cfg.ArcFireMinRange {
			return LOSResult{Clear: false, Reason: "arc_fire_too_close"}
		}
		return LOSResult{
			Clear:        true,
			AccuracyMult: cfg.ArcFireAccuracyMult,
			DodgeBonus:   partialCoverBonus(state, attacker.Pos, target.Pos, cfg),
		}
	}

	if dist <= 1 {
		return LOSResult{Clear: true, AccuracyMult: 1.0}
	}

	if attacker.HasCapability(CapIgnoreLOS) {
		return LOSResult{
			Clear:        true,
			AccuracyMult: 1.0,
			DodgeBonus:   partialCoverBonus(state, attacker.Pos, target.Pos, cfg),
		}
	}

	for _, cell := range BresenhamLine(attacker.Pos, target.Pos) {
		if blocker := state.UnitAt(cell); blocker != nil {
			return LOSResult{Clear: false, Reason: "blocked", BlockedBy: blocker.InstanceID}
		}
	}

	return LOSResult{
		Clear:        true,
		AccuracyMult: 1.0,
		DodgeBonus:   partialCoverBonus(state, attacker.Pos, target.Pos, cfg),
	}
}

// partialCoverBonus grants a dodge bonus when the sight line clips the
// edge of an empty intermediate cell rather than passing through its
// center.
func partialCoverBonus(state *BattleState, from, to Position, cfg MechanicsConfig) float64 {
	for _, cell := range BresenhamLine(from, to) {
		off := PerpendicularOffset(from, to, cell)
		if off > cfg.PartialCoverLo && off < cfg.PartialCoverHi && state.UnitAt(cell) == nil {
			return cfg.PartialCoverDodgeBonus
		}
	}
	return 0
}
