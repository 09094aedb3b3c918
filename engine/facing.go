package engine

// =============================================================================
// Facing / flanking processor
// =============================================================================

// FacingResult carries the computed arc forward to the processors that
// depend on it (riposte eligibility, charge bonus sequencing).
type FacingResult struct {
	Arc Arc
}

// ApplyFacing rotates the attacker to face the defender (emitting
// facing_rotated only on an actual change), computes the attack arc from
// the defender's facing and the attacker's bearing, reports the arc's
// damage multiplier in flanking_applied, and applies any resolve cost for
// the struck unit. It does not apply damage itself; ResolveAttack
// (attack.go) consumes FacingResult.Arc to scale the raw hit.
func ApplyFacing(state BattleState, attackerID, defenderID string, cfg MechanicsConfig) (BattleState, FacingResult) {
	ns := state.Clone()

	attacker := ns.Unit(attackerID)
	defender := ns.Unit(defenderID)
	if attacker == nil || defender == nil {
		return ns, FacingResult{Arc: ArcFront}
	}

	newFacing := DirectionTo(attacker.Pos, defender.Pos)
	if newFacing != attacker.Facing {
		old := attacker.Facing
		attacker.Facing = newFacing
		emit(&ns, EventFacingRotated, attackerID, "", map[string]any{
			"from": string(old),
			"to":   string(newFacing),
		})
	}

	arc := ArcFor(defender.Facing, attacker.Pos, defender.Pos)

	mult := cfg.FrontDamageMult
	resolveDelta := 0
	switch arc {
	case ArcFlank:
		mult = cfg.FlankDamageMult
		resolveDelta = cfg.FlankResolveDelta
	case ArcRear:
		mult = cfg.RearDamageMult
		resolveDelta = cfg.RearResolveDelta
	}

	emit(&ns, EventFlankingApplied, attackerID, defenderID, map[string]any{
		"arc":      string(arc),
		"modifier": mult,
	})

	if resolveDelta != 0 {
		applyResolveDelta(&ns, defenderID, resolveDelta, "flanking")
	}

	return ns, FacingResult{Arc: arc}
}

// applyResolveDelta is the shared resolve-mutation helper used by facing,
// ally-death shock, and turn_start regeneration. It clamps to
// [0, maxResolve] and emits resolve_changed.
func applyResolveDelta(state *BattleState, unitID string, delta int, source string) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() {
		return
	}
	before := u.Resolve
	u.Resolve += delta
	if u.Resolve < 0 {
		u.Resolve = 0
	}
	if u.Resolve > u.MaxResolve {
		u.Resolve = u.MaxResolve
	}
	if u.Resolve == before {
		return
	}
	emit(state, EventResolveChanged, unitID, "", map[string]any{
		"delta":  u.Resolve - before,
		"source": source,
	})
}
