package engine

// =============================================================================
// Riposte
// =============================================================================

// RiposteEligible reports whether defender may riposte against attacker
// given the already-computed attack arc: defender must be alive, not
// routing, not stunned, hold a charge, and the attacker must be in the
// defender's front arc.
func RiposteEligible(defender *BattleUnit, arc Arc) bool {
	if defender == nil || !defender.Alive() {
		return false
	}
	if defender.IsRouting || defender.Stunned {
		return false
	}
	if defender.RiposteCharges <= 0 {
		return false
	}
	return arc == ArcFront
}

// RiposteChance computes the single, independent riposte roll chance:
// clamp(0.5 + (defenderInit - attackerInit)/10 * 0.5, 0, 1).
func RiposteChance(defenderInit, attackerInit int) float64 {
	p := 0.5 + float64(defenderInit-attackerInit)/10*0.5
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ApplyRiposte resolves a possible riposte after the main attack has
// landed (or missed — eligibility is arc-gated, not hit-gated). On
// success it consumes one charge and deals floor(defender.atk * 0.5)
// physical damage against the attacker, which may kill the attacker.
func ApplyRiposte(state BattleState, attackerID, defenderID string, arc Arc, rng *Stream, cfg MechanicsConfig) BattleState {
	ns := state.Clone()

	defender := ns.Unit(defenderID)
	attacker := ns.Unit(attackerID)
	if defender == nil || attacker == nil || !attacker.Alive() {
		return ns
	}
	if !RiposteEligible(defender, arc) {
		return ns
	}

	chance := RiposteChance(defender.Initiative, attacker.Initiative)
	if !rng.Bernoulli(chance) {
		return ns
	}

	defender.RiposteCharges--
	raw := int(float64(defender.ATK) * cfg.RiposteDamageFrac)

	emit(&ns, EventRiposteTriggered, defenderID, attackerID, map[string]any{
		"chance":           chance,
		"chargesRemaining": defender.RiposteCharges,
	})

	ApplyPhysicalDamage(&ns, attackerID, defenderID, raw, "riposte", cfg)

	return ns
}

// ResetRiposteCharges restores a unit's riposte charges to 1 at
// turn_start, emitting riposte_reset only when the value actually
// changes.
func ResetRiposteCharges(state *BattleState, unitID string) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() {
		return
	}
	if u.RiposteCharges == 1 {
		return
	}
	u.RiposteCharges = 1
	emit(state, EventRiposteReset, unitID, "", nil)
}
