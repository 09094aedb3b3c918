package engine

import "math"

// =============================================================================
// Charge momentum / spear-wall counter
// =============================================================================

// AccrueMomentum updates a unit's momentum after a movement-phase step.
// Only cavalry accrue momentum; every other unit stays at 0.
func AccrueMomentum(state *BattleState, unitID string, distanceMoved int, cfg MechanicsConfig) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() || !u.HasCapability(CapCavalry) {
		return
	}
	m := float64(distanceMoved) * cfg.ChargeMomentumPerDistance
	if m > 1.0 {
		m = 1.0
	}
	if m < 0 {
		m = 0
	}

	if u.Momentum == 0 && m > 0 {
		emit(state, EventChargeStarted, unitID, "", map[string]any{"momentum": m})
	}
	u.Momentum = m
}

// ChargeBonusATK scales an attacker's ATK by (1 + momentum), applied
// before armor, on the first attack after movement.
func ChargeBonusATK(baseATK int, momentum float64) int {
	return int(math.Floor(float64(baseATK) * (1 + momentum)))
}

// SpearWallFacingIncoming reports whether defender is oriented to meet a
// charge arriving from attacker's position — the same front-arc test
// used by riposte, read from the defender's point of view.
func SpearWallFacingIncoming(defender *BattleUnit, attackerPos Position) bool {
	return ArcFor(defender.Facing, attackerPos, defender.Pos) == ArcFront
}

// ApplySpearWallCounter checks and resolves the spear-wall counter: if
// the attacker carries positive momentum and the defender both carries
// CapSpearWall and faces the incoming charge, the defender strikes first
// for floor(defender.atk * 0.5) physical damage, the attacker's momentum
// resets to 0, and chargeCountered is set. Returns whether the counter
// fired and whether it killed the attacker (in which case the caller
// must not execute the outer attack).
func ApplySpearWallCounter(state BattleState, attackerID, defenderID string, cfg MechanicsConfig) (BattleState, bool, bool) {
	ns := state.Clone()

	attacker := ns.Unit(attackerID)
	defender := ns.Unit(defenderID)
	if attacker == nil || defender == nil || !defender.Alive() {
		return ns, false, false
	}
	if attacker.Momentum <= 0 || !defender.HasCapability(CapSpearWall) {
		return ns, false, false
	}
	if !SpearWallFacingIncoming(defender, attacker.Pos) {
		return ns, false, false
	}

	emit(&ns, EventInterceptTriggered, defenderID, attackerID, map[string]any{
		"reason": "spear_wall",
	})

	raw := int(float64(defender.ATK) * cfg.CounterDamageFrac)
	_, killed := ApplyPhysicalDamage(&ns, attackerID, defenderID, raw, "intercept", cfg)

	if atk := ns.Unit(attackerID); atk != nil {
		atk.Momentum = 0
		atk.ChargeCountered = true
	}

	return ns, true, killed
}
