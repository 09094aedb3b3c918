package engine

// =============================================================================
// Shared physical-damage application
// =============================================================================
//
// Every physical hit in the engine — the main attack, a riposte, a
// spear-wall counter — goes through the same three steps: reduce the raw
// amount by the target's effective armor, apply the remainder to HP
// (emitting damage and, if lethal, unit_died), then shred the target's
// armor by one. Centralizing this keeps the three callers from
// drifting out of sync on death/shred bookkeeping.

// ApplyPhysicalDamage reduces raw by the target's effective armor (floored
// at 1 damage so attacks are never fully nullified), applies it to
// current HP, and shreds the target's armor. source labels the damage
// event's cause ("attack", "riposte", "intercept", ...).
func ApplyPhysicalDamage(state *BattleState, targetID, sourceID string, raw int, source string, cfg MechanicsConfig) (dealt int, killed bool) {
	target := state.Unit(targetID)
	if target == nil || !target.Alive() {
		return 0, false
	}

	dealt = raw - target.EffectiveArmor()
	if dealt < 1 {
		dealt = 1
	}
	if dealt > target.CurrentHP {
		dealt = target.CurrentHP
	}

	before := target.CurrentHP
	target.CurrentHP -= dealt

	emit(state, EventDamage, sourceID, targetID, map[string]any{
		"amount": dealt,
		"source": source,
		"before": before,
		"after":  target.CurrentHP,
	})

	applyShred(state, targetID, cfg)

	if target.CurrentHP <= 0 {
		killed = true
		emit(state, EventUnitDied, sourceID, targetID, map[string]any{"cause": source})
		target.Engaged = false
		target.EngagedBy = nil
		delete(state.Occupancy, target.Pos.Key())
		removeFromTurnQueue(state, targetID)
		RecomputePhalanx(state, cfg)
		applyDeathResolveShock(state, targetID, cfg)
	}

	return dealt, killed
}

// applyShred adds the per-hit shred and enforces the per-unit cap.
func applyShred(state *BattleState, targetID string, cfg MechanicsConfig) {
	target := state.Unit(targetID)
	if target == nil || !target.Alive() || target.HasCapability(CapShredImmune) {
		return
	}
	limit := target.MaxShred(cfg)
	target.ArmorShred += cfg.ShredPerHit
	if target.ArmorShred > limit {
		target.ArmorShred = limit
	}
}

// removeFromTurnQueue drops a unit from the live turn queue on death
// while leaving it in state.Units for post-battle history.
func removeFromTurnQueue(state *BattleState, id string) {
	for i, qid := range state.TurnQueue {
		if qid == id {
			state.TurnQueue = append(state.TurnQueue[:i], state.TurnQueue[i+1:]...)
			if state.CurrentTurnIndex > i {
				state.CurrentTurnIndex--
			}
			return
		}
	}
}

// applyDeathResolveShock applies the ally-death resolve penalties: the
// adjacent penalty for an ally one step away, the smaller nearby penalty
// for an ally within the configured Manhattan range.
func applyDeathResolveShock(state *BattleState, deadID string, cfg MechanicsConfig) {
	dead := state.Unit(deadID)
	if dead == nil {
		return
	}
	for _, u := range state.AliveUnits() {
		if u.Team != dead.Team || u.InstanceID == deadID {
			continue
		}
		d := ManhattanDistance(u.Pos, dead.Pos)
		switch {
		case d == 1:
			applyResolveDelta(state, u.InstanceID, cfg.ResolveDeathAdjacent, "ally_death")
		case d <= cfg.ResolveDeathNearbyRange:
			applyResolveDelta(state, u.InstanceID, cfg.ResolveDeathNearby, "ally_death")
		}
	}
}
