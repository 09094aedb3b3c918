package engine

// =============================================================================
// Resolve / routing / rally / crumble
// =============================================================================

// ResolveTick runs the turn_start steady/routing/rally/crumble state
// machine against the unit's resolve as carried in from the prior turn,
// then regenerates resolve for any unit that is (still) steady:
//
//  1. steady -> routing when resolve <= 0 and faction is human.
//  2. steady -> dead (crumble) when resolve <= 0 and faction is undead.
//  3. routing -> steady ("rally") when resolve >= RallyThreshold.
//  4. Non-routing units regenerate resolve (+base, +phalanx bonus),
//     capped at maxResolve.
//
// The threshold checks run against the pre-regen value: a unit that
// enters its turn already at the crumble/rout floor transitions
// immediately, rather than being saved by the same
// tick's regeneration. Routing units never regenerate.
func ResolveTick(state *BattleState, unitID string, cfg MechanicsConfig) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() {
		return
	}

	switch {
	case !u.IsRouting && u.Resolve <= cfg.RoutingThreshold && u.Faction == FactionHuman:
		u.IsRouting = true
		emit(state, EventRoutingStarted, unitID, "", nil)

	case !u.IsRouting && u.Resolve <= cfg.RoutingThreshold && u.Faction == FactionUndead:
		crumble(state, unitID, cfg)
		return

	case u.IsRouting && u.Resolve >= cfg.RallyThreshold:
		u.IsRouting = false
		emit(state, EventUnitRallied, unitID, "", nil)
	}

	u = state.Unit(unitID)
	if u == nil || !u.Alive() || u.IsRouting {
		return
	}

	regen := cfg.ResolveRegenBase
	if u.InPhalanx {
		regen += cfg.ResolveRegenPhalanxBonus
	}
	applyResolveDelta(state, unitID, regen, "regen")
}

// crumble is the undead analogue of routing: immediate death in place,
// with no routing_started event.
func crumble(state *BattleState, unitID string, cfg MechanicsConfig) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() {
		return
	}
	u.CurrentHP = 0
	emit(state, EventUnitDied, unitID, "", map[string]any{"cause": "crumble"})
	u.Engaged = false
	u.EngagedBy = nil
	delete(state.Occupancy, u.Pos.Key())
	removeFromTurnQueue(state, unitID)
	RecomputePhalanx(state, cfg)
	applyDeathResolveShock(state, unitID, cfg)
}

// RetreatDestination returns the row a routing unit is forced toward in
// the movement phase: its own team's deployment edge.
func RetreatDestination(u *BattleUnit) Position {
	dest := u.Pos
	if u.Team == TeamPlayer {
		dest.Y = 0
	} else {
		dest.Y = GridHeight - 1
	}
	return dest
}
