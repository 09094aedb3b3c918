package engine

import "sort"

// =============================================================================
// Per-unit phase pipeline
// =============================================================================
//
// RunTurn drives one unit through the fixed seven-phase pipeline in
// PhaseOrder. Every phase stamps state.Phase before emitting its events,
// so the log always attributes an event to the phase that produced it.

// RunTurn executes unitID's full turn: turn_start, ai_decision, movement,
// pre_attack, attack, post_attack, turn_end, in that order.
func RunTurn(state BattleState, unitID string, oracle AIOracle, abilities AbilitySystem, rng *Stream, cfg MechanicsConfig) BattleState {
	ns := state.Clone()

	u := ns.Unit(unitID)
	if u == nil || !u.Alive() {
		return ns
	}

	ns.Phase = PhaseTurnStart
	runTurnStart(&ns, unitID, cfg)

	u = ns.Unit(unitID)
	if u == nil || !u.Alive() {
		return ns
	}

	ns.Phase = PhaseAIDecision
	action := oracle.Decide(ns, unitID, rng)
	if u.IsRouting {
		action = BattleAction{Type: ActionMove, Dest: RetreatDestination(u)}
	}

	ns.Phase = PhaseMovement
	if action.Type == ActionMove {
		ns = ApplyMovement(ns, unitID, action.Dest, cfg)
	}

	u = ns.Unit(unitID)
	if u == nil || !u.Alive() {
		return ns
	}

	ns.Phase = PhasePreAttack
	if action.Type == ActionAbility {
		if next, _, err := abilities.Apply(ns, action.AbilityID, unitID, action.TargetID, rng); err == nil {
			ns = next
		} else {
			diagnosticEvent(&ns, DiagnosticDeclined, PhasePreAttack, unitID, "ability_failed")
		}
	}

	u = ns.Unit(unitID)
	if u == nil || !u.Alive() {
		return ns
	}

	ns.Phase = PhaseAttack
	if action.Type == ActionAttack && action.TargetID != "" {
		ns = ResolveAttack(ns, unitID, action.TargetID, rng, cfg)
	}

	// post_attack is reserved for effect cleanups; for now that is the
	// status tick-down hook.
	u = ns.Unit(unitID)
	if u != nil && u.Alive() {
		ns.Phase = PhasePostAttack
		TickStatuses(&ns, unitID)
	}

	u = ns.Unit(unitID)
	if u != nil && u.Alive() {
		ns.Phase = PhaseTurnEnd
		runTurnEnd(&ns, unitID, rng, cfg)
	}

	ns.Phase = PhaseNone
	return ns
}

func runTurnStart(state *BattleState, unitID string, cfg MechanicsConfig) {
	emit(state, EventTurnStart, unitID, "", nil)
	ResetRiposteCharges(state, unitID)
	RecomputePhalanx(state, cfg)
	ResolveTick(state, unitID, cfg)
	AuraPulse(state, unitID, cfg)
}

// runTurnEnd covers the turn_end responsibilities: contagion spread,
// armor-shred decay, ability-cooldown tick.
func runTurnEnd(state *BattleState, unitID string, rng *Stream, cfg MechanicsConfig) {
	SpreadContagion(state, unitID, rng, cfg)
	DecayShred(state, unitID, cfg)
	tickCooldowns(state, unitID)
	emit(state, EventTurnEnd, unitID, "", nil)
}

// tickCooldowns decrements every ability cooldown the unit is tracking by
// one, floored at 0, and clears entries that reach 0. Storage lives on
// BattleState.Cooldowns.
func tickCooldowns(state *BattleState, unitID string) {
	abilities, ok := state.Cooldowns[unitID]
	if !ok || len(abilities) == 0 {
		return
	}

	ids := make([]string, 0, len(abilities))
	for id := range abilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	changed := false
	for _, id := range ids {
		if abilities[id] <= 0 {
			continue
		}
		abilities[id]--
		changed = true
		if abilities[id] == 0 {
			delete(abilities, id)
		}
	}
	if changed {
		emit(state, EventCooldownTicked, unitID, "", map[string]any{"unitId": unitID})
	}
}
