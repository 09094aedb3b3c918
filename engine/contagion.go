package engine

import "fmt"

// =============================================================================
// Contagion spread
// =============================================================================
//
// A unit carrying a status effect can pass it to orthogonally-adjacent
// allies at turn_end. Rolls happen in sorted (effect, target-instance-id)
// order so a replay with the same Stream always consumes draws
// identically, never in map-iteration order.

// SpreadContagion attempts to spread every status currently on carrierID to
// its orthogonally-adjacent allies. Each (effect, candidate) pair is one
// Bernoulli draw at cfg.ContagionBaseChance[effect], bumped by
// cfg.ContagionPhalanxBonus when the candidate is in a phalanx. A
// candidate already carrying the effect has its duration refreshed to the
// richer of the two rather than stacking a second instance.
func SpreadContagion(state *BattleState, carrierID string, rng *Stream, cfg MechanicsConfig) {
	carrier := state.Unit(carrierID)
	if carrier == nil || !carrier.Alive() || len(carrier.Statuses) == 0 {
		return
	}

	var allies []*BattleUnit
	for _, n := range OrthogonalNeighbors(carrier.Pos) {
		u := state.UnitAt(n)
		if u != nil && u.Alive() && u.Team == carrier.Team {
			allies = append(allies, u)
		}
	}
	if len(allies) == 0 {
		return
	}

	rolls := make(map[StatusEffect]float64)
	bySource := make(map[StatusEffect]StatusInstance)
	for _, inst := range carrier.Statuses {
		bySource[inst.Effect] = inst
		for _, target := range allies {
			key := StatusEffect(fmt.Sprintf("%s|%s", inst.Effect, target.InstanceID))
			chance := cfg.ContagionBaseChance[inst.Effect]
			if target.InPhalanx {
				chance += cfg.ContagionPhalanxBonus
			}
			rolls[key] = chance
		}
	}

	for _, key := range sortedKeys(rolls) {
		effect, targetID := splitContagionKey(key)
		target := state.Unit(targetID)
		if target == nil || !target.Alive() {
			continue
		}
		if !rng.Bernoulli(rolls[key]) {
			continue
		}

		duration := bySource[effect].Duration - 1
		if duration < 1 {
			duration = 1
		}

		applyOrRefreshStatus(target, effect, duration)
		emit(state, EventContagionSpread, carrierID, targetID, map[string]any{
			"effect":   effect,
			"duration": duration,
		})
	}
}

func applyOrRefreshStatus(u *BattleUnit, effect StatusEffect, duration int) {
	for i := range u.Statuses {
		if u.Statuses[i].Effect == effect {
			if duration > u.Statuses[i].Duration {
				u.Statuses[i].Duration = duration
			}
			return
		}
	}
	u.Statuses = append(u.Statuses, StatusInstance{Effect: effect, Duration: duration})
}

func splitContagionKey(key StatusEffect) (StatusEffect, string) {
	s := string(key)
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			return StatusEffect(s[:i]), s[i+1:]
		}
	}
	return key, ""
}

// TickStatuses decrements every active status's remaining duration by one
// at turn_end, dropping any that reach zero.
func TickStatuses(state *BattleState, unitID string) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() || len(u.Statuses) == 0 {
		return
	}
	kept := u.Statuses[:0]
	for _, inst := range u.Statuses {
		inst.Duration--
		if inst.Duration > 0 {
			kept = append(kept, inst)
		}
	}
	u.Statuses = kept
}
