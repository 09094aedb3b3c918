package engine

// =============================================================================
// Armor shred decay
// =============================================================================
//
// Per-hit accumulation and the shred cap live in damage.go (ApplyPhysicalDamage
// / applyShred), since every physical-damage path needs them. This file is
// the turn_end decay half of the mechanic.

// DecayShred reduces a unit's armorShred by ShredDecayPerTurnEnd (never
// below 0) at turn_end. Undead units, dead units, and a disabled decay
// config (ShredDecayPerTurnEnd <= 0) all skip; shred_decayed fires only
// when an actual reduction occurs.
func DecayShred(state *BattleState, unitID string, cfg MechanicsConfig) {
	u := state.Unit(unitID)
	if u == nil || !u.Alive() {
		return
	}
	if u.Faction == FactionUndead || cfg.ShredDecayPerTurnEnd <= 0 {
		return
	}
	if u.ArmorShred == 0 {
		return
	}

	before := u.ArmorShred
	u.ArmorShred -= cfg.ShredDecayPerTurnEnd
	if u.ArmorShred < 0 {
		u.ArmorShred = 0
	}
	if u.ArmorShred == before {
		return
	}

	emit(state, EventShredDecayed, unitID, "", map[string]any{
		"from": before,
		"to":   u.ArmorShred,
	})
}
