package engine

// =============================================================================
// Ammunition / melee fallback
// =============================================================================

// AmmoResolution is the outcome of checking a unit's ammo state against
// the range to its target, decided before damage is computed.
type AmmoResolution struct {
	CanAttack     bool
	MeleeFallback bool
	DamageMult    float64
}

// ResolveAmmo decides whether the attack may proceed given the
// attacker's ammo state and distance to target:
//
//   - Ammo == nil: unlimited/melee, always usable, full damage.
//   - Ammo != nil && *Ammo > 0: normal ranged resolution, full damage.
//   - Ammo != nil && *Ammo == 0: melee fallback — only if adjacent
//     (distance == 1), at reduced damage; otherwise the attack aborts
//     with no state change.
func ResolveAmmo(attacker *BattleUnit, distance int, cfg MechanicsConfig) AmmoResolution {
	if attacker.Ammo == nil {
		return AmmoResolution{CanAttack: true, DamageMult: 1.0}
	}
	if *attacker.Ammo > 0 {
		return AmmoResolution{CanAttack: true, DamageMult: 1.0}
	}
	if distance == 1 {
		return AmmoResolution{CanAttack: true, MeleeFallback: true, DamageMult: cfg.MeleeFallbackDamageMult}
	}
	return AmmoResolution{CanAttack: false}
}

// ConsumeAmmo decrements a ranged attacker's ammo by one and emits
// ammo_consumed. Infinite-ammo units never reach this call.
func ConsumeAmmo(state *BattleState, unitID string) {
	u := state.Unit(unitID)
	if u == nil || u.Ammo == nil {
		return
	}
	if *u.Ammo > 0 {
		*u.Ammo--
	}
	emit(state, EventAmmoConsumed, unitID, "", map[string]any{
		"remaining": *u.Ammo,
	})
}
