package engine

// =============================================================================
// Aura healing
// =============================================================================
//
// Mages project a small healing aura over nearby allies at turn_start.
// Each pulse comes from a single caster, at that caster's own
// turn_start: every ally in range is healed once, in a single HP change,
// with one aura_pulse per healed unit. Heals from different mages are
// not aggregated; each arrives in its own caster's pulse.

const auraHealPerUnit = 4

// AuraPulse applies casterID's healing aura to every living ally within
// cfg.AuraRange (Chebyshev distance), a no-op for non-mage units.
func AuraPulse(state *BattleState, casterID string, cfg MechanicsConfig) {
	caster := state.Unit(casterID)
	if caster == nil || !caster.Alive() || !caster.HasCapability(CapMage) {
		return
	}

	for _, u := range state.AliveUnits() {
		if u.Team != caster.Team || u.InstanceID == casterID {
			continue
		}
		if ChebyshevDistance(caster.Pos, u.Pos) > cfg.AuraRange {
			continue
		}
		if u.CurrentHP >= u.MaxHP {
			continue
		}

		before := u.CurrentHP
		u.CurrentHP += auraHealPerUnit
		if u.CurrentHP > u.MaxHP {
			u.CurrentHP = u.MaxHP
		}
		if u.CurrentHP == before {
			continue
		}

		emit(state, EventAuraPulse, casterID, u.InstanceID, map[string]any{
			"amount": u.CurrentHP - before,
		})
	}
}
