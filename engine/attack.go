package engine

// =============================================================================
// Attack resolution
// =============================================================================
//
// ResolveAttack wires together every per-attack processor in the fixed
// sub-event order the log depends on: facing/flanking, the spear-wall
// counter (if momentum and facing qualify), the attack roll itself,
// dodge-or-damage, an eligible riposte, and ammo consumption. Each step
// delegates to its own processor file; this file only sequences them.

// ResolveAttack resolves one unit's attack against another, including any
// spear-wall counter and riposte it provokes. It never panics: an
// impossible attack (dead participants, out of ammo, no line of sight)
// is recorded as a diagnostic_declined event and otherwise a no-op.
func ResolveAttack(state BattleState, attackerID, defenderID string, rng *Stream, cfg MechanicsConfig) BattleState {
	ns := state.Clone()

	attacker := ns.Unit(attackerID)
	defender := ns.Unit(defenderID)
	if attacker == nil || defender == nil || !attacker.Alive() || !defender.Alive() {
		diagnosticEvent(&ns, DiagnosticDeclined, PhaseAttack, attackerID, "invalid_participants")
		return ns
	}

	distance := AttackDistance(attacker.Pos, defender.Pos)

	maxRange := attacker.AttackRange
	if maxRange < 1 {
		maxRange = 1
	}
	if distance > maxRange {
		diagnosticEvent(&ns, DiagnosticDeclined, PhaseAttack, attackerID, "out_of_range")
		return ns
	}

	ammoRes := ResolveAmmo(attacker, distance, cfg)
	if !ammoRes.CanAttack {
		diagnosticEvent(&ns, DiagnosticDeclined, PhaseAttack, attackerID, "out_of_ammo")
		return ns
	}

	los := ResolveLineOfSight(&ns, attacker, defender, cfg)
	if !los.Clear {
		diagnosticEvent(&ns, DiagnosticDeclined, PhaseAttack, attackerID, los.Reason)
		return ns
	}

	ns, facingResult := ApplyFacing(ns, attackerID, defenderID, cfg)

	if cs, fired, attackerDied := ApplySpearWallCounter(ns, attackerID, defenderID, cfg); fired {
		ns = cs
		if attackerDied {
			return ns
		}
	}

	attacker = ns.Unit(attackerID)
	defender = ns.Unit(defenderID)
	if attacker == nil || defender == nil || !attacker.Alive() || !defender.Alive() {
		return ns
	}

	arcMult := cfg.FrontDamageMult
	switch facingResult.Arc {
	case ArcFlank:
		arcMult = cfg.FlankDamageMult
	case ArcRear:
		arcMult = cfg.RearDamageMult
	}

	chargedATK := ChargeBonusATK(attacker.ATK, attacker.Momentum)
	raw := int(float64(chargedATK) * arcMult * ammoRes.DamageMult)

	if bonus := chargedATK - attacker.ATK; bonus > 0 {
		emit(&ns, EventChargeImpact, attackerID, defenderID, map[string]any{
			"momentum":    attacker.Momentum,
			"bonusDamage": bonus,
		})
	}

	emit(&ns, EventAttack, attackerID, defenderID, map[string]any{
		"distance":      distance,
		"arc":           string(facingResult.Arc),
		"meleeFallback": ammoRes.MeleeFallback,
		"momentum":      attacker.Momentum,
		"raw":           raw,
	})

	defender.AttackHistory = append(defender.AttackHistory, AttackRecord{
		AttackerID: attackerID,
		Round:      ns.Round,
		IsRanged:   distance > 1,
		Pos:        attacker.Pos,
	})

	missChance := float64(defender.Dodge)/100.0 + los.DodgeBonus + (1 - los.AccuracyMult)
	if missChance < 0 {
		missChance = 0
	}
	if missChance > 1 {
		missChance = 1
	}

	landed := !rng.Bernoulli(missChance)
	if !landed {
		emit(&ns, EventDodge, defenderID, attackerID, map[string]any{"chance": missChance})
	} else {
		ApplyPhysicalDamage(&ns, defenderID, attackerID, raw, "attack", cfg)
	}

	// Riposte eligibility is arc-gated, not hit-gated (riposte.go): a
	// defender who dodges the attack may still riposte.
	if def := ns.Unit(defenderID); def != nil && def.Alive() {
		ns = ApplyRiposte(ns, attackerID, defenderID, facingResult.Arc, rng, cfg)
	}

	if !ammoRes.MeleeFallback && attacker.Ammo != nil {
		if atk := ns.Unit(attackerID); atk != nil && atk.Alive() {
			ConsumeAmmo(&ns, attackerID)
		}
	}

	// Momentum is spent on this attack whether it landed or was dodged;
	// a fresh charge needs fresh movement.
	if atk := ns.Unit(attackerID); atk != nil && atk.Momentum > 0 {
		atk.Momentum = 0
	}

	return ns
}
