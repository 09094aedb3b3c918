package engine

import "testing"

func TestApplyPhysicalDamage_ShredAccumulatesToCap(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	state := newBattleBuilder().
		UnitFull("att", TeamPlayer, FactionHuman, Position{0, 0}, South, 30, 10, 0).
		UnitFull("tank", TeamEnemy, FactionHuman, Position{0, 5}, North, 200, 10, 10).
		Build()

	// cap for 10 base armor on a normal unit is floor(10 * 0.40) = 4
	for i := 0; i < 6; i++ {
		ApplyPhysicalDamage(&state, "tank", "att", 12, "attack", cfg)
	}

	tank := state.Unit("tank")
	if tank.ArmorShred != 4 {
		t.Fatalf("shred = %d, want capped at 4", tank.ArmorShred)
	}
	if tank.EffectiveArmor() != 6 {
		t.Fatalf("effective armor = %d, want 6", tank.EffectiveArmor())
	}
}

func TestApplyPhysicalDamage_ArmoredUnitsCapHigher(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	state := newBattleBuilder().
		UnitFull("att", TeamPlayer, FactionHuman, Position{0, 0}, South, 30, 10, 0).
		UnitFull("tank", TeamEnemy, FactionHuman, Position{0, 5}, North, 200, 10, 10).
		With(func(u *BattleUnit) { u.Capabilities = withCaps(CapArmored) }).
		Build()

	for i := 0; i < 8; i++ {
		ApplyPhysicalDamage(&state, "tank", "att", 12, "attack", cfg)
	}

	// floor(10 * 0.50) = 5
	if got := state.Unit("tank").ArmorShred; got != 5 {
		t.Fatalf("armored shred = %d, want capped at 5", got)
	}
}

func TestApplyPhysicalDamage_ShredImmuneNeverShreds(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	state := newBattleBuilder().
		UnitFull("att", TeamPlayer, FactionHuman, Position{0, 0}, South, 30, 10, 0).
		UnitFull("golem", TeamEnemy, FactionHuman, Position{0, 5}, North, 200, 10, 10).
		With(func(u *BattleUnit) { u.Capabilities = withCaps(CapShredImmune) }).
		Build()

	ApplyPhysicalDamage(&state, "golem", "att", 15, "attack", cfg)

	if got := state.Unit("golem").ArmorShred; got != 0 {
		t.Fatalf("shred_immune unit accumulated shred: %d", got)
	}
}

func TestApplyPhysicalDamage_LethalHitEmitsDeathAndShocksAllies(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	state := newBattleBuilder().
		UnitFull("att", TeamPlayer, FactionHuman, Position{3, 3}, South, 30, 20, 0).
		UnitFull("victim", TeamEnemy, FactionHuman, Position{3, 4}, North, 5, 10, 0).
		UnitFull("adjacent", TeamEnemy, FactionHuman, Position{3, 5}, North, 30, 10, 0).
		UnitFull("nearby", TeamEnemy, FactionHuman, Position{3, 7}, North, 30, 10, 0).
		UnitFull("far", TeamEnemy, FactionHuman, Position{3, 9}, North, 30, 10, 0).
		Build()

	_, killed := ApplyPhysicalDamage(&state, "victim", "att", 20, "attack", cfg)
	if !killed {
		t.Fatalf("expected the hit to kill the victim")
	}
	if !containsKind(state.Events, EventUnitDied) {
		t.Fatalf("expected unit_died event")
	}

	if got := state.Unit("adjacent").Resolve; got != 100+cfg.ResolveDeathAdjacent {
		t.Fatalf("adjacent ally resolve = %d, want %d", got, 100+cfg.ResolveDeathAdjacent)
	}
	if got := state.Unit("nearby").Resolve; got != 100+cfg.ResolveDeathNearby {
		t.Fatalf("nearby ally resolve = %d, want %d", got, 100+cfg.ResolveDeathNearby)
	}
	if got := state.Unit("far").Resolve; got != 100 {
		t.Fatalf("distant ally resolve changed: %d", got)
	}
	if got := state.Unit("att").Resolve; got != 100 {
		t.Fatalf("enemy of the dead unit must not take death shock, resolve %d", got)
	}

	for _, id := range state.TurnQueue {
		if id == "victim" {
			t.Fatalf("dead unit still in turn queue")
		}
	}
	if state.Occupancy["3,4"] {
		t.Fatalf("occupancy still lists a dead unit's cell")
	}
}
