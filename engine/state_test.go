package engine

import "testing"

func TestClone_DoesNotShareMutableState(t *testing.T) {
	state := newBattleBuilder().
		Unit("a", TeamPlayer, Position{0, 0}, South).
		Unit("b", TeamEnemy, Position{0, 5}, North).
		Build()
	state.Unit("a").Statuses = []StatusInstance{{Effect: StatusFire, Duration: 2}}
	state.Cooldowns["a"] = map[string]int{"fireball": 3}

	clone := state.Clone()
	clone.Unit("a").CurrentHP = 1
	clone.Unit("a").Statuses[0].Duration = 99
	clone.Cooldowns["a"]["fireball"] = 0
	clone.Occupancy["7,7"] = true
	clone.TurnQueue[0] = "zzz"
	emit(&clone, EventTurnStart, "a", "", nil)

	if state.Unit("a").CurrentHP == 1 {
		t.Fatalf("clone HP write leaked into the original state")
	}
	if state.Unit("a").Statuses[0].Duration == 99 {
		t.Fatalf("clone status write leaked into the original state")
	}
	if state.Cooldowns["a"]["fireball"] != 3 {
		t.Fatalf("clone cooldown write leaked into the original state")
	}
	if state.Occupancy["7,7"] {
		t.Fatalf("clone occupancy write leaked into the original state")
	}
	if state.TurnQueue[0] == "zzz" {
		t.Fatalf("clone turn-queue write leaked into the original state")
	}
	if len(state.Events) != 0 {
		t.Fatalf("clone emit leaked into the original event log")
	}
}

// Processors must leave the state they were handed untouched; the caller
// keeps a usable pre-update snapshot.
func TestResolveAttack_LeavesInputStateUnchanged(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	state := newBattleBuilder().
		UnitFull("att", TeamPlayer, FactionHuman, Position{3, 4}, South, 30, 10, 0).
		UnitFull("def", TeamEnemy, FactionHuman, Position{3, 5}, North, 30, 10, 0).
		Build()

	beforeHP := state.Unit("def").CurrentHP
	beforeEvents := len(state.Events)

	_ = ResolveAttack(state, "att", "def", NewStream(3), cfg)

	if state.Unit("def").CurrentHP != beforeHP {
		t.Fatalf("input state mutated: defender HP changed from %d to %d", beforeHP, state.Unit("def").CurrentHP)
	}
	if len(state.Events) != beforeEvents {
		t.Fatalf("input state mutated: event log grew from %d to %d", beforeEvents, len(state.Events))
	}
}

func TestBuildTurnQueue_InitiativeDescThenIDAsc(t *testing.T) {
	state := newBattleBuilder().
		Unit("b_unit", TeamPlayer, Position{0, 0}, South).
		With(func(u *BattleUnit) { u.Initiative = 9 }).
		Unit("a_unit", TeamEnemy, Position{0, 5}, North).
		With(func(u *BattleUnit) { u.Initiative = 9 }).
		Unit("c_unit", TeamPlayer, Position{1, 0}, South).
		With(func(u *BattleUnit) { u.Initiative = 5 }).
		Build()

	want := []string{"a_unit", "b_unit", "c_unit"}
	if len(state.TurnQueue) != len(want) {
		t.Fatalf("queue length = %d, want %d", len(state.TurnQueue), len(want))
	}
	for i, id := range want {
		if state.TurnQueue[i] != id {
			t.Fatalf("queue[%d] = %s, want %s (full: %v)", i, state.TurnQueue[i], id, state.TurnQueue)
		}
	}
}

func TestRebuildOccupancy_ExcludesDeadUnits(t *testing.T) {
	state := newBattleBuilder().
		Unit("alive", TeamPlayer, Position{2, 2}, South).
		Unit("dead", TeamEnemy, Position{5, 5}, North).
		Build()
	state.Unit("dead").CurrentHP = 0
	state.RebuildOccupancy()

	if !state.Occupancy["2,2"] {
		t.Fatalf("living unit's cell missing from occupancy")
	}
	if state.Occupancy["5,5"] {
		t.Fatalf("dead unit's cell must not appear in occupancy")
	}
}
