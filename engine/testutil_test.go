package engine

// =============================================================================
// Test builder
// =============================================================================
//
// battleBuilder provides a fluent API for assembling a minimal BattleState
// without going through SimulateBattle's template/roster plumbing,
// so focused unit tests can skip the full init pipeline.
//
// Example usage:
//
//	state := newBattleBuilder().
//	    Unit("rogue", TeamPlayer, Position{3, 4}, South).
//	    Unit("duelist", TeamEnemy, Position{3, 5}, North).
//	    Build()

type battleBuilder struct {
	units []BattleUnit
	seed  uint32
}

func newBattleBuilder() *battleBuilder {
	return &battleBuilder{seed: 12345}
}

func (b *battleBuilder) Seed(seed uint32) *battleBuilder {
	b.seed = seed
	return b
}

// Unit appends a unit with sensible defaults; use UnitFull for full control.
func (b *battleBuilder) Unit(id string, team Team, pos Position, facing Direction) *battleBuilder {
	return b.UnitFull(id, team, FactionHuman, pos, facing, 30, 10, 5)
}

func (b *battleBuilder) UnitFull(id string, team Team, faction Faction, pos Position, facing Direction, maxHP, atk, armor int) *battleBuilder {
	b.units = append(b.units, BattleUnit{
		TemplateID:     id,
		InstanceID:     id,
		DisplayName:    id,
		Team:           team,
		Faction:        faction,
		MaxHP:          maxHP,
		ATK:            atk,
		ATKCount:       1,
		BaseArmor:      armor,
		Speed:          3,
		Initiative:     5,
		Dodge:          0,
		AttackRange:    1,
		Pos:            pos,
		Facing:         facing,
		CurrentHP:      maxHP,
		Resolve:        100,
		MaxResolve:     100,
		RiposteCharges: 1,
		Capabilities:   map[Capability]bool{},
	})
	return b
}

// With mutates the most recently added unit in place.
func (b *battleBuilder) With(fn func(u *BattleUnit)) *battleBuilder {
	if len(b.units) == 0 {
		return b
	}
	fn(&b.units[len(b.units)-1])
	return b
}

func (b *battleBuilder) Build() BattleState {
	state := BattleState{
		BattleID:  "test",
		Units:     b.units,
		Round:     1,
		Seed:      b.seed,
		Cooldowns: map[string]map[string]int{},
	}
	state.RebuildOccupancy()
	RecomputePhalanx(&state, DefaultMechanicsConfig())
	RecomputeEngagement(&state)
	state.BuildTurnQueue()
	return state
}

func withCaps(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}

func eventKinds(events []BattleEvent) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func containsKind(events []BattleEvent, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func indexOfKind(events []BattleEvent, kind EventKind) int {
	for i, e := range events {
		if e.Kind == kind {
			return i
		}
	}
	return -1
}
