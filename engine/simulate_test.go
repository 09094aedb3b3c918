package engine

import (
	"reflect"
	"testing"
)

// staticTestProvider is a minimal two-template roster shared by the
// end-to-end SimulateBattle tests.
func staticTestProvider() StaticTemplateProvider {
	return StaticTemplateProvider{
		"swordsman": {
			ID: "swordsman", Name: "Swordsman", Faction: FactionHuman,
			MaxHP: 30, ATK: 8, ATKCount: 1, Armor: 5, Speed: 3,
			Initiative: 5, Dodge: 5, AttackRange: 1, Cost: 10,
		},
		"archer": {
			ID: "archer", Name: "Archer", Faction: FactionHuman,
			MaxHP: 20, ATK: 6, ATKCount: 1, Armor: 2, Speed: 3,
			Initiative: 7, Dodge: 5, AttackRange: 4, MaxAmmo: 5, Cost: 10,
		},
	}
}

// skipOracle always skips, used to exercise the max-rounds/draw path
// without either roster ever reaching or damaging the other.
type skipOracle struct{}

func (skipOracle) Decide(state BattleState, unitID string, rng *Stream) BattleAction {
	return BattleAction{Type: ActionSkip}
}

// TestSimulateBattle_Deterministic: the same inputs run twice
// produce byte-for-byte identical events and final state.
func TestSimulateBattle_Deterministic(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	provider := staticTestProvider()

	player := TeamSetup{Units: []TeamUnitSetup{
		{TemplateID: "swordsman", Tier: 1, Pos: Position{3, 1}},
		{TemplateID: "archer", Tier: 1, Pos: Position{4, 1}},
	}}
	enemy := TeamSetup{Units: []TeamUnitSetup{
		{TemplateID: "swordsman", Tier: 1, Pos: Position{3, 8}},
		{TemplateID: "archer", Tier: 1, Pos: Position{4, 8}},
	}}

	r1, err := SimulateBattle("battle-1", player, enemy, provider, 42, cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := SimulateBattle("battle-1", player, enemy, provider, 42, cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(r1.Events, r2.Events) {
		t.Fatalf("events diverged between identical runs")
	}
	if !reflect.DeepEqual(r1.FinalState, r2.FinalState) {
		t.Fatalf("final state diverged between identical runs")
	}
	if r1.Outcome != r2.Outcome || r1.Winner != r2.Winner || r1.Rounds != r2.Rounds {
		t.Fatalf("outcome/winner/rounds diverged: %+v vs %+v", r1, r2)
	}
	if r1.Rounds > cfg.MaxRounds {
		t.Fatalf("rounds exceeded MaxRounds: %d", r1.Rounds)
	}
	if !containsKind(r1.Events, EventBattleStart) || !containsKind(r1.Events, EventBattleEnd) {
		t.Fatalf("expected battle_start and battle_end in the trace")
	}
}

// TestSimulateBattle_MaxRoundsDraw: a battle that never
// resolves must stop at MaxRounds and report a draw, not overrun it.
func TestSimulateBattle_MaxRoundsDraw(t *testing.T) {
	cfg := DefaultMechanicsConfig()
	cfg.MaxRounds = 3
	provider := staticTestProvider()

	player := TeamSetup{Units: []TeamUnitSetup{
		{TemplateID: "swordsman", Tier: 1, Pos: Position{0, 0}},
	}}
	enemy := TeamSetup{Units: []TeamUnitSetup{
		{TemplateID: "swordsman", Tier: 1, Pos: Position{0, 9}},
	}}

	result, err := SimulateBattle("draw-battle", player, enemy, provider, 7, cfg, skipOracle{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != OutcomeDraw {
		t.Fatalf("expected draw outcome, got %s", result.Outcome)
	}
	if result.Winner != "" {
		t.Fatalf("expected no winner on a draw, got %q", result.Winner)
	}
	if result.Rounds != cfg.MaxRounds {
		t.Fatalf("expected rounds to equal MaxRounds=%d, got %d", cfg.MaxRounds, result.Rounds)
	}
	if !containsKind(result.Events, EventBattleEnd) {
		t.Fatalf("expected a battle_end event")
	}
}
