package engine

// =============================================================================
// Public entry point
// =============================================================================

// BattleResult is the full, replayable record of one simulated
// battle: the final state, the outcome, the winning team (empty when
// there is none, i.e. a draw), the round count the battle actually
// ran for, every event emitted along the way, and the surviving
// roster of each side.
type BattleResult struct {
	BattleID        string
	FinalState      BattleState
	Outcome         Outcome
	Winner          Team
	Rounds          int
	Events          []BattleEvent
	PlayerSurvivors []BattleUnit
	EnemySurvivors  []BattleUnit
}

// SimulateBattle runs one complete, deterministic battle from a player and
// enemy roster to a win/loss/draw outcome. The same (player, enemy,
// provider, seed, cfg, oracle, abilities) tuple always produces
// bit-identical output: nothing here reads wall-clock time
// or host entropy, only the seeded Stream.
func SimulateBattle(battleID string, player, enemy TeamSetup, provider TemplateProvider, seed uint32, cfg MechanicsConfig, oracle AIOracle, abilities AbilitySystem) (BattleResult, error) {
	if oracle == nil {
		oracle = NearestEnemyOracle{AttackRange: 1}
	}
	if abilities == nil {
		abilities = NopAbilitySystem{}
	}

	state, err := InitBattle(battleID, player, enemy, provider, seed, cfg)
	if err != nil {
		return BattleResult{}, err
	}

	rng := NewStream(seed)
	final, outcome := RunBattle(state, oracle, abilities, rng, cfg)

	var winner Team
	switch outcome {
	case OutcomePlayerWin:
		winner = TeamPlayer
	case OutcomeEnemyWin:
		winner = TeamEnemy
	}

	var playerSurvivors, enemySurvivors []BattleUnit
	for _, u := range final.AliveUnits() {
		if u.Team == TeamPlayer {
			playerSurvivors = append(playerSurvivors, *u)
		} else {
			enemySurvivors = append(enemySurvivors, *u)
		}
	}

	return BattleResult{
		BattleID:        battleID,
		FinalState:      final,
		Outcome:         outcome,
		Winner:          winner,
		Rounds:          final.Round,
		Events:          final.Events,
		PlayerSurvivors: playerSurvivors,
		EnemySurvivors:  enemySurvivors,
	}, nil
}
