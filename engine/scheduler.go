package engine

import "fmt"

// =============================================================================
// Scheduler
// =============================================================================
//
// The scheduler owns round structure: build the turn queue once per round
// (initiative desc, id asc), step every living unit through RunTurn in
// queue order, skip any unit that died mid-round, detect team
// elimination, and force a draw at MaxRounds so the simulator never
// loops forever.

// Outcome names how a battle concluded.
type Outcome string

const (
	OutcomePlayerWin Outcome = "player_win"
	OutcomeEnemyWin  Outcome = "enemy_win"
	OutcomeDraw      Outcome = "draw"
)

// buildRoster instantiates BattleUnit values from a TeamSetup, applying
// each template's tier scaling and assigning deterministic instance ids
// of the form "{team}_{templateId}_{index}".
func buildRoster(setup TeamSetup, team Team, provider TemplateProvider) ([]BattleUnit, error) {
	units := make([]BattleUnit, 0, len(setup.Units))
	for i, entry := range setup.Units {
		tmpl, err := provider.Resolve(entry.TemplateID)
		if err != nil {
			return nil, err
		}

		if entry.Tier > 1 {
			if tmpl.TierScale != nil {
				tmpl = tmpl.TierScale(entry.Tier, tmpl)
			} else {
				mult := 1.0 + 0.2*float64(entry.Tier-1)
				tmpl.MaxHP = int(float64(tmpl.MaxHP) * mult)
				tmpl.ATK = int(float64(tmpl.ATK) * mult)
			}
		}

		if !entry.Pos.InBounds() {
			return nil, newValidationError("deployment position out of bounds", map[string]any{
				"pos": entry.Pos,
			})
		}
		if team == TeamPlayer && !entry.Pos.InPlayerDeployZone() {
			return nil, newValidationError("player unit deployed outside player zone", map[string]any{
				"pos": entry.Pos,
			})
		}
		if team == TeamEnemy && !entry.Pos.InEnemyDeployZone() {
			return nil, newValidationError("enemy unit deployed outside enemy zone", map[string]any{
				"pos": entry.Pos,
			})
		}

		if tmpl.Dodge > 50 {
			tmpl.Dodge = 50
		}
		if tmpl.ATKCount < 1 {
			tmpl.ATKCount = 1
		}
		if tmpl.ATKCount > 3 {
			tmpl.ATKCount = 3
		}

		caps := make(map[Capability]bool, len(tmpl.Capabilities))
		for _, c := range tmpl.Capabilities {
			caps[c] = true
		}

		var ammo *int
		if tmpl.MaxAmmo > 0 {
			a := tmpl.MaxAmmo
			ammo = &a
		}

		// Deploy facing the opposing side's edge.
		facing := South
		if team == TeamEnemy {
			facing = North
		}

		units = append(units, BattleUnit{
			TemplateID:  tmpl.ID,
			InstanceID:  fmt.Sprintf("%s_%s_%d", team, tmpl.ID, i),
			DisplayName: tmpl.Name,
			Team:        team,
			Faction:     tmpl.Faction,

			MaxHP:       tmpl.MaxHP,
			ATK:         tmpl.ATK,
			ATKCount:    tmpl.ATKCount,
			BaseArmor:   tmpl.Armor,
			Speed:       tmpl.Speed,
			Initiative:  tmpl.Initiative,
			Dodge:       tmpl.Dodge,
			AttackRange: tmpl.AttackRange,

			Pos:    entry.Pos,
			Facing: facing,

			CurrentHP: tmpl.MaxHP,

			Resolve:    100,
			MaxResolve: 100,

			Ammo:    ammo,
			MaxAmmo: tmpl.MaxAmmo,

			RiposteCharges: 1,

			Capabilities: caps,
		})
	}
	return units, nil
}

// InitBattle validates and assembles the starting BattleState for a
// battle between two TeamSetups, enforcing the cost budget
// and deploy-zone placement before a single phase runs.
func InitBattle(battleID string, player, enemy TeamSetup, provider TemplateProvider, seed uint32, cfg MechanicsConfig) (BattleState, error) {
	if sum, err := player.CostSum(provider); err != nil {
		return BattleState{}, err
	} else if sum < 1 || sum > cfg.CostBudget {
		return BattleState{}, newValidationError("player roster cost outside budget", map[string]any{"cost": sum, "budget": cfg.CostBudget})
	}
	if sum, err := enemy.CostSum(provider); err != nil {
		return BattleState{}, err
	} else if sum < 1 || sum > cfg.CostBudget {
		return BattleState{}, newValidationError("enemy roster cost outside budget", map[string]any{"cost": sum, "budget": cfg.CostBudget})
	}

	playerUnits, err := buildRoster(player, TeamPlayer, provider)
	if err != nil {
		return BattleState{}, err
	}
	enemyUnits, err := buildRoster(enemy, TeamEnemy, provider)
	if err != nil {
		return BattleState{}, err
	}

	allUnits := append(playerUnits, enemyUnits...)
	seen := make(map[string]string, len(allUnits))
	for _, u := range allUnits {
		if other, dup := seen[u.Pos.Key()]; dup {
			return BattleState{}, newValidationError("two units deployed on the same cell", map[string]any{
				"pos":   u.Pos,
				"units": []string{other, u.InstanceID},
			})
		}
		seen[u.Pos.Key()] = u.InstanceID
	}

	state := BattleState{
		BattleID:  battleID,
		Units:     allUnits,
		Round:     1,
		Turn:      0,
		Seed:      seed,
		Cooldowns: map[string]map[string]int{},
	}
	state.RebuildOccupancy()
	RecomputePhalanx(&state, cfg)
	RecomputeEngagement(&state)
	state.BuildTurnQueue()

	emit(&state, EventBattleStart, "", "", map[string]any{"seed": seed})
	emit(&state, EventRoundStart, "", "", map[string]any{"round": state.Round})

	return state, nil
}

// RunBattle drives the full round loop to completion: build the queue,
// step every unit through RunTurn, skip units that died mid-round, check
// for team elimination after every turn, and roll the round over when
// the queue is exhausted. MaxRounds caps the loop at a draw.
func RunBattle(state BattleState, oracle AIOracle, abilities AbilitySystem, rng *Stream, cfg MechanicsConfig) (BattleState, Outcome) {
	ns := state

	for ns.Round <= cfg.MaxRounds {
		if !ns.TeamAlive(TeamPlayer) {
			return finishBattle(ns, OutcomeEnemyWin)
		}
		if !ns.TeamAlive(TeamEnemy) {
			return finishBattle(ns, OutcomePlayerWin)
		}

		if ns.CurrentTurnIndex >= len(ns.TurnQueue) {
			if roundOver, outcome := advanceRound(&ns, cfg); roundOver {
				return finishBattle(ns, outcome)
			}
			continue
		}

		unitID := ns.CurrentUnitID()
		ns.CurrentTurnIndex++
		ns.Turn++

		u := ns.Unit(unitID)
		if u == nil || !u.Alive() {
			continue
		}

		ns = RunTurn(ns, unitID, oracle, abilities, rng, cfg)
	}

	return finishBattle(ns, OutcomeDraw)
}

// advanceRound closes out the current round and opens the next one,
// reporting whether the battle is already over (max rounds reached).
func advanceRound(state *BattleState, cfg MechanicsConfig) (bool, Outcome) {
	state.Phase = PhaseNone
	emit(state, EventRoundEnd, "", "", map[string]any{"round": state.Round})

	if !state.TeamAlive(TeamPlayer) {
		return true, OutcomeEnemyWin
	}
	if !state.TeamAlive(TeamEnemy) {
		return true, OutcomePlayerWin
	}

	if state.Round >= cfg.MaxRounds {
		return true, OutcomeDraw
	}
	state.Round++

	RecomputePhalanx(state, cfg)
	state.BuildTurnQueue()
	emit(state, EventRoundStart, "", "", map[string]any{"round": state.Round})
	return false, ""
}

func finishBattle(state BattleState, outcome Outcome) (BattleState, Outcome) {
	state.Phase = PhaseNone
	emit(&state, EventBattleEnd, "", "", map[string]any{"outcome": string(outcome)})
	return state, outcome
}
