package engine

// =============================================================================
// AI oracle
// =============================================================================
//
// The AI tactics layer is an opaque external collaborator: given a
// state, a unit id, and the shared RNG stream, it returns exactly one
// action for that unit's turn. The oracle must be deterministic under
// the same (state, rng position) pair or replays diverge.

// ActionType names the kind of BattleAction an oracle may return.
type ActionType string

const (
	ActionAttack  ActionType = "attack"
	ActionMove    ActionType = "move"
	ActionAbility ActionType = "ability"
	ActionSkip    ActionType = "skip"
)

// BattleAction is the single decision the oracle produces for a unit's
// turn. Fields not relevant to Type are left zero.
type BattleAction struct {
	Type      ActionType
	TargetID  string   // attack / ability target
	Dest      Position // move destination
	AbilityID string   // ability invocation
}

// AIOracle is the consumed interface: (state, unitId, rng) -> BattleAction.
type AIOracle interface {
	Decide(state BattleState, unitID string, rng *Stream) BattleAction
}

// NearestEnemyOracle is a deterministic stand-in oracle: it attacks the
// nearest living enemy if one is in range, otherwise advances one step
// toward it, otherwise skips. It exists so the engine is exercisable
// end-to-end without wiring a real AI tactics layer.
type NearestEnemyOracle struct {
	AttackRange int
}

// Decide implements AIOracle.
func (o NearestEnemyOracle) Decide(state BattleState, unitID string, rng *Stream) BattleAction {
	self := state.Unit(unitID)
	if self == nil || !self.Alive() {
		return BattleAction{Type: ActionSkip}
	}

	attackRange := o.AttackRange
	if attackRange <= 0 {
		attackRange = 1
	}

	var nearest *BattleUnit
	best := -1
	for _, u := range state.AliveUnits() {
		if u.Team == self.Team {
			continue
		}
		d := ManhattanDistance(self.Pos, u.Pos)
		if best < 0 || d < best {
			best = d
			nearest = u
		}
	}
	if nearest == nil {
		return BattleAction{Type: ActionSkip}
	}
	if best <= attackRange {
		return BattleAction{Type: ActionAttack, TargetID: nearest.InstanceID}
	}

	step := self.Pos
	if nearest.Pos.X != self.Pos.X {
		if nearest.Pos.X > self.Pos.X {
			step.X++
		} else {
			step.X--
		}
	} else if nearest.Pos.Y != self.Pos.Y {
		if nearest.Pos.Y > self.Pos.Y {
			step.Y++
		} else {
			step.Y--
		}
	}
	return BattleAction{Type: ActionMove, Dest: step}
}
