package engine

// =============================================================================
// External collaborators
// =============================================================================
//
// The roster/ability definition tables, the AI oracle, and the ability
// subsystem live outside the combat core: the core only needs a
// narrow interface to each. These are the consumed interfaces, plus a
// minimal in-memory template provider used by tests and by callers that
// have not wired in a real data table.

// UnitTemplate is what an external template table resolves a template id
// to: the base stats, tags, and tier-scaling rule the simulator needs to
// build a BattleUnit at battle init.
type UnitTemplate struct {
	ID           string
	Name         string
	Faction      Faction
	MaxHP        int
	ATK          int
	ATKCount     int
	Armor        int
	Speed        int
	Initiative   int
	Dodge        int
	AttackRange  int
	MaxAmmo      int // 0 means melee/unlimited (Ammo field stays nil)
	Cost         int
	Capabilities []Capability

	// TierScale adjusts base stats per tier (1-3); tier 1 is the
	// template's stats unscaled. Left nil, tiers 2/3 apply a flat
	// +20%/+40% multiplicative bump to MaxHP and ATK so callers without
	// a real scaling table still get usable tiers.
	TierScale func(tier int, base UnitTemplate) UnitTemplate
}

// TemplateProvider resolves a template id to its definition. Implementations
// are expected to be pure lookups; the simulator calls this once per unit
// at battle init.
type TemplateProvider interface {
	Resolve(templateID string) (UnitTemplate, error)
}

// StaticTemplateProvider is a minimal in-memory TemplateProvider, useful
// for tests and for callers that want to embed a small fixed roster
// rather than load one from an external table.
type StaticTemplateProvider map[string]UnitTemplate

// Resolve implements TemplateProvider.
func (p StaticTemplateProvider) Resolve(templateID string) (UnitTemplate, error) {
	tmpl, ok := p[templateID]
	if !ok {
		return UnitTemplate{}, newValidationError("unknown unit template", map[string]any{"templateId": templateID})
	}
	return tmpl, nil
}

// TeamUnitSetup pairs a template id + tier with a deployment position.
type TeamUnitSetup struct {
	TemplateID string
	Tier       int
	Pos        Position
}

// TeamSetup is one side's roster for a battle.
type TeamSetup struct {
	Units []TeamUnitSetup
}

// CostSum totals the roster's cost, using the supplied provider to look
// up each unit's template. It does not check the total; InitBattle
// enforces the 1..CostBudget constraint on it.
func (t TeamSetup) CostSum(provider TemplateProvider) (int, error) {
	sum := 0
	for _, u := range t.Units {
		tmpl, err := provider.Resolve(u.TemplateID)
		if err != nil {
			return 0, err
		}
		sum += tmpl.Cost
	}
	return sum, nil
}

// =============================================================================
// Ability subsystem boundary
// =============================================================================

// AbilityEffectKind enumerates the ability-table effect categories the
// core needs to recognize when invoking the (out-of-scope) ability
// subsystem, without implementing any of them.
type AbilityEffectKind string

const (
	AbilityDamage AbilityEffectKind = "damage"
	AbilityHeal   AbilityEffectKind = "heal"
	AbilityBuff   AbilityEffectKind = "buff"
	AbilityDebuff AbilityEffectKind = "debuff"
	AbilityStun   AbilityEffectKind = "stun"
	AbilityTaunt  AbilityEffectKind = "taunt"
)

// AbilitySystem is the narrow interface consumed from the (external,
// out-of-scope) ability subsystem: apply ability X from unit A targeting
// T against state S with rng R, returning the next state and any events.
// The core only needs to be able to invoke it during pre_attack; its
// internals are not the core's concern.
type AbilitySystem interface {
	Apply(state BattleState, abilityID, actorID, targetID string, rng *Stream) (BattleState, []BattleEvent, error)
}

// NopAbilitySystem is a no-op AbilitySystem used when no ability table is
// wired in: pre_attack simply has nothing to invoke.
type NopAbilitySystem struct{}

// Apply implements AbilitySystem as a no-op: it returns state unchanged,
// no events, and a nil error.
func (NopAbilitySystem) Apply(state BattleState, abilityID, actorID, targetID string, rng *Stream) (BattleState, []BattleEvent, error) {
	return state, nil, nil
}
