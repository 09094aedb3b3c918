package engine

// =============================================================================
// Mechanics Configuration
// =============================================================================

// MechanicsConfig pins every threshold used by the mechanics processors.
// Each processor receives a config value rather than reading package-level
// constants, so the same battle can be re-run under alternate tunings
// without touching processor code.
type MechanicsConfig struct {
	// Facing / flanking
	FrontDamageMult   float64
	FlankDamageMult   float64
	RearDamageMult    float64
	FlankResolveDelta int
	RearResolveDelta  int

	// Riposte
	RiposteDamageFrac float64

	// Charge / spear-wall
	ChargeMomentumPerDistance float64
	CounterDamageFrac         float64

	// Ammunition / melee fallback
	MeleeFallbackDamageMult float64

	// Armor shred
	ShredPerHit          int
	ShredCapNormalFrac   float64
	ShredCapArmoredFrac  float64
	ShredDecayPerTurnEnd int

	// Resolve / routing / rally
	ResolveRegenBase         int
	ResolveRegenPhalanxBonus int
	ResolveDeathAdjacent     int
	ResolveDeathNearby       int
	ResolveDeathNearbyRange  int
	RoutingThreshold         int
	RallyThreshold           int

	// Contagion
	ContagionBaseChance   map[StatusEffect]float64
	ContagionPhalanxBonus float64

	// Line of sight
	ArcFireAccuracyMult    float64
	ArcFireMinRange        int
	PartialCoverDodgeBonus float64
	PartialCoverLo         float64
	PartialCoverHi         float64

	// Scheduler
	MaxRounds  int
	CostBudget int

	// Phalanx
	PhalanxMinAdjacentAllies int

	// Aura
	AuraRange int
}

// DefaultMechanicsConfig returns the engine's standard ruleset. Callers
// needing a house-ruled variant copy this value and adjust individual
// fields.
func DefaultMechanicsConfig() MechanicsConfig {
	return MechanicsConfig{
		FrontDamageMult:   1.00,
		FlankDamageMult:   1.15,
		RearDamageMult:    1.30,
		FlankResolveDelta: -5,
		RearResolveDelta:  -10,

		RiposteDamageFrac: 0.5,

		MeleeFallbackDamageMult: 0.5,

		ChargeMomentumPerDistance: 0.2,
		CounterDamageFrac:         0.5,

		ShredPerHit:          1,
		ShredCapNormalFrac:   0.40,
		ShredCapArmoredFrac:  0.50,
		ShredDecayPerTurnEnd: 2,

		ResolveRegenBase:         5,
		ResolveRegenPhalanxBonus: 3,
		ResolveDeathAdjacent:     -15,
		ResolveDeathNearby:       -8,
		ResolveDeathNearbyRange:  3,
		RoutingThreshold:         0,
		RallyThreshold:           25,

		ContagionBaseChance: map[StatusEffect]float64{
			StatusFire:   0.50,
			StatusPoison: 0.30,
			StatusFear:   0.40,
			StatusCurse:  0.25,
			StatusFrost:  0.20,
			StatusPlague: 0.60,
		},
		ContagionPhalanxBonus: 0.15,

		ArcFireAccuracyMult:    0.80,
		ArcFireMinRange:        2,
		PartialCoverDodgeBonus: 0.2,
		PartialCoverLo:         0.3,
		PartialCoverHi:         0.7,

		MaxRounds:  100,
		CostBudget: 30,

		PhalanxMinAdjacentAllies: 2,

		AuraRange: 2,
	}
}
