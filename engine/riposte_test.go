package engine

import "testing"

func TestRiposteChance_InitiativeWeighting(t *testing.T) {
	tests := []struct {
		defender, attacker int
		want               float64
	}{
		{8, 8, 0.5},
		{18, 8, 1.0},  // +10 guarantees
		{28, 8, 1.0},  // clamped
		{8, 18, 0.0},  // -10 rules it out
		{8, 28, 0.0},  // clamped
		{10, 8, 0.6},
	}
	for _, tc := range tests {
		if got := RiposteChance(tc.defender, tc.attacker); got != tc.want {
			t.Errorf("RiposteChance(%d, %d) = %v, want %v", tc.defender, tc.attacker, got, tc.want)
		}
	}
}

func TestRiposteEligible_Gates(t *testing.T) {
	base := func() *BattleUnit {
		return &BattleUnit{CurrentHP: 10, RiposteCharges: 1}
	}

	if !RiposteEligible(base(), ArcFront) {
		t.Fatalf("healthy front-arc defender with a charge must be eligible")
	}
	if RiposteEligible(base(), ArcFlank) {
		t.Fatalf("flank arc must never riposte")
	}
	if RiposteEligible(base(), ArcRear) {
		t.Fatalf("rear arc must never riposte")
	}

	routing := base()
	routing.IsRouting = true
	if RiposteEligible(routing, ArcFront) {
		t.Fatalf("routing defender must not riposte")
	}

	stunned := base()
	stunned.Stunned = true
	if RiposteEligible(stunned, ArcFront) {
		t.Fatalf("stunned defender must not riposte")
	}

	spent := base()
	spent.RiposteCharges = 0
	if RiposteEligible(spent, ArcFront) {
		t.Fatalf("defender without charges must not riposte")
	}

	dead := base()
	dead.CurrentHP = 0
	if RiposteEligible(dead, ArcFront) {
		t.Fatalf("dead defender must not riposte")
	}
}
