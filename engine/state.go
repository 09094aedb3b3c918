package engine

import "sort"

// =============================================================================
// BattleState
// =============================================================================

// BattleState is the full, immutable-update snapshot of a battle in
// progress. Every processor takes a BattleState and returns a new one;
// nothing here is ever mutated in place once handed to a caller.
type BattleState struct {
	BattleID string

	Units []BattleUnit

	Round int
	Turn  int
	Phase Phase

	Events []BattleEvent

	Occupancy map[string]bool // "x,y" -> true, alive units only

	Seed uint32

	TurnQueue        []string
	CurrentTurnIndex int

	// Cooldowns is the open-question extension map: unitId -> abilityId ->
	// turnsLeft.
	Cooldowns map[string]map[string]int

	nextTimestamp int64
}

// Clone returns a deep-enough copy of s: every processor starts from
// Clone() and mutates the copy, never the original.
func (s BattleState) Clone() BattleState {
	ns := s

	ns.Units = make([]BattleUnit, len(s.Units))
	for i := range s.Units {
		ns.Units[i] = s.Units[i].Clone()
	}

	ns.Events = append([]BattleEvent(nil), s.Events...)

	ns.Occupancy = make(map[string]bool, len(s.Occupancy))
	for k, v := range s.Occupancy {
		ns.Occupancy[k] = v
	}

	ns.TurnQueue = append([]string(nil), s.TurnQueue...)

	ns.Cooldowns = make(map[string]map[string]int, len(s.Cooldowns))
	for unitID, m := range s.Cooldowns {
		nm := make(map[string]int, len(m))
		for abilityID, turns := range m {
			nm[abilityID] = turns
		}
		ns.Cooldowns[unitID] = nm
	}

	return ns
}

// UnitIndex returns the slice index of the unit with the given instance
// id, or -1 if absent.
func (s *BattleState) UnitIndex(id string) int {
	for i := range s.Units {
		if s.Units[i].InstanceID == id {
			return i
		}
	}
	return -1
}

// Unit returns a pointer into s.Units for in-place editing of the
// caller's private copy. Callers must only do this on a state they
// already own (post-Clone), never on a state handed in by another
// caller.
func (s *BattleState) Unit(id string) *BattleUnit {
	idx := s.UnitIndex(id)
	if idx < 0 {
		return nil
	}
	return &s.Units[idx]
}

// UnitAt returns the alive unit occupying pos, or nil.
func (s *BattleState) UnitAt(pos Position) *BattleUnit {
	for i := range s.Units {
		if s.Units[i].Alive() && s.Units[i].Pos == pos {
			return &s.Units[i]
		}
	}
	return nil
}

// AliveUnits returns pointers to every living unit, in slice order.
func (s *BattleState) AliveUnits() []*BattleUnit {
	var out []*BattleUnit
	for i := range s.Units {
		if s.Units[i].Alive() {
			out = append(out, &s.Units[i])
		}
	}
	return out
}

// TeamAlive reports whether the given team still has a living unit.
func (s *BattleState) TeamAlive(team Team) bool {
	for i := range s.Units {
		if s.Units[i].Alive() && s.Units[i].Team == team {
			return true
		}
	}
	return false
}

// RebuildOccupancy recomputes the occupancy index from scratch so it
// always equals {positions of alive units}.
func (s *BattleState) RebuildOccupancy() {
	s.Occupancy = make(map[string]bool, len(s.Units))
	for i := range s.Units {
		if s.Units[i].Alive() {
			s.Occupancy[s.Units[i].Pos.Key()] = true
		}
	}
}

// BuildTurnQueue rebuilds the turn queue from currently alive units,
// ordered by initiative descending, tie-broken by instance id
// ascending.
func (s *BattleState) BuildTurnQueue() {
	alive := s.AliveUnits()
	ids := make([]string, len(alive))
	for i, u := range alive {
		ids[i] = u.InstanceID
	}
	sort.Slice(ids, func(i, j int) bool {
		ui := s.Unit(ids[i])
		uj := s.Unit(ids[j])
		if ui.Initiative != uj.Initiative {
			return ui.Initiative > uj.Initiative
		}
		return ui.InstanceID < uj.InstanceID
	})
	s.TurnQueue = ids
	s.CurrentTurnIndex = 0
}

// CurrentUnitID returns the instance id whose turn it currently is, or ""
// if the queue is empty or exhausted.
func (s *BattleState) CurrentUnitID() string {
	if s.CurrentTurnIndex < 0 || s.CurrentTurnIndex >= len(s.TurnQueue) {
		return ""
	}
	return s.TurnQueue[s.CurrentTurnIndex]
}
