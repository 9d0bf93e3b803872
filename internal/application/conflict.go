package application

import (
	"castmatch/internal/domain/entities"
)

// BlockReason says why an activity is infeasible for a player. BlockNone
// means the activity can be proposed to.
type BlockReason int

const (
	BlockNone BlockReason = iota
	// BlockOverlap: a slot of the activity overlaps a slot the player
	// already plays or organizes.
	BlockOverlap
	// BlockUnavailable: the player declared an absence on one of the
	// activity's slots.
	BlockUnavailable
	// BlockSameGame: the player already plays another session of the same
	// game.
	BlockSameGame
	// BlockConstraint: accepting would violate a temporal constraint the
	// player opted into.
	BlockConstraint
	// BlockOrganizerRefused: an organizer blacklist forbids the pairing, in
	// either direction.
	BlockOrganizerRefused
	// BlockCapacity: the activity is full.
	BlockCapacity
	// BlockBlacklist: a blacklisted co-player is already part of the cast.
	BlockBlacklist
)

// ConflictEngine decides which activities are currently infeasible for a
// player. It is a pure function of (player, assignment) over the immutable
// roster: nothing is cached, so it must be re-consulted after every
// assignment mutation.
type ConflictEngine struct {
	roster *entities.Roster
}

func NewConflictEngine(roster *entities.Roster) *ConflictEngine {
	return &ConflictEngine{roster: roster}
}

// Infeasible returns the set of activities the player cannot join given the
// current assignment.
func (e *ConflictEngine) Infeasible(p *entities.Player, asg *entities.Assignment) map[uint]struct{} {
	out := map[uint]struct{}{}
	for _, a := range e.roster.Activities {
		if e.Blocked(p, a, asg) != BlockNone {
			out[a.ID] = struct{}{}
		}
	}
	return out
}

// Blocked checks every infeasibility clause for one (player, activity) pair.
func (e *ConflictEngine) Blocked(p *entities.Player, a *entities.Activity, asg *entities.Assignment) BlockReason {
	if r := e.ScheduleBlocked(p, a, asg); r != BlockNone {
		return r
	}
	if asg.ParticipantCount(a.ID) >= a.Capacity {
		return BlockCapacity
	}
	if e.BlacklistBlocked(p, a, asg) {
		return BlockBlacklist
	}
	return BlockNone
}

// ScheduleBlocked checks the clauses that do not depend on who else competes
// for the activity: slot overlaps, declared absences, other sessions of the
// same game, temporal constraints and organizer blacklists. A wish blocked
// here is reported as unavailable rather than refused.
func (e *ConflictEngine) ScheduleBlocked(p *entities.Player, a *entities.Activity, asg *entities.Assignment) BlockReason {
	for _, s := range a.Slots {
		if p.IsUnavailable(s) {
			return BlockUnavailable
		}
	}
	if a.OverlapsAny(e.occupiedSlots(p, asg)) {
		return BlockOverlap
	}
	if e.sameGamePlayed(p, a, asg) {
		return BlockSameGame
	}
	if e.organizerRefused(p, a) {
		return BlockOrganizerRefused
	}
	if e.constraintBlocked(p, a, asg) {
		return BlockConstraint
	}
	return BlockNone
}

// BlacklistBlocked reports whether a blacklisted co-player already belongs to
// the activity's cast. The check runs both ways: either player refusing the
// other is enough.
func (e *ConflictEngine) BlacklistBlocked(p *entities.Player, a *entities.Activity, asg *entities.Assignment) bool {
	for _, other := range asg.ParticipantsOf(a.ID) {
		if p.Refuses(other) {
			return true
		}
		if o, ok := e.roster.Player(other); ok && o.Refuses(p.ID) {
			return true
		}
	}
	return false
}

// sameGamePlayed reports whether the player already plays another session of
// the same game. A game organized several times appears as several activities
// sharing a name; a player may wish all of them but play at most one.
func (e *ConflictEngine) sameGamePlayed(p *entities.Player, a *entities.Activity, asg *entities.Assignment) bool {
	for _, id := range asg.ActivitiesOf(p.ID) {
		if id == a.ID {
			continue
		}
		if other, ok := e.roster.Activity(id); ok && other.Name == a.Name {
			return true
		}
	}
	return false
}

// occupiedSlots collects every slot the player currently plays or organizes.
func (e *ConflictEngine) occupiedSlots(p *entities.Player, asg *entities.Assignment) []entities.TimeSlot {
	var slots []entities.TimeSlot
	for _, id := range asg.ActivitiesOf(p.ID) {
		if a, ok := e.roster.Activity(id); ok {
			slots = append(slots, a.Slots...)
		}
	}
	for _, id := range p.Organizing {
		if a, ok := e.roster.Activity(id); ok {
			slots = append(slots, a.Slots...)
		}
	}
	return slots
}

func (e *ConflictEngine) organizerRefused(p *entities.Player, a *entities.Activity) bool {
	for _, orga := range a.Organizers {
		if _, refused := p.RefuseOrganizedBy[orga]; refused {
			return true
		}
		if o, ok := e.roster.Player(orga); ok {
			if _, refused := o.RefuseOrganizeFor[p.ID]; refused {
				return true
			}
		}
	}
	return false
}

// constraintBlocked simulates accepting the activity and checks the player's
// opted-in temporal constraints against the resulting schedule.
func (e *ConflictEngine) constraintBlocked(p *entities.Player, a *entities.Activity, asg *entities.Assignment) bool {
	playedDays := map[int]bool{}
	var playedSlots []entities.TimeSlot
	for _, id := range asg.ActivitiesOf(p.ID) {
		act, ok := e.roster.Activity(id)
		if !ok {
			continue
		}
		playedSlots = append(playedSlots, act.Slots...)
		for _, d := range act.Days() {
			playedDays[d] = true
		}
	}

	if p.Has(entities.NoTwoSameDay) {
		for _, d := range a.Days() {
			if playedDays[d] {
				return true
			}
		}
	}

	if p.Has(entities.NoPlayOrgaSameDay) {
		orgaDays := map[int]bool{}
		for _, id := range p.Organizing {
			if act, ok := e.roster.Activity(id); ok {
				for _, d := range act.Days() {
					orgaDays[d] = true
				}
			}
		}
		for _, d := range a.Days() {
			if orgaDays[d] {
				return true
			}
		}
	}

	if p.Has(entities.NoNightThenMorning) {
		for _, s := range a.Slots {
			for _, t := range playedSlots {
				if t.BeforeMorning(s) || s.BeforeMorning(t) {
					return true
				}
			}
		}
	}

	limit := 0
	switch {
	case p.Has(entities.NoTwoConsecutiveDays):
		limit = 1
	case p.Has(entities.NoThreeConsecutiveDays):
		limit = 2
	case p.Has(entities.NoFourConsecutiveDays):
		limit = 3
	}
	if limit > 0 {
		union := map[int]bool{}
		for d := range playedDays {
			union[d] = true
		}
		for _, d := range a.Days() {
			union[d] = true
		}
		if longestRun(union) > limit {
			return true
		}
	}

	return false
}

// longestRun returns the length of the longest streak of consecutive days.
func longestRun(days map[int]bool) int {
	best := 0
	for d := range days {
		if days[d-1] {
			continue // not the start of a streak
		}
		n := 0
		for days[d+n] {
			n++
		}
		if n > best {
			best = n
		}
	}
	return best
}
