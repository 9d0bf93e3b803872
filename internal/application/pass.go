package application

import (
	"math/rand"

	"castmatch/internal/domain/entities"
)

// TieBreakPolicy decides how players tied on held-count and wish rank are
// ordered when an activity must reject some proposals.
type TieBreakPolicy int

const (
	// TieBreakRandomPerPass draws one uniform permutation per pass from the
	// injected generator.
	TieBreakRandomPerPass TieBreakPolicy = iota
	// TieBreakInputOrder keeps the roster's player order. Useful for tests
	// and for auditable reruns.
	TieBreakInputOrder
)

// TargetFn gives the per-player assignment target for a pass. Phase 1 uses
// the ideal count, phase 2 the maximum.
type TargetFn func(*entities.Player) int

// PassRunner executes one deferred-acceptance allocation round, in the
// hospital/resident style: players propose down their wish list, activities
// keep the best proposals within remaining capacity and reject the rest,
// rejected players immediately re-propose, until no proposal is pending.
//
// A pass only ever adds acceptances on top of the incoming assignment: it can
// bump its own provisional acceptances while it runs, never an acceptance
// from a previous pass. The incoming assignment is cloned and the result
// committed atomically to the caller.
type PassRunner struct {
	roster    *entities.Roster
	conflicts *ConflictEngine
	tieBreak  TieBreakPolicy
}

func NewPassRunner(roster *entities.Roster, conflicts *ConflictEngine, tieBreak TieBreakPolicy) *PassRunner {
	return &PassRunner{roster: roster, conflicts: conflicts, tieBreak: tieBreak}
}

type acceptance struct {
	playerID   uint
	activityID uint
}

// RunPass runs one round and returns the updated assignment plus the number
// of acceptances it added. rng is scoped to the pass: the tiebreak
// permutation is drawn from it up front.
func (r *PassRunner) RunPass(asg *entities.Assignment, target TargetFn, rng *rand.Rand) (*entities.Assignment, int) {
	working := asg.Clone()

	tiebreak := make(map[uint]int, len(r.roster.Players))
	switch r.tieBreak {
	case TieBreakRandomPerPass:
		perm := rng.Perm(len(r.roster.Players))
		for i, p := range r.roster.Players {
			tiebreak[p.ID] = perm[i]
		}
	default:
		for i, p := range r.roster.Players {
			tiebreak[p.ID] = i
		}
	}

	rejected := make(map[uint]map[uint]bool, len(r.roster.Players))
	rejectedThisPass := func(playerID, activityID uint) bool {
		return rejected[playerID][activityID]
	}
	reject := func(playerID, activityID uint) {
		if rejected[playerID] == nil {
			rejected[playerID] = map[uint]bool{}
		}
		rejected[playerID][activityID] = true
	}

	// Provisional acceptances of this pass, per activity. Only these can be
	// bumped when a better proposal arrives.
	holders := map[uint][]uint{}
	var accepted []acceptance

	queue := make([]uint, 0, len(r.roster.Players))
	for _, p := range r.roster.Players {
		if working.Count(p.ID) < target(p) && len(p.Wishes) > 0 {
			queue = append(queue, p.ID)
		}
	}

	for len(queue) > 0 {
		playerID := queue[0]
		queue = queue[1:]

		p, ok := r.roster.Player(playerID)
		if !ok || working.Count(playerID) >= target(p) {
			continue
		}

		a := r.bestProposal(p, working, rejectedThisPass)
		if a == nil {
			continue // exhausted every feasible wish for this pass
		}

		if working.ParticipantCount(a.ID) < a.Capacity {
			working.Assign(p.ID, a.ID)
			holders[a.ID] = append(holders[a.ID], p.ID)
			accepted = append(accepted, acceptance{p.ID, a.ID})
			queue = append(queue, p.ID)
			continue
		}

		// The activity is full. Prior-pass participants are untouchable, so
		// the contest is between p and this pass's provisional holders.
		worst := r.worstHolder(holders[a.ID], a.ID, working, tiebreak)
		if worst == nil || !r.outranks(p, worst, a.ID, working, tiebreak) {
			reject(p.ID, a.ID)
			queue = append(queue, p.ID)
			continue
		}

		working.Unassign(worst.ID, a.ID)
		holders[a.ID] = removeID(holders[a.ID], worst.ID)
		accepted = removeAcceptance(accepted, worst.ID, a.ID)
		reject(worst.ID, a.ID)

		working.Assign(p.ID, a.ID)
		holders[a.ID] = append(holders[a.ID], p.ID)
		accepted = append(accepted, acceptance{p.ID, a.ID})
		queue = append(queue, worst.ID, p.ID)
	}

	added := r.finalSweep(working, accepted)
	return working, added
}

// bestProposal returns the highest-ranked wish the player can propose to
// right now, or nil when none remains. Capacity is deliberately not checked
// here: a full activity may still accept the proposal by bumping a
// provisional holder.
func (r *PassRunner) bestProposal(p *entities.Player, working *entities.Assignment, rejectedThisPass func(uint, uint) bool) *entities.Activity {
	for _, wishID := range p.Wishes {
		if working.Has(p.ID, wishID) || rejectedThisPass(p.ID, wishID) {
			continue
		}
		a, ok := r.roster.Activity(wishID)
		if !ok || a.Capacity == 0 {
			continue
		}
		if r.conflicts.ScheduleBlocked(p, a, working) != BlockNone {
			continue
		}
		if r.conflicts.BlacklistBlocked(p, a, working) {
			continue
		}
		return a
	}
	return nil
}

// worstHolder returns the provisional holder an incoming proposal would have
// to beat, i.e. the lowest-priority one.
func (r *PassRunner) worstHolder(holderIDs []uint, activityID uint, working *entities.Assignment, tiebreak map[uint]int) *entities.Player {
	var worst *entities.Player
	for _, id := range holderIDs {
		h, ok := r.roster.Player(id)
		if !ok {
			continue
		}
		if worst == nil || r.outranks(worst, h, activityID, working, tiebreak) {
			worst = h
		}
	}
	return worst
}

// outranks reports whether p has priority over q for the activity. The key,
// in order: fewer currently-held activities (the contested seat excluded),
// better wish rank, then the pass's tiebreak permutation.
func (r *PassRunner) outranks(p, q *entities.Player, activityID uint, working *entities.Assignment, tiebreak map[uint]int) bool {
	pCount := heldExcluding(working, p.ID, activityID)
	qCount := heldExcluding(working, q.ID, activityID)
	if pCount != qCount {
		return pCount < qCount
	}
	pRank, _ := p.Rank(activityID)
	qRank, _ := q.Rank(activityID)
	if pRank != qRank {
		return pRank < qRank
	}
	return tiebreak[p.ID] < tiebreak[q.ID]
}

func heldExcluding(working *entities.Assignment, playerID, activityID uint) int {
	n := working.Count(playerID)
	if working.Has(playerID, activityID) {
		n--
	}
	return n
}

// finalSweep re-checks every acceptance of this pass against the stabilized
// assignment and drops the ones the pass's own acceptances made infeasible.
// The incremental bookkeeping above keeps the assignment consistent, so this
// normally drops nothing; it is the pass's last line of defense. Returns the
// number of acceptances that survived.
func (r *PassRunner) finalSweep(working *entities.Assignment, accepted []acceptance) int {
	kept := 0
	for _, acc := range accepted {
		p, okP := r.roster.Player(acc.playerID)
		a, okA := r.roster.Activity(acc.activityID)
		if !okP || !okA {
			continue
		}
		working.Unassign(acc.playerID, acc.activityID)
		if r.conflicts.Blocked(p, a, working) != BlockNone {
			continue // stays dropped
		}
		working.Assign(acc.playerID, acc.activityID)
		kept++
	}
	return kept
}

func removeID(ids []uint, id uint) []uint {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeAcceptance(accs []acceptance, playerID, activityID uint) []acceptance {
	for i, acc := range accs {
		if acc.playerID == playerID && acc.activityID == activityID {
			return append(accs[:i:i], accs[i+1:]...)
		}
	}
	return accs
}
