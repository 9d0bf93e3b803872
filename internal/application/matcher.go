package application

import (
	"math/rand"

	"castmatch/internal/domain"
	"castmatch/internal/domain/entities"
)

// Options configures a matching run.
type Options struct {
	// IdealBeforeMax runs the ideal-count phase before relaxing to the
	// maximum count. When false, a single phase targets the maximum
	// directly.
	IdealBeforeMax bool
	// MaxPassesPerPhase bounds each phase. Reaching it is not an error: the
	// partial result is returned with Converged set to false.
	MaxPassesPerPhase int
	// Seed feeds the tiebreak generator. Identical inputs and seed yield an
	// identical assignment.
	Seed int64
	// TieBreak selects the tie-break policy for over-subscribed activities.
	TieBreak TieBreakPolicy
}

// DefaultOptions mirrors the engine's documented defaults.
func DefaultOptions() Options {
	return Options{
		IdealBeforeMax:    true,
		MaxPassesPerPhase: 50,
		TieBreak:          TieBreakRandomPerPass,
	}
}

// Matcher drives the pass runner through the two ordered phases until each
// reaches a fixpoint or its safety bound, then derives the per-wish statuses.
type Matcher struct {
	roster    *entities.Roster
	opts      Options
	conflicts *ConflictEngine
	runner    *PassRunner
}

func NewMatcher(roster *entities.Roster, opts Options) *Matcher {
	if opts.MaxPassesPerPhase <= 0 {
		opts.MaxPassesPerPhase = DefaultOptions().MaxPassesPerPhase
	}
	conflicts := NewConflictEngine(roster)
	return &Matcher{
		roster:    roster,
		opts:      opts,
		conflicts: conflicts,
		runner:    NewPassRunner(roster, conflicts, opts.TieBreak),
	}
}

// Run executes the matching. initial may carry pre-locked acceptances (forced
// casts, or a previous result fed back in); nil starts from an empty
// assignment. The returned assignment is frozen.
func (m *Matcher) Run(initial *entities.Assignment) (*entities.MatchResult, error) {
	asg := entities.NewAssignment()
	if initial != nil {
		if err := m.validateInitial(initial); err != nil {
			return nil, err
		}
		asg = initial.Clone()
	}

	rng := rand.New(rand.NewSource(m.opts.Seed))
	converged := true

	var passesIdeal, passesMax int
	if m.opts.IdealBeforeMax {
		targetIdeal := func(p *entities.Player) int { return p.Ideal }
		var ok bool
		asg, passesIdeal, ok = m.runPhase(asg, targetIdeal, rng)
		converged = converged && ok

		// Phase 2 is strictly additive: players who fell short of their
		// ideal stay capped at their phase-1 result.
		reached := make(map[uint]int, len(m.roster.Players))
		for _, p := range m.roster.Players {
			reached[p.ID] = asg.Count(p.ID)
		}
		targetMax := func(p *entities.Player) int {
			if reached[p.ID] >= p.Ideal {
				return p.Max
			}
			return reached[p.ID]
		}
		asg, passesMax, ok = m.runPhase(asg, targetMax, rng)
		converged = converged && ok
	} else {
		targetMax := func(p *entities.Player) int { return p.Max }
		var ok bool
		asg, passesMax, ok = m.runPhase(asg, targetMax, rng)
		converged = converged && ok
	}

	asg.Freeze()
	return &entities.MatchResult{
		Assignment:  asg,
		Offers:      m.offers(asg),
		Converged:   converged,
		PassesIdeal: passesIdeal,
		PassesMax:   passesMax,
	}, nil
}

// runPhase loops passes until one adds nothing (fixpoint) or the safety
// bound is hit. Returns the assignment, the pass count and whether the phase
// converged.
func (m *Matcher) runPhase(asg *entities.Assignment, target TargetFn, rng *rand.Rand) (*entities.Assignment, int, bool) {
	for pass := 1; pass <= m.opts.MaxPassesPerPhase; pass++ {
		next, added := m.runner.RunPass(asg, target, rng)
		asg = next
		if added == 0 {
			return asg, pass, true
		}
	}
	// The bound was reached with the last pass still making progress.
	return asg, m.opts.MaxPassesPerPhase, false
}

// validateInitial rejects a pre-locked assignment that already breaks the
// structural invariants the engine must preserve.
func (m *Matcher) validateInitial(initial *entities.Assignment) error {
	for _, id := range initial.ActivityIDs() {
		a, ok := m.roster.Activity(id)
		if !ok {
			return domain.NewValidationError("affectation initiale", "activity", "activité inconnue (%d)", id)
		}
		if n := initial.ParticipantCount(id); n > a.Capacity {
			return domain.NewValidationError(
				"affectation initiale", "capacity",
				"l'activité %q dépasse sa capacité (%d > %d)", a.Name, n, a.Capacity)
		}
	}
	for _, id := range initial.PlayerIDs() {
		p, ok := m.roster.Player(id)
		if !ok {
			return domain.NewValidationError("affectation initiale", "player", "joueur inconnu (%d)", id)
		}
		if n := initial.Count(id); n > p.Max {
			return domain.NewValidationError(
				"affectation initiale", "max",
				"le joueur %q dépasse son maximum (%d > %d)", p.Name, n, p.Max)
		}
	}
	return nil
}

// offers derives the final status of every wish against the frozen
// assignment.
func (m *Matcher) offers(asg *entities.Assignment) map[uint][]entities.Offer {
	out := make(map[uint][]entities.Offer, len(m.roster.Players))
	for _, p := range m.roster.Players {
		offers := make([]entities.Offer, 0, len(p.Wishes))
		for i, wishID := range p.Wishes {
			offers = append(offers, entities.Offer{
				ActivityID: wishID,
				Status:     m.wishStatus(p, wishID, asg),
				Rank:       i + 1,
			})
		}
		out[p.ID] = offers
	}
	return out
}

func (m *Matcher) wishStatus(p *entities.Player, wishID uint, asg *entities.Assignment) string {
	if asg.Has(p.ID, wishID) {
		return domain.StatusAssigned
	}
	if p.OrganizerOf(wishID) {
		return domain.StatusOrganizing
	}
	a, ok := m.roster.Activity(wishID)
	if !ok {
		return domain.StatusUnavailable
	}
	if m.conflicts.ScheduleBlocked(p, a, asg) != BlockNone {
		return domain.StatusUnavailable
	}
	// Feasible schedule-wise but never obtained: lost to capacity or to a
	// blacklist conflict.
	return domain.StatusRefused
}
