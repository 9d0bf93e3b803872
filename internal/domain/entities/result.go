package entities

// Offer is the final verdict on one wish: the activity, the status it ended
// with and the preference rank the player gave it.
type Offer struct {
	ActivityID uint
	Status     string // one of the domain.Status* values
	Rank       int
}

// MatchResult is the engine's output: the frozen assignment, one offer per
// wished activity per player, and the convergence bookkeeping.
type MatchResult struct {
	Assignment *Assignment
	// Offers maps each player ID to their wishes, in wish order.
	Offers map[uint][]Offer
	// Converged is false when a phase stopped on its pass-count safety bound
	// instead of reaching a fixpoint. The result is still usable, just not
	// final-optimal.
	Converged bool
	// PassesIdeal and PassesMax count the passes each phase actually ran.
	PassesIdeal int
	PassesMax   int
}
