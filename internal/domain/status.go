package domain

// Offer statuses. Every wish a player submitted ends up with exactly one of
// these in the final result.
const (
	// StatusAssigned: the player is part of the activity's cast.
	StatusAssigned = "assigned"
	// StatusRefused: the wish was feasible but lost to capacity or to a
	// blacklist conflict with an accepted participant.
	StatusRefused = "refused"
	// StatusUnavailable: the wish could never be granted (slot overlap,
	// declared absence, temporal constraint, organizer blacklist).
	StatusUnavailable = "unavailable"
	// StatusOrganizing: the player organizes this activity and therefore
	// cannot play it.
	StatusOrganizing = "organizing"
)
