package entities

import (
	"fmt"

	"castmatch/internal/domain"
)

// Roster is the validated, immutable input of the matching engine: every
// activity and player of the festival, with all cross-references resolved.
// Construction is the single validation point; a Roster that exists is sound.
type Roster struct {
	Players    []*Player
	Activities []*Activity

	playerByID   map[uint]*Player
	activityByID map[uint]*Activity
}

// NewRoster builds a roster and checks every invariant the matcher relies
// on. Player.Organizing is derived here from the activities' organizer lists,
// so callers only declare organizers once.
func NewRoster(players []*Player, activities []*Activity) (*Roster, error) {
	r := &Roster{
		Players:      players,
		Activities:   activities,
		playerByID:   make(map[uint]*Player, len(players)),
		activityByID: make(map[uint]*Activity, len(activities)),
	}

	for _, a := range activities {
		if _, dup := r.activityByID[a.ID]; dup {
			return nil, domain.NewValidationError(entityName("activité", a.Name, a.ID), "id", "identifiant en double (%d)", a.ID)
		}
		r.activityByID[a.ID] = a
	}
	for _, p := range players {
		if _, dup := r.playerByID[p.ID]; dup {
			return nil, domain.NewValidationError(entityName("joueur", p.Name, p.ID), "id", "identifiant en double (%d)", p.ID)
		}
		r.playerByID[p.ID] = p
	}

	for _, a := range activities {
		if err := r.validateActivity(a); err != nil {
			return nil, err
		}
	}
	for _, p := range players {
		if err := r.validatePlayer(p); err != nil {
			return nil, err
		}
	}

	r.populateOrganizing()
	return r, nil
}

func entityName(kind, name string, id uint) string {
	if name == "" {
		return fmt.Sprintf("%s %d", kind, id)
	}
	return fmt.Sprintf("%s %q", kind, name)
}

func (r *Roster) validateActivity(a *Activity) error {
	name := entityName("activité", a.Name, a.ID)
	if a.Capacity < 0 {
		return domain.NewValidationError(name, "capacity", "la capacité ne peut pas être négative (%d)", a.Capacity)
	}
	if len(a.Slots) == 0 {
		return domain.NewValidationError(name, "slots", "une activité doit occuper au moins un créneau")
	}
	for i, s := range a.Slots {
		for _, t := range a.Slots[:i] {
			if s.Overlaps(t) {
				return domain.NewValidationError(name, "slots", "créneau en double (%s)", s)
			}
		}
	}
	for _, orga := range a.Organizers {
		if _, ok := r.playerByID[orga]; !ok {
			return domain.NewValidationError(name, "organizers", "organisateur inconnu (joueur %d)", orga)
		}
	}
	return nil
}

func (r *Roster) validatePlayer(p *Player) error {
	name := entityName("joueur", p.Name, p.ID)
	if p.Ideal < 0 {
		return domain.NewValidationError(name, "ideal", "le nombre idéal d'activités ne peut pas être négatif (%d)", p.Ideal)
	}
	if p.Ideal > p.Max {
		return domain.NewValidationError(name, "ideal", "le nombre idéal d'activités (%d) dépasse le maximum (%d)", p.Ideal, p.Max)
	}
	for i, w := range p.Wishes {
		if _, ok := r.activityByID[w]; !ok {
			return domain.NewValidationError(name, "wishes", "vœu n°%d: activité inconnue (%d)", i+1, w)
		}
		for _, prev := range p.Wishes[:i] {
			if prev == w {
				return domain.NewValidationError(name, "wishes", "vœu n°%d: activité en double (%d)", i+1, w)
			}
		}
	}
	for other := range p.Blacklist {
		if _, ok := r.playerByID[other]; !ok {
			return domain.NewValidationError(name, "blacklist", "joueur inconnu (%d)", other)
		}
	}
	for other := range p.RefuseOrganizedBy {
		if _, ok := r.playerByID[other]; !ok {
			return domain.NewValidationError(name, "dont_be_organized_by", "joueur inconnu (%d)", other)
		}
	}
	for other := range p.RefuseOrganizeFor {
		if _, ok := r.playerByID[other]; !ok {
			return domain.NewValidationError(name, "dont_organize_for", "joueur inconnu (%d)", other)
		}
	}
	return nil
}

// populateOrganizing rebuilds every player's Organizing list from the
// activities, keeping the activities as the single source of truth.
func (r *Roster) populateOrganizing() {
	for _, p := range r.Players {
		p.Organizing = nil
	}
	for _, a := range r.Activities {
		for _, orga := range a.Organizers {
			p := r.playerByID[orga]
			p.Organizing = append(p.Organizing, a.ID)
		}
	}
}

// Player looks a player up by ID.
func (r *Roster) Player(id uint) (*Player, bool) {
	p, ok := r.playerByID[id]
	return p, ok
}

// Activity looks an activity up by ID.
func (r *Roster) Activity(id uint) (*Activity, bool) {
	a, ok := r.activityByID[id]
	return a, ok
}

// PlayerByName returns the first player with the given name, as the
// inscription files reference players by name.
func (r *Roster) PlayerByName(name string) (*Player, bool) {
	for _, p := range r.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ActivityByName returns the first activity with the given name.
func (r *Roster) ActivityByName(name string) (*Activity, bool) {
	for _, a := range r.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// ActivitiesByName returns every session of the given game, in roster order.
// A game organized several times appears as several activities sharing a
// name.
func (r *Roster) ActivitiesByName(name string) []*Activity {
	var out []*Activity
	for _, a := range r.Activities {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}
