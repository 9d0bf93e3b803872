// Package csvio reads the inscription CSV files and writes the result files.
// It is glue around the engine: everything it produces goes through the
// roster constructor, which owns validation.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"castmatch/internal/domain"
	"castmatch/internal/domain/entities"
)

// Constraint labels accepted in the "constraints" column.
var constraintNames = map[string]entities.Constraint{
	"deux_meme_jour":            entities.NoTwoSameDay,
	"jouer_organiser_meme_jour": entities.NoPlayOrgaSameDay,
	"deux_jours_consecutifs":    entities.NoTwoConsecutiveDays,
	"trois_jours_consecutifs":   entities.NoThreeConsecutiveDays,
	"quatre_jours_consecutifs":  entities.NoFourConsecutiveDays,
	"soir_puis_matin":           entities.NoNightThenMorning,
}

// LoadRoster reads the two inscription files and builds a validated roster.
func LoadRoster(activitiesPath, playersPath string) (*entities.Roster, error) {
	af, err := os.Open(activitiesPath)
	if err != nil {
		return nil, fmt.Errorf("ouverture de %s: %w", activitiesPath, err)
	}
	defer af.Close()

	pf, err := os.Open(playersPath)
	if err != nil {
		return nil, fmt.Errorf("ouverture de %s: %w", playersPath, err)
	}
	defer pf.Close()

	return ReadRoster(af, pf)
}

// ReadRoster parses the activity and player CSV streams.
//
// activities.csv: name,capacity,slots,orgas
// players.csv: name,ideal,max,wishes,unavailable,constraints,
//
//	dont_play_with,dont_be_organized_by,dont_organize_for
//
// List columns use ";" as separator; slots are written "1 matin", "2 soir"…
// Wishes and organizers reference entities by name, resolved here to IDs.
//
// A game organized several times appears as several activity rows sharing a
// name, one per session. A wish then covers every session of that name and
// the engine picks at most one.
func ReadRoster(activities, players io.Reader) (*entities.Roster, error) {
	rawActs, err := readRecords(activities, []string{"name", "capacity", "slots", "orgas"})
	if err != nil {
		return nil, err
	}
	rawPlayers, err := readRecords(players, []string{
		"name", "ideal", "max", "wishes", "unavailable", "constraints",
		"dont_play_with", "dont_be_organized_by", "dont_organize_for",
	})
	if err != nil {
		return nil, err
	}

	playerIDs := map[string]uint{}
	var ps []*entities.Player
	for _, row := range rawPlayers {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		if _, dup := playerIDs[name]; dup {
			return nil, domain.NewValidationError(fmt.Sprintf("joueur %q", name), "name", "nom en double dans le fichier des joueurs")
		}
		p := &entities.Player{
			ID:                uint(len(ps) + 1),
			Name:              name,
			Blacklist:         map[uint]struct{}{},
			RefuseOrganizedBy: map[uint]struct{}{},
			RefuseOrganizeFor: map[uint]struct{}{},
			Constraints:       map[entities.Constraint]struct{}{},
		}
		if p.Max, err = parseCount(row["max"], name, "max"); err != nil {
			return nil, err
		}
		if v := strings.TrimSpace(row["ideal"]); v == "" {
			p.Ideal = p.Max
		} else if p.Ideal, err = parseCount(v, name, "ideal"); err != nil {
			return nil, err
		}
		if p.Unavailable, err = parseSlots(row["unavailable"]); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("joueur %q", name), "unavailable", "%v", err)
		}
		for _, label := range splitList(row["constraints"]) {
			c, ok := constraintNames[label]
			if !ok {
				return nil, domain.NewValidationError(fmt.Sprintf("joueur %q", name), "constraints", "contrainte inconnue (%q)", label)
			}
			p.Constraints[c] = struct{}{}
		}
		playerIDs[name] = p.ID
		ps = append(ps, p)
	}

	// One activity per row: rows sharing a name are distinct sessions of the
	// same game.
	sessions := map[string][]uint{}
	var acts []*entities.Activity
	for _, row := range rawActs {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(row["capacity"]))
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("activité %q", name), "capacity", "capacité invalide (%q)", row["capacity"])
		}
		slots, err := parseSlots(row["slots"])
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("activité %q", name), "slots", "%v", err)
		}
		a := &entities.Activity{
			ID:       uint(len(acts) + 1),
			Name:     name,
			Capacity: capacity,
			Slots:    slots,
		}
		for _, orga := range splitList(row["orgas"]) {
			id, ok := playerIDs[orga]
			if !ok {
				return nil, domain.NewValidationError(fmt.Sprintf("activité %q", name), "orgas", "organisateur inconnu (%q)", orga)
			}
			a.Organizers = append(a.Organizers, id)
		}
		sessions[name] = append(sessions[name], a.ID)
		acts = append(acts, a)
	}

	// Second pass: resolve the players' by-name references now that both
	// sides are numbered. A wish fans out to every session of the game.
	for _, row := range rawPlayers {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		p := ps[playerIDs[name]-1]
		for i, wish := range splitList(row["wishes"]) {
			ids, ok := sessions[wish]
			if !ok {
				return nil, domain.NewValidationError(fmt.Sprintf("joueur %q", name), "wishes", "vœu n°%d: activité inconnue (%q)", i+1, wish)
			}
			p.Wishes = append(p.Wishes, ids...)
		}
		refs := []struct {
			column string
			set    map[uint]struct{}
		}{
			{"dont_play_with", p.Blacklist},
			{"dont_be_organized_by", p.RefuseOrganizedBy},
			{"dont_organize_for", p.RefuseOrganizeFor},
		}
		for _, ref := range refs {
			for _, other := range splitList(row[ref.column]) {
				id, ok := playerIDs[other]
				if !ok {
					return nil, domain.NewValidationError(fmt.Sprintf("joueur %q", name), ref.column, "joueur inconnu (%q)", other)
				}
				ref.set[id] = struct{}{}
			}
		}
	}

	return entities.NewRoster(ps, acts)
}

// readRecords parses a CSV stream into one map per row, keyed by the expected
// header names. The header line must match exactly.
func readRecords(r io.Reader, header []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture de l'en-tête CSV: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(first[i]) != col {
			return nil, fmt.Errorf("en-tête CSV inattendu: colonne %d = %q, attendu %q", i+1, first[i], col)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lecture CSV: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseSlots reads a ";"-separated list of "day part" cells, e.g.
// "1 matin;1 après-midi".
func parseSlots(s string) ([]entities.TimeSlot, error) {
	var slots []entities.TimeSlot
	for _, cell := range splitList(s) {
		fields := strings.Fields(cell)
		if len(fields) != 2 {
			return nil, fmt.Errorf("créneau invalide (%q), attendu \"jour partie\"", cell)
		}
		day, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("jour invalide (%q)", fields[0])
		}
		part, ok := entities.ParsePart(fields[1])
		if !ok {
			return nil, fmt.Errorf("partie de journée inconnue (%q)", fields[1])
		}
		slots = append(slots, entities.TimeSlot{Day: day, Part: part})
	}
	return slots, nil
}

func parseCount(s, playerName, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError(fmt.Sprintf("joueur %q", playerName), field, "nombre invalide (%q)", s)
	}
	return n, nil
}
