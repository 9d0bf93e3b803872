package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"castmatch/internal/domain"
	"castmatch/internal/domain/entities"
)

var resultHeader = []string{"player", "activity", "status", "rank"}

// WriteResult exports every offer of the result, one row per (player, wish).
// Rows follow the roster's player order and each player's wish order, so two
// identical runs produce byte-identical files.
func WriteResult(w io.Writer, roster *entities.Roster, result *entities.MatchResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultHeader); err != nil {
		return fmt.Errorf("écriture de l'en-tête: %w", err)
	}
	for _, p := range roster.Players {
		for _, offer := range result.Offers[p.ID] {
			a, ok := roster.Activity(offer.ActivityID)
			if !ok {
				continue
			}
			row := []string{p.Name, a.Name, offer.Status, strconv.Itoa(offer.Rank)}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("écriture d'une ligne: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteResultFile is WriteResult to a file path.
func WriteResultFile(path string, roster *entities.Roster, result *entities.MatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("création de %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(f, roster, result)
}

// ReadAssignment rebuilds an assignment from a result file, keeping only the
// assigned rows. Used to diff two runs against the same roster.
func ReadAssignment(r io.Reader, roster *entities.Roster) (*entities.Assignment, error) {
	rows, err := readRecords(r, resultHeader)
	if err != nil {
		return nil, err
	}
	asg := entities.NewAssignment()
	for _, row := range rows {
		if row["status"] != domain.StatusAssigned {
			continue
		}
		p, ok := roster.PlayerByName(row["player"])
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrPlayerNotFound, row["player"])
		}
		acts := roster.ActivitiesByName(row["activity"])
		if len(acts) == 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrActivityNotFound, row["activity"])
		}
		// The row names the game, not the session: take the first session
		// with a free seat, or the first one if all are full.
		a := acts[0]
		for _, s := range acts {
			if !asg.Has(p.ID, s.ID) && asg.ParticipantCount(s.ID) < s.Capacity {
				a = s
				break
			}
		}
		if err := asg.Assign(p.ID, a.ID); err != nil {
			return nil, err
		}
	}
	return asg, nil
}

// ReadAssignmentFile is ReadAssignment from a file path.
func ReadAssignmentFile(path string, roster *entities.Roster) (*entities.Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture de %s: %w", path, err)
	}
	defer f.Close()
	return ReadAssignment(f, roster)
}
