// Package report renders a matching result as text, for the console or for a
// post-mortem file. Output goes through the translator so organizers can
// share it in the locale of their choice.
package report

import (
	"fmt"
	"strings"
	"time"

	"castmatch/internal/application"
	"castmatch/internal/domain"
	"castmatch/internal/domain/entities"
	"castmatch/internal/ports/output"
	"castmatch/pkg/tz"
)

// Renderer builds the text reports.
type Renderer struct {
	translator output.T
	locale     string
	now        func() time.Time
}

func NewRenderer(translator output.T, locale string) *Renderer {
	return &Renderer{translator: translator, locale: locale, now: time.Now}
}

// Render writes the full report: header, one section per player, one section
// per activity, then the summary line.
func (r *Renderer) Render(roster *entities.Roster, result *entities.MatchResult) string {
	var b strings.Builder

	b.WriteString(r.t("report.title", map[string]any{"Date": tz.Stamp(r.now())}))
	b.WriteString("\n\n")

	if !result.Converged {
		passes := result.PassesIdeal
		if result.PassesMax > passes {
			passes = result.PassesMax
		}
		b.WriteString(r.t("report.not_converged", map[string]any{"Passes": passes}))
		b.WriteString("\n\n")
	}

	r.renderPlayers(&b, roster, result)
	b.WriteString("\n")
	r.renderActivities(&b, roster, result)
	b.WriteString("\n")
	r.renderSummary(&b, roster, result)

	return b.String()
}

func (r *Renderer) renderPlayers(b *strings.Builder, roster *entities.Roster, result *entities.MatchResult) {
	b.WriteString(r.t("report.players_header", nil))
	b.WriteString("\n")
	for _, p := range roster.Players {
		b.WriteString("* ")
		b.WriteString(r.t("report.player_line", map[string]any{
			"Name":  p.Name,
			"Count": result.Assignment.Count(p.ID),
			"Ideal": p.Ideal,
			"Max":   p.Max,
		}))
		b.WriteString("\n")

		b.WriteString("  " + r.t("report.wishes_header", nil) + "\n")
		for _, offer := range result.Offers[p.ID] {
			a, ok := roster.Activity(offer.ActivityID)
			if !ok {
				continue
			}
			fmt.Fprintf(b, "    - %s (n°%d) : %s\n", a.Name, offer.Rank, r.status(offer.Status))
		}

		if len(p.Organizing) > 0 {
			b.WriteString("  " + r.t("report.organizing_header", nil) + "\n")
			for _, id := range p.Organizing {
				if a, ok := roster.Activity(id); ok {
					fmt.Fprintf(b, "    - %s | %s\n", a.Name, slotLine(a))
				}
			}
		}
	}
}

func (r *Renderer) renderActivities(b *strings.Builder, roster *entities.Roster, result *entities.MatchResult) {
	b.WriteString(r.t("report.activities_header", nil))
	b.WriteString("\n")
	for _, a := range roster.Activities {
		cast := result.Assignment.ParticipantsOf(a.ID)
		b.WriteString("* ")
		b.WriteString(r.t("report.activity_line", map[string]any{
			"Name":     a.Name,
			"Count":    len(cast),
			"Capacity": a.Capacity,
		}))
		fmt.Fprintf(b, " | %s\n", slotLine(a))
		for _, id := range cast {
			if p, ok := roster.Player(id); ok {
				fmt.Fprintf(b, "  - %s\n", p.Name)
			}
		}
		if missing := a.Capacity - len(cast); missing > 0 {
			b.WriteString("  " + r.t("report.activity_missing", map[string]any{"Count": missing}) + "\n")
		}
	}
}

func (r *Renderer) renderSummary(b *strings.Builder, roster *entities.Roster, result *entities.MatchResult) {
	below, atIdeal, above := 0, 0, 0
	for _, p := range roster.Players {
		switch n := result.Assignment.Count(p.ID); {
		case n < p.Ideal:
			below++
		case n == p.Ideal:
			atIdeal++
		default:
			above++
		}
	}
	b.WriteString(r.t("report.summary", map[string]any{
		"Below":   below,
		"AtIdeal": atIdeal,
		"Above":   above,
	}))
	b.WriteString("\n")
}

// RenderDiff formats the comparison of two assignments: one line per changed
// activity with +added and -removed players.
func (r *Renderer) RenderDiff(roster *entities.Roster, deltas []application.ActivityDelta) string {
	var b strings.Builder
	for _, delta := range deltas {
		a, ok := roster.Activity(delta.ActivityID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "* %s\n", a.Name)
		for _, id := range delta.Added {
			if p, ok := roster.Player(id); ok {
				fmt.Fprintf(&b, "  + %s (%s)\n", p.Name, r.t("diff.added", nil))
			}
		}
		for _, id := range delta.Removed {
			if p, ok := roster.Player(id); ok {
				fmt.Fprintf(&b, "  - %s (%s)\n", p.Name, r.t("diff.removed", nil))
			}
		}
	}
	return b.String()
}

func (r *Renderer) status(status string) string {
	switch status {
	case domain.StatusAssigned, domain.StatusRefused, domain.StatusUnavailable, domain.StatusOrganizing:
		return r.t("status."+status, nil)
	default:
		return status
	}
}

func (r *Renderer) t(key string, data map[string]any) string {
	return r.translator.T(r.locale, key, data)
}

func slotLine(a *entities.Activity) string {
	parts := make([]string, 0, len(a.Slots))
	for _, s := range a.Slots {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
