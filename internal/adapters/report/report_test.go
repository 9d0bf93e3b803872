package report

import (
	"strings"
	"testing"
	"time"

	"castmatch/internal/application"
	"castmatch/internal/domain/entities"
	"castmatch/internal/infrastructure/i18n"
)

func fixture(t *testing.T) (*entities.Roster, *entities.MatchResult) {
	t.Helper()
	murder := &entities.Activity{ID: 1, Name: "Murder", Capacity: 3,
		Slots: []entities.TimeSlot{{Day: 1, Part: entities.Evening}}, Organizers: []uint{3}}
	fresque := &entities.Activity{ID: 2, Name: "Fresque", Capacity: 2,
		Slots: []entities.TimeSlot{{Day: 2, Part: entities.Afternoon}}}

	anna := &entities.Player{ID: 1, Name: "Anna", Ideal: 1, Max: 2, Wishes: []uint{1, 2}}
	bertrand := &entities.Player{ID: 2, Name: "Bertrand", Ideal: 2, Max: 2, Wishes: []uint{2}}
	chloe := &entities.Player{ID: 3, Name: "Chloé", Ideal: 0, Max: 0}

	roster, err := entities.NewRoster(
		[]*entities.Player{anna, bertrand, chloe},
		[]*entities.Activity{murder, fresque})
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}

	opts := application.DefaultOptions()
	opts.TieBreak = application.TieBreakInputOrder
	result, err := application.NewMatcher(roster, opts).Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return roster, result
}

func newTestRenderer(locale string) *Renderer {
	r := NewRenderer(i18n.NewTranslator("fr"), locale)
	r.now = func() time.Time { return time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC) }
	return r
}

func TestRenderReport(t *testing.T) {
	roster, result := fixture(t)
	out := newTestRenderer("fr").Render(roster, result)

	for _, want := range []string{
		"01/08/2026",                // header timestamp, Paris time
		"Anna", "Bertrand", "Chloé", // every player appears
		"Murder", "Fresque", // every activity appears
		"Activités attribuées",      // players section header
		"Activités et leur casting", // activities section header
		"Il manque encore",          // under-filled activity warning
		"à l'idéal",                 // summary line
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "borne de sécurité") {
		t.Error("converged result must not carry the non-convergence warning")
	}
}

func TestRenderReportEnglish(t *testing.T) {
	roster, result := fixture(t)
	out := newTestRenderer("en").Render(roster, result)
	if !strings.Contains(out, "Activities and their cast:") {
		t.Errorf("English report not localized:\n%s", out)
	}
}

func TestRenderNotConverged(t *testing.T) {
	roster, result := fixture(t)
	result.Converged = false
	result.PassesMax = 50

	out := newTestRenderer("fr").Render(roster, result)
	if !strings.Contains(out, "borne de sécurité") || !strings.Contains(out, "50") {
		t.Errorf("non-convergence warning missing:\n%s", out)
	}
}

func TestRenderDiff(t *testing.T) {
	roster, _ := fixture(t)

	ref := entities.NewAssignment()
	ref.Assign(1, 1)
	other := entities.NewAssignment()
	other.Assign(2, 1)

	out := newTestRenderer("fr").RenderDiff(roster, application.Compare(ref, other))
	if !strings.Contains(out, "+ Bertrand (ajouté)") {
		t.Errorf("diff missing the added player:\n%s", out)
	}
	if !strings.Contains(out, "- Anna (retiré)") {
		t.Errorf("diff missing the removed player:\n%s", out)
	}
	if !strings.Contains(out, "Murder") {
		t.Errorf("diff missing the activity name:\n%s", out)
	}
}
