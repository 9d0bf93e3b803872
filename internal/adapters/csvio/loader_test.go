package csvio

import (
	"slices"
	"strings"
	"testing"

	"castmatch/internal/domain"
	"castmatch/internal/domain/entities"
)

const activitiesCSV = `name,capacity,slots,orgas
Murder,6,1 soir;1 nuit,Chloé
Fresque,8,2 après-midi,
Loup-garou,10,3 soir,Chloé
`

const activitiesNoOrgaCSV = `name,capacity,slots,orgas
Murder,6,1 soir,
`

const playersCSV = `name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for
Anna,1,2,Murder;Fresque,3 soir,deux_meme_jour;soir_puis_matin,Bertrand,,
Bertrand,,1,Fresque,,,,Chloé,
Chloé,0,0,,,,,,Anna
`

func TestReadRoster(t *testing.T) {
	roster, err := ReadRoster(strings.NewReader(activitiesCSV), strings.NewReader(playersCSV))
	if err != nil {
		t.Fatalf("ReadRoster: %v", err)
	}

	if len(roster.Activities) != 3 || len(roster.Players) != 3 {
		t.Fatalf("loaded %d activities, %d players; want 3 and 3", len(roster.Activities), len(roster.Players))
	}

	murder, ok := roster.ActivityByName("Murder")
	if !ok {
		t.Fatal("activity Murder not loaded")
	}
	if murder.Capacity != 6 {
		t.Errorf("Murder capacity = %d, want 6", murder.Capacity)
	}
	wantSlots := []entities.TimeSlot{{Day: 1, Part: entities.Evening}, {Day: 1, Part: entities.Night}}
	if !slices.Equal(murder.Slots, wantSlots) {
		t.Errorf("Murder slots = %v, want %v", murder.Slots, wantSlots)
	}

	chloe, _ := roster.PlayerByName("Chloé")
	if !murder.HasOrganizer(chloe.ID) {
		t.Error("Chloé should organize Murder")
	}
	if !slices.Contains(chloe.Organizing, murder.ID) {
		t.Error("Chloé's organizing list should contain Murder")
	}

	anna, _ := roster.PlayerByName("Anna")
	fresque, _ := roster.ActivityByName("Fresque")
	if !slices.Equal(anna.Wishes, []uint{murder.ID, fresque.ID}) {
		t.Errorf("Anna wishes = %v, want [%d %d]", anna.Wishes, murder.ID, fresque.ID)
	}
	if anna.Ideal != 1 || anna.Max != 2 {
		t.Errorf("Anna counts = (%d, %d), want (1, 2)", anna.Ideal, anna.Max)
	}
	if !anna.IsUnavailable(entities.TimeSlot{Day: 3, Part: entities.Evening}) {
		t.Error("Anna's absence on day 3 evening was not loaded")
	}
	if !anna.Has(entities.NoTwoSameDay) || !anna.Has(entities.NoNightThenMorning) {
		t.Error("Anna's constraints were not loaded")
	}

	bertrand, _ := roster.PlayerByName("Bertrand")
	if !anna.Refuses(bertrand.ID) {
		t.Error("Anna's blacklist should contain Bertrand")
	}
	// Empty ideal defaults to max.
	if bertrand.Ideal != 1 || bertrand.Max != 1 {
		t.Errorf("Bertrand counts = (%d, %d), want (1, 1)", bertrand.Ideal, bertrand.Max)
	}
	if _, ok := bertrand.RefuseOrganizedBy[chloe.ID]; !ok {
		t.Error("Bertrand should refuse activities organized by Chloé")
	}
	if _, ok := chloe.RefuseOrganizeFor[anna.ID]; !ok {
		t.Error("Chloé should refuse to organize for Anna")
	}
}

func TestReadRosterErrors(t *testing.T) {
	cases := []struct {
		name       string
		activities string
		players    string
	}{
		{
			name:       "bad header",
			activities: "nom,capacity,slots,orgas\n",
			players:    playersCSV,
		},
		{
			name:       "invalid capacity",
			activities: "name,capacity,slots,orgas\nMurder,six,1 soir,\n",
			players:    playersCSV,
		},
		{
			name:       "invalid slot",
			activities: "name,capacity,slots,orgas\nMurder,6,1 midi,\n",
			players:    playersCSV,
		},
		{
			name:       "unknown organizer",
			activities: "name,capacity,slots,orgas\nMurder,6,1 soir,Zoé\n",
			players:    playersCSV,
		},
		{
			name:       "unknown wish",
			activities: activitiesNoOrgaCSV,
			players:    "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,1,1,Tarot,,,,,\n",
		},
		{
			name:       "unknown constraint",
			activities: activitiesNoOrgaCSV,
			players:    "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,1,1,Murder,,jamais_le_lundi,,,\n",
		},
		{
			name:       "unknown blacklist name",
			activities: activitiesNoOrgaCSV,
			players:    "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,1,1,Murder,,,Zoé,,\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadRoster(strings.NewReader(tc.activities), strings.NewReader(tc.players))
			if err == nil {
				t.Fatal("ReadRoster accepted invalid input")
			}
		})
	}
}

func TestReadRosterSameGameSessions(t *testing.T) {
	// A game organized twice is two rows sharing a name; a wish for the name
	// covers both sessions.
	activities := "name,capacity,slots,orgas\nMurder,6,1 soir,\nMurder,4,2 soir,\nFresque,8,3 soir,\n"
	players := "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,1,2,Murder;Fresque,,,,,\n"
	roster, err := ReadRoster(strings.NewReader(activities), strings.NewReader(players))
	if err != nil {
		t.Fatalf("ReadRoster: %v", err)
	}
	if len(roster.Activities) != 3 {
		t.Fatalf("loaded %d activities, want 3", len(roster.Activities))
	}
	sessions := roster.ActivitiesByName("Murder")
	if len(sessions) != 2 {
		t.Fatalf("Murder has %d sessions, want 2", len(sessions))
	}
	if sessions[0].Capacity != 6 || sessions[1].Capacity != 4 {
		t.Errorf("session capacities = (%d, %d), want (6, 4)", sessions[0].Capacity, sessions[1].Capacity)
	}
	anna, _ := roster.PlayerByName("Anna")
	fresque, _ := roster.ActivityByName("Fresque")
	want := []uint{sessions[0].ID, sessions[1].ID, fresque.ID}
	if !slices.Equal(anna.Wishes, want) {
		t.Fatalf("Anna wishes = %v, want %v", anna.Wishes, want)
	}
}

func TestReadRosterSkipsBlankNames(t *testing.T) {
	activities := "name,capacity,slots,orgas\nMurder,6,1 soir,\n ,4,2 soir,\nFresque,8,2 soir,\n"
	players := "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,1,1,Fresque,,,,,\n"
	roster, err := ReadRoster(strings.NewReader(activities), strings.NewReader(players))
	if err != nil {
		t.Fatalf("ReadRoster: %v", err)
	}
	if len(roster.Activities) != 2 {
		t.Fatalf("loaded %d activities, want 2", len(roster.Activities))
	}
	// IDs stay aligned with the kept rows, not the raw file rows.
	fresque, ok := roster.ActivityByName("Fresque")
	if !ok || fresque.ID != 2 {
		t.Fatalf("Fresque ID = %d, want 2", fresque.ID)
	}
	anna, _ := roster.PlayerByName("Anna")
	if !slices.Equal(anna.Wishes, []uint{fresque.ID}) {
		t.Fatalf("Anna wishes = %v, want [%d]", anna.Wishes, fresque.ID)
	}
}

func TestReadRosterValidationError(t *testing.T) {
	// Ideal above max is caught by the roster constructor downstream.
	players := "name,ideal,max,wishes,unavailable,constraints,dont_play_with,dont_be_organized_by,dont_organize_for\nAnna,3,1,Murder,,,,,\n"
	_, err := ReadRoster(strings.NewReader(activitiesNoOrgaCSV), strings.NewReader(players))
	if err == nil || !domain.IsValidation(err) {
		t.Fatalf("err = %v, want a ValidationError", err)
	}
}
