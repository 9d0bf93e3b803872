package config

import (
	"strings"
	"testing"

	"castmatch/internal/application"
)

// clearEnv blanks every variable Load reads, so a test only sees what it sets
// itself.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ACTIVITIES_CSV", "PLAYERS_CSV", "DATABASE_URL",
		"INITIAL_CSV", "BASELINE_CSV",
		"RNG_SEED", "MAX_PASSES_PER_PHASE", "TIE_BREAK", "IDEAL_BEFORE_MAX",
		"LOCALE", "OUTPUT_CSV", "TOKEN", "CAST_CHANNEL_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTIVITIES_CSV", "activities.csv")
	t.Setenv("PLAYERS_CSV", "players.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q, want fr", cfg.Locale)
	}
	if cfg.MaxPassesPerPhase != 50 {
		t.Errorf("MaxPassesPerPhase = %d, want 50", cfg.MaxPassesPerPhase)
	}
	if !cfg.IdealBeforeMax {
		t.Error("IdealBeforeMax should default to true")
	}
	if cfg.TieBreak != application.TieBreakRandomPerPass {
		t.Error("TieBreak should default to the random policy")
	}
	if cfg.AnnounceEnabled() {
		t.Error("AnnounceEnabled without TOKEN")
	}
}

func TestLoadParsesMatchingOptions(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTIVITIES_CSV", "a.csv")
	t.Setenv("PLAYERS_CSV", "p.csv")
	t.Setenv("RNG_SEED", "1234")
	t.Setenv("MAX_PASSES_PER_PHASE", "7")
	t.Setenv("TIE_BREAK", "input_order")
	t.Setenv("IDEAL_BEFORE_MAX", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.Options()
	if opts.Seed != 1234 || opts.MaxPassesPerPhase != 7 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.TieBreak != application.TieBreakInputOrder || opts.IdealBeforeMax {
		t.Errorf("opts = %+v", opts)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "no source",
			env:  map[string]string{},
			want: "aucune source",
		},
		{
			name: "both sources",
			env: map[string]string{
				"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv",
				"DATABASE_URL": "postgres://localhost/castmatch",
			},
			want: "pas les deux",
		},
		{
			name: "half a CSV source",
			env:  map[string]string{"ACTIVITIES_CSV": "a.csv"},
			want: "ensemble",
		},
		{
			name: "bad database url",
			env:  map[string]string{"DATABASE_URL": "localhost"},
			want: "DATABASE_URL",
		},
		{
			name: "bad seed",
			env:  map[string]string{"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv", "RNG_SEED": "abc"},
			want: "RNG_SEED",
		},
		{
			name: "bad pass bound",
			env:  map[string]string{"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv", "MAX_PASSES_PER_PHASE": "0"},
			want: "MAX_PASSES_PER_PHASE",
		},
		{
			name: "bad tiebreak",
			env:  map[string]string{"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv", "TIE_BREAK": "alphabetical"},
			want: "TIE_BREAK",
		},
		{
			name: "token without channel",
			env:  map[string]string{"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv", "TOKEN": "xyz"},
			want: "CAST_CHANNEL_ID",
		},
		{
			name: "non numeric channel",
			env: map[string]string{
				"ACTIVITIES_CSV": "a.csv", "PLAYERS_CSV": "p.csv",
				"TOKEN": "xyz", "CAST_CHANNEL_ID": "général",
			},
			want: "CAST_CHANNEL_ID",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Load accepted an invalid configuration")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadDatabaseSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/castmatch")
	t.Setenv("TOKEN", "xyz")
	t.Setenv("CAST_CHANNEL_ID", "123456789")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AnnounceEnabled() {
		t.Error("AnnounceEnabled should be true with TOKEN and CAST_CHANNEL_ID")
	}
}
