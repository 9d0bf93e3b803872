package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"castmatch/internal/application"
)

type Config struct {
	// Ingestion: either the two CSV files, or the inscription database.
	ActivitiesCSV string
	PlayersCSV    string
	DatabaseURL   string

	// Matching options.
	Seed              int64
	MaxPassesPerPhase int
	TieBreak          application.TieBreakPolicy
	IdealBeforeMax    bool

	// Optional assignment files: pre-locked casts fed into the matching,
	// and a previous result to compare the new one against.
	InitialCSV  string
	BaselineCSV string

	// Output.
	Locale    string
	OutputCSV string

	// Optional Discord announcement of the final cast.
	Token         string
	CastChannelID string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		ActivitiesCSV:     os.Getenv("ACTIVITIES_CSV"),
		PlayersCSV:        os.Getenv("PLAYERS_CSV"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		InitialCSV:        os.Getenv("INITIAL_CSV"),
		BaselineCSV:       os.Getenv("BASELINE_CSV"),
		Locale:            os.Getenv("LOCALE"),
		OutputCSV:         os.Getenv("OUTPUT_CSV"),
		Token:             os.Getenv("TOKEN"),
		CastChannelID:     os.Getenv("CAST_CHANNEL_ID"),
		MaxPassesPerPhase: 50,
		IdealBeforeMax:    true,
	}

	if v := os.Getenv("RNG_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: RNG_SEED doit être un entier (%q)", v)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("MAX_PASSES_PER_PHASE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: MAX_PASSES_PER_PHASE doit être un entier positif (%q)", v)
		}
		cfg.MaxPassesPerPhase = n
	}
	switch v := os.Getenv("TIE_BREAK"); v {
	case "", "random":
		cfg.TieBreak = application.TieBreakRandomPerPass
	case "input_order":
		cfg.TieBreak = application.TieBreakInputOrder
	default:
		return nil, fmt.Errorf("config: TIE_BREAK doit valoir \"random\" ou \"input_order\" (%q)", v)
	}
	if v := os.Getenv("IDEAL_BEFORE_MAX"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: IDEAL_BEFORE_MAX doit être un booléen (%q)", v)
		}
		cfg.IdealBeforeMax = b
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if c.Locale == "" {
		c.Locale = "fr"
	}

	fromCSV := c.ActivitiesCSV != "" || c.PlayersCSV != ""
	fromDB := c.DatabaseURL != ""
	switch {
	case fromCSV && fromDB:
		return fmt.Errorf("config: fournir soit ACTIVITIES_CSV/PLAYERS_CSV, soit DATABASE_URL, pas les deux")
	case fromCSV:
		if c.ActivitiesCSV == "" || c.PlayersCSV == "" {
			return fmt.Errorf("config: ACTIVITIES_CSV et PLAYERS_CSV doivent être fournis ensemble")
		}
	case fromDB:
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: aucune source d'inscriptions (ACTIVITIES_CSV/PLAYERS_CSV ou DATABASE_URL)")
	}

	if c.Token != "" || c.CastChannelID != "" {
		if strings.TrimSpace(c.Token) == "" {
			return fmt.Errorf("config: TOKEN est requis pour l'annonce Discord")
		}
		if strings.TrimSpace(c.CastChannelID) == "" {
			return fmt.Errorf("config: CAST_CHANNEL_ID est requis pour l'annonce Discord")
		}
		for _, r := range c.CastChannelID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: CAST_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
			}
		}
	}

	return nil
}

// Options traduit la configuration en options du moteur de répartition.
func (c *Config) Options() application.Options {
	return application.Options{
		IdealBeforeMax:    c.IdealBeforeMax,
		MaxPassesPerPhase: c.MaxPassesPerPhase,
		Seed:              c.Seed,
		TieBreak:          c.TieBreak,
	}
}

// AnnounceEnabled reports whether the Discord announcement is configured.
func (c *Config) AnnounceEnabled() bool {
	return c.Token != "" && c.CastChannelID != ""
}
