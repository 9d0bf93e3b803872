package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"castmatch/internal/adapters/csvio"
	"castmatch/internal/adapters/discord"
	"castmatch/internal/adapters/report"
	"castmatch/internal/application"
	"castmatch/internal/config"
	"castmatch/internal/domain/entities"
	"castmatch/internal/infrastructure/database"
	"castmatch/internal/infrastructure/i18n"
	"castmatch/internal/ports/input"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur de configuration: %v", err)
	}

	ctx := context.Background()
	roster, err := loadRoster(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement des inscriptions: %v", err)
	}

	var initial *entities.Assignment
	if cfg.InitialCSV != "" {
		initial, err = csvio.ReadAssignmentFile(cfg.InitialCSV, roster)
		if err != nil {
			log.Fatalf("❌ Erreur lors de la lecture de l'affectation initiale: %v", err)
		}
	}

	var matcher input.MatchUseCase = application.NewMatcher(roster, cfg.Options())
	result, err := matcher.Run(initial)
	if err != nil {
		log.Fatalf("❌ Erreur lors de la répartition: %v", err)
	}

	translator := i18n.NewTranslator(cfg.Locale)
	renderer := report.NewRenderer(translator, cfg.Locale)
	fmt.Print(renderer.Render(roster, result))

	if cfg.BaselineCSV != "" {
		baseline, err := csvio.ReadAssignmentFile(cfg.BaselineCSV, roster)
		if err != nil {
			log.Fatalf("❌ Erreur lors de la lecture de la répartition de référence: %v", err)
		}
		deltas := application.Compare(baseline, result.Assignment)
		if len(deltas) > 0 {
			fmt.Println()
			fmt.Print(renderer.RenderDiff(roster, deltas))
		}
	}

	if cfg.OutputCSV != "" {
		if err := csvio.WriteResultFile(cfg.OutputCSV, roster, result); err != nil {
			log.Fatalf("❌ Erreur lors de l'écriture du résultat: %v", err)
		}
		log.Printf("✅ Résultat écrit dans %s", cfg.OutputCSV)
	}

	if cfg.AnnounceEnabled() {
		announcer, err := discord.NewAnnouncer(cfg.Token, cfg.CastChannelID, translator, cfg.Locale)
		if err != nil {
			log.Printf("❌ Erreur lors de l'initialisation de l'annonce Discord: %v", err)
			os.Exit(1)
		}
		if err := announcer.Announce(roster, result); err != nil {
			log.Printf("❌ Erreur lors de l'annonce Discord: %v", err)
			os.Exit(1)
		}
	}
}

func loadRoster(ctx context.Context, cfg *config.Config) (*entities.Roster, error) {
	if cfg.DatabaseURL == "" {
		return csvio.LoadRoster(cfg.ActivitiesCSV, cfg.PlayersCSV)
	}

	if err := database.RunMigrations(cfg.DatabaseURL, migrationsPath()); err != nil {
		return nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	repo := database.NewRosterRepository(pool)
	activities, err := repo.LoadActivities(ctx)
	if err != nil {
		return nil, err
	}
	players, err := repo.LoadPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return entities.NewRoster(players, activities)
}

func migrationsPath() string {
	if p := os.Getenv("MIGRATIONS_PATH"); p != "" {
		return p
	}
	return "migrations"
}
