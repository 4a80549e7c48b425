// Command resolveweek resolves one completed week's picks from the command
// line, for when the background updater is disabled or a week needs a manual
// re-run after a feed hiccup.
package main

import (
	"context"
	"flag"
	"time"

	"nfl-survivor-go/config"
	"nfl-survivor-go/database"
	"nfl-survivor-go/logging"
	"nfl-survivor-go/services"
)

func main() {
	week := flag.Int("week", 0, "week to resolve (required)")
	sync := flag.Bool("sync", true, "refresh results from ESPN before resolving")
	flag.Parse()

	if *week < 1 || *week > 18 {
		logging.Fatal("usage: resolveweek -week N (1-18)")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	matchRepo := database.NewMongoMatchRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	historicalRepo := database.NewMongoHistoricalPickRepository(db)
	usageRepo := database.NewMongoTeamUsageRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *sync {
		teamRepo := database.NewMongoTeamRepository(db)
		syncService := services.NewSyncService(services.NewESPNService(), teamRepo, matchRepo, cfg.App.CurrentSeason)
		if _, err := syncService.RefreshResults(ctx); err != nil {
			logging.Errorf("Result refresh failed, resolving from stored scores: %v", err)
		}
	}

	resolver := services.NewWeekResolver(matchRepo, pickRepo, historicalRepo, usageRepo, db)
	result, err := resolver.ResolveWeek(ctx, *week)
	if err != nil {
		logging.Fatalf("Week %d resolution failed: %v", *week, err)
	}

	logging.Infof("Week %d: %d resolved, %d skipped, %d failed",
		result.Week, result.Resolved, result.Skipped, len(result.Failures))
	for _, failure := range result.Failures {
		logging.Errorf("  user %d: %s", failure.UserID, failure.Error)
	}
}
