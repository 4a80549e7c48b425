package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl-survivor-go/config"
	"nfl-survivor-go/database"
	"nfl-survivor-go/handlers"
	"nfl-survivor-go/logging"
	"nfl-survivor-go/middleware"
	"nfl-survivor-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})

	cfg.LogConfiguration()

	// Initialize MongoDB connection
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

	if err := db.TestConnection(); err != nil {
		logging.Fatalf("Database ping failed: %v", err)
	}

	// Create repositories
	userRepo := database.NewMongoUserRepository(db)
	teamRepo := database.NewMongoTeamRepository(db)
	matchRepo := database.NewMongoMatchRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	historicalRepo := database.NewMongoHistoricalPickRepository(db)
	usageRepo := database.NewMongoTeamUsageRepository(db)

	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Seed the pool members
	seeder := services.NewUserSeeder(userRepo)
	if err := seeder.SeedUsers(startupCtx); err != nil {
		logging.Fatalf("User seeding failed: %v", err)
	}

	// ESPN feed and schedule sync
	espnService := services.NewESPNService()
	syncService := services.NewSyncService(espnService, teamRepo, matchRepo, cfg.App.CurrentSeason)

	if cfg.App.SyncOnStartup {
		logging.Info("Syncing teams and schedule from ESPN...")
		if err := syncService.SyncTeams(startupCtx); err != nil {
			logging.Errorf("Team sync failed: %v", err)
		}
		if err := syncService.SyncSchedule(startupCtx); err != nil {
			logging.Errorf("Schedule sync failed: %v", err)
		}
	}

	// Core services
	survivorService := services.NewSurvivorService(matchRepo, pickRepo, usageRepo, db)
	weekResolver := services.NewWeekResolver(matchRepo, pickRepo, historicalRepo, usageRepo, db)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	teamService := services.NewTeamService(teamRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, historicalRepo, usageRepo, survivorService)

	// Background result polling and resolution
	updater := services.NewBackgroundUpdater(syncService, weekResolver)
	if cfg.App.BackgroundUpdaterEnabled {
		updater.Start()
		defer updater.Stop()
	} else {
		logging.Info("Background updater disabled")
	}

	// Create handlers
	secureCookie := !cfg.App.IsDevelopment
	authHandler := handlers.NewAuthHandler(authService, secureCookie)
	matchesHandler := handlers.NewMatchesHandler(matchRepo, teamService, survivorService)
	picksHandler := handlers.NewPicksHandler(survivorService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, teamService)
	adminHandler := handlers.NewAdminHandler(syncService, weekResolver, db)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Setup routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/health", adminHandler.Health).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	protected.HandleFunc("/matches", matchesHandler.GetMatches).Methods("GET")
	protected.HandleFunc("/picks/eligible", picksHandler.GetEligibleTeams).Methods("GET")
	protected.HandleFunc("/picks/all", leaderboardHandler.GetAllPicks).Methods("GET")
	protected.HandleFunc("/picks", picksHandler.SubmitPick).Methods("POST")
	protected.HandleFunc("/dashboard", leaderboardHandler.GetDashboard).Methods("GET")
	protected.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/admin/resolve", adminHandler.ResolveWeek).Methods("POST")
	protected.HandleFunc("/admin/sync", adminHandler.SyncFeed).Methods("POST")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Server shutdown error: %v", err)
	}
	logging.Info("Server stopped")
}
