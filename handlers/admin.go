package handlers

import (
	"encoding/json"
	"net/http"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/services"
)

// Pinger reports storage liveness
type Pinger interface {
	TestConnection() error
}

// AdminHandler exposes operator actions: manual feed sync, manual week
// resolution and a health probe.
type AdminHandler struct {
	syncService *services.SyncService
	resolver    *services.WeekResolver
	db          Pinger
	logger      *logging.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(syncService *services.SyncService, resolver *services.WeekResolver, db Pinger) *AdminHandler {
	return &AdminHandler{
		syncService: syncService,
		resolver:    resolver,
		db:          db,
		logger:      logging.WithPrefix("AdminHandler"),
	}
}

// resolveRequest is the POST /api/admin/resolve body
type resolveRequest struct {
	Week int `json:"week"`
}

// ResolveWeek handles POST /api/admin/resolve
func (h *AdminHandler) ResolveWeek(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Week < 1 {
		respondError(w, http.StatusBadRequest, "bad_request", "week is required")
		return
	}

	result, err := h.resolver.ResolveWeek(r.Context(), req.Week)
	if err != nil {
		respondRejection(w, err)
		return
	}

	h.logger.Infof("Operator resolved week %d", req.Week)
	respondJSON(w, http.StatusOK, result)
}

// SyncFeed handles POST /api/admin/sync: refresh unfinished weeks from the
// feed and resolve any week that went final.
func (h *AdminHandler) SyncFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	completed, err := h.syncService.RefreshResults(ctx)
	if err != nil {
		respondRejection(w, err)
		return
	}

	results := h.resolver.ResolveCompletedWeeks(ctx, completed)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"completed_weeks": completed,
		"resolutions":     results,
	})
}

// Health handles GET /api/health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.TestConnection(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage_unavailable", "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
