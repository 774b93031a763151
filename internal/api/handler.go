package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/models"
	"github.com/rajasatyajit/ReliefOps/internal/relief"
	"github.com/rajasatyajit/ReliefOps/internal/store"
)

// Deduplicator collapses a report batch into canonical events
type Deduplicator interface {
	CombineDuplicateDisasters(ctx context.Context, reports []models.Report) ([]models.Event, error)
}

// Allocator runs relief allocation rounds and owns the supply inventory
type Allocator interface {
	AllocateResources(ctx context.Context, events []models.Event) relief.Report
	Inventory() *relief.Inventory
}

// Handler handles HTTP requests for the API
type Handler struct {
	store     store.Store
	dedup     Deduplicator
	manager   Allocator
	version   string
	buildTime string
	gitCommit string
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(store store.Store, dedup Deduplicator, manager Allocator, version, buildTime, gitCommit string) *Handler {
	return &Handler{
		store:     store,
		dedup:     dedup,
		manager:   manager,
		version:   version,
		buildTime: buildTime,
		gitCommit: gitCommit,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/health/live", h.livenessHandler)

		// Disaster events
		r.Get("/events", h.getEventsHandler)
		r.Get("/events/{id}", h.getEventHandler)
		r.Post("/dedupe", h.dedupeHandler)

		// Relief allocation
		r.Post("/allocations", h.allocateHandler)
		r.Get("/inventory", h.getInventoryHandler)
		r.Put("/inventory", h.putInventoryHandler)

		// System info
		r.Get("/version", h.versionHandler)
	})

	// Root health checks for load balancers
	r.Get("/health", h.healthHandler)
	r.Get("/ready", h.readinessHandler)
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{
		"store": "ok",
	}

	statusCode := http.StatusOK

	if err := h.store.Health(ctx); err != nil {
		checks["store"] = "error: " + err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	}

	h.writeJSONResponse(w, statusCode, response)
}

// livenessHandler checks if the application is alive
func (h *Handler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startTime).String(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// versionHandler returns version information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// getEventsHandler handles GET /events
func (h *Handler) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := h.parseEventQuery(r)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.store.QueryEvents(ctx, q)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to query events", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := map[string]interface{}{
		"data":      events,
		"count":     len(events),
		"timestamp": time.Now().UTC(),
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeJSONResponse(w, http.StatusOK, response)
}

// getEventHandler handles GET /events/{id}
func (h *Handler) getEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "id")

	if eventID == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "event ID is required")
		return
	}

	event, err := h.store.GetEvent(ctx, eventID)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to get event", "error", err, "event_id", eventID)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	if event == nil {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Event not found")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	h.writeJSONResponse(w, http.StatusOK, event)
}

// dedupeHandler handles POST /dedupe: deduplicate a report batch, store
// and return the resulting events.
func (h *Handler) dedupeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reports []models.Report
	if err := json.NewDecoder(r.Body).Decode(&reports); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body: expected a JSON array of reports")
		return
	}

	events, err := h.dedup.CombineDuplicateDisasters(ctx, reports)
	if err != nil {
		logger.WithContext(ctx).Error("Deduplication failed", "error", err)
		h.writeErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.store.UpsertEvents(ctx, events); err != nil {
		logger.WithContext(ctx).Error("Failed to store events", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := map[string]interface{}{
		"data":      events,
		"count":     len(events),
		"timestamp": time.Now().UTC(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// allocationRequest selects the events an allocation round runs over. An
// empty request allocates over every stored event.
type allocationRequest struct {
	EventIDs []string `json:"event_ids"`
}

// allocateHandler handles POST /allocations
func (h *Handler) allocateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req allocationRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	events, err := h.store.QueryEvents(ctx, models.EventQuery{IDs: req.EventIDs})
	if err != nil {
		logger.WithContext(ctx).Error("Failed to query events for allocation", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	report := h.manager.AllocateResources(ctx, events)
	h.writeJSONResponse(w, http.StatusOK, report)
}

// getInventoryHandler handles GET /inventory
func (h *Handler) getInventoryHandler(w http.ResponseWriter, r *http.Request) {
	inv := h.manager.Inventory()

	response := map[string]interface{}{
		"total":     inv.Snapshot(),
		"buffer":    inv.Buffer(),
		"available": inv.Available(),
		"timestamp": time.Now().UTC(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// putInventoryHandler handles PUT /inventory
func (h *Handler) putInventoryHandler(w http.ResponseWriter, r *http.Request) {
	var supplies relief.Supplies
	if err := json.NewDecoder(r.Body).Decode(&supplies); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if supplies.Food < 0 || supplies.Water < 0 || supplies.Medicine < 0 || supplies.Shelter < 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "supply quantities must be non-negative")
		return
	}

	h.manager.Inventory().Set(supplies)

	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"total":     supplies,
		"timestamp": time.Now().UTC(),
	})
}

// parseEventQuery parses query parameters into EventQuery
func (h *Handler) parseEventQuery(r *http.Request) (models.EventQuery, error) {
	q := models.EventQuery{}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return q, fmt.Errorf("invalid limit: %s", limitStr)
		}
		if limit < 0 || limit > 1000 {
			return q, fmt.Errorf("limit must be between 0 and 1000")
		}
		q.Limit = limit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return q, fmt.Errorf("invalid offset: %s", offsetStr)
		}
		if offset < 0 {
			return q, fmt.Errorf("offset must be non-negative")
		}
		q.Offset = offset
	}

	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return q, fmt.Errorf("invalid since format: %s", sinceStr)
		}
		q.Since = since
	}

	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return q, fmt.Errorf("invalid until format: %s", untilStr)
		}
		q.Until = until
	}

	q.IDs = r.URL.Query()["id"]
	q.Types = r.URL.Query()["type"]
	q.Severities = r.URL.Query()["severity"]
	q.Locations = r.URL.Query()["location"]

	return q, nil
}

// writeJSONResponse writes a JSON response
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	response := ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	h.writeJSONResponse(w, statusCode, response)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
