package handlers

import (
	"net/http"
	"strconv"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/portfolio"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/report"
)

// ReportsHandler handles report generation and notification history.
type ReportsHandler struct {
	logger    *common.Logger
	generator *report.Generator
	positions *portfolio.Store
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(logger *common.Logger, generator *report.Generator, positions *portfolio.Store) *ReportsHandler {
	return &ReportsHandler{logger: logger, generator: generator, positions: positions}
}

// HandleGenerate handles POST /api/reports/generate.
// Query parameters: period (daily|weekly, default daily) and
// positions (true|false, default true).
func (h *ReportsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	period := models.PeriodDaily
	switch r.URL.Query().Get("period") {
	case "", string(models.PeriodDaily):
	case string(models.PeriodWeekly):
		period = models.PeriodWeekly
	default:
		WriteError(w, http.StatusBadRequest, "period must be daily or weekly")
		return
	}

	includePositions := true
	if raw := r.URL.Query().Get("positions"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "positions must be true or false")
			return
		}
		includePositions = parsed
	}

	held := h.positions.List(r.Context())
	generated := h.generator.Generate(r.Context(), held, period, includePositions)

	WriteJSON(w, http.StatusOK, generated)
}

// HandleHistory handles GET /api/reports/history and
// DELETE /api/reports/history.
func (h *ReportsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		entries := h.generator.History(r.Context(), limit)
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"entries": entries,
			"count":   len(entries),
		})

	case http.MethodDelete:
		if !h.generator.ClearHistory(r.Context()) {
			WriteError(w, http.StatusInternalServerError, "failed to clear notification history")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMarkOpened handles POST /api/reports/history/opened.
func (h *ReportsHandler) HandleMarkOpened(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	if !h.generator.MarkOpened(r.Context(), req.ID) {
		WriteError(w, http.StatusNotFound, "history entry not found: "+req.ID)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleClearSnapshot handles DELETE /api/reports/snapshot. The next
// report after a reset carries no change figures.
func (h *ReportsHandler) HandleClearSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.generator.ClearSnapshot(r.Context()) {
		WriteError(w, http.StatusInternalServerError, "failed to clear report snapshot")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
