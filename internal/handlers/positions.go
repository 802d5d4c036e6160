package handlers

import (
	"net/http"
	"strings"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/portfolio"
)

// PositionsHandler handles portfolio position requests.
type PositionsHandler struct {
	logger *common.Logger
	store  *portfolio.Store
}

// NewPositionsHandler creates a new positions handler.
func NewPositionsHandler(logger *common.Logger, store *portfolio.Store) *PositionsHandler {
	return &PositionsHandler{logger: logger, store: store}
}

// ServeHTTP dispatches /api/positions by method.
func (h *PositionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.handleList(w, r)
	case http.MethodPost, http.MethodPut:
		h.handlePut(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleList handles GET /api/positions.
func (h *PositionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	positions := h.store.List(r.Context())

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// handlePut handles POST/PUT /api/positions. Posting an existing symbol
// merges into the held position rather than replacing it.
func (h *PositionsHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	var position models.Position
	if err := ReadJSON(r, &position); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	position.Symbol = strings.ToUpper(strings.TrimSpace(position.Symbol))

	saved, err := h.store.Put(r.Context(), position)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info().Str("symbol", saved.Symbol).Msg("position saved")
	WriteJSON(w, http.StatusOK, saved)
}

// handleDelete handles DELETE /api/positions?symbol=XXX.
func (h *PositionsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}

	if !h.store.Remove(r.Context(), symbol) {
		WriteError(w, http.StatusNotFound, "position not found: "+symbol)
		return
	}

	h.logger.Info().Str("symbol", symbol).Msg("position removed")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleImport handles POST /api/positions/import with a CSV body.
func (h *PositionsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	result, err := h.store.ImportCSV(r.Context(), r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
