package recommend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/glowtouch/booking-gateway/internal/availability"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

const defaultLimit = 3

// CatalogSource provides the service catalog for scoring.
type CatalogSource interface {
	ActiveServices(ctx context.Context) ([]availability.Service, error)
}

// Handler serves quiz-based service recommendations.
type Handler struct {
	catalog CatalogSource
	logger  *logging.Logger
}

// NewHandler creates a recommendation handler.
func NewHandler(catalog CatalogSource, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: catalog, logger: logger}
}

type recommendRequest struct {
	Answers []Answer `json:"answers"`
	Limit   int      `json:"limit"`
}

// Recommend handles POST /booking/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}

	catalog, err := h.catalog.ActiveServices(r.Context())
	if err != nil {
		h.logger.Error("failed to load catalog for recommendation", "error", err)
		writeError(w, http.StatusBadGateway, "service catalog is unavailable")
		return
	}

	services := Services(req.Answers, catalog, req.Limit)
	if services == nil {
		services = []availability.Service{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"count":    len(services),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
