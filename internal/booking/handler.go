package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/glowtouch/booking-gateway/internal/availability"
	"github.com/glowtouch/booking-gateway/internal/session"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

// Handler exposes the booking flow over HTTP.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a booking handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// slotView is a TimeSlot annotated for display.
type slotView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Label       string `json:"label"`
	Bookable    bool   `json:"bookable"`
}

func slotViews(slots []availability.TimeSlot) []slotView {
	out := make([]slotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotView{
			ID:          s.ID,
			Description: s.Description,
			Status:      int(s.Status),
			Label:       s.Status.Description(),
			Bookable:    s.Status.Bookable(),
		})
	}
	return out
}

// ListServices handles GET /booking/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.svc.ActiveServices(r.Context())
	if err != nil {
		h.logger.Error("failed to load service catalog", "error", err)
		writeError(w, http.StatusBadGateway, "service catalog is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"count":    len(services),
	})
}

// ListTherapists handles GET /booking/therapists?serviceId=...
func (h *Handler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		writeError(w, http.StatusBadRequest, "serviceId is required")
		return
	}

	therapists, err := h.svc.CompatibleTherapists(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("failed to resolve therapists", "service_id", serviceID, "error", err)
		writeError(w, http.StatusBadGateway, "therapist schedules are unavailable")
		return
	}

	resp := map[string]any{
		"therapists": therapists,
		"count":      len(therapists),
	}
	if len(therapists) == 0 {
		resp["therapists"] = []availability.Therapist{}
		resp["message"] = "No therapist is available for this service"
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListDates handles GET /booking/dates?therapistId=...
func (h *Handler) ListDates(w http.ResponseWriter, r *http.Request) {
	therapistID := r.URL.Query().Get("therapistId")
	if therapistID == "" {
		writeError(w, http.StatusBadRequest, "therapistId is required")
		return
	}

	dates, err := h.svc.Dates(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("failed to resolve dates", "therapist_id", therapistID, "error", err)
		writeError(w, http.StatusBadGateway, "therapist schedules are unavailable")
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(availability.DateLayout))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dates": formatted,
		"count": len(formatted),
	})
}

// ListSlots handles GET /booking/slots?therapistId=...&date=...
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	therapistID := r.URL.Query().Get("therapistId")
	dateStr := r.URL.Query().Get("date")
	if therapistID == "" || dateStr == "" {
		writeError(w, http.StatusBadRequest, "therapistId and date are required")
		return
	}
	date, err := time.ParseInLocation(availability.DateLayout, dateStr, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	slots, err := h.svc.Slots(r.Context(), therapistID, date)
	if err != nil {
		h.logger.Error("failed to resolve slots", "therapist_id", therapistID, "date", dateStr, "error", err)
		writeError(w, http.StatusBadGateway, "therapist schedules are unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slots": slotViews(slots),
		"count": len(slots),
	})
}

// submitRequest is the body for POST /bookings.
type submitRequest struct {
	ServiceID       string `json:"serviceId"`
	TherapistID     string `json:"therapistId"`
	AppointmentDate string `json:"appointmentDate"`
	TimeSlotID      string `json:"timeSlotId"`
	Note            string `json:"note"`
}

// Submit handles POST /bookings.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to book an appointment")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sel := availability.Selection{
		ServiceID:   req.ServiceID,
		TherapistID: req.TherapistID,
		Date:        req.AppointmentDate,
		TimeSlotID:  req.TimeSlotID,
	}

	result, err := h.svc.Submit(r.Context(), userID, sel, req.Note)
	if err != nil {
		h.writeSubmitError(w, result, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, result *SubmitResult, err error) {
	switch {
	case errors.Is(err, availability.ErrIncompleteSelection),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrMissingUser):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, availability.ErrSlotNotAvailable):
		writeError(w, http.StatusConflict, "This time slot is not available anymore, please pick another one")
	case errors.Is(err, ErrPaymentLink):
		// Booking exists but checkout could not start; report both.
		body := map[string]any{"error": err.Error()}
		if result != nil && result.BookingID != "" {
			body["bookingId"] = result.BookingID
		}
		writeJSON(w, http.StatusBadGateway, body)
	default:
		h.logger.Error("booking submission failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
