package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/glowtouch/booking-gateway/internal/spaapi"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

// ReturnResolver is the slice of the spa API client used here.
type ReturnResolver interface {
	ResolvePaymentReturn(ctx context.Context, params url.Values) (*spaapi.PaymentReturn, error)
}

// ReturnHandler serves the payment gateway's redirect-back URL. It forwards
// the callback parameters upstream exactly once and reports the normalized
// outcome; reloading the page re-runs the same one-shot resolution.
type ReturnHandler struct {
	api    ReturnResolver
	logger *logging.Logger
}

// NewReturnHandler creates a payment-return handler.
func NewReturnHandler(api ReturnResolver, logger *logging.Logger) *ReturnHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReturnHandler{api: api, logger: logger}
}

type returnResponse struct {
	Outcome   Outcome `json:"outcome"`
	BookingID string  `json:"bookingId,omitempty"`
	OrderCode string  `json:"orderCode,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Handle handles GET /payments/return.
func (h *ReturnHandler) Handle(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if len(params) == 0 {
		writeError(w, http.StatusBadRequest, "missing payment return parameters")
		return
	}

	ret, err := h.api.ResolvePaymentReturn(r.Context(), params)
	if err != nil {
		h.logger.Error("payment return resolution failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not resolve payment outcome")
		return
	}

	outcome := ResolveOutcome(ret.Status)
	h.logger.Info("payment return resolved",
		"booking_id", ret.BookingID,
		"order_code", ret.OrderCode,
		"outcome", string(outcome),
	)

	writeJSON(w, http.StatusOK, returnResponse{
		Outcome:   outcome,
		BookingID: ret.BookingID,
		OrderCode: ret.OrderCode,
		Message:   ret.Message,
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
