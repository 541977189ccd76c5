package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/glowtouch/booking-gateway/internal/spaapi"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

type fakeResolver struct {
	got url.Values
	ret *spaapi.PaymentReturn
	err error
}

func (f *fakeResolver) ResolvePaymentReturn(_ context.Context, params url.Values) (*spaapi.PaymentReturn, error) {
	f.got = params
	return f.ret, f.err
}

func TestReturnHandler_Paid(t *testing.T) {
	resolver := &fakeResolver{ret: &spaapi.PaymentReturn{BookingID: "bk-1", OrderCode: "oc-9", Status: "PAID"}}
	handler := NewReturnHandler(resolver, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/payments/return?orderCode=oc-9&status=PAID&code=00", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resolver.got.Get("orderCode") != "oc-9" {
		t.Fatalf("params not forwarded: %v", resolver.got)
	}
	var resp returnResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != OutcomePaid || resp.BookingID != "bk-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReturnHandler_Cancelled(t *testing.T) {
	resolver := &fakeResolver{ret: &spaapi.PaymentReturn{Status: "CANCELLED"}}
	handler := NewReturnHandler(resolver, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/payments/return?cancel=true&status=CANCELLED", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	var resp returnResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != OutcomeCancelled {
		t.Fatalf("outcome = %s, want cancelled", resp.Outcome)
	}
}

func TestReturnHandler_MissingParams(t *testing.T) {
	handler := NewReturnHandler(&fakeResolver{}, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/payments/return", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}

func TestReturnHandler_UpstreamFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("gateway down")}
	handler := NewReturnHandler(resolver, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/payments/return?orderCode=oc-1", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}

func TestResolveOutcome(t *testing.T) {
	tests := []struct {
		status string
		want   Outcome
	}{
		{"PAID", OutcomePaid},
		{"paid", OutcomePaid},
		{"SUCCESS", OutcomePaid},
		{"CANCELLED", OutcomeCancelled},
		{"canceled", OutcomeCancelled},
		{"PENDING", OutcomeFailed},
		{"", OutcomeFailed},
	}
	for _, tt := range tests {
		if got := ResolveOutcome(tt.status); got != tt.want {
			t.Errorf("ResolveOutcome(%q) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
