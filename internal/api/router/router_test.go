package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glowtouch/booking-gateway/internal/booking"
	"github.com/glowtouch/booking-gateway/internal/session"
	"github.com/glowtouch/booking-gateway/internal/spaapi"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

const testSecret = "router-secret"

func upstreamStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Service", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"svc-1","name":"Facial","active":true}]`))
	})
	mux.HandleFunc("/api/TherapistSchedule", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"ws-1","therapistId":"th-1","therapistName":"Anna","dayOfWeek":1,"timeSlots":[{"id":"slot-1","description":"09:00-10:00","status":0}]}]`))
	})
	mux.HandleFunc("/api/TherapistSpecialty/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"svc-1","name":"Facial","active":true}]`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	upstream := upstreamStub(t)
	logger := logging.Default()
	client := spaapi.NewClient(upstream.URL, session.New(), logger)
	svc := booking.NewService(client, logger)

	return New(&Config{
		Logger:           logger,
		BookingHandler:   booking.NewHandler(svc, logger),
		SessionJWTSecret: testSecret,
	})
}

func bearer(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestServicesCatalogIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/booking/services", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestBookingRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{
		"/booking/therapists?serviceId=svc-1",
		"/booking/dates?therapistId=th-1",
		"/booking/slots?therapistId=th-1&date=2026-06-01",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", target, rec.Code)
		}
	}
}

func TestBookingRoutesWithToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/booking/therapists?serviceId=svc-1", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
