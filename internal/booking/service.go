// Package booking orchestrates the booking flow: loading the catalog from
// the remote spa API, deriving availability, and submitting guarded booking
// requests followed by payment-link creation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowtouch/booking-gateway/internal/availability"
	"github.com/glowtouch/booking-gateway/internal/observability/metrics"
	"github.com/glowtouch/booking-gateway/internal/spaapi"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

// APIClient is the slice of the spa API used by the booking flow.
type APIClient interface {
	GetServices(ctx context.Context) ([]availability.Service, error)
	GetTherapistSchedules(ctx context.Context) ([]availability.WeeklySchedule, error)
	GetTherapistServices(ctx context.Context, therapistID string) ([]availability.Service, error)
	CreateBooking(ctx context.Context, req spaapi.BookingRequest) (*spaapi.BookingResponse, error)
	CreatePaymentLink(ctx context.Context, bookingID string) (*spaapi.PaymentLink, error)
}

// Service exposes the booking flow over an injected API client. Nothing is
// cached: every request re-reads the upstream collections it needs.
type Service struct {
	api        APIClient
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
	windowDays int
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithWindowDays overrides the rolling booking window length.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics attaches booking metrics.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs a booking service.
func NewService(api APIClient, logger *logging.Logger, opts ...Option) *Service {
	if api == nil {
		panic("booking: api client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		api:        api,
		logger:     logger,
		windowDays: availability.DefaultWindowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveServices returns the catalog with inactive services filtered out.
func (s *Service) ActiveServices(ctx context.Context) ([]availability.Service, error) {
	services, err := s.api.GetServices(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]availability.Service, 0, len(services))
	for _, svc := range services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	return active, nil
}

// CompatibleTherapists resolves the therapists able to perform a service.
func (s *Service) CompatibleTherapists(ctx context.Context, serviceID string) ([]availability.Therapist, error) {
	s.metrics.ObserveLookup("therapists")
	if serviceID == "" {
		return nil, nil
	}
	schedules, err := s.api.GetTherapistSchedules(ctx)
	if err != nil {
		return nil, err
	}
	results := s.LoadTherapistServices(ctx, availability.Therapists(schedules))
	return availability.FilterTherapists(serviceID, schedules, ServiceMap(results)), nil
}

// Dates resolves the available calendar dates for a therapist within the
// rolling booking window starting today.
func (s *Service) Dates(ctx context.Context, therapistID string) ([]time.Time, error) {
	s.metrics.ObserveLookup("dates")
	if therapistID == "" {
		return nil, nil
	}
	schedules, err := s.api.GetTherapistSchedules(ctx)
	if err != nil {
		return nil, err
	}
	return availability.AvailableDates(therapistID, schedules, s.now(), s.windowDays), nil
}

// Slots resolves the full slot list for a therapist on a date.
func (s *Service) Slots(ctx context.Context, therapistID string, date time.Time) ([]availability.TimeSlot, error) {
	s.metrics.ObserveLookup("slots")
	if therapistID == "" || date.IsZero() {
		return nil, nil
	}
	schedules, err := s.api.GetTherapistSchedules(ctx)
	if err != nil {
		return nil, err
	}
	return availability.TimeSlotsFor(therapistID, date, schedules), nil
}

// SubmitResult is the outcome of a successful booking submission.
type SubmitResult struct {
	BookingID   string `json:"bookingId"`
	CheckoutURL string `json:"checkoutUrl"`
	OrderCode   string `json:"orderCode,omitempty"`
}

// Submit re-validates the selection against the latest slot list, creates
// the booking, then mints the payment link. When link creation fails the
// returned result still carries the booking id alongside the error so the
// caller can report a partially completed flow.
func (s *Service) Submit(ctx context.Context, userID string, sel availability.Selection, note string) (*SubmitResult, error) {
	start := s.now()
	res, err := s.submit(ctx, userID, sel, note)
	outcome := "accepted"
	switch {
	case errors.Is(err, availability.ErrSlotNotAvailable):
		outcome = "rejected_stale_slot"
	case errors.Is(err, availability.ErrIncompleteSelection):
		outcome = "rejected_incomplete"
	case err != nil:
		outcome = "upstream_error"
	}
	s.metrics.ObserveSubmission(outcome, s.now().Sub(start).Seconds())
	return res, err
}

func (s *Service) submit(ctx context.Context, userID string, sel availability.Selection, note string) (*SubmitResult, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if !sel.Complete() {
		return nil, availability.ErrIncompleteSelection
	}

	date, err := sel.AppointmentDate(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// Staleness guard: the slot must still be open in the latest fetch.
	slots, err := s.Slots(ctx, sel.TherapistID, date)
	if err != nil {
		return nil, err
	}
	if err := availability.ValidateForSubmit(sel, slots); err != nil {
		return nil, err
	}

	resp, err := s.api.CreateBooking(ctx, spaapi.BookingRequest{
		UserID:          userID,
		TherapistID:     sel.TherapistID,
		TimeSlotID:      sel.TimeSlotID,
		ServiceID:       sel.ServiceID,
		AppointmentDate: sel.Date,
		Note:            note,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingRejected, err)
	}

	s.logger.Info("booking created",
		"booking_id", resp.BookingID,
		"therapist_id", sel.TherapistID,
		"service_id", sel.ServiceID,
		"date", sel.Date,
	)

	link, err := s.api.CreatePaymentLink(ctx, resp.BookingID)
	if err != nil {
		s.logger.Error("payment link creation failed", "booking_id", resp.BookingID, "error", err)
		return &SubmitResult{BookingID: resp.BookingID}, fmt.Errorf("%w: %v", ErrPaymentLink, err)
	}

	return &SubmitResult{
		BookingID:   resp.BookingID,
		CheckoutURL: link.CheckoutURL,
		OrderCode:   link.OrderCode,
	}, nil
}
