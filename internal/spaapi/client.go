package spaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/glowtouch/booking-gateway/internal/availability"
	"github.com/glowtouch/booking-gateway/internal/observability/metrics"
	"github.com/glowtouch/booking-gateway/internal/session"
	"github.com/glowtouch/booking-gateway/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// ErrMissingPaymentLink is returned when the payment endpoint answers 2xx
// but carries no checkout URL.
var ErrMissingPaymentLink = errors.New("payment link missing from gateway response")

// Client wraps the REST endpoints of the remote spa API. Requests carry the
// bearer token from the injected session when one is active.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sess       *session.Session
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMetrics records an upstream counter per request.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient constructs a spa API client. sess may be inactive; requests are
// then sent unauthenticated and the upstream decides what is public.
func NewClient(baseURL string, sess *session.Session, logger *logging.Logger, opts ...Option) *Client {
	if sess == nil {
		sess = session.New()
	}
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		sess:       sess,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetServices lists the service catalog.
func (c *Client) GetServices(ctx context.Context) ([]availability.Service, error) {
	var services []availability.Service
	if err := c.doJSON(ctx, http.MethodGet, "/api/Service", nil, &services); err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}
	return services, nil
}

// GetTherapistSchedules lists all weekly schedule entries with embedded time
// slots and therapist names.
func (c *Client) GetTherapistSchedules(ctx context.Context) ([]availability.WeeklySchedule, error) {
	var schedules []availability.WeeklySchedule
	if err := c.doJSON(ctx, http.MethodGet, "/api/TherapistSchedule", nil, &schedules); err != nil {
		return nil, fmt.Errorf("get therapist schedules: %w", err)
	}
	return schedules, nil
}

// GetTherapistServices lists the services a therapist is linked to through
// its specialties.
func (c *Client) GetTherapistServices(ctx context.Context, therapistID string) ([]availability.Service, error) {
	path := fmt.Sprintf("/api/TherapistSpecialty/%s/services", url.PathEscape(therapistID))
	var services []availability.Service
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &services); err != nil {
		return nil, fmt.Errorf("get therapist services: %w", err)
	}
	return services, nil
}

// CreateBooking submits a booking create request.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/bookings", req, &resp); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &resp, nil
}

// CreatePaymentLink asks the payment gateway for a redirect checkout link.
func (c *Client) CreatePaymentLink(ctx context.Context, bookingID string) (*PaymentLink, error) {
	q := url.Values{}
	q.Set("bookingID", bookingID)
	path := "/api/Payment/create-payos-payment?" + q.Encode()

	var link PaymentLink
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &link); err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}
	if strings.TrimSpace(link.CheckoutURL) == "" {
		return nil, ErrMissingPaymentLink
	}
	return &link, nil
}

// ResolvePaymentReturn forwards the callback query parameters to the upstream
// so it can settle the payment outcome.
func (c *Client) ResolvePaymentReturn(ctx context.Context, params url.Values) (*PaymentReturn, error) {
	path := "/api/Payment/payment-return"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}
	var ret PaymentReturn
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &ret); err != nil {
		return nil, fmt.Errorf("resolve payment return: %w", err)
	}
	return &ret, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.sess.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpointLabel(path), "transport_error")
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(endpointLabel(path), strconv.Itoa(resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		c.logger.Warn("spa API non-2xx response", "status", resp.StatusCode, "path", path, "body", msg)
		return fmt.Errorf("spa API returned %d: %s", resp.StatusCode, msg)
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// endpointLabel keeps metric cardinality bounded: the first two path
// segments identify the endpoint, path parameters and query strings do not.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(segs) >= 2 {
		return "/" + segs[0] + "/" + segs[1]
	}
	return path
}
