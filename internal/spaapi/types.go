// Package spaapi contains the REST client for the remote spa platform API
// that owns the catalog, schedules, bookings and payment gateway integration.
package spaapi

// BookingRequest contains the fields needed to create a booking.
type BookingRequest struct {
	UserID          string `json:"userId"`
	TherapistID     string `json:"therapistId"`
	TimeSlotID      string `json:"timeSlotId"`
	ServiceID       string `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
	Note            string `json:"note,omitempty"`
}

// BookingResponse contains booking creation results.
type BookingResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
}

// PaymentLink is the redirect checkout link minted for a booking.
type PaymentLink struct {
	CheckoutURL string `json:"checkoutUrl"`
	OrderCode   string `json:"orderCode,omitempty"`
}

// PaymentReturn is the server-side resolution of a payment callback.
type PaymentReturn struct {
	BookingID string `json:"bookingId,omitempty"`
	OrderCode string `json:"orderCode,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}
