// Package availability derives bookable choices (therapists, dates, time
// slots) from the weekly schedule catalog served by the remote spa API. All
// functions are pure and operate on already-fetched data.
package availability

import "time"

// SlotStatus is the upstream status code carried on every time slot.
type SlotStatus int

const (
	SlotOpen        SlotStatus = 0
	SlotBooked      SlotStatus = 1
	SlotUnavailable SlotStatus = 2
)

// Description returns the display suffix for a slot status. Open slots have
// no suffix; any code outside the known set renders as unavailable.
func (s SlotStatus) Description() string {
	switch s {
	case SlotOpen:
		return ""
	case SlotBooked:
		return "(Booked)"
	default:
		return "(Unavailable)"
	}
}

// Bookable reports whether a slot with this status may be submitted.
func (s SlotStatus) Bookable() bool {
	return s == SlotOpen
}

// Service is a bookable treatment from the spa catalog.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	CategoryID      string  `json:"categoryId"`
	Active          bool    `json:"active"`
}

// Therapist identifies a staff member, deduplicated from schedule entries.
type Therapist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeSlot is one bookable interval inside a weekly schedule entry.
type TimeSlot struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Status      SlotStatus `json:"status"`
}

// WeeklySchedule is a therapist's recurring entry for one weekday, with its
// embedded slot list. DayOfWeek follows the upstream encoding: 0 = Sunday.
type WeeklySchedule struct {
	ID            string       `json:"id"`
	TherapistID   string       `json:"therapistId"`
	TherapistName string       `json:"therapistName"`
	DayOfWeek     time.Weekday `json:"dayOfWeek"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime"`
	TimeSlots     []TimeSlot   `json:"timeSlots"`
}
