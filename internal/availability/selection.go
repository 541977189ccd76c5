package availability

import (
	"errors"
	"time"
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

var (
	// ErrIncompleteSelection is returned when any of the four booking
	// choices is still empty at submit time.
	ErrIncompleteSelection = errors.New("service, therapist, date and time slot must all be selected")

	// ErrSlotNotAvailable is returned when the chosen slot is no longer
	// open in the latest slot list.
	ErrSlotNotAvailable = errors.New("the selected time slot is not available")
)

// Selection is the in-progress booking choice. The four fields form a strict
// dependency chain: service, then therapist, then date, then slot.
type Selection struct {
	ServiceID   string `json:"serviceId"`
	TherapistID string `json:"therapistId"`
	Date        string `json:"appointmentDate"`
	TimeSlotID  string `json:"timeSlotId"`
}

// Field names one position in the selection chain.
type Field int

const (
	FieldService Field = iota
	FieldTherapist
	FieldDate
	FieldTimeSlot
)

// Apply sets one field and unconditionally clears every field downstream of
// it, even when the downstream choice would still have been valid. This is
// the only state transition on a Selection.
func Apply(s Selection, field Field, value string) Selection {
	switch field {
	case FieldService:
		return Selection{ServiceID: value}
	case FieldTherapist:
		return Selection{ServiceID: s.ServiceID, TherapistID: value}
	case FieldDate:
		return Selection{ServiceID: s.ServiceID, TherapistID: s.TherapistID, Date: value}
	case FieldTimeSlot:
		s.TimeSlotID = value
		return s
	}
	return s
}

// Complete reports whether all four choices have been made.
func (s Selection) Complete() bool {
	return s.ServiceID != "" && s.TherapistID != "" && s.Date != "" && s.TimeSlotID != ""
}

// AppointmentDate parses the selected date in the given location.
func (s Selection) AppointmentDate(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s.Date, loc)
}

// ValidateForSubmit re-checks a selection against the most recently fetched
// slot list. The slot must still be present and open; the authoritative check
// remains server-side, this only rejects known-stale submissions before any
// request is sent.
func ValidateForSubmit(s Selection, slots []TimeSlot) error {
	if !s.Complete() {
		return ErrIncompleteSelection
	}
	for _, slot := range slots {
		if slot.ID == s.TimeSlotID {
			if !slot.Status.Bookable() {
				return ErrSlotNotAvailable
			}
			return nil
		}
	}
	return ErrSlotNotAvailable
}
