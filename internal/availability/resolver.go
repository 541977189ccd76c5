package availability

import "time"

// DefaultWindowDays is the rolling booking window: today plus the next 29
// calendar days.
const DefaultWindowDays = 30

// Therapists returns the unique therapists appearing in the schedule list,
// preserving first-seen order.
func Therapists(schedules []WeeklySchedule) []Therapist {
	seen := make(map[string]bool, len(schedules))
	out := make([]Therapist, 0, len(schedules))
	for _, sched := range schedules {
		if sched.TherapistID == "" || seen[sched.TherapistID] {
			continue
		}
		seen[sched.TherapistID] = true
		out = append(out, Therapist{ID: sched.TherapistID, Name: sched.TherapistName})
	}
	return out
}

// FilterTherapists narrows the schedule catalog to therapists linked to the
// given service. An empty serviceID yields no therapists: the caller must
// pick a service before a therapist.
func FilterTherapists(serviceID string, schedules []WeeklySchedule, servicesByTherapist map[string][]Service) []Therapist {
	if serviceID == "" {
		return nil
	}
	var out []Therapist
	for _, t := range Therapists(schedules) {
		for _, svc := range servicesByTherapist[t.ID] {
			if svc.ID == serviceID {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// AvailableDates enumerates the windowDays-day window starting at from and
// keeps dates whose weekday has at least one open slot in the therapist's
// schedule. Results are ascending. An empty therapistID yields no dates.
func AvailableDates(therapistID string, schedules []WeeklySchedule, from time.Time, windowDays int) []time.Time {
	if therapistID == "" || windowDays <= 0 {
		return nil
	}

	open := make(map[time.Weekday]bool)
	for _, sched := range schedules {
		if sched.TherapistID != therapistID || open[sched.DayOfWeek] {
			continue
		}
		for _, slot := range sched.TimeSlots {
			if slot.Status == SlotOpen {
				open[sched.DayOfWeek] = true
				break
			}
		}
	}
	if len(open) == 0 {
		return nil
	}

	start := dateOnly(from)
	var dates []time.Time
	for i := 0; i < windowDays; i++ {
		d := start.AddDate(0, 0, i)
		if open[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// TimeSlotsFor returns the full slot list (all statuses, so closed slots can
// be rendered disabled) for the therapist's schedule entry matching the
// date's weekday. When a therapist carries duplicate entries for the same
// weekday, the first entry in catalog order wins.
func TimeSlotsFor(therapistID string, date time.Time, schedules []WeeklySchedule) []TimeSlot {
	if therapistID == "" || date.IsZero() {
		return nil
	}
	weekday := date.Weekday()
	for _, sched := range schedules {
		if sched.TherapistID == therapistID && sched.DayOfWeek == weekday {
			return sched.TimeSlots
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
