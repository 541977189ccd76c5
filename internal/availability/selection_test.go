package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSelection() Selection {
	return Selection{
		ServiceID:   "svc-facial",
		TherapistID: "th-anna",
		Date:        "2026-06-01",
		TimeSlotID:  "slot-1",
	}
}

func TestApplyServiceClearsDownstream(t *testing.T) {
	got := Apply(fullSelection(), FieldService, "svc-peel")

	assert.Equal(t, "svc-peel", got.ServiceID)
	assert.Empty(t, got.TherapistID)
	assert.Empty(t, got.Date)
	assert.Empty(t, got.TimeSlotID)
}

func TestApplyTherapistClearsDateAndSlot(t *testing.T) {
	got := Apply(fullSelection(), FieldTherapist, "th-bao")

	assert.Equal(t, "svc-facial", got.ServiceID)
	assert.Equal(t, "th-bao", got.TherapistID)
	assert.Empty(t, got.Date)
	assert.Empty(t, got.TimeSlotID)
}

func TestApplyDateClearsSlot(t *testing.T) {
	got := Apply(fullSelection(), FieldDate, "2026-06-08")

	assert.Equal(t, "svc-facial", got.ServiceID)
	assert.Equal(t, "th-anna", got.TherapistID)
	assert.Equal(t, "2026-06-08", got.Date)
	assert.Empty(t, got.TimeSlotID)
}

func TestApplySlotKeepsUpstream(t *testing.T) {
	got := Apply(fullSelection(), FieldTimeSlot, "slot-2")
	assert.Equal(t, fullSelection().ServiceID, got.ServiceID)
	assert.Equal(t, fullSelection().TherapistID, got.TherapistID)
	assert.Equal(t, fullSelection().Date, got.Date)
	assert.Equal(t, "slot-2", got.TimeSlotID)
}

func TestApplyClearsEvenWhenDownstreamStillValid(t *testing.T) {
	// Re-selecting the same service still resets everything below it.
	sel := fullSelection()
	got := Apply(sel, FieldService, sel.ServiceID)
	assert.Empty(t, got.TherapistID)
	assert.Empty(t, got.Date)
	assert.Empty(t, got.TimeSlotID)
}

func TestComplete(t *testing.T) {
	assert.True(t, fullSelection().Complete())
	assert.False(t, Selection{}.Complete())

	partial := fullSelection()
	partial.TimeSlotID = ""
	assert.False(t, partial.Complete())
}

func TestAppointmentDate(t *testing.T) {
	d, err := fullSelection().AppointmentDate(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, time.Monday, d.Weekday())

	bad := fullSelection()
	bad.Date = "06/01/2026"
	_, err = bad.AppointmentDate(time.UTC)
	assert.Error(t, err)
}

func TestValidateForSubmit(t *testing.T) {
	slots := []TimeSlot{
		{ID: "slot-1", Status: SlotOpen},
		{ID: "slot-2", Status: SlotBooked},
	}

	t.Run("open slot passes", func(t *testing.T) {
		assert.NoError(t, ValidateForSubmit(fullSelection(), slots))
	})

	t.Run("incomplete selection", func(t *testing.T) {
		sel := fullSelection()
		sel.TherapistID = ""
		assert.ErrorIs(t, ValidateForSubmit(sel, slots), ErrIncompleteSelection)
	})

	t.Run("slot flipped to booked since fetch", func(t *testing.T) {
		stale := []TimeSlot{{ID: "slot-1", Status: SlotBooked}}
		err := ValidateForSubmit(fullSelection(), stale)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("slot missing from latest list", func(t *testing.T) {
		assert.ErrorIs(t, ValidateForSubmit(fullSelection(), nil), ErrSlotNotAvailable)
	})

	t.Run("unknown status treated as unavailable", func(t *testing.T) {
		weird := []TimeSlot{{ID: "slot-1", Status: SlotStatus(7)}}
		assert.ErrorIs(t, ValidateForSubmit(fullSelection(), weird), ErrSlotNotAvailable)
	})
}
