package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking-server/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotWindow(daysAhead, hour, minutes int) (time.Time, time.Time) {
	d := time.Now().UTC().AddDate(0, 0, daysAhead)
	start := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(minutes) * time.Minute)
}

func TestCreateTimeSlot(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	start, end := slotWindow(30, 9, 30)
	created, err := f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)
	assert.False(t, created.IsBlocked)

	// Overlapping slot is rejected
	overlapStart := start.Add(15 * time.Minute)
	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: overlapStart,
		EndTime:   overlapStart.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Adjacent slot is legal
	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: end,
		EndTime:   end.Add(30 * time.Minute),
	})
	assert.NoError(t, err)
}

func TestCreateTimeSlotValidation(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	start, _ := slotWindow(30, 9, 30)

	_, err := f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   start,
	})
	assert.ErrorIs(t, err, ErrInvalidSlotWindow)

	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   start.Add(10 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   start.Add(9 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	pastStart, pastEnd := slotWindow(-2, 9, 30)
	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: pastStart,
		EndTime:   pastEnd,
	})
	assert.ErrorIs(t, err, ErrSlotInPast)

	futureStart, futureEnd := slotWindow(30, 9, 30)
	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  9999,
		StartTime: futureStart,
		EndTime:   futureEnd,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBulkCreateTimeSlots(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	got, err := f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  date,
		StartTime:             "09:00",
		EndTime:               "12:00",
		SlotDurationInMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 30*time.Minute, got.TimeSlots[0].EndTime.Sub(got.TimeSlots[0].StartTime))

	// Overlapping the existing run skips the colliding candidates and keeps the rest
	second, err := f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  date,
		StartTime:             "11:30",
		EndTime:               "13:00",
		SlotDurationInMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 12, second.TimeSlots[0].StartTime.Hour())

	// A window fully covered by existing slots yields nothing
	_, err = f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  date,
		StartTime:             "09:00",
		EndTime:               "10:00",
		SlotDurationInMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrNoValidSlots)
}

func TestBulkCreateTimeSlotsValidation(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	_, err := f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  futureDate(30),
		StartTime:             "12:00",
		EndTime:               "09:00",
		SlotDurationInMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrInvalidSlotWindow)

	_, err = f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  futureDate(30),
		StartTime:             "09:00",
		EndTime:               "12:00",
		SlotDurationInMinutes: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)
}

func TestBlockAndUnblockTimeSlot(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	start, end := slotWindow(30, 9, 30)
	created, err := f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	blocked, err := f.timeSlots.BlockTimeSlot(ctx, created.ID, &dto.BlockTimeSlotRequest{Reason: "staff meeting"})
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.False(t, blocked.IsAvailable)
	require.NotNil(t, blocked.BlockReason)
	assert.Equal(t, "staff meeting", *blocked.BlockReason)

	unblocked, err := f.timeSlots.UnblockTimeSlot(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)
	assert.True(t, unblocked.IsAvailable)
	assert.Nil(t, unblocked.BlockReason)

	// A blank reason is stored as no reason
	blocked, err = f.timeSlots.BlockTimeSlot(ctx, created.ID, &dto.BlockTimeSlotRequest{Reason: "   "})
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.False(t, blocked.IsAvailable)
	assert.Nil(t, blocked.BlockReason)
}

func TestTimeSlotDateQueriesRejectPast(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	past := futureDate(-2)
	future := futureDate(5)

	_, err := f.timeSlots.GetTimeSlotsByDate(ctx, past)
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = f.timeSlots.GetTimeSlotsByDoctorAndDate(ctx, f.doctor.ID, past)
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = f.timeSlots.GetTimeSlotsByDateRange(ctx, past, future)
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = f.timeSlots.GetAvailableSlotsByDoctorAndDateRange(ctx, f.doctor.ID, past, future)
	assert.ErrorIs(t, err, ErrDateInPast)

	// Today onward is fine
	_, err = f.timeSlots.GetTimeSlotsByDateRange(ctx, futureDate(0), future)
	assert.NoError(t, err)

	_, err = f.timeSlots.GetTimeSlotsByDoctorAndDate(ctx, f.doctor.ID, futureDate(0))
	assert.NoError(t, err)
}

func TestDeleteTimeSlotsByDoctorAndDate(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	_, err := f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  date,
		StartTime:             "09:00",
		EndTime:               "11:00",
		SlotDurationInMinutes: 30,
	})
	require.NoError(t, err)

	got, err := f.timeSlots.DeleteTimeSlotsByDoctorAndDate(ctx, f.doctor.ID, date)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Deleted)

	// Second sweep finds nothing
	got, err = f.timeSlots.DeleteTimeSlotsByDoctorAndDate(ctx, f.doctor.ID, date)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Deleted)
}

func TestDoctorAvailabilityGenerated(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	// No persisted slots: the default 9-17h/30min grid applies
	got, err := f.timeSlots.GetDoctorAvailability(ctx, f.doctor.ID, date)
	require.NoError(t, err)
	assert.Equal(t, "generated", got.Source)
	assert.Equal(t, 16, got.Total)
	assert.Nil(t, got.Intervals[0].TimeSlotID)

	// A booked appointment removes every overlapping window
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:15", 30))
	require.NoError(t, err)

	got, err = f.timeSlots.GetDoctorAvailability(ctx, f.doctor.ID, date)
	require.NoError(t, err)
	assert.Equal(t, 14, got.Total)
	for _, iv := range got.Intervals {
		hm := iv.StartTime.Format("15:04")
		assert.NotEqual(t, "10:00", hm)
		assert.NotEqual(t, "10:30", hm)
	}
}

func TestDoctorAvailabilityFromPersistedSlots(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	created, err := f.timeSlots.BulkCreateTimeSlots(ctx, &dto.BulkCreateTimeSlotsRequest{
		DoctorID:              f.doctor.ID,
		Date:                  date,
		StartTime:             "09:00",
		EndTime:               "11:00",
		SlotDurationInMinutes: 30,
	})
	require.NoError(t, err)
	require.Equal(t, 4, created.Total)

	// Block 09:00, book over 10:00
	_, err = f.timeSlots.BlockTimeSlot(ctx, created.TimeSlots[0].ID, &dto.BlockTimeSlotRequest{})
	require.NoError(t, err)
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:00", 30))
	require.NoError(t, err)

	got, err := f.timeSlots.GetDoctorAvailability(ctx, f.doctor.ID, date)
	require.NoError(t, err)
	assert.Equal(t, "slots", got.Source)
	assert.Equal(t, 2, got.Total)
	for _, iv := range got.Intervals {
		require.NotNil(t, iv.TimeSlotID)
		hm := iv.StartTime.Format("15:04")
		assert.Contains(t, []string{"09:30", "10:30"}, hm)
	}
}

func TestDoctorAvailabilityValidation(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	_, err := f.timeSlots.GetDoctorAvailability(ctx, f.doctor.ID, futureDate(-2))
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = f.timeSlots.GetDoctorAvailability(ctx, 9999, futureDate(5))
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = f.timeSlots.GetDoctorAvailability(ctx, f.doctor.ID, "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestUpdateTimeSlotConflictExcludesSelf(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	start, end := slotWindow(30, 9, 30)
	created, err := f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	// Growing the same slot in place does not conflict with itself
	updated, err := f.timeSlots.UpdateTimeSlot(ctx, created.ID, &dto.UpdateTimeSlotRequest{
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, updated.EndTime.Sub(updated.StartTime))

	otherStart := start.Add(2 * time.Hour)
	_, err = f.timeSlots.CreateTimeSlot(ctx, &dto.CreateTimeSlotRequest{
		DoctorID:  f.doctor.ID,
		StartTime: otherStart,
		EndTime:   otherStart.Add(30 * time.Minute),
	})
	require.NoError(t, err)

	_, err = f.timeSlots.UpdateTimeSlot(ctx, created.ID, &dto.UpdateTimeSlotRequest{
		StartTime:   otherStart.Add(-15 * time.Minute),
		EndTime:     otherStart.Add(15 * time.Minute),
		IsAvailable: true,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}
