package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRequest(f *schedulingFixture, date, tod string, duration int) *dto.ScheduleAppointmentRequest {
	return &dto.ScheduleAppointmentRequest{
		PatientID:         f.patient.ID,
		DoctorID:          f.doctor.ID,
		AppointmentDate:   date,
		AppointmentTime:   tod,
		DurationInMinutes: duration,
		Reason:            "Annual checkup",
	}
}

func TestScheduleAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	got, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusScheduled), got.Status)
	assert.Equal(t, f.patient.ID, got.PatientID)
	assert.Equal(t, f.doctor.ID, got.DoctorID)
	assert.Equal(t, "10:00", got.AppointmentTime)
	assert.Equal(t, 30, got.DurationInMinutes)
	assert.Equal(t, got.StartAt.Add(30*time.Minute), got.EndAt)
}

func TestScheduleAppointmentTrimsTextFields(t *testing.T) {
	f := newSchedulingFixture(t)

	req := scheduleRequest(f, futureDate(30), "10:00", 30)
	req.Reason = "  follow-up  "
	req.Notes = "\tbring previous results\n"

	got, err := f.appointments.ScheduleAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "follow-up", got.Reason)
	assert.Equal(t, "bring previous results", got.Notes)
}

func TestScheduleAppointmentConflict(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	_, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:00", 30))
	require.NoError(t, err)

	// Overlapping window is rejected
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:15", 30))
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	// A containing window is rejected too
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "09:45", 60))
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	// Back-to-back is legal
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:30", 30))
	assert.NoError(t, err)
}

func TestScheduleAppointmentCancelledSlotIsFree(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	first, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:00", 30))
	require.NoError(t, err)

	_, err = f.appointments.CancelAppointment(ctx, first.ID, &dto.CancelAppointmentRequest{})
	require.NoError(t, err)

	// Cancelled appointments do not block the window
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:00", 30))
	assert.NoError(t, err)
}

func TestScheduleAppointmentValidation(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	_, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 0))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 481))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, "30-01-2030", "10:00", 30))
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "25:99", 30))
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(-2), "10:00", 30))
	assert.ErrorIs(t, err, ErrAppointmentInPast)

	req := scheduleRequest(f, futureDate(30), "10:00", 30)
	req.PatientID = 9999
	_, err = f.appointments.ScheduleAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	req = scheduleRequest(f, futureDate(30), "10:00", 30)
	req.DoctorID = 9999
	_, err = f.appointments.ScheduleAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestScheduleAppointmentDoctorUnavailable(t *testing.T) {
	f := newSchedulingFixture(t)

	f.doctor.IsAvailable = false
	require.NoError(t, f.db.Save(f.doctor).Error)

	_, err := f.appointments.ScheduleAppointment(context.Background(), scheduleRequest(f, futureDate(30), "10:00", 30))
	assert.ErrorIs(t, err, ErrDoctorNotAvailable)
}

func TestConfirmAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	confirmed, err := f.appointments.ConfirmAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), confirmed.Status)

	// Confirm is only legal from scheduled
	_, err = f.appointments.ConfirmAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, ErrConfirmNotScheduled)
}

func TestCancelAndRestoreRoundTrip(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	cancelled, err := f.appointments.CancelAppointment(ctx, created.ID, &dto.CancelAppointmentRequest{Reason: "patient request"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "patient request", *cancelled.CancellationReason)

	// Cancelled appointments are immutable
	_, err = f.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   futureDate(31),
		AppointmentTime:   "11:00",
		DurationInMinutes: 30,
		Status:            string(entity.AppointmentStatusScheduled),
	})
	assert.ErrorIs(t, err, ErrUpdateCancelled)

	restored, err := f.appointments.RestoreAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), restored.Status)
	assert.Nil(t, restored.CancelledAt)
	assert.Nil(t, restored.CancellationReason)

	_, err = f.appointments.RestoreAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRestoreNotCancelled)
}

func TestRestorePastDatedAppointment(t *testing.T) {
	f := newSchedulingFixture(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	cancelledAt := time.Now().UTC()
	appointment := &entity.Appointment{
		PatientID:         f.patient.ID,
		DoctorID:          f.doctor.ID,
		AppointmentDate:   yesterday,
		AppointmentTime:   "10:00",
		DurationInMinutes: 30,
		Status:            entity.AppointmentStatusCancelled,
		CancelledAt:       &cancelledAt,
	}
	require.NoError(t, f.db.Create(appointment).Error)

	_, err := f.appointments.RestoreAppointment(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrRestorePastDate)
}

func TestCancelCompletedAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	_, err = f.appointments.CompleteAppointment(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.appointments.CancelAppointment(ctx, created.ID, &dto.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCancelCompleted)
}

func TestCompleteCancelledAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	_, err = f.appointments.CancelAppointment(ctx, created.ID, &dto.CancelAppointmentRequest{})
	require.NoError(t, err)

	_, err = f.appointments.CompleteAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCompleteCancelled)
}

func TestMarkNoShow(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	marked, err := f.appointments.MarkNoShow(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusNoShow), marked.Status)

	other, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(31), "10:00", 30))
	require.NoError(t, err)
	_, err = f.appointments.CancelAppointment(ctx, other.ID, &dto.CancelAppointmentRequest{})
	require.NoError(t, err)

	_, err = f.appointments.MarkNoShow(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNoShowCancelled)
}

func TestUpdateAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	date := futureDate(30)

	first, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "10:00", 30))
	require.NoError(t, err)
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, date, "11:00", 30))
	require.NoError(t, err)

	// Rescheduling onto the other appointment's window conflicts
	_, err = f.appointments.UpdateAppointment(ctx, first.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   date,
		AppointmentTime:   "11:15",
		DurationInMinutes: 30,
		Status:            string(entity.AppointmentStatusScheduled),
	})
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	// Keeping its own window is fine, the appointment never conflicts with itself
	updated, err := f.appointments.UpdateAppointment(ctx, first.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   date,
		AppointmentTime:   "10:00",
		DurationInMinutes: 45,
		Status:            string(entity.AppointmentStatusConfirmed),
		Notes:             "longer visit",
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DurationInMinutes)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), updated.Status)

	_, err = f.appointments.UpdateAppointment(ctx, first.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   date,
		AppointmentTime:   "10:00",
		DurationInMinutes: 30,
		Status:            "sleeping",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateAppointmentToCompletedAllowsPast(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	// Recording a finished visit in the past is allowed when the target
	// status is completed
	updated, err := f.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   futureDate(-1),
		AppointmentTime:   "10:00",
		DurationInMinutes: 30,
		Status:            string(entity.AppointmentStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), updated.Status)

	other, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(31), "10:00", 30))
	require.NoError(t, err)

	_, err = f.appointments.UpdateAppointment(ctx, other.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate:   futureDate(-1),
		AppointmentTime:   "10:00",
		DurationInMinutes: 30,
		Status:            string(entity.AppointmentStatusScheduled),
	})
	assert.ErrorIs(t, err, ErrAppointmentInPast)
}

func TestDeleteAppointment(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	created, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(30), "10:00", 30))
	require.NoError(t, err)

	require.NoError(t, f.appointments.DeleteAppointment(ctx, created.ID))

	_, err = f.appointments.GetAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.ErrorIs(t, f.appointments.DeleteAppointment(ctx, created.ID), ErrAppointmentNotFound)
}

func TestGetAppointmentsByDateRange(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	_, err := f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(10), "10:00", 30))
	require.NoError(t, err)
	_, err = f.appointments.ScheduleAppointment(ctx, scheduleRequest(f, futureDate(20), "10:00", 30))
	require.NoError(t, err)

	got, err := f.appointments.GetAppointmentsByDateRange(ctx, futureDate(5), futureDate(15))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	_, err = f.appointments.GetAppointmentsByDateRange(ctx, futureDate(15), futureDate(5))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
