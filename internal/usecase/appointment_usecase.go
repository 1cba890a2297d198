package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-booking-server/internal/converter"
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
	"clinic-booking-server/internal/domain/repository"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrDoctorNotAvailable    = errors.New("doctor is not available")
	ErrInvalidDuration       = errors.New("duration must be between 1 and 480 minutes")
	ErrAppointmentInPast     = errors.New("appointment date and time must be in the future")
	ErrSchedulingConflict    = errors.New("doctor has a scheduling conflict at this time")
	ErrUpdateCancelled       = errors.New("cannot update a cancelled appointment")
	ErrInvalidStatus         = errors.New("invalid appointment status")
	ErrConfirmNotScheduled   = errors.New("only scheduled appointments can be confirmed")
	ErrCompleteCancelled     = errors.New("cancelled appointments cannot be completed")
	ErrAlreadyCancelled      = errors.New("appointment is already cancelled")
	ErrCancelCompleted       = errors.New("cannot cancel a completed appointment")
	ErrRestoreNotCancelled   = errors.New("only cancelled appointments can be restored")
	ErrRestorePastDate       = errors.New("cannot restore an appointment with a past date")
	ErrNoShowCancelled       = errors.New("cannot mark a cancelled appointment as no-show")
)

// AppointmentUsecase is the state-transition authority for the appointment
// lifecycle. Conflict checks run inside the same transaction as the write to
// keep the check-then-act window as small as the store allows.
type AppointmentUsecase interface {
	GetAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointmentsByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error)
	GetAppointmentsByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error)
	GetAppointmentsByDateRange(ctx context.Context, startDate, endDate string) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointmentsByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointmentsByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error)
	ScheduleAppointment(ctx context.Context, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ConfirmAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id int, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	RestoreAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id int) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetAppointmentsByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error) {
	if patientID <= 0 {
		return nil, ErrInvalidID
	}

	db := u.db.WithContext(ctx)
	exists, err := u.patientRepo.Exists(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to check patient %d: %+v", patientID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetAppointmentsByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}

	db := u.db.WithContext(ctx)
	exists, err := u.doctorRepo.Exists(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetAppointmentsByDateRange(ctx context.Context, startDate, endDate string) (*dto.AppointmentListResponse, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	appointments, err := u.appointmentRepo.FindByDateRange(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.Warnf("Failed to find appointments in range: %+v", err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetUpcomingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments: %+v", err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetUpcomingAppointmentsByDoctor(ctx context.Context, doctorID int) (*dto.AppointmentListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}

	appointments, err := u.appointmentRepo.FindUpcomingByDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

func (u *appointmentUsecase) GetUpcomingAppointmentsByPatient(ctx context.Context, patientID int) (*dto.AppointmentListResponse, error) {
	if patientID <= 0 {
		return nil, ErrInvalidID
	}

	appointments, err := u.appointmentRepo.FindUpcomingByPatient(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return appointmentList(appointments), nil
}

// ScheduleAppointment validates and books a new appointment.
//
// Flow:
// 1. Input validation (ids, duration, date/time formats) before any store access
// 2. Patient exists, doctor exists and is available
// 3. Effective instant strictly in the future
// 4. No overlap with the doctor's non-cancelled appointments on the same date
// 5. Insert, all inside one transaction
func (u *appointmentUsecase) ScheduleAppointment(ctx context.Context, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.PatientID <= 0 || req.DoctorID <= 0 {
		return nil, ErrInvalidID
	}
	if req.DurationInMinutes <= 0 || req.DurationInMinutes > 480 {
		return nil, ErrInvalidDuration
	}

	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	tod, err := parseTimeOfDay(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	startAt := combine(date, tod)
	if !startAt.After(time.Now().UTC()) {
		return nil, ErrAppointmentInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.patientRepo.Exists(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to check patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsAvailable {
		return nil, ErrDoctorNotAvailable
	}

	conflict, err := u.hasConflict(tx, req.DoctorID, startAt, req.DurationInMinutes, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSchedulingConflict
	}

	appointment := &entity.Appointment{
		PatientID:         req.PatientID,
		DoctorID:          req.DoctorID,
		AppointmentDate:   date,
		AppointmentTime:   tod.Format(entity.TimeOfDayLayout),
		DurationInMinutes: req.DurationInMinutes,
		Status:            entity.AppointmentStatusScheduled,
		Reason:            strings.TrimSpace(req.Reason),
		Notes:             strings.TrimSpace(req.Notes),
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actorFromContext(ctx), "appointment.scheduled", "appointment", appointment.ID, appointmentAudit(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment scheduled: id=%d, doctor=%d, patient=%d, start=%s",
		appointment.ID, appointment.DoctorID, appointment.PatientID, startAt.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment reschedules or edits an appointment. Cancelled
// appointments are immutable until restored. The future-instant rule is
// waived when the target status is completed, so a visit can be recorded
// after the fact.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if req.DurationInMinutes <= 0 || req.DurationInMinutes > 480 {
		return nil, ErrInvalidDuration
	}

	status := entity.AppointmentStatus(req.Status)
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	tod, err := parseTimeOfDay(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	startAt := combine(date, tod)
	if !startAt.After(time.Now().UTC()) && status != entity.AppointmentStatusCompleted {
		return nil, ErrAppointmentInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsCancelled() {
		return nil, ErrUpdateCancelled
	}

	conflict, err := u.hasConflict(tx, appointment.DoctorID, startAt, req.DurationInMinutes, id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSchedulingConflict
	}

	old := appointmentAudit(appointment)
	appointment.AppointmentDate = date
	appointment.AppointmentTime = tod.Format(entity.TimeOfDayLayout)
	appointment.DurationInMinutes = req.DurationInMinutes
	appointment.Status = status
	appointment.Reason = strings.TrimSpace(req.Reason)
	appointment.Notes = strings.TrimSpace(req.Notes)

	if err := u.saveWithAudit(ctx, tx, appointment, "appointment.updated", old); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment update: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, "appointment.confirmed", func(a *entity.Appointment) error {
		if a.Status != entity.AppointmentStatusScheduled {
			return ErrConfirmNotScheduled
		}
		a.Status = entity.AppointmentStatusConfirmed
		return nil
	})
}

func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, "appointment.completed", func(a *entity.Appointment) error {
		if a.IsCancelled() {
			return ErrCompleteCancelled
		}
		a.Status = entity.AppointmentStatusCompleted
		return nil
	})
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id int, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	return u.transition(ctx, id, "appointment.cancelled", func(a *entity.Appointment) error {
		if a.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if a.IsCompleted() {
			return ErrCancelCompleted
		}
		now := time.Now().UTC()
		a.Status = entity.AppointmentStatusCancelled
		a.CancelledAt = &now
		if reason != "" {
			a.CancellationReason = &reason
		} else {
			a.CancellationReason = nil
		}
		return nil
	})
}

// RestoreAppointment reverts a cancellation, but never for a past date
func (u *appointmentUsecase) RestoreAppointment(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, "appointment.restored", func(a *entity.Appointment) error {
		if !a.IsCancelled() {
			return ErrRestoreNotCancelled
		}
		if a.AppointmentDate.UTC().Before(todayUTC()) {
			return ErrRestorePastDate
		}
		a.Status = entity.AppointmentStatusScheduled
		a.CancelledAt = nil
		a.CancellationReason = nil
		return nil
	})
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, "appointment.no_show", func(a *entity.Appointment) error {
		if a.IsCancelled() {
			return ErrNoShowCancelled
		}
		a.Status = entity.AppointmentStatusNoShow
		return nil
	})
}

// DeleteAppointment is the administrative escape hatch: it bypasses the
// state machine entirely.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if _, err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(tx, actorFromContext(ctx), "appointment.deleted", "appointment", id, appointmentAudit(appointment)); err != nil {
		return err
	}

	return tx.Commit().Error
}

// transition runs one state-machine step inside a transaction
func (u *appointmentUsecase) transition(ctx context.Context, id int, action string, mutate func(*entity.Appointment) error) (*dto.AppointmentResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	old := appointmentAudit(appointment)
	if err := mutate(appointment); err != nil {
		return nil, err
	}

	if err := u.saveWithAudit(ctx, tx, appointment, action, old); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit %s for appointment %d: %+v", action, id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) saveWithAudit(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment, action string, old map[string]interface{}) error {
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", appointment.ID, err)
		return err
	}
	return u.auditService.LogUpdate(tx, actorFromContext(ctx), action, "appointment", appointment.ID, old, appointmentAudit(appointment))
}

// hasConflict applies the half-open overlap check against all of the
// doctor's non-cancelled appointments on the candidate's calendar date.
func (u *appointmentUsecase) hasConflict(tx *gorm.DB, doctorID int, startAt time.Time, durationMinutes int, excludeID int) (bool, error) {
	endAt := startAt.Add(time.Duration(durationMinutes) * time.Minute)

	existing, err := u.appointmentRepo.FindActiveByDoctorAndDate(tx, doctorID, startAt)
	if err != nil {
		u.log.Warnf("Failed to load appointments for conflict check, doctor %d: %+v", doctorID, err)
		return false, err
	}

	for _, a := range existing {
		if a.ID == excludeID {
			continue
		}
		if scheduling.Overlaps(startAt, endAt, a.StartAt(), a.EndAt()) {
			return true, nil
		}
	}
	return false, nil
}

func appointmentAudit(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"patient_id": a.PatientID,
		"doctor_id":  a.DoctorID,
		"start_at":   a.StartAt().Format(time.RFC3339),
		"duration":   a.DurationInMinutes,
		"status":     string(a.Status),
	}
}

func appointmentList(appointments []entity.Appointment) *dto.AppointmentListResponse {
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}
