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

const (
	minSlotDuration = 15 * time.Minute
	maxSlotDuration = 8 * time.Hour
)

var (
	ErrTimeSlotNotFound    = errors.New("time slot not found")
	ErrInvalidSlotWindow   = errors.New("slot start time must be before end time")
	ErrInvalidSlotDuration = errors.New("slot duration must be between 15 minutes and 8 hours")
	ErrSlotInPast          = errors.New("slot start time must be in the future")
	ErrSlotConflict        = errors.New("slot overlaps an existing slot for this doctor")
	ErrNoValidSlots        = errors.New("no valid slots could be generated for the given window")
)

type TimeSlotUsecase interface {
	GetTimeSlot(ctx context.Context, id int) (*dto.TimeSlotResponse, error)
	GetAllTimeSlots(ctx context.Context) (*dto.TimeSlotListResponse, error)
	GetTimeSlotsByDoctor(ctx context.Context, doctorID int) (*dto.TimeSlotListResponse, error)
	GetTimeSlotsByDate(ctx context.Context, date string) (*dto.TimeSlotListResponse, error)
	GetTimeSlotsByDoctorAndDate(ctx context.Context, doctorID int, date string) (*dto.TimeSlotListResponse, error)
	GetTimeSlotsByDateRange(ctx context.Context, startDate, endDate string) (*dto.TimeSlotListResponse, error)
	GetAvailableSlotsByDoctor(ctx context.Context, doctorID int) (*dto.TimeSlotListResponse, error)
	GetAvailableSlotsByDoctorAndDateRange(ctx context.Context, doctorID int, startDate, endDate string) (*dto.TimeSlotListResponse, error)
	GetDoctorAvailability(ctx context.Context, doctorID int, date string) (*dto.DoctorAvailabilityResponse, error)
	CreateTimeSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	BulkCreateTimeSlots(ctx context.Context, req *dto.BulkCreateTimeSlotsRequest) (*dto.TimeSlotListResponse, error)
	UpdateTimeSlot(ctx context.Context, id int, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	BlockTimeSlot(ctx context.Context, id int, req *dto.BlockTimeSlotRequest) (*dto.TimeSlotResponse, error)
	UnblockTimeSlot(ctx context.Context, id int) (*dto.TimeSlotResponse, error)
	DeleteTimeSlot(ctx context.Context, id int) error
	DeleteTimeSlotsByDoctorAndDate(ctx context.Context, doctorID int, date string) (*dto.DeletedCountResponse, error)
}

type timeSlotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	timeSlotRepo    repository.TimeSlotRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewTimeSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timeSlotRepo repository.TimeSlotRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		db:              db,
		log:             log,
		timeSlotRepo:    timeSlotRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *timeSlotUsecase) GetTimeSlot(ctx context.Context, id int) (*dto.TimeSlotResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	slot, err := u.timeSlotRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find time slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrTimeSlotNotFound
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) GetAllTimeSlots(ctx context.Context) (*dto.TimeSlotListResponse, error) {
	slots, err := u.timeSlotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list time slots: %+v", err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetTimeSlotsByDoctor(ctx context.Context, doctorID int) (*dto.TimeSlotListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}

	db := u.db.WithContext(ctx)
	if err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}

	slots, err := u.timeSlotRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slots for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetTimeSlotsByDate(ctx context.Context, date string) (*dto.TimeSlotListResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(todayUTC()) {
		return nil, ErrDateInPast
	}

	slots, err := u.timeSlotRepo.FindByDate(u.db.WithContext(ctx), day)
	if err != nil {
		u.log.Warnf("Failed to find time slots for date %s: %+v", date, err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetTimeSlotsByDoctorAndDate(ctx context.Context, doctorID int, date string) (*dto.TimeSlotListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(todayUTC()) {
		return nil, ErrDateInPast
	}

	db := u.db.WithContext(ctx)
	if err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}

	slots, err := u.timeSlotRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find time slots for doctor %d on %s: %+v", doctorID, date, err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetTimeSlotsByDateRange(ctx context.Context, startDate, endDate string) (*dto.TimeSlotListResponse, error) {
	start, end, err := parseFutureDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	slots, err := u.timeSlotRepo.FindByDateRange(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.Warnf("Failed to find time slots in range: %+v", err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetAvailableSlotsByDoctor(ctx context.Context, doctorID int) (*dto.TimeSlotListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}

	db := u.db.WithContext(ctx)
	if err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}

	slots, err := u.timeSlotRepo.FindAvailableByDoctor(db, doctorID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to find available slots for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

func (u *timeSlotUsecase) GetAvailableSlotsByDoctorAndDateRange(ctx context.Context, doctorID int, startDate, endDate string) (*dto.TimeSlotListResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}
	start, end, err := parseFutureDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	if err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}

	slots, err := u.timeSlotRepo.FindAvailableByDoctorAndDateRange(db, doctorID, start, end, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to find available slots for doctor %d in range: %+v", doctorID, err)
		return nil, err
	}
	return timeSlotList(slots), nil
}

// GetDoctorAvailability resolves the bookable windows for a doctor on a day.
// Persisted slots win when any exist for the date; otherwise a default
// 9-17h/30min grid is generated. In both cases windows overlapping any
// non-cancelled appointment are removed, as are blocked or unavailable
// persisted slots and windows that already started.
func (u *timeSlotUsecase) GetDoctorAvailability(ctx context.Context, doctorID int, date string) (*dto.DoctorAvailabilityResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(todayUTC()) {
		return nil, ErrDateInPast
	}

	db := u.db.WithContext(ctx)
	if err := u.requireDoctor(db, doctorID); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load appointments for availability, doctor %d: %+v", doctorID, err)
		return nil, err
	}

	booked := make([]scheduling.Interval, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, scheduling.Interval{Start: a.StartAt(), End: a.EndAt()})
	}

	slots, err := u.timeSlotRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load slots for availability, doctor %d: %+v", doctorID, err)
		return nil, err
	}

	now := time.Now().UTC()
	response := &dto.DoctorAvailabilityResponse{
		DoctorID:  doctorID,
		Date:      day.Format(dateLayout),
		Intervals: []dto.AvailableIntervalResponse{},
	}

	if len(slots) > 0 {
		response.Source = "slots"
		for i := range slots {
			slot := slots[i]
			if !slot.IsUsable(now) {
				continue
			}
			if overlapsAny(slot.StartTime, slot.EndTime, booked) {
				continue
			}
			id := slot.ID
			response.Intervals = append(response.Intervals, dto.AvailableIntervalResponse{
				StartTime:  slot.StartTime,
				EndTime:    slot.EndTime,
				TimeSlotID: &id,
			})
		}
	} else {
		response.Source = "generated"
		for _, candidate := range scheduling.DefaultGrid(day, now) {
			if overlapsAny(candidate.Start, candidate.End, booked) {
				continue
			}
			response.Intervals = append(response.Intervals, dto.AvailableIntervalResponse{
				StartTime: candidate.Start,
				EndTime:   candidate.End,
			})
		}
	}

	response.Total = len(response.Intervals)
	return response, nil
}

func (u *timeSlotUsecase) CreateTimeSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	if req.DoctorID <= 0 {
		return nil, ErrInvalidID
	}

	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	if err := validateSlotWindow(start, end, true); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireDoctor(tx, req.DoctorID); err != nil {
		return nil, err
	}

	conflict, err := u.timeSlotRepo.HasConflict(tx, req.DoctorID, start, end, 0)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	slot := &entity.TimeSlot{
		DoctorID:    req.DoctorID,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}

	if err := u.timeSlotRepo.Create(tx, slot); err != nil {
		u.log.Warnf("Failed to create time slot: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actorFromContext(ctx), "timeslot.created", "time_slot", slot.ID, slotAudit(slot)); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit time slot: %+v", err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

// BulkCreateTimeSlots walks the requested window in slot-sized steps and
// persists every candidate that does not collide with an existing slot.
// Colliding candidates are skipped rather than failing the batch; a batch
// where nothing survives is an error. The surviving set commits atomically.
func (u *timeSlotUsecase) BulkCreateTimeSlots(ctx context.Context, req *dto.BulkCreateTimeSlotsRequest) (*dto.TimeSlotListResponse, error) {
	if req.DoctorID <= 0 {
		return nil, ErrInvalidID
	}

	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startTod, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTod, err := parseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}

	windowStart := combine(day, startTod)
	windowEnd := combine(day, endTod)
	if !windowStart.Before(windowEnd) {
		return nil, ErrInvalidSlotWindow
	}

	step := time.Duration(req.SlotDurationInMinutes) * time.Minute
	if step < minSlotDuration || step > maxSlotDuration {
		return nil, ErrInvalidSlotDuration
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireDoctor(tx, req.DoctorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var slots []entity.TimeSlot
	for start := windowStart; !start.Add(step).After(windowEnd); start = start.Add(step) {
		if !start.After(now) {
			continue
		}

		conflict, err := u.timeSlotRepo.HasConflict(tx, req.DoctorID, start, start.Add(step), 0)
		if err != nil {
			u.log.Warnf("Failed to check slot conflict for doctor %d: %+v", req.DoctorID, err)
			return nil, err
		}
		if conflict {
			continue
		}

		slots = append(slots, entity.TimeSlot{
			DoctorID:    req.DoctorID,
			StartTime:   start,
			EndTime:     start.Add(step),
			IsAvailable: true,
		})
	}

	if len(slots) == 0 {
		return nil, ErrNoValidSlots
	}

	if err := u.timeSlotRepo.CreateBulk(tx, slots); err != nil {
		u.log.Warnf("Failed to bulk create time slots: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, actorFromContext(ctx), "timeslot.bulk_created", "time_slot", 0, map[string]interface{}{
		"doctor_id": req.DoctorID,
		"date":      day.Format(dateLayout),
		"count":     len(slots),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit bulk time slots: %+v", err)
		return nil, err
	}

	u.log.Infof("Bulk created %d time slots for doctor %d on %s", len(slots), req.DoctorID, req.Date)
	return timeSlotList(slots), nil
}

// UpdateTimeSlot rewrites the slot window and flags. Past start times are
// allowed here so historical slots can be corrected.
func (u *timeSlotUsecase) UpdateTimeSlot(ctx context.Context, id int, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	if err := validateSlotWindow(start, end, false); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.timeSlotRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find time slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrTimeSlotNotFound
	}

	conflict, err := u.timeSlotRepo.HasConflict(tx, slot.DoctorID, start, end, id)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict for doctor %d: %+v", slot.DoctorID, err)
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	old := slotAudit(slot)
	slot.StartTime = start
	slot.EndTime = end
	slot.IsAvailable = req.IsAvailable
	slot.IsBlocked = req.IsBlocked
	if reason := strings.TrimSpace(req.BlockReason); reason != "" {
		slot.BlockReason = &reason
	} else {
		slot.BlockReason = nil
	}

	if err := u.saveWithAudit(ctx, tx, slot, "timeslot.updated", old); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit time slot update: %+v", err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) BlockTimeSlot(ctx context.Context, id int, req *dto.BlockTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	return u.toggle(ctx, id, "timeslot.blocked", func(slot *entity.TimeSlot) {
		slot.Block(reason)
	})
}

func (u *timeSlotUsecase) UnblockTimeSlot(ctx context.Context, id int) (*dto.TimeSlotResponse, error) {
	return u.toggle(ctx, id, "timeslot.unblocked", func(slot *entity.TimeSlot) {
		slot.Unblock()
	})
}

func (u *timeSlotUsecase) DeleteTimeSlot(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.timeSlotRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find time slot %d: %+v", id, err)
		return err
	}
	if slot == nil {
		return ErrTimeSlotNotFound
	}

	if _, err := u.timeSlotRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete time slot %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(tx, actorFromContext(ctx), "timeslot.deleted", "time_slot", id, slotAudit(slot)); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (u *timeSlotUsecase) DeleteTimeSlotsByDoctorAndDate(ctx context.Context, doctorID int, date string) (*dto.DeletedCountResponse, error) {
	if doctorID <= 0 {
		return nil, ErrInvalidID
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireDoctor(tx, doctorID); err != nil {
		return nil, err
	}

	deleted, err := u.timeSlotRepo.DeleteByDoctorAndDate(tx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to delete time slots for doctor %d on %s: %+v", doctorID, date, err)
		return nil, err
	}

	if err := u.auditService.LogDelete(tx, actorFromContext(ctx), "timeslot.deleted_by_date", "time_slot", 0, map[string]interface{}{
		"doctor_id": doctorID,
		"date":      day.Format(dateLayout),
		"deleted":   deleted,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit slot deletion: %+v", err)
		return nil, err
	}

	return &dto.DeletedCountResponse{Deleted: deleted}, nil
}

func (u *timeSlotUsecase) toggle(ctx context.Context, id int, action string, mutate func(*entity.TimeSlot)) (*dto.TimeSlotResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.timeSlotRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find time slot %d: %+v", id, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrTimeSlotNotFound
	}

	old := slotAudit(slot)
	mutate(slot)

	if err := u.saveWithAudit(ctx, tx, slot, action, old); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit %s for time slot %d: %+v", action, id, err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) saveWithAudit(ctx context.Context, tx *gorm.DB, slot *entity.TimeSlot, action string, old map[string]interface{}) error {
	if err := u.timeSlotRepo.Update(tx, slot); err != nil {
		u.log.Warnf("Failed to update time slot %d: %+v", slot.ID, err)
		return err
	}
	return u.auditService.LogUpdate(tx, actorFromContext(ctx), action, "time_slot", slot.ID, old, slotAudit(slot))
}

func (u *timeSlotUsecase) requireDoctor(db *gorm.DB, doctorID int) error {
	exists, err := u.doctorRepo.Exists(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check doctor %d: %+v", doctorID, err)
		return err
	}
	if !exists {
		return ErrDoctorNotFound
	}
	return nil
}

func validateSlotWindow(start, end time.Time, requireFuture bool) error {
	if !start.Before(end) {
		return ErrInvalidSlotWindow
	}
	if d := end.Sub(start); d < minSlotDuration || d > maxSlotDuration {
		return ErrInvalidSlotDuration
	}
	if requireFuture && !start.After(time.Now().UTC()) {
		return ErrSlotInPast
	}
	return nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

// parseFutureDateRange is parseDateRange for slot lookups, where a range
// starting before today is invalid. Appointment history queries stay on
// the unrestricted variant.
func parseFutureDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.Before(todayUTC()) {
		return time.Time{}, time.Time{}, ErrDateInPast
	}
	return start, end, nil
}

func overlapsAny(start, end time.Time, intervals []scheduling.Interval) bool {
	for _, iv := range intervals {
		if scheduling.Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

func slotAudit(slot *entity.TimeSlot) map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":    slot.DoctorID,
		"start_time":   slot.StartTime.Format(time.RFC3339),
		"end_time":     slot.EndTime.Format(time.RFC3339),
		"is_available": slot.IsAvailable,
		"is_blocked":   slot.IsBlocked,
	}
}

func timeSlotList(slots []entity.TimeSlot) *dto.TimeSlotListResponse {
	return &dto.TimeSlotListResponse{
		TimeSlots: converter.TimeSlotsToResponses(slots),
		Total:     len(slots),
	}
}
