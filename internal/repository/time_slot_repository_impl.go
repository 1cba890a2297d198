package repository

import (
	"errors"
	"time"

	"clinic-booking-server/internal/domain/entity"
	domainRepo "clinic-booking-server/internal/domain/repository"

	"gorm.io/gorm"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Create(slot).Error
}

func (r *timeSlotRepository) CreateBulk(db *gorm.DB, slots []entity.TimeSlot) error {
	return db.Create(&slots).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := db.Preload("Doctor").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) FindAll(db *gorm.DB) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Where("doctor_id = ?", doctorID).Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindAvailableByDoctor(db *gorm.DB, doctorID int, now time.Time) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Where(
		"doctor_id = ? AND is_available = ? AND is_blocked = ? AND start_time > ?",
		doctorID, true, false, now,
	).Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindByDate(db *gorm.DB, date time.Time) ([]entity.TimeSlot, error) {
	dayStart, dayEnd := dayBounds(date)
	var slots []entity.TimeSlot
	err := db.Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.TimeSlot, error) {
	dayStart, dayEnd := dayBounds(date)
	var slots []entity.TimeSlot
	err := db.Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, dayStart, dayEnd).
		Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.TimeSlot, error) {
	dayStart, _ := dayBounds(start)
	_, dayEnd := dayBounds(end)
	var slots []entity.TimeSlot
	err := db.Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time) ([]entity.TimeSlot, error) {
	dayStart, _ := dayBounds(start)
	_, dayEnd := dayBounds(end)
	var slots []entity.TimeSlot
	err := db.Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, dayStart, dayEnd).
		Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) FindAvailableByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time, now time.Time) ([]entity.TimeSlot, error) {
	dayStart, _ := dayBounds(start)
	_, dayEnd := dayBounds(end)
	var slots []entity.TimeSlot
	err := db.Where(
		"doctor_id = ? AND start_time >= ? AND start_time < ? AND is_available = ? AND is_blocked = ? AND start_time > ?",
		doctorID, dayStart, dayEnd, true, false, now,
	).Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// HasConflict uses half-open interval overlap: touching endpoints do not conflict.
func (r *timeSlotRepository) HasConflict(db *gorm.DB, doctorID int, start, end time.Time, excludeID int) (bool, error) {
	query := db.Model(&entity.TimeSlot{}).
		Where("doctor_id = ? AND start_time < ? AND end_time > ?", doctorID, end, start)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *timeSlotRepository) Update(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Omit("Doctor").Save(slot).Error
}

func (r *timeSlotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) DeleteByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error) {
	dayStart, dayEnd := dayBounds(date)
	result := db.Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, dayStart, dayEnd).
		Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}
