package repository

import (
	"time"

	"clinic-booking-server/internal/domain/entity"

	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	CreateBulk(db *gorm.DB, slots []entity.TimeSlot) error
	FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error)
	FindAll(db *gorm.DB) ([]entity.TimeSlot, error)
	FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.TimeSlot, error)
	FindAvailableByDoctor(db *gorm.DB, doctorID int, now time.Time) ([]entity.TimeSlot, error)
	FindByDate(db *gorm.DB, date time.Time) ([]entity.TimeSlot, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.TimeSlot, error)
	FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.TimeSlot, error)
	FindByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time) ([]entity.TimeSlot, error)
	FindAvailableByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time, now time.Time) ([]entity.TimeSlot, error)
	// HasConflict reports whether any slot of the doctor truly overlaps
	// [start, end); excludeID skips one slot (0 means none).
	HasConflict(db *gorm.DB, doctorID int, start, end time.Time, excludeID int) (bool, error)
	Update(db *gorm.DB, slot *entity.TimeSlot) error
	Delete(db *gorm.DB, id int) (int64, error)
	DeleteByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error)
}
