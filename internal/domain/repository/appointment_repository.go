package repository

import (
	"time"

	"clinic-booking-server/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID int) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Appointment, error)
	FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.Appointment, error)
	FindByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns the doctor's non-cancelled appointments
	// on the given calendar date; the conflict check runs over this set.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.Appointment, error)
	FindUpcoming(db *gorm.DB) ([]entity.Appointment, error)
	FindUpcomingByDoctor(db *gorm.DB, doctorID int) ([]entity.Appointment, error)
	FindUpcomingByPatient(db *gorm.DB, patientID int) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id int) (int64, error)
}
