package repository

import (
	"errors"
	"time"

	"clinic-booking-server/internal/domain/entity"
	domainRepo "clinic-booking-server/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("appointment_date >= ? AND appointment_date <= ?", start, end).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDateRange(db *gorm.DB, doctorID int, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date <= ?", doctorID, start, end).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) ([]entity.Appointment, error) {
	dayStart, dayEnd := dayBounds(date)
	var appointments []entity.Appointment
	err := db.Where(
		"doctor_id = ? AND appointment_date >= ? AND appointment_date < ? AND status != ?",
		doctorID, dayStart, dayEnd, entity.AppointmentStatusCancelled,
	).Order("appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcoming(db *gorm.DB) ([]entity.Appointment, error) {
	today, _ := dayBounds(time.Now().UTC())
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("appointment_date >= ? AND status != ?", today, entity.AppointmentStatusCancelled).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcomingByDoctor(db *gorm.DB, doctorID int) ([]entity.Appointment, error) {
	today, _ := dayBounds(time.Now().UTC())
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("doctor_id = ? AND appointment_date >= ? AND status != ?",
			doctorID, today, entity.AppointmentStatusCancelled).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcomingByPatient(db *gorm.DB, patientID int) ([]entity.Appointment, error) {
	today, _ := dayBounds(time.Now().UTC())
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("patient_id = ? AND appointment_date >= ? AND status != ?",
			patientID, today, entity.AppointmentStatusCancelled).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
