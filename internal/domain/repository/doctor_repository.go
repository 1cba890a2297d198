package repository

import (
	"clinic-booking-server/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error)
	FindByLicenseNumber(db *gorm.DB, licenseNumber string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindBySpecialization(db *gorm.DB, specialization string) ([]entity.Doctor, error)
	FindAvailable(db *gorm.DB) ([]entity.Doctor, error)
	Exists(db *gorm.DB, id int) (bool, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id int) (int64, error)
}
