package repository

import (
	"clinic-booking-server/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id int) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	Search(db *gorm.DB, term string) ([]entity.Patient, error)
	Exists(db *gorm.DB, id int) (bool, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id int) (int64, error)
}
