package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-booking-server/internal/converter"
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
	"clinic-booking-server/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDoctorEmailTaken   = errors.New("a doctor with this email already exists")
	ErrDoctorLicenseTaken = errors.New("a doctor with this license number already exists")
)

type DoctorUsecase interface {
	GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetDoctorByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctorsBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	SetDoctorAvailability(ctx context.Context, id int, available bool) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id int) error
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctorByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return doctorList(doctors), nil
}

func (u *doctorUsecase) GetDoctorsBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindBySpecialization(u.db.WithContext(ctx), strings.TrimSpace(specialization))
	if err != nil {
		u.log.Warnf("Failed to find doctors by specialization: %+v", err)
		return nil, err
	}
	return doctorList(doctors), nil
}

func (u *doctorUsecase) GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAvailable(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list available doctors: %+v", err)
		return nil, err
	}
	return doctorList(doctors), nil
}

func (u *doctorUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	license := strings.TrimSpace(req.LicenseNumber)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.doctorRepo.FindByEmail(tx, email)
	if err != nil {
		u.log.Warnf("Failed to check doctor email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorEmailTaken
	}

	if license != "" {
		byLicense, err := u.doctorRepo.FindByLicenseNumber(tx, license)
		if err != nil {
			u.log.Warnf("Failed to check doctor license: %+v", err)
			return nil, err
		}
		if byLicense != nil {
			return nil, ErrDoctorLicenseTaken
		}
	}

	doctor := &entity.Doctor{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		Specialization: strings.TrimSpace(req.Specialization),
		IsAvailable:    true,
	}
	if license != "" {
		doctor.LicenseNumber = &license
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit doctor: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor registered: id=%d, specialization=%s", doctor.ID, doctor.Specialization)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	license := strings.TrimSpace(req.LicenseNumber)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if email != doctor.Email {
		existing, err := u.doctorRepo.FindByEmail(tx, email)
		if err != nil {
			u.log.Warnf("Failed to check doctor email: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrDoctorEmailTaken
		}
	}

	if license != "" && (doctor.LicenseNumber == nil || *doctor.LicenseNumber != license) {
		byLicense, err := u.doctorRepo.FindByLicenseNumber(tx, license)
		if err != nil {
			u.log.Warnf("Failed to check doctor license: %+v", err)
			return nil, err
		}
		if byLicense != nil {
			return nil, ErrDoctorLicenseTaken
		}
	}

	doctor.FirstName = strings.TrimSpace(req.FirstName)
	doctor.LastName = strings.TrimSpace(req.LastName)
	doctor.Email = email
	doctor.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	doctor.Specialization = strings.TrimSpace(req.Specialization)
	doctor.IsAvailable = req.IsAvailable
	if license != "" {
		doctor.LicenseNumber = &license
	} else {
		doctor.LicenseNumber = nil
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit doctor update: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) SetDoctorAvailability(ctx context.Context, id int, available bool) (*dto.DoctorResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	doctor.IsAvailable = available
	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor availability %d: %+v", id, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit doctor availability: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes the doctor; time slots go with it via the cascade FK.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}

	affected, err := u.doctorRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

func doctorList(doctors []entity.Doctor) *dto.DoctorListResponse {
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}
}
