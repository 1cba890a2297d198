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
	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientEmailTaken = errors.New("a patient with this email already exists")
)

type PatientUsecase interface {
	GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error)
	GetPatientByEmail(ctx context.Context, email string) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	SearchPatients(ctx context.Context, term string) (*dto.PatientListResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id int, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatientProfile(ctx context.Context, id int, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id int) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatientByEmail(ctx context.Context, email string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return patientList(patients), nil
}

func (u *patientUsecase) SearchPatients(ctx context.Context, term string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), strings.TrimSpace(term))
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}
	return patientList(patients), nil
}

func (u *patientUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.patientRepo.FindByEmail(tx, email)
	if err != nil {
		u.log.Warnf("Failed to check patient email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientEmailTaken
	}

	patient := &entity.Patient{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}
	patient.RefreshProfileComplete()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient registered: id=%d", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id int, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if email != patient.Email {
		existing, err := u.patientRepo.FindByEmail(tx, email)
		if err != nil {
			u.log.Warnf("Failed to check patient email: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrPatientEmailTaken
		}
	}

	patient.FirstName = strings.TrimSpace(req.FirstName)
	patient.LastName = strings.TrimSpace(req.LastName)
	patient.Email = email
	patient.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	patient.RefreshProfileComplete()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit patient update: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// UpdatePatientProfile fills in the medical profile; isProfileComplete is
// recomputed from the stored fields, never taken from the request.
func (u *patientUsecase) UpdatePatientProfile(ctx context.Context, id int, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.DateOfBirth != "" {
		birthDate, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = &birthDate
	}

	patient.FirstName = strings.TrimSpace(req.FirstName)
	patient.LastName = strings.TrimSpace(req.LastName)
	patient.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	patient.Gender = strings.TrimSpace(req.Gender)
	patient.Address = strings.TrimSpace(req.Address)
	patient.City = strings.TrimSpace(req.City)
	patient.State = strings.TrimSpace(req.State)
	patient.ZipCode = strings.TrimSpace(req.ZipCode)
	patient.InsuranceProvider = strings.TrimSpace(req.InsuranceProvider)
	patient.InsurancePolicyNumber = strings.TrimSpace(req.InsurancePolicyNumber)
	patient.EmergencyContactName = strings.TrimSpace(req.EmergencyContactName)
	patient.EmergencyContactPhone = strings.TrimSpace(req.EmergencyContactPhone)
	patient.EmergencyContactRelationship = strings.TrimSpace(req.EmergencyContactRelationship)
	patient.BloodType = strings.TrimSpace(req.BloodType)
	patient.Allergies = strings.TrimSpace(req.Allergies)
	patient.MedicalNotes = strings.TrimSpace(req.MedicalNotes)
	patient.RefreshProfileComplete()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient profile %d: %+v", id, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit patient profile: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}

	affected, err := u.patientRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

func patientList(patients []entity.Patient) *dto.PatientListResponse {
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}
}
