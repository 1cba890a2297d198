package usecase

import (
	"context"
	"io"
	"testing"

	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorUsecase(f *schedulingFixture) DoctorUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewDoctorUsecase(f.db, log, repository.NewDoctorRepository())
}

func TestRegisterDoctor(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newDoctorUsecase(f)
	ctx := context.Background()

	got, err := u.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		FirstName:      "Ada",
		LastName:       "Bell",
		Email:          "Ada.Bell@Clinic.Test",
		Specialization: "Dermatology",
		LicenseNumber:  "MD-2002",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada.bell@clinic.test", got.Email)
	assert.Equal(t, "Ada Bell", got.FullName)
	assert.True(t, got.IsAvailable)

	// Duplicate email, case-insensitive
	_, err = u.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "ADA.BELL@clinic.test",
		Specialization: "Dermatology",
	})
	assert.ErrorIs(t, err, ErrDoctorEmailTaken)

	// Duplicate license
	_, err = u.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "other.person@clinic.test",
		Specialization: "Dermatology",
		LicenseNumber:  "MD-2002",
	})
	assert.ErrorIs(t, err, ErrDoctorLicenseTaken)
}

func TestUpdateDoctor(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newDoctorUsecase(f)
	ctx := context.Background()

	other, err := u.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		FirstName:      "Ada",
		LastName:       "Bell",
		Email:          "ada.bell@clinic.test",
		Specialization: "Dermatology",
	})
	require.NoError(t, err)

	// Moving onto the fixture doctor's email conflicts
	_, err = u.UpdateDoctor(ctx, other.ID, &dto.UpdateDoctorRequest{
		FirstName:      "Ada",
		LastName:       "Bell",
		Email:          f.doctor.Email,
		Specialization: "Dermatology",
		IsAvailable:    true,
	})
	assert.ErrorIs(t, err, ErrDoctorEmailTaken)

	updated, err := u.UpdateDoctor(ctx, other.ID, &dto.UpdateDoctorRequest{
		FirstName:      "Ada",
		LastName:       "Bell-Hart",
		Email:          "ada.bell@clinic.test",
		Specialization: "Pediatrics",
		IsAvailable:    false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pediatrics", updated.Specialization)
	assert.False(t, updated.IsAvailable)

	_, err = u.UpdateDoctor(ctx, 9999, &dto.UpdateDoctorRequest{
		FirstName:      "No",
		LastName:       "One",
		Email:          "no.one@clinic.test",
		Specialization: "None",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestSetDoctorAvailability(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newDoctorUsecase(f)
	ctx := context.Background()

	got, err := u.SetDoctorAvailability(ctx, f.doctor.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	available, err := u.GetAvailableDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, available.Total)

	got, err = u.SetDoctorAvailability(ctx, f.doctor.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
}

func TestGetDoctorsBySpecialization(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newDoctorUsecase(f)
	ctx := context.Background()

	got, err := u.GetDoctorsBySpecialization(ctx, "Cardiology")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	got, err = u.GetDoctorsBySpecialization(ctx, "Neurology")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
}

func TestDeleteDoctor(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newDoctorUsecase(f)
	ctx := context.Background()

	require.NoError(t, u.DeleteDoctor(ctx, f.doctor.ID))
	assert.ErrorIs(t, u.DeleteDoctor(ctx, f.doctor.ID), ErrDoctorNotFound)

	_, err := u.GetDoctor(ctx, f.doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
