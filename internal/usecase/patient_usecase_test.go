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

func newPatientUsecase(f *schedulingFixture) PatientUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewPatientUsecase(f.db, log, repository.NewPatientRepository())
}

func TestRegisterPatient(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newPatientUsecase(f)
	ctx := context.Background()

	got, err := u.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		FirstName: "Iris",
		LastName:  "Vang",
		Email:     "Iris.Vang@example.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "iris.vang@example.test", got.Email)
	assert.False(t, got.IsProfileComplete)

	_, err = u.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		FirstName: "Someone",
		LastName:  "Else",
		Email:     "iris.vang@example.test",
	})
	assert.ErrorIs(t, err, ErrPatientEmailTaken)
}

func TestUpdatePatientProfile(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newPatientUsecase(f)
	ctx := context.Background()

	got, err := u.UpdatePatientProfile(ctx, f.patient.ID, &dto.UpdatePatientProfileRequest{
		FirstName:   "Miles",
		LastName:    "Tran",
		PhoneNumber: "555-0130",
		DateOfBirth: "1990-06-15",
		Gender:      "male",
		BloodType:   "O+",
		Allergies:   "penicillin",
		City:        "Portland",
		State:       "OR",
	})
	require.NoError(t, err)
	assert.True(t, got.IsProfileComplete)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "O+", got.BloodType)

	// Dropping the phone number makes the profile incomplete again
	updated, err := u.UpdatePatientProfile(ctx, f.patient.ID, &dto.UpdatePatientProfileRequest{
		FirstName: "Miles",
		LastName:  "Tran",
	})
	require.NoError(t, err)
	assert.False(t, updated.IsProfileComplete)

	_, err = u.UpdatePatientProfile(ctx, f.patient.ID, &dto.UpdatePatientProfileRequest{
		FirstName:   "Miles",
		LastName:    "Tran",
		DateOfBirth: "15-06-1990",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestSearchPatients(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newPatientUsecase(f)
	ctx := context.Background()

	got, err := u.SearchPatients(ctx, "tran")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	got, err = u.SearchPatients(ctx, "miles.tran@")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	got, err = u.SearchPatients(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
}

func TestUpdatePatientEmailConflict(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newPatientUsecase(f)
	ctx := context.Background()

	other, err := u.RegisterPatient(ctx, &dto.RegisterPatientRequest{
		FirstName: "Iris",
		LastName:  "Vang",
		Email:     "iris.vang@example.test",
	})
	require.NoError(t, err)

	_, err = u.UpdatePatient(ctx, other.ID, &dto.UpdatePatientRequest{
		FirstName: "Iris",
		LastName:  "Vang",
		Email:     f.patient.Email,
	})
	assert.ErrorIs(t, err, ErrPatientEmailTaken)
}

func TestDeletePatient(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newPatientUsecase(f)
	ctx := context.Background()

	require.NoError(t, u.DeletePatient(ctx, f.patient.ID))
	assert.ErrorIs(t, u.DeletePatient(ctx, f.patient.ID), ErrPatientNotFound)
}
