package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-booking-server/config"
	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/domain/entity"
	"clinic-booking-server/internal/repository"
	"clinic-booking-server/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newAuthUsecase builds the auth usecase without a redis client; only the
// database-backed operations are exercised here.
func newAuthUsecase(f *schedulingFixture) AuthUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	return NewAuthUsecase(f.db, log, repository.NewUserRepository(), repository.NewPatientRepository(), jwtService, nil)
}

func TestRegister(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newAuthUsecase(f)
	ctx := context.Background()

	got, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "Nora.Quinn@example.test",
		Password:  "correct-horse",
		FirstName: "Nora",
		LastName:  "Quinn",
	})
	require.NoError(t, err)
	assert.Equal(t, "nora.quinn@example.test", got.Email)
	assert.Equal(t, entity.RolePatient, got.Role)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.PatientID)

	// The account is backed by a patient row with the same email
	var patient entity.Patient
	require.NoError(t, f.db.First(&patient, *got.PatientID).Error)
	assert.Equal(t, "nora.quinn@example.test", patient.Email)

	// The password is stored hashed
	var user entity.User
	require.NoError(t, f.db.First(&user, "id = ?", got.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct-horse")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newAuthUsecase(f)
	ctx := context.Background()

	_, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "nora.quinn@example.test",
		Password:  "correct-horse",
		FirstName: "Nora",
		LastName:  "Quinn",
	})
	require.NoError(t, err)

	_, err = u.Register(ctx, &dto.RegisterRequest{
		Email:     "NORA.QUINN@example.test",
		Password:  "other-password",
		FirstName: "Nora",
		LastName:  "Quinn",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// An email already used by a patient record is taken too
	_, err = u.Register(ctx, &dto.RegisterRequest{
		Email:     f.patient.Email,
		Password:  "other-password",
		FirstName: "Miles",
		LastName:  "Tran",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestGetCurrentUser(t *testing.T) {
	f := newSchedulingFixture(t)
	u := newAuthUsecase(f)
	ctx := context.Background()

	registered, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "nora.quinn@example.test",
		Password:  "correct-horse",
		FirstName: "Nora",
		LastName:  "Quinn",
	})
	require.NoError(t, err)

	got, err := u.GetCurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, got.Email)

	_, err = u.GetCurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
