package usecase

import (
	"io"
	"testing"
	"time"

	"clinic-booking-server/internal/domain/entity"
	"clinic-booking-server/internal/repository"
	"clinic-booking-server/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// schedulingFixture wires the scheduling usecases against an in-memory
// sqlite database with one available doctor and one patient.
type schedulingFixture struct {
	db           *gorm.DB
	appointments AppointmentUsecase
	timeSlots    TimeSlotUsecase
	doctor       *entity.Doctor
	patient      *entity.Patient
}

func newSchedulingFixture(t *testing.T) *schedulingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.Patient{},
		&entity.Doctor{},
		&entity.User{},
		&entity.Appointment{},
		&entity.TimeSlot{},
		&entity.AuditLog{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	timeSlotRepo := repository.NewTimeSlotRepository()
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	license := "MD-1001"
	doctor := &entity.Doctor{
		FirstName:      "Grace",
		LastName:       "Okafor",
		Email:          "grace.okafor@clinic.test",
		Specialization: "Cardiology",
		LicenseNumber:  &license,
		IsAvailable:    true,
	}
	require.NoError(t, db.Create(doctor).Error)

	patient := &entity.Patient{
		FirstName:   "Miles",
		LastName:    "Tran",
		Email:       "miles.tran@example.test",
		PhoneNumber: "555-0130",
	}
	require.NoError(t, db.Create(patient).Error)

	return &schedulingFixture{
		db:           db,
		appointments: NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, doctorRepo, auditService),
		timeSlots:    NewTimeSlotUsecase(db, log, timeSlotRepo, doctorRepo, appointmentRepo, auditService),
		doctor:       doctor,
		patient:      patient,
	}
}

// futureDate returns a date string n days from now
func futureDate(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}
