package http

import (
	"net/http"

	"clinic-booking-server/internal/delivery/http/handler"
	"clinic-booking-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	timeSlotHandler    *handler.TimeSlotHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	timeSlotHandler *handler.TimeSlotHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		timeSlotHandler:    timeSlotHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Everything below requires authentication
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Staff-only management routes
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireAdminOrDoctor)

	// Admin-only routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctors
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/available", r.doctorHandler.GetAvailableDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors", r.doctorHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	staff.HandleFunc("/doctors/{id:[0-9]+}/availability", r.doctorHandler.SetDoctorAvailability).Methods(http.MethodPatch)

	// Patients
	staff.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/search", r.patientHandler.SearchPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id:[0-9]+}/profile", r.patientHandler.UpdatePatientProfile).Methods(http.MethodPut)
	admin.HandleFunc("/patients/{id:[0-9]+}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.ScheduleAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/range", r.appointmentHandler.GetAppointmentsByDateRange).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/upcoming", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id:[0-9]+}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{id:[0-9]+}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id:[0-9]+}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id:[0-9]+}/restore", r.appointmentHandler.RestoreAppointment).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{id:[0-9]+}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{patientId:[0-9]+}/appointments", r.appointmentHandler.GetAppointmentsByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId:[0-9]+}/appointments/upcoming", r.appointmentHandler.GetUpcomingAppointmentsByPatient).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{doctorId:[0-9]+}/appointments", r.appointmentHandler.GetAppointmentsByDoctor).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{doctorId:[0-9]+}/appointments/upcoming", r.appointmentHandler.GetUpcomingAppointmentsByDoctor).Methods(http.MethodGet)

	// Time slots
	staff.HandleFunc("/timeslots", r.timeSlotHandler.GetAllTimeSlots).Methods(http.MethodGet)
	staff.HandleFunc("/timeslots", r.timeSlotHandler.CreateTimeSlot).Methods(http.MethodPost)
	staff.HandleFunc("/timeslots/bulk", r.timeSlotHandler.BulkCreateTimeSlots).Methods(http.MethodPost)
	staff.HandleFunc("/timeslots/by-date", r.timeSlotHandler.GetTimeSlotsByDate).Methods(http.MethodGet)
	staff.HandleFunc("/timeslots/range", r.timeSlotHandler.GetTimeSlotsByDateRange).Methods(http.MethodGet)
	protected.HandleFunc("/timeslots/{id:[0-9]+}", r.timeSlotHandler.GetTimeSlot).Methods(http.MethodGet)
	staff.HandleFunc("/timeslots/{id:[0-9]+}", r.timeSlotHandler.UpdateTimeSlot).Methods(http.MethodPut)
	staff.HandleFunc("/timeslots/{id:[0-9]+}", r.timeSlotHandler.DeleteTimeSlot).Methods(http.MethodDelete)
	staff.HandleFunc("/timeslots/{id:[0-9]+}/block", r.timeSlotHandler.BlockTimeSlot).Methods(http.MethodPatch)
	staff.HandleFunc("/timeslots/{id:[0-9]+}/unblock", r.timeSlotHandler.UnblockTimeSlot).Methods(http.MethodPatch)
	protected.HandleFunc("/doctors/{doctorId:[0-9]+}/timeslots", r.timeSlotHandler.GetTimeSlotsByDoctorAndDate).Methods(http.MethodGet).Queries("date", "{date}")
	protected.HandleFunc("/doctors/{doctorId:[0-9]+}/timeslots", r.timeSlotHandler.GetTimeSlotsByDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId:[0-9]+}/timeslots/available", r.timeSlotHandler.GetAvailableSlotsByDoctorAndDateRange).Methods(http.MethodGet).Queries("start_date", "{start_date}", "end_date", "{end_date}")
	protected.HandleFunc("/doctors/{doctorId:[0-9]+}/timeslots/available", r.timeSlotHandler.GetAvailableSlotsByDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId:[0-9]+}/availability", r.timeSlotHandler.GetDoctorAvailability).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{doctorId:[0-9]+}/timeslots", r.timeSlotHandler.DeleteTimeSlotsByDoctorAndDate).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
