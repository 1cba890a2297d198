package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/usecase"
	"clinic-booking-server/pkg/response"
	"clinic-booking-server/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func intVar(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAllAppointments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := intVar(r, "patientId")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	appointments, err := h.appointmentUsecase.GetAppointmentsByPatient(r.Context(), patientID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	appointments, err := h.appointmentUsecase.GetAppointmentsByDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByDateRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	appointments, err := h.appointmentUsecase.GetAppointmentsByDateRange(r.Context(), startDate, endDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetUpcomingAppointments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetUpcomingAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	appointments, err := h.appointmentUsecase.GetUpcomingAppointmentsByDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetUpcomingAppointmentsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := intVar(r, "patientId")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	appointments, err := h.appointmentUsecase.GetUpcomingAppointmentsByPatient(r.Context(), patientID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.ScheduleAppointment(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, "Appointment scheduled successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.ConfirmAppointment, "Appointment confirmed successfully")
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.CompleteAppointment, "Appointment completed successfully")
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	// Body is optional for cancellation
	var req dto.CancelAppointmentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) RestoreAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.RestoreAppointment, "Appointment restored successfully")
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.MarkNoShow, "Appointment marked as no-show")
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id int) (*dto.AppointmentResponse, error),
	message string,
) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := op(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidID:
		response.BadRequest(w, "Invalid ID")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case usecase.ErrInvalidTimeFormat:
		response.BadRequest(w, "Invalid time format, use HH:MM")
	case usecase.ErrInvalidDateRange:
		response.BadRequest(w, "Start date must be before end date")
	case usecase.ErrInvalidDuration:
		response.BadRequest(w, "Duration must be between 1 and 480 minutes")
	case usecase.ErrInvalidStatus:
		response.BadRequest(w, "Invalid appointment status")
	case usecase.ErrAppointmentInPast:
		response.BadRequest(w, "Appointment date and time must be in the future")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrDoctorNotAvailable:
		response.Conflict(w, "Doctor is not available")
	case usecase.ErrSchedulingConflict:
		response.Conflict(w, "Doctor has a scheduling conflict at this time")
	case usecase.ErrUpdateCancelled:
		response.Conflict(w, "Cannot update a cancelled appointment")
	case usecase.ErrConfirmNotScheduled:
		response.Conflict(w, "Only scheduled appointments can be confirmed")
	case usecase.ErrCompleteCancelled:
		response.Conflict(w, "Cancelled appointments cannot be completed")
	case usecase.ErrAlreadyCancelled:
		response.Conflict(w, "Appointment is already cancelled")
	case usecase.ErrCancelCompleted:
		response.Conflict(w, "Cannot cancel a completed appointment")
	case usecase.ErrRestoreNotCancelled:
		response.Conflict(w, "Only cancelled appointments can be restored")
	case usecase.ErrRestorePastDate:
		response.Conflict(w, "Cannot restore an appointment with a past date")
	case usecase.ErrNoShowCancelled:
		response.Conflict(w, "Cannot mark a cancelled appointment as no-show")
	default:
		response.InternalServerError(w, "Something went wrong")
	}
}
