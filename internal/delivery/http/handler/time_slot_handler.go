package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-server/internal/delivery/dto"
	"clinic-booking-server/internal/usecase"
	"clinic-booking-server/pkg/response"
	"clinic-booking-server/pkg/validator"
)

type TimeSlotHandler struct {
	timeSlotUsecase usecase.TimeSlotUsecase
	validator       *validator.CustomValidator
}

func NewTimeSlotHandler(timeSlotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		timeSlotUsecase: timeSlotUsecase,
		validator:       validator,
	}
}

func (h *TimeSlotHandler) GetTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time slot ID")
		return
	}

	slot, err := h.timeSlotUsecase.GetTimeSlot(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slot retrieved successfully", slot)
}

func (h *TimeSlotHandler) GetAllTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.timeSlotUsecase.GetAllTimeSlots(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetTimeSlotsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.timeSlotUsecase.GetTimeSlotsByDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetTimeSlotsByDate(w http.ResponseWriter, r *http.Request) {
	slots, err := h.timeSlotUsecase.GetTimeSlotsByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetTimeSlotsByDoctorAndDate(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.timeSlotUsecase.GetTimeSlotsByDoctorAndDate(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetTimeSlotsByDateRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	slots, err := h.timeSlotUsecase.GetTimeSlotsByDateRange(r.Context(), startDate, endDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetAvailableSlotsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.timeSlotUsecase.GetAvailableSlotsByDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Available time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetAvailableSlotsByDoctorAndDateRange(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	slots, err := h.timeSlotUsecase.GetAvailableSlotsByDoctorAndDateRange(r.Context(), doctorID, startDate, endDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Available time slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	availability, err := h.timeSlotUsecase.GetDoctorAvailability(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *TimeSlotHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.CreateTimeSlot(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, "Time slot created successfully", slot)
}

func (h *TimeSlotHandler) BulkCreateTimeSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkCreateTimeSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.timeSlotUsecase.BulkCreateTimeSlots(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, "Time slots created successfully", slots)
}

func (h *TimeSlotHandler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time slot ID")
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.UpdateTimeSlot(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slot updated successfully", slot)
}

func (h *TimeSlotHandler) BlockTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time slot ID")
		return
	}

	// Body is optional, the reason may be omitted
	var req dto.BlockTimeSlotRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	slot, err := h.timeSlotUsecase.BlockTimeSlot(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slot blocked successfully", slot)
}

func (h *TimeSlotHandler) UnblockTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time slot ID")
		return
	}

	slot, err := h.timeSlotUsecase.UnblockTimeSlot(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slot unblocked successfully", slot)
}

func (h *TimeSlotHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time slot ID")
		return
	}

	if err := h.timeSlotUsecase.DeleteTimeSlot(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slot deleted successfully", nil)
}

func (h *TimeSlotHandler) DeleteTimeSlotsByDoctorAndDate(w http.ResponseWriter, r *http.Request) {
	doctorID, err := intVar(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	result, err := h.timeSlotUsecase.DeleteTimeSlotsByDoctorAndDate(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Time slots deleted successfully", result)
}

func (h *TimeSlotHandler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidID:
		response.BadRequest(w, "Invalid ID")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case usecase.ErrInvalidTimeFormat:
		response.BadRequest(w, "Invalid time format, use HH:MM")
	case usecase.ErrInvalidDateRange:
		response.BadRequest(w, "Start date must be before end date")
	case usecase.ErrDateInPast:
		response.BadRequest(w, "Date cannot be in the past")
	case usecase.ErrInvalidSlotWindow:
		response.BadRequest(w, "Slot start time must be before end time")
	case usecase.ErrInvalidSlotDuration:
		response.BadRequest(w, "Slot duration must be between 15 minutes and 8 hours")
	case usecase.ErrSlotInPast:
		response.BadRequest(w, "Slot start time must be in the future")
	case usecase.ErrTimeSlotNotFound:
		response.NotFound(w, "Time slot not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrSlotConflict:
		response.Conflict(w, "Slot overlaps an existing slot for this doctor")
	case usecase.ErrNoValidSlots:
		response.Conflict(w, "No valid slots could be generated for the given window")
	default:
		response.InternalServerError(w, "Something went wrong")
	}
}
