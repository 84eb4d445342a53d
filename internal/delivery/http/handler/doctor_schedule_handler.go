package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/delivery/http/middleware"
	"clinicflow/internal/usecase"
	"clinicflow/pkg/response"
	"clinicflow/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// SaveWeekdayHours handles saving availability windows for one weekday
// @Summary Save weekday working hours
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveWeekdayHoursRequest true "Save Weekday Hours Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/me/schedule [post]
func (h *DoctorScheduleHandler) SaveWeekdayHours(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SaveWeekdayHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.SaveWeekdayHours(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save weekday hours")
		}
		return
	}

	response.Success(w, http.StatusOK, "Weekday hours saved successfully", schedule)
}

// GetMySchedule handles fetching the doctor's own weekly schedule
// @Summary Get own weekly schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/me/schedule [get]
func (h *DoctorScheduleHandler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	schedule, err := h.scheduleUsecase.GetWeeklySchedule(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// GetDoctorSchedule handles fetching a doctor's weekly schedule
// @Summary Get a doctor's weekly schedule
// @Tags Schedule
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/schedule [get]
func (h *DoctorScheduleHandler) GetDoctorSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetWeeklySchedule(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// SetWindowActive handles toggling an availability window
// @Summary Toggle an availability window
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Window ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/me/schedule/windows/{id} [patch]
func (h *DoctorScheduleHandler) SetWindowActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	windowID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.IsActive == nil {
		response.Error(w, http.StatusBadRequest, "is_active is required", nil)
		return
	}

	if err := h.scheduleUsecase.SetWindowActive(r.Context(), userID, windowID, *req.IsActive); err != nil {
		switch err {
		case usecase.ErrWindowNotFound:
			response.NotFound(w, "Availability window not found")
		default:
			response.InternalServerError(w, "Failed to update window")
		}
		return
	}

	response.Success(w, http.StatusOK, "Window updated successfully", nil)
}
