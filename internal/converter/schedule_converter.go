package converter

import (
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"
)

// WindowToResponse converts an AvailabilityWindow entity to a DTO
func WindowToResponse(window *entity.AvailabilityWindow) dto.WindowResponse {
	return dto.WindowResponse{
		ID:           window.ID,
		StartTime:    normalizeClockTime(window.StartTime),
		EndTime:      normalizeClockTime(window.EndTime),
		SlotsPerHour: window.SlotsPerHour,
		SlotDuration: window.SlotDuration(),
		IsActive:     window.IsActive,
	}
}

// ScheduleToWeekdayResponse converts one WeeklySchedule row with its windows
func ScheduleToWeekdayResponse(schedule *entity.WeeklySchedule) dto.WeekdayScheduleResponse {
	windows := make([]dto.WindowResponse, len(schedule.Windows))
	for i := range schedule.Windows {
		windows[i] = WindowToResponse(&schedule.Windows[i])
	}
	return dto.WeekdayScheduleResponse{
		Weekday: int(schedule.Weekday),
		Windows: windows,
	}
}

// SchedulesToWeeklyResponse converts all weekday rows of one doctor
func SchedulesToWeeklyResponse(schedules []entity.WeeklySchedule) *dto.WeeklyScheduleResponse {
	days := make([]dto.WeekdayScheduleResponse, len(schedules))
	for i := range schedules {
		days[i] = ScheduleToWeekdayResponse(&schedules[i])
	}
	return &dto.WeeklyScheduleResponse{Days: days}
}
