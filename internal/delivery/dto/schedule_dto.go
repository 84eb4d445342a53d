package dto

// Request DTOs

// TimeRangeRequest is one availability window in a weekly-hours save.
type TimeRangeRequest struct {
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	SlotsPerHour int    `json:"slots_per_hour" validate:"omitempty,min=1,max=12"`
}

type SaveWeekdayHoursRequest struct {
	Weekday int                `json:"weekday" validate:"min=0,max=6"`
	Ranges  []TimeRangeRequest `json:"ranges" validate:"required,min=1,dive"`
}

// Response DTOs

type WindowResponse struct {
	ID           int    `json:"id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotsPerHour int    `json:"slots_per_hour"`
	SlotDuration int    `json:"slot_duration"`
	IsActive     bool   `json:"is_active"`
}

type WeekdayScheduleResponse struct {
	Weekday int              `json:"weekday"`
	Windows []WindowResponse `json:"windows"`
}

type WeeklyScheduleResponse struct {
	Days []WeekdayScheduleResponse `json:"days"`
}
