package dto

// Response DTOs

// SlotResponse is one bookable candidate start time. Time is "HH:MM" in
// 24-hour form, Label is the 12-hour display form ("09:15 AM").
type SlotResponse struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

type SlotListResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// BookingDayResponse is one day of the week-ahead booking page.
type BookingDayResponse struct {
	Date   string         `json:"date"`
	Day    string         `json:"day"`
	DayNum string         `json:"day_num"`
	Month  string         `json:"month"`
	Year   string         `json:"year"`
	Slots  []SlotResponse `json:"slots"`
}

type BookingPageResponse struct {
	Doctor *DoctorResponse      `json:"doctor,omitempty"`
	Days   []BookingDayResponse `json:"days"`
}
