package models

// AttendanceEntry is one element of days_of_attendance on the wire.
type AttendanceEntry struct {
	Day     int    `json:"day" validate:"gte=0"`
	DayDate string `json:"day_date" validate:"required,datetime=2006-01-02"`
}

// ApiRegistrationPayload is the create-participant request body of the mission API.
type ApiRegistrationPayload struct {
	MissionID          int64             `json:"mission_id" validate:"required,gt=0"`
	UserID             string            `json:"user_id"`
	FullName           string            `json:"full_name" validate:"required,min=5,max=51"`
	PhoneNumber        string            `json:"phone_number" validate:"required,len=10,numeric"`
	TravellingFrom     string            `json:"travelling_from" validate:"max=25"`
	DaysOfAttendance   []AttendanceEntry `json:"days_of_attendance" validate:"required,min=1,dive"`
	DietAdvisory       string            `json:"diet_advisory" validate:"max=500"`
	NeedFacilitation   bool              `json:"need_facilitation"`
	FacilitationAmount int64             `json:"facilitation_amount" validate:"gte=0"`
	Gender             string            `json:"gender" validate:"required,oneof=male female"`
	ComingAsCouple     bool              `json:"coming_as_couple"`
	PartnerName        string            `json:"partner_name" validate:"required_if=ComingAsCouple true"`
}

// ParticipantAck is the create-participant success response.
type ParticipantAck struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *AckData `json:"data,omitempty"`
}

type AckData struct {
	RegistrationID string `json:"registration_id"`
	Status         string `json:"status"`
}
