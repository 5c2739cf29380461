package models

import (
	"gorm.io/gorm"
)

// Participant is a stored registration in the mission API. A phone number can
// register once per mission.
type Participant struct {
	gorm.Model
	RegistrationID     string           `json:"registration_id" gorm:"uniqueIndex"`
	MissionID          int64            `json:"mission_id" gorm:"uniqueIndex:idx_mission_phone"`
	PhoneNumber        string           `json:"phone_number" gorm:"uniqueIndex:idx_mission_phone"`
	FullName           string           `json:"full_name"`
	Gender             string           `json:"gender"`
	TravellingFrom     string           `json:"travelling_from"`
	DietAdvisory       string           `json:"diet_advisory"`
	NeedFacilitation   bool             `json:"need_facilitation"`
	FacilitationAmount int64            `json:"facilitation_amount"`
	ComingAsCouple     bool             `json:"coming_as_couple"`
	PartnerName        string           `json:"partner_name"`
	Status             string           `json:"status"`
	Days               []ParticipantDay `json:"days_of_attendance" gorm:"foreignKey:ParticipantID"`
}

type ParticipantDay struct {
	gorm.Model
	ParticipantID uint   `json:"-" gorm:"index"`
	Day           int    `json:"day"`
	DayDate       string `json:"day_date"`
}
