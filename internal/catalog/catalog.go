// Package catalog is the static mission list served by the local missions
// route and seeded into the mission API database.
package catalog

import (
	"time"

	"github.com/gdg-garage/mission-registration/internal/models"
)

func date(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}

func datePtr(year int, month time.Month, day int) *models.Date {
	d := date(year, month, day)
	return &d
}

var missions = []models.MissionEvent{
	{
		ID:                      1,
		Title:                   "Nairobi Hope Outreach",
		Description:             "A one-day intensive serving communities in **Nairobi**.",
		CategoryName:            "Outreach",
		LocationName:            "Nairobi, Kenya",
		StartDate:               date(2026, time.November, 21),
		RegistrationCloseDate:   date(2026, time.November, 14),
		Status:                  models.StatusPlanning,
		EventType:               models.OneDay,
		RegistrationFeeRequired: true,
		RegistrationFee:         1500,
		IsRegistrationOpen:      true,
	},
	{
		ID:                      2,
		Title:                   "Naivasha Couples Retreat",
		Description:             "A transformative week-long retreat for couples committed to service.",
		CategoryName:            "Retreat",
		LocationName:            "Naivasha, Kenya",
		StartDate:               date(2026, time.December, 7),
		EndDate:                 datePtr(2026, time.December, 13),
		RegistrationCloseDate:   date(2026, time.November, 30),
		Status:                  models.StatusPlanning,
		PartneringOrganization:  []string{"Naivasha Community Church"},
		EventType:               models.WeekLong,
		RegistrationFeeRequired: true,
		RegistrationFee:         5000,
		CoupleRegistrationFee:   11000,
		IsRegistrationOpen:      true,
	},
	{
		ID:                      3,
		Title:                   "Mombasa Medical Camp",
		Description:             "Five days of free clinics along the coast.\n\n- screenings\n- dental care\n- eye care",
		CategoryName:            "Medical",
		LocationName:            "Mombasa, Kenya",
		StartDate:               date(2027, time.January, 11),
		EndDate:                 datePtr(2027, time.January, 15),
		RegistrationCloseDate:   date(2027, time.January, 4),
		Status:                  models.StatusPlanning,
		EventType:               models.WeekLong,
		RegistrationFeeRequired: false,
		IsRegistrationOpen:      true,
	},
}

// All returns a copy of every mission.
func All() []models.MissionEvent {
	out := make([]models.MissionEvent, len(missions))
	copy(out, missions)
	return out
}

func Find(id int64) (models.MissionEvent, bool) {
	for _, m := range missions {
		if m.ID == id {
			return m, true
		}
	}
	return models.MissionEvent{}, false
}
