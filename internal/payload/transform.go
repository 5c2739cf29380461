// Package payload projects a validated registration onto the create-participant
// contract of the mission API.
package payload

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gdg-garage/mission-registration/internal/models"
)

// Build is total for any record that passed form validation and does no
// validation of its own.
func Build(r models.Registration, m models.MissionEvent) models.ApiRegistrationPayload {
	p := r.Common()
	out := models.ApiRegistrationPayload{
		MissionID:        p.MissionID,
		FullName:         strings.TrimSpace(p.FirstName + " " + p.LastName),
		PhoneNumber:      p.PhoneNumber,
		TravellingFrom:   p.TravellingFrom,
		Gender:           strings.ToLower(string(p.Gender)),
		NeedFacilitation: !p.CanPayFull,
	}
	if !p.CanPayFull {
		out.FacilitationAmount = amount(p.SupportNeeded)
	}

	switch reg := r.(type) {
	case *models.OneDayRegistration:
		out.DaysOfAttendance = []models.AttendanceEntry{{Day: 0, DayDate: m.StartDate.String()}}
	case *models.WeekLongRegistration:
		out.DaysOfAttendance = attendance(reg.AttendingDays, m.StartDate)
		out.DietAdvisory = reg.DietaryNote
		out.ComingAsCouple = reg.ComingAsCouple
		if reg.ComingAsCouple {
			out.PartnerName = reg.PartnerName
		}
	}
	return out
}

// attendance maps each selected date to its offset from start, ascending.
func attendance(days []models.AttendanceDay, start models.Date) []models.AttendanceEntry {
	entries := make([]models.AttendanceEntry, len(days))
	for i, d := range days {
		entries[i] = models.AttendanceEntry{Day: d.Date.DaysSince(start), DayDate: d.Date.String()}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })
	return entries
}

func amount(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
