package models

import "sort"

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

func (g Gender) Valid() bool { return g == Male || g == Female }

// Personal holds the fields every registration carries regardless of kind.
type Personal struct {
	MissionID      int64
	FirstName      string
	LastName       string
	PhoneNumber    string
	Gender         Gender
	CanPayFull     bool
	SupportNeeded  string // digits only, empty when absent
	TravellingFrom string
}

// Registration is an in-progress submission. It is either a
// *OneDayRegistration or a *WeekLongRegistration.
type Registration interface {
	Kind() EventKind
	Common() *Personal
	sealed()
}

type OneDayRegistration struct {
	Personal
	MissionDate Date
}

func (r *OneDayRegistration) Kind() EventKind   { return OneDay }
func (r *OneDayRegistration) Common() *Personal { return &r.Personal }
func (*OneDayRegistration) sealed()             {}

// AttendanceDay is one selected day of a week-long mission. DayIndex is the
// zero-based offset of Date from the mission start date.
type AttendanceDay struct {
	DayIndex int
	Date     Date
}

type WeekLongRegistration struct {
	Personal
	ComingAsCouple bool
	PartnerName    string
	DietaryNote    string
	AttendingDays  []AttendanceDay
}

func (r *WeekLongRegistration) Kind() EventKind   { return WeekLong }
func (r *WeekLongRegistration) Common() *Personal { return &r.Personal }
func (*WeekLongRegistration) sealed()             {}

// HasDay reports whether date is already selected.
func (r *WeekLongRegistration) HasDay(date Date) bool {
	for _, d := range r.AttendingDays {
		if d.Date.Equal(date) {
			return true
		}
	}
	return false
}

// AddDay inserts the day unless its date is already present and keeps the
// set ordered by date.
func (r *WeekLongRegistration) AddDay(day AttendanceDay) {
	if r.HasDay(day.Date) {
		return
	}
	r.AttendingDays = append(r.AttendingDays, day)
	sort.Slice(r.AttendingDays, func(i, j int) bool {
		return r.AttendingDays[i].Date.Before(r.AttendingDays[j].Date)
	})
}

func (r *WeekLongRegistration) RemoveDay(date Date) {
	kept := r.AttendingDays[:0]
	for _, d := range r.AttendingDays {
		if !d.Date.Equal(date) {
			kept = append(kept, d)
		}
	}
	r.AttendingDays = kept
}
