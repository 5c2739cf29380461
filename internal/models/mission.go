package models

import (
	"strings"
	"time"
)

type EventKind string

const (
	OneDay   EventKind = "one_day"
	WeekLong EventKind = "week_long"
)

// ParseEventKind normalizes the spellings the mission API has used over time.
// Unknown values yield the empty kind.
func ParseEventKind(s string) EventKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one_day", "one-day", "oneday":
		return OneDay
	case "week_long", "week-long", "weeklong", "retreat":
		return WeekLong
	default:
		return ""
	}
}

type MissionStatus string

const (
	StatusPlanning  MissionStatus = "planning"
	StatusOngoing   MissionStatus = "ongoing"
	StatusCompleted MissionStatus = "completed"
	StatusCancelled MissionStatus = "cancelled"
	StatusPostponed MissionStatus = "postponed"
)

// MissionEvent is the public view of a mission as served by the mission API.
// The same struct is the gorm record of the local mission API.
type MissionEvent struct {
	ID                      int64         `json:"id" gorm:"primaryKey"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
	Title                   string        `json:"title"`
	Description             string        `json:"description"`
	CategoryName            string        `json:"category_name"`
	LocationName            string        `json:"location_name"`
	StartDate               Date          `json:"start_date"`
	EndDate                 *Date         `json:"end_date,omitempty"`
	RegistrationCloseDate   Date          `json:"registration_close_date"`
	Status                  MissionStatus `json:"status"`
	PartneringOrganization  []string      `json:"partnering_organization" gorm:"serializer:json"`
	EventType               EventKind     `json:"event_type"`
	RegistrationFeeRequired bool          `json:"registration_fee_required"`
	RegistrationFee         int64         `json:"registration_fee"`
	CoupleRegistrationFee   int64         `json:"couple_registration_fee"`
	IsRegistrationOpen      bool          `json:"is_registration_open"`
}

func (MissionEvent) TableName() string { return "missions" }

// hasDateRange reports whether the mission spans more than its start date.
func (m MissionEvent) hasDateRange() bool {
	return m.EndDate != nil && !m.EndDate.IsZero() && !m.EndDate.Equal(m.StartDate)
}

// EffectiveKind resolves the form kind for the mission. A recognized explicit
// event type wins; the date range is only consulted when the type is missing
// or unrecognized.
func (m MissionEvent) EffectiveKind() EventKind {
	if k := ParseEventKind(string(m.EventType)); k != "" {
		return k
	}
	if m.hasDateRange() {
		return WeekLong
	}
	return OneDay
}

// KindConflict reports an explicit event type that disagrees with the date range.
func (m MissionEvent) KindConflict() bool {
	k := ParseEventKind(string(m.EventType))
	if k == "" {
		return false
	}
	return (k == WeekLong) != m.hasDateRange()
}

// LastDay is the end date for ranged missions and the start date otherwise.
func (m MissionEvent) LastDay() Date {
	if m.hasDateRange() {
		return *m.EndDate
	}
	return m.StartDate
}

// DisplayedFee is the fee shown beside the form: the couple fee when
// registering as a couple and one is set, the solo fee otherwise.
func (m MissionEvent) DisplayedFee(couple bool) int64 {
	if couple && m.CoupleRegistrationFee > 0 {
		return m.CoupleRegistrationFee
	}
	return m.RegistrationFee
}

func (m MissionEvent) FeeApplies(couple bool) bool {
	return m.RegistrationFeeRequired && m.DisplayedFee(couple) > 0
}

// RegistrationClosed is true once registrations are switched off or the close
// date has fully passed in UTC.
func (m MissionEvent) RegistrationClosed(now time.Time) bool {
	if !m.IsRegistrationOpen {
		return true
	}
	if m.RegistrationCloseDate.IsZero() {
		return false
	}
	return !now.UTC().Before(m.RegistrationCloseDate.AddDays(1).Time())
}
