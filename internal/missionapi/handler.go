// Package missionapi is a development stand-in for the remote mission API:
// it serves public mission records and stores participants in sqlite.
package missionapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/notifier"
	"github.com/gdg-garage/mission-registration/internal/validate"
)

const (
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"

	participantStatusPending = "pending"
)

var errDuplicate = errors.New("duplicate participant")

// DuplicateError is the 409 body for a phone number already registered for
// the mission.
type DuplicateError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func (e *DuplicateError) Error() string  { return e.Detail }
func (e *DuplicateError) GetStatus() int { return http.StatusConflict }

type Handler struct {
	db       *gorm.DB
	notifier notifier.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewHandler(db *gorm.DB, n notifier.Notifier, log zerolog.Logger) *Handler {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Handler{db: db, notifier: n, log: log, now: time.Now}
}

type GetMissionInput struct {
	ID int64 `path:"id" doc:"Mission id"`
}

type GetMissionOutput struct {
	Body models.MissionEvent
}

func (h *Handler) HandleGetMission(ctx context.Context, input *GetMissionInput) (*GetMissionOutput, error) {
	var m models.MissionEvent
	err := h.db.WithContext(ctx).First(&m, input.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Mission not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load mission: " + err.Error())
	}
	return &GetMissionOutput{Body: m}, nil
}

type CreateParticipantInput struct {
	Body models.ApiRegistrationPayload
}

type CreateParticipantOutput struct {
	Body models.ParticipantAck
}

func (h *Handler) HandleCreateParticipant(ctx context.Context, input *CreateParticipantInput) (*CreateParticipantOutput, error) {
	p := input.Body
	if err := validate.Struct(ctx, p); err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid registration: " + err.Error())
	}

	var mission models.MissionEvent
	err := h.db.WithContext(ctx).First(&mission, p.MissionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Mission not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load mission: " + err.Error())
	}
	if mission.RegistrationClosed(h.now()) {
		return nil, huma.Error422UnprocessableEntity("Registration for this mission is closed")
	}

	days, err := attendanceDays(mission, p.DaysOfAttendance)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	participant := models.Participant{
		RegistrationID:     uuid.NewString(),
		MissionID:          p.MissionID,
		PhoneNumber:        p.PhoneNumber,
		FullName:           p.FullName,
		Gender:             p.Gender,
		TravellingFrom:     p.TravellingFrom,
		DietAdvisory:       p.DietAdvisory,
		NeedFacilitation:   p.NeedFacilitation,
		FacilitationAmount: p.FacilitationAmount,
		ComingAsCouple:     p.ComingAsCouple,
		PartnerName:        p.PartnerName,
		Status:             participantStatusPending,
		Days:               days,
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Participant{}).
			Where("mission_id = ? AND phone_number = ?", p.MissionID, p.PhoneNumber).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errDuplicate
		}
		return tx.Create(&participant).Error
	})
	if errors.Is(err, errDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &DuplicateError{Code: CodeDuplicateRegistration, Detail: "Participant already registered for this mission"}
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to store participant: " + err.Error())
	}

	if err := h.notifier.NotifyParticipant(mission, participant); err != nil {
		h.log.Warn().Err(err).Str("registration_id", participant.RegistrationID).Msg("participant notification failed")
	}
	h.log.Info().Int64("mission_id", mission.ID).Str("registration_id", participant.RegistrationID).Msg("participant created")

	res := &CreateParticipantOutput{}
	res.Body = models.ParticipantAck{
		Success: true,
		Message: "Registration received",
		Data:    &models.AckData{RegistrationID: participant.RegistrationID, Status: participant.Status},
	}
	return res, nil
}

// attendanceDays checks every entry against the mission schedule: the date
// must fall inside it and the day must be its offset from the start.
func attendanceDays(m models.MissionEvent, entries []models.AttendanceEntry) ([]models.ParticipantDay, error) {
	seen := make(map[string]bool, len(entries))
	days := make([]models.ParticipantDay, 0, len(entries))
	for _, e := range entries {
		d, err := models.ParseDate(e.DayDate)
		if err != nil {
			return nil, fmt.Errorf("invalid attendance date %q", e.DayDate)
		}
		if !d.Within(m.StartDate, m.LastDay()) {
			return nil, fmt.Errorf("attendance date %s is outside the mission schedule", d)
		}
		if e.Day != d.DaysSince(m.StartDate) {
			return nil, fmt.Errorf("attendance day %d does not match %s", e.Day, d)
		}
		if seen[d.String()] {
			return nil, fmt.Errorf("attendance date %s is listed twice", d)
		}
		seen[d.String()] = true
		days = append(days, models.ParticipantDay{Day: e.Day, DayDate: d.String()})
	}
	return days, nil
}
