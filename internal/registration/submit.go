// Package registration runs a submission from a form session through
// validation to the mission API and classifies the outcome.
package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gdg-garage/mission-registration/internal/form"
	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/payload"
)

// ErrAlreadyRegistered may be returned by a ParticipantCreator that detects a
// duplicate itself.
var ErrAlreadyRegistered = errors.New("participant already registered")

// Duplicate codes the mission API uses for an existing registration.
var duplicateCodes = []string{"DUPLICATE_REGISTRATION", "already_registered"}

// Substrings accepted from older API versions that only send a message.
var duplicatePhrases = []string{"already registered", "already exists", "duplicate"}

type ParticipantCreator interface {
	CreateParticipant(ctx context.Context, p models.ApiRegistrationPayload) (*models.ParticipantAck, error)
}

type OutcomeKind int

const (
	OutcomeBusy OutcomeKind = iota
	OutcomeInvalid
	OutcomeSuccess
	OutcomeAlreadyRegistered
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSuccess:
		return "success"
	case OutcomeAlreadyRegistered:
		return "already_registered"
	case OutcomeFailed:
		return "failed"
	default:
		return "busy"
	}
}

type Outcome struct {
	Kind      OutcomeKind
	FirstName string
	// Field is the first errored field of an invalid submission.
	Field   string
	Message string
	Ack     *models.ParticipantAck
}

type Submitter struct {
	creator ParticipantCreator
	log     zerolog.Logger
}

func NewSubmitter(creator ParticipantCreator, log zerolog.Logger) *Submitter {
	return &Submitter{creator: creator, log: log}
}

// Submit validates the form's current record and, when it is valid, sends it
// to the mission API exactly once. It never retries.
func (s *Submitter) Submit(ctx context.Context, f *form.Form) Outcome {
	if f.Status() != form.StatusEditing {
		return Outcome{Kind: OutcomeBusy}
	}
	f.Dispatch(form.SubmitStarted{})

	reg := f.Registration()
	mission := f.Mission()
	if errs := form.BuildSchema(mission, reg).Validate(reg); len(errs) > 0 {
		f.Dispatch(form.ValidationFailed{Errors: errs})
		first, _ := errs.First()
		return Outcome{Kind: OutcomeInvalid, Field: first.Field, Message: first.Message}
	}

	firstName := reg.Common().FirstName
	ack, err := s.creator.CreateParticipant(ctx, payload.Build(reg, mission))
	if err != nil {
		if IsAlreadyRegistered(err) {
			s.log.Info().Int64("mission_id", mission.ID).Msg("participant already registered")
			f.Dispatch(form.AlreadyRegisteredDetected{FirstName: firstName})
			return Outcome{Kind: OutcomeAlreadyRegistered, FirstName: firstName}
		}
		s.log.Error().Err(err).Int64("mission_id", mission.ID).Msg("create participant failed")
		msg := err.Error()
		f.Dispatch(form.SubmitFailed{Message: msg})
		return Outcome{Kind: OutcomeFailed, Message: msg}
	}

	f.Dispatch(form.SubmitSucceeded{FirstName: firstName})
	s.log.Info().Int64("mission_id", mission.ID).Msg("participant registered")
	return Outcome{Kind: OutcomeSuccess, FirstName: firstName, Ack: ack}
}

// coder is implemented by API errors that carry a machine readable code.
type coder interface {
	ErrorCode() string
}

// IsAlreadyRegistered reports whether err means the participant already holds
// a registration. Structured codes are checked before the message text.
func IsAlreadyRegistered(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAlreadyRegistered) {
		return true
	}
	var c coder
	if errors.As(err, &c) {
		for _, code := range duplicateCodes {
			if strings.EqualFold(c.ErrorCode(), code) {
				return true
			}
		}
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range duplicatePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
