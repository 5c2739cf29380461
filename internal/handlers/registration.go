package handlers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gdg-garage/mission-registration/internal/client"
	"github.com/gdg-garage/mission-registration/internal/flash"
	"github.com/gdg-garage/mission-registration/internal/form"
	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/registration"
)

type MissionGetter interface {
	GetMission(ctx context.Context, id int64) (models.MissionEvent, error)
}

// RegistrationHandler serves the registration pages. Each request rebuilds
// the form session from the posted values, so nothing is kept between requests.
type RegistrationHandler struct {
	missions  MissionGetter
	submitter *registration.Submitter
	flash     *flash.Signer
	siteName  string
	log       zerolog.Logger
	now       func() time.Time
}

func NewRegistrationHandler(missions MissionGetter, submitter *registration.Submitter, signer *flash.Signer, siteName string, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		missions:  missions,
		submitter: submitter,
		flash:     signer,
		siteName:  siteName,
		log:       log,
		now:       time.Now,
	}
}

// loadMission resolves the mission of the URL. On failure it has already
// written the response.
func (h *RegistrationHandler) loadMission(w http.ResponseWriter, r *http.Request) (models.MissionEvent, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "missionID"), 10, 64)
	if err != nil || id <= 0 {
		h.render(w, http.StatusNotFound, pageNotFound, pageView{Title: "Mission not found"})
		return models.MissionEvent{}, false
	}

	m, err := h.missions.GetMission(r.Context(), id)
	if errors.Is(err, client.ErrNotFound) {
		h.render(w, http.StatusNotFound, pageNotFound, pageView{Title: "Mission not found"})
		return models.MissionEvent{}, false
	}
	if err != nil {
		h.log.Error().Err(err).Int64("mission_id", id).Msg("load mission failed")
		h.render(w, http.StatusBadGateway, pageError, pageView{
			Message: "We could not load this mission right now. Please try again later.",
		})
		return models.MissionEvent{}, false
	}

	if m.KindConflict() {
		h.log.Warn().
			Int64("mission_id", m.ID).
			Str("event_type", string(m.EventType)).
			Str("kind", string(m.EffectiveKind())).
			Msg("mission event type disagrees with its date range")
	}
	return m, true
}

func (h *RegistrationHandler) renderClosed(w http.ResponseWriter, status int, m models.MissionEvent) {
	h.render(w, status, pageClosed, pageView{Title: m.Title, Mission: newMissionHeader(m)})
}

func (h *RegistrationHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, f *form.Form, autofocus string) {
	m := f.Mission()
	h.render(w, status, pageRegister, pageView{
		Title:   m.Title,
		Mission: newMissionHeader(m),
		Form:    newFormView(r, f, autofocus),
	})
}

func (h *RegistrationHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	m, ok := h.loadMission(w, r)
	if !ok {
		return
	}
	if m.RegistrationClosed(h.now()) {
		h.renderClosed(w, http.StatusOK, m)
		return
	}
	h.renderPage(w, r, http.StatusOK, form.New(m), "")
}

// HandleFields re-renders the form after a change. The posted values are
// replayed onto a fresh session; errors shown before the change stay visible
// unless they belong to the field that changed or no longer apply.
func (h *RegistrationHandler) HandleFields(w http.ResponseWriter, r *http.Request) {
	m, ok := h.loadMission(w, r)
	if !ok {
		return
	}
	if m.RegistrationClosed(h.now()) {
		if isHTMXRequest(r) {
			w.Header().Set("HX-Redirect", registrationURL(m.ID))
			w.WriteHeader(http.StatusOK)
			return
		}
		h.renderClosed(w, http.StatusOK, m)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	f := form.New(m)
	f.Replay(r.PostForm)
	changed := r.Header.Get("HX-Trigger-Name")
	if r.PostForm.Get(actionField) == actionToggleAllDays {
		f.Dispatch(form.AllDaysToggled{})
		changed = form.FieldAttendingDays
	}
	if kept := keptErrors(f, r.PostForm[errorsField], changed); len(kept) > 0 {
		f.Dispatch(form.ValidationFailed{Errors: kept})
	}

	if isHTMXRequest(r) {
		h.renderForm(w, http.StatusOK, newFormView(r, f, ""))
		return
	}
	h.renderPage(w, r, http.StatusOK, f, "")
}

func keptErrors(f *form.Form, shown []string, changed string) form.Errors {
	if len(shown) == 0 {
		return nil
	}
	var kept form.Errors
	for _, fe := range f.Schema().Validate(f.Registration()) {
		if fe.Field != changed && slices.Contains(shown, fe.Field) {
			kept = append(kept, fe)
		}
	}
	return kept
}

func (h *RegistrationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.loadMission(w, r)
	if !ok {
		return
	}
	if m.RegistrationClosed(h.now()) {
		h.renderClosed(w, http.StatusForbidden, m)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	f := form.New(m)
	f.Replay(r.PostForm)
	outcome := h.submitter.Submit(r.Context(), f)

	switch outcome.Kind {
	case registration.OutcomeInvalid:
		h.renderPage(w, r, http.StatusUnprocessableEntity, f, outcome.Field)
	case registration.OutcomeFailed:
		h.renderPage(w, r, http.StatusBadGateway, f, "")
	case registration.OutcomeSuccess, registration.OutcomeAlreadyRegistered:
		err := h.flash.Set(w, flash.Outcome{MissionID: m.ID, Kind: outcome.Kind.String(), FirstName: outcome.FirstName})
		if err != nil {
			h.log.Error().Err(err).Int64("mission_id", m.ID).Msg("set outcome cookie failed")
			h.render(w, http.StatusInternalServerError, pageError, pageView{
				Message: "Your registration was received but we could not show the confirmation.",
			})
			return
		}
		http.Redirect(w, r, registrationURL(m.ID)+"/done", http.StatusSeeOther)
	default:
		h.renderPage(w, r, http.StatusConflict, f, "")
	}
}

// HandleDone shows the outcome of the last submission once. Without an
// outcome cookie it sends the visitor back to the form.
func (h *RegistrationHandler) HandleDone(w http.ResponseWriter, r *http.Request) {
	m, ok := h.loadMission(w, r)
	if !ok {
		return
	}
	o, err := h.flash.Take(w, r, m.ID)
	if err != nil {
		if !errors.Is(err, flash.ErrNoOutcome) {
			h.log.Warn().Err(err).Int64("mission_id", m.ID).Msg("invalid outcome cookie")
		}
		http.Redirect(w, r, registrationURL(m.ID), http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, pageDone, pageView{
		Title:   m.Title,
		Mission: newMissionHeader(m),
		Done: &doneView{
			AlreadyRegistered: o.Kind == registration.OutcomeAlreadyRegistered.String(),
			FirstName:         o.FirstName,
		},
	})
}
