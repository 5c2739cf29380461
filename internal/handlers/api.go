package handlers

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"

	"github.com/gdg-garage/mission-registration/internal/catalog"
	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/validate"
)

// APIFailure is the {success:false, message} body of the local API.
type APIFailure struct {
	status  int
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e *APIFailure) Error() string  { return e.Message }
func (e *APIFailure) GetStatus() int { return e.status }

func failure(status int, msg string) *APIFailure {
	return &APIFailure{status: status, Message: msg}
}

const registerOperationID = "register"

// Request errors huma raises itself on the register route, such as a
// malformed body or a mistyped field, keep the route's failure body.
func init() {
	next := huma.NewErrorWithContext
	huma.NewErrorWithContext = func(ctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status < http.StatusInternalServerError && ctx != nil && ctx.Operation() != nil &&
			ctx.Operation().OperationID == registerOperationID {
			return failure(http.StatusBadRequest, "Invalid registration.")
		}
		return next(ctx, status, msg, errs...)
	}
}

type APIHandler struct {
	log zerolog.Logger
	now func() time.Time
}

func NewAPIHandler(log zerolog.Logger) *APIHandler {
	return &APIHandler{log: log, now: time.Now}
}

type RegisterBody struct {
	_              struct{} `json:"-" additionalProperties:"true"`
	MissionID      string   `json:"mission_id,omitempty"`
	MissionType    string   `json:"mission_type,omitempty" doc:"one_day or week_long; defaults to the mission's kind"`
	FirstName      string   `json:"first_name,omitempty"`
	LastName       string   `json:"last_name,omitempty"`
	PhoneNumber    string   `json:"phone_number,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	CanPayFull     *bool    `json:"can_pay_full,omitempty" doc:"Defaults to true"`
	SupportNeeded  string   `json:"support_needed,omitempty"`
	TravellingFrom string   `json:"travelling_from,omitempty"`
	ComingAsCouple bool     `json:"coming_as_couple,omitempty"`
	PartnerName    string   `json:"partner_name,omitempty"`
	AttendingDays  []string `json:"attending_days,omitempty"`
	MissionDate    string   `json:"mission_date,omitempty"`
	DietaryWatch   string   `json:"dietary_watch,omitempty"`
}

type RegisterInput struct {
	Body RegisterBody
}

type RegisterOutput struct {
	Body struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		ReferenceID string `json:"referenceId"`
	}
}

// registerRules lists the checks of the register route in the order they are
// reported; only the first failure is returned.
type registerRules struct {
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	PhoneNumber    string   `json:"phone_number" validate:"required,phone"`
	CanPayFull     bool     `json:"can_pay_full"`
	SupportNeeded  string   `json:"support_needed" validate:"required_if=CanPayFull false"`
	MissionType    string   `json:"mission_type"`
	MissionDate    string   `json:"mission_date" validate:"required_if=MissionType one_day"`
	AttendingDays  []string `json:"attending_days" validate:"required_if=MissionType week_long"`
	ComingAsCouple bool     `json:"coming_as_couple"`
	PartnerName    string   `json:"partner_name" validate:"required_if=ComingAsCouple true"`
}

var ruleMessages = map[string]string{
	"first_name":     "First name and last name are required.",
	"last_name":      "First name and last name are required.",
	"phone_number":   "Please provide a valid phone number.",
	"support_needed": "Support amount is required when you cannot pay the full fee.",
	"mission_date":   "Mission date is required.",
	"attending_days": "Please include the days you plan to attend.",
	"partner_name":   "Partner name is required when registering as a couple.",
}

func (h *APIHandler) HandleRegister(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	b := input.Body
	id, err := strconv.ParseInt(strings.TrimSpace(b.MissionID), 10, 64)
	if err != nil {
		return nil, failure(http.StatusBadRequest, "Invalid mission reference.")
	}
	mission, ok := catalog.Find(id)
	if !ok {
		return nil, failure(http.StatusBadRequest, "Invalid mission reference.")
	}

	kind := models.ParseEventKind(b.MissionType)
	if kind == "" {
		kind = mission.EffectiveKind()
	}
	rules := registerRules{
		FirstName:      strings.TrimSpace(b.FirstName),
		LastName:       strings.TrimSpace(b.LastName),
		PhoneNumber:    strings.TrimSpace(b.PhoneNumber),
		CanPayFull:     b.CanPayFull == nil || *b.CanPayFull,
		SupportNeeded:  strings.TrimSpace(b.SupportNeeded),
		MissionType:    string(kind),
		MissionDate:    strings.TrimSpace(b.MissionDate),
		AttendingDays:  trimAll(b.AttendingDays),
		ComingAsCouple: b.ComingAsCouple,
		PartnerName:    strings.TrimSpace(b.PartnerName),
	}
	if err := validate.Struct(ctx, rules); err != nil {
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			if msg, ok := ruleMessages[fe.Field]; ok {
				return nil, failure(http.StatusBadRequest, msg)
			}
		}
		return nil, failure(http.StatusBadRequest, "Invalid registration.")
	}

	ref := h.referenceID()
	h.log.Info().
		Int64("mission_id", mission.ID).
		Str("kind", string(kind)).
		Str("reference_id", ref).
		Msg("registration received")

	res := &RegisterOutput{}
	res.Body.Success = true
	res.Body.Message = "Registration received! We will be in touch soon."
	res.Body.ReferenceID = ref
	return res, nil
}

// trimAll trims every value and drops blanks; no values at all yields nil so
// the attending-days rule still fires.
func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// referenceID is "GKM-", the current time in base 36 milliseconds and a
// random suffix below 1000.
func (h *APIHandler) referenceID() string {
	return "GKM-" + strconv.FormatInt(h.now().UnixMilli(), 36) + "-" + strconv.Itoa(rand.Intn(1000))
}

type MethodNotAllowedOutput struct{}

func (h *APIHandler) HandleRegisterGet(ctx context.Context, input *struct{}) (*MethodNotAllowedOutput, error) {
	return nil, failure(http.StatusMethodNotAllowed, "Please use POST to submit registrations.")
}

type ListMissionsOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         struct {
		Missions    []models.MissionEvent `json:"missions"`
		GeneratedAt time.Time             `json:"generatedAt"`
	}
}

func (h *APIHandler) HandleListMissions(ctx context.Context, input *struct{}) (*ListMissionsOutput, error) {
	res := &ListMissionsOutput{CacheControl: "no-store"}
	res.Body.Missions = catalog.All()
	res.Body.GeneratedAt = h.now().UTC()
	return res, nil
}

func (h *APIHandler) HandleCreateMission(ctx context.Context, input *struct{}) (*MethodNotAllowedOutput, error) {
	return nil, failure(http.StatusMethodNotAllowed, "Mission creation is not enabled in this demo.")
}
