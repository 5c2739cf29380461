package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/sanitize"
)

const (
	minNameLen = 2

	nameErrorMsg = "Name must contain at least 2 letters and may only contain letters, spaces, periods, hyphens, and apostrophes."
)

var (
	nameCharset = regexp.MustCompile(`^[a-zA-Z\s'.-]*$`)
	letter      = regexp.MustCompile(`[a-zA-Z]`)
	digitsOnly  = regexp.MustCompile(`^\d+$`)

	feePrinter = message.NewPrinter(language.English)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists failures in form order, at most one per field.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First is the error to surface and scroll to.
func (e Errors) First() (FieldError, bool) {
	if len(e) == 0 {
		return FieldError{}, false
	}
	return e[0], true
}

// For returns the message recorded for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *Errors) add(field, msg string) {
	if e.For(field) != "" {
		return
	}
	*e = append(*e, FieldError{Field: field, Message: msg})
}

// Schema is the rule set for one mission and one snapshot of the form. The fee
// bound follows the live couple choice, so build a fresh Schema per validation.
type Schema struct {
	Kind         models.EventKind
	DisplayedFee int64
	FeeApplies   bool
	Start        models.Date
	End          models.Date
}

func BuildSchema(m models.MissionEvent, r models.Registration) Schema {
	couple := false
	if wl, ok := r.(*models.WeekLongRegistration); ok {
		couple = wl.ComingAsCouple
	}
	return Schema{
		Kind:         m.EffectiveKind(),
		DisplayedFee: m.DisplayedFee(couple),
		FeeApplies:   m.FeeApplies(couple),
		Start:        m.StartDate,
		End:          m.LastDay(),
	}
}

// Validate runs the field rules in form order, then the cross-field rules.
// A nil result means r can be submitted.
func (s Schema) Validate(r models.Registration) Errors {
	var errs Errors
	p := r.Common()

	if p.MissionID <= 0 {
		errs.add(FieldMissionID, "Mission reference is required")
	} else if r.Kind() != s.Kind {
		errs.add(FieldMissionID, "Registration does not match the mission type")
	}
	validateName(&errs, FieldFirstName, "First name", p.FirstName)
	validateName(&errs, FieldLastName, "Last name", p.LastName)
	validatePhone(&errs, p.PhoneNumber)
	if !p.Gender.Valid() {
		errs.add(FieldGender, "Please select a gender")
	}

	switch reg := r.(type) {
	case *models.OneDayRegistration:
		if reg.MissionDate.IsZero() {
			errs.add(FieldMissionDate, "Mission date is required")
		}
		s.validateSupport(&errs, p.SupportNeeded)
	case *models.WeekLongRegistration:
		s.validateDays(&errs, reg.AttendingDays)
		s.validateSupport(&errs, p.SupportNeeded)
		if utf8.RuneCountInString(reg.DietaryNote) > sanitize.MaxTextLen {
			errs.add(FieldDietaryWatch, "Dietary restrictions must not exceed 500 characters")
		}
		if reg.ComingAsCouple && strings.TrimSpace(reg.PartnerName) == "" {
			errs.add(FieldPartnerName, "Partner name is required when coming as a couple")
		}
	}

	if s.FeeApplies && !p.CanPayFull && !positive(p.SupportNeeded) {
		errs.add(FieldSupportNeeded, "Support amount is required and must be greater than 0 when you cannot pay the full amount")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateName(errs *Errors, field, label, v string) {
	switch n := utf8.RuneCountInString(v); {
	case n < minNameLen:
		errs.add(field, label+" must be at least 2 characters")
	case n > sanitize.MaxNameLen:
		errs.add(field, label+" must be at most 25 characters")
	case !nameCharset.MatchString(v) || len(letter.FindAllString(v, 2)) < 2:
		errs.add(field, nameErrorMsg)
	}
}

func validatePhone(errs *Errors, v string) {
	if len(v) != sanitize.MaxPhoneLen {
		errs.add(FieldPhoneNumber, "Phone number must be exactly 10 digits")
		return
	}
	if !digitsOnly.MatchString(v) {
		errs.add(FieldPhoneNumber, "Phone number must contain digits only")
	}
}

// validateSupport checks a present support amount. Absence is judged by the
// cross-field rule.
func (s Schema) validateSupport(errs *Errors, v string) {
	if v == "" {
		return
	}
	if !digitsOnly.MatchString(v) {
		errs.add(FieldSupportNeeded, "Support amount must contain numbers only")
		return
	}
	amount, err := decimal.NewFromString(v)
	if err != nil || !amount.IsPositive() {
		errs.add(FieldSupportNeeded, "Support amount must be greater than 0")
		return
	}
	if s.DisplayedFee > 0 && amount.GreaterThan(decimal.NewFromInt(s.DisplayedFee)) {
		errs.add(FieldSupportNeeded, "Support amount must not exceed the registration fee ("+FormatFee(s.DisplayedFee)+")")
	}
}

func (s Schema) validateDays(errs *Errors, days []models.AttendanceDay) {
	if len(days) == 0 {
		errs.add(FieldAttendingDays, "Please select at least one day")
		return
	}
	seenIdx := make(map[int]bool, len(days))
	seenDate := make(map[string]bool, len(days))
	for _, d := range days {
		if seenIdx[d.DayIndex] || seenDate[d.Date.String()] {
			errs.add(FieldAttendingDays, "Each day can only be selected once")
			return
		}
		seenIdx[d.DayIndex] = true
		seenDate[d.Date.String()] = true
	}
	for _, d := range days {
		if d.Date.IsZero() || !d.Date.Within(s.Start, s.End) {
			errs.add(FieldAttendingDays, "Some selected days fall outside the mission schedule.")
			return
		}
	}
}

func positive(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	amount, err := decimal.NewFromString(v)
	return err == nil && amount.IsPositive()
}

// FormatFee renders an amount the way fees are shown beside the form, e.g. "KES 4,000".
func FormatFee(amount int64) string {
	return feePrinter.Sprintf("KES %d", amount)
}
