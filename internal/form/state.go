package form

import (
	"net/url"
	"strings"

	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/sanitize"
)

type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSuccess
	StatusAlreadyRegistered
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusAlreadyRegistered:
		return "already_registered"
	default:
		return "editing"
	}
}

// Form is one registration session for one mission. Every change goes through
// Dispatch; accessors never hand out the live record.
type Form struct {
	mission    models.MissionEvent
	template   Template
	reg        models.Registration
	canPayFull string
	errors     Errors
	status     Status
	firstName  string
	formError  string
	generation int
}

func New(m models.MissionEvent) *Form {
	f := &Form{}
	f.Dispatch(MissionChanged{Mission: m})
	return f
}

// Msg is a change applied to a Form by Dispatch.
type Msg interface {
	apply(f *Form)
}

type (
	MissionChanged struct{ Mission models.MissionEvent }
	Reset          struct{}
	FieldChanged   struct {
		Name  string
		Value string
	}
	CheckboxChanged struct {
		Name    string
		Checked bool
	}
	DayToggled     struct{ Date models.Date }
	AllDaysToggled struct{}

	SubmitStarted             struct{}
	ValidationFailed          struct{ Errors Errors }
	SubmitSucceeded           struct{ FirstName string }
	AlreadyRegisteredDetected struct{ FirstName string }
	SubmitFailed              struct{ Message string }
)

func (f *Form) Dispatch(msg Msg) {
	msg.apply(f)
}

func (m MissionChanged) apply(f *Form) {
	f.mission = m.Mission
	f.template = Resolve(m.Mission)
	f.reset()
}

func (Reset) apply(f *Form) { f.reset() }

func (f *Form) reset() {
	f.reg = seed(f.mission, f.template.Kind)
	f.canPayFull = "Yes"
	f.errors = nil
	f.status = StatusEditing
	f.firstName = ""
	f.formError = ""
}

func seed(m models.MissionEvent, kind models.EventKind) models.Registration {
	p := models.Personal{MissionID: m.ID, CanPayFull: true}
	if kind == models.WeekLong {
		return &models.WeekLongRegistration{Personal: p}
	}
	return &models.OneDayRegistration{Personal: p, MissionDate: m.StartDate}
}

func (m FieldChanged) apply(f *Form) {
	if f.status != StatusEditing {
		return
	}
	f.clearError(m.Name)
	p := f.reg.Common()
	wl, weekLong := f.reg.(*models.WeekLongRegistration)

	switch m.Name {
	case FieldFirstName:
		p.FirstName = sanitize.Name(m.Value)
	case FieldLastName:
		p.LastName = sanitize.Name(m.Value)
	case FieldPhoneNumber:
		p.PhoneNumber = sanitize.Phone(m.Value)
	case FieldGender:
		p.Gender = ""
		if g := models.Gender(strings.TrimSpace(m.Value)); g.Valid() {
			p.Gender = g
		}
	case FieldTravellingFrom:
		p.TravellingFrom = sanitize.Location(m.Value)
	case FieldCanPayFull:
		yes, ok := parseYesNo(m.Value)
		if !ok {
			return
		}
		p.CanPayFull = yes
		f.canPayFull = "No"
		if yes {
			f.canPayFull = "Yes"
			p.SupportNeeded = ""
			f.clearError(FieldSupportNeeded)
		}
	case FieldSupportNeeded:
		if !p.CanPayFull {
			p.SupportNeeded = sanitize.Amount(m.Value)
		}
	case FieldComingAsCouple:
		if yes, ok := parseYesNo(m.Value); ok {
			CheckboxChanged{Name: FieldComingAsCouple, Checked: yes}.apply(f)
		}
	case FieldPartnerName:
		if weekLong && wl.ComingAsCouple {
			wl.PartnerName = sanitize.Name(m.Value)
		}
	case FieldDietaryWatch:
		if weekLong {
			wl.DietaryNote = sanitize.Text(m.Value)
		}
	}
}

func (m CheckboxChanged) apply(f *Form) {
	if f.status != StatusEditing || m.Name != FieldComingAsCouple {
		return
	}
	wl, ok := f.reg.(*models.WeekLongRegistration)
	if !ok {
		return
	}
	f.clearError(FieldComingAsCouple)
	wl.ComingAsCouple = m.Checked
	if !m.Checked {
		wl.PartnerName = ""
		f.clearError(FieldPartnerName)
	}
}

func (m DayToggled) apply(f *Form) {
	wl, ok := f.reg.(*models.WeekLongRegistration)
	if f.status != StatusEditing || !ok || !f.inSchedule(m.Date) {
		return
	}
	f.clearError(FieldAttendingDays)
	if wl.HasDay(m.Date) {
		wl.RemoveDay(m.Date)
		return
	}
	wl.AddDay(models.AttendanceDay{DayIndex: m.Date.DaysSince(f.mission.StartDate), Date: m.Date})
}

func (AllDaysToggled) apply(f *Form) {
	wl, ok := f.reg.(*models.WeekLongRegistration)
	if f.status != StatusEditing || !ok {
		return
	}
	f.clearError(FieldAttendingDays)
	days := EnumerateDays(f.mission.StartDate, f.mission.LastDay())
	if len(wl.AttendingDays) >= len(days) {
		wl.AttendingDays = nil
		return
	}
	wl.AttendingDays = make([]models.AttendanceDay, len(days))
	for i, d := range days {
		wl.AttendingDays[i] = models.AttendanceDay{DayIndex: i, Date: d}
	}
}

func (SubmitStarted) apply(f *Form) {
	if f.status != StatusEditing {
		return
	}
	f.status = StatusSubmitting
	f.formError = ""
}

func (m ValidationFailed) apply(f *Form) {
	f.errors = append(Errors(nil), m.Errors...)
	f.status = StatusEditing
}

func (m SubmitSucceeded) apply(f *Form) {
	f.finish(StatusSuccess, m.FirstName)
}

func (m AlreadyRegisteredDetected) apply(f *Form) {
	f.finish(StatusAlreadyRegistered, m.FirstName)
}

// finish ends a submission with a terminal status; the day selector starts
// empty on its next render.
func (f *Form) finish(status Status, firstName string) {
	f.reset()
	f.status = status
	f.firstName = firstName
	f.generation++
}

func (m SubmitFailed) apply(f *Form) {
	f.status = StatusEditing
	f.formError = m.Message
}

// Replay applies posted form values in field order, so a controlling field
// such as can_pay_full is set before the field it reveals.
func (f *Form) Replay(values url.Values) {
	for _, field := range f.template.Fields {
		switch field.Kind {
		case KindDate:
			// fixed to the mission start date
		case KindCheckbox:
			checked, _ := parseYesNo(values.Get(field.Name)) // absent means unchecked
			f.Dispatch(CheckboxChanged{Name: field.Name, Checked: checked})
		case KindDaysMultiSelect:
			for _, raw := range values[field.Name] {
				d, err := models.ParseDate(raw)
				if err != nil || f.DaySelected(d) {
					continue
				}
				f.Dispatch(DayToggled{Date: d})
			}
		default:
			if _, ok := values[field.Name]; ok {
				f.Dispatch(FieldChanged{Name: field.Name, Value: values.Get(field.Name)})
			}
		}
	}
}

func (f *Form) clearError(name string) {
	if len(f.errors) == 0 {
		return
	}
	kept := f.errors[:0]
	for _, fe := range f.errors {
		if fe.Field != name {
			kept = append(kept, fe)
		}
	}
	f.errors = kept
}

func (f *Form) inSchedule(d models.Date) bool {
	return !d.IsZero() && d.Within(f.mission.StartDate, f.mission.LastDay())
}

func parseYesNo(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "on", "1":
		return true, true
	case "no", "false", "off", "0":
		return false, true
	default:
		return false, false
	}
}

func (f *Form) Mission() models.MissionEvent { return f.mission }
func (f *Form) Template() Template           { return f.template }
func (f *Form) Fields() []Field              { return f.template.Fields }
func (f *Form) Status() Status               { return f.status }
func (f *Form) FormError() string            { return f.formError }
func (f *Form) Generation() int              { return f.generation }

// SubmittedFirstName is the registrant shown on the success and already
// registered views.
func (f *Form) SubmittedFirstName() string { return f.firstName }

// VisibleFields returns the fields whose show-if condition currently holds.
func (f *Form) VisibleFields() []Field {
	var out []Field
	for _, field := range f.template.Fields {
		if f.Visible(field) {
			out = append(out, field)
		}
	}
	return out
}

func (f *Form) Visible(field Field) bool {
	if field.ShowIf == nil {
		return true
	}
	return f.Value(field.ShowIf.Field) == field.ShowIf.Value
}

// Value returns the typed value of a field: bool for flags, int64 for the
// mission reference and string otherwise.
func (f *Form) Value(name string) any {
	p := f.reg.Common()
	wl, weekLong := f.reg.(*models.WeekLongRegistration)
	switch name {
	case FieldMissionID:
		return p.MissionID
	case FieldFirstName:
		return p.FirstName
	case FieldLastName:
		return p.LastName
	case FieldPhoneNumber:
		return p.PhoneNumber
	case FieldGender:
		return string(p.Gender)
	case FieldTravellingFrom:
		return p.TravellingFrom
	case FieldCanPayFull:
		return p.CanPayFull
	case FieldSupportNeeded:
		return p.SupportNeeded
	case FieldMissionDate:
		if od, ok := f.reg.(*models.OneDayRegistration); ok {
			return od.MissionDate.String()
		}
		return ""
	case FieldComingAsCouple:
		return weekLong && wl.ComingAsCouple
	case FieldPartnerName:
		if weekLong {
			return wl.PartnerName
		}
		return ""
	case FieldDietaryWatch:
		if weekLong {
			return wl.DietaryNote
		}
		return ""
	}
	return nil
}

// Display is the string a control shows for name.
func (f *Form) Display(name string) string {
	switch name {
	case FieldCanPayFull:
		return f.canPayFull
	case FieldComingAsCouple:
		if f.Value(name) == true {
			return "true"
		}
		return ""
	}
	if s, ok := f.Value(name).(string); ok {
		return s
	}
	return ""
}

func (f *Form) Error(name string) string { return f.errors.For(name) }

func (f *Form) Errors() Errors { return append(Errors(nil), f.errors...) }

func (f *Form) FirstError() (FieldError, bool) { return f.errors.First() }

// Registration returns a copy of the current record.
func (f *Form) Registration() models.Registration {
	switch r := f.reg.(type) {
	case *models.WeekLongRegistration:
		cp := *r
		cp.AttendingDays = append([]models.AttendanceDay(nil), r.AttendingDays...)
		return &cp
	case *models.OneDayRegistration:
		cp := *r
		return &cp
	}
	return nil
}

func (f *Form) SelectedDays() []models.AttendanceDay {
	if wl, ok := f.reg.(*models.WeekLongRegistration); ok {
		return append([]models.AttendanceDay(nil), wl.AttendingDays...)
	}
	return nil
}

func (f *Form) DaySelected(d models.Date) bool {
	wl, ok := f.reg.(*models.WeekLongRegistration)
	return ok && wl.HasDay(d)
}

// AllDaysSelected drives the select all / clear all toggle label.
func (f *Form) AllDaysSelected() bool {
	days := EnumerateDays(f.mission.StartDate, f.mission.LastDay())
	return len(days) > 0 && len(f.SelectedDays()) >= len(days)
}

func (f *Form) couple() bool {
	return f.Value(FieldComingAsCouple) == true
}

func (f *Form) DisplayedFee() int64 { return f.mission.DisplayedFee(f.couple()) }

func (f *Form) FeeApplies() bool { return f.mission.FeeApplies(f.couple()) }

// Schema builds the validation rules for the current values.
func (f *Form) Schema() Schema { return BuildSchema(f.mission, f.reg) }
