package form

import (
	"fmt"

	"github.com/gdg-garage/mission-registration/internal/models"
)

type FieldKind string

const (
	KindText            FieldKind = "text"
	KindSelect          FieldKind = "select"
	KindDate            FieldKind = "date"
	KindCheckbox        FieldKind = "checkbox"
	KindDaysMultiSelect FieldKind = "days-multi-select"
	KindTextarea        FieldKind = "textarea"
)

// Field names double as the HTML input names of the registration form.
const (
	FieldMissionID      = "mission_id"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldPhoneNumber    = "phone_number"
	FieldGender         = "gender"
	FieldMissionDate    = "mission_date"
	FieldCanPayFull     = "can_pay_full"
	FieldSupportNeeded  = "support_needed"
	FieldTravellingFrom = "travelling_from"
	FieldComingAsCouple = "coming_as_couple"
	FieldPartnerName    = "partner_name"
	FieldAttendingDays  = "attending_days"
	FieldDietaryWatch   = "dietary_watch"
)

type Option struct {
	Value string
	Label string
}

// Condition shows a field only while another field's typed value equals Value.
type Condition struct {
	Field string
	Value any
}

type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
	ShowIf   *Condition
}

type Template struct {
	Kind   models.EventKind
	Fields []Field
}

// Field returns the descriptor called name, or false when the template has none.
func (t Template) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var (
	genderOptions = []Option{{Value: string(models.Male), Label: "Male"}, {Value: string(models.Female), Label: "Female"}}
	yesNoOptions  = []Option{{Value: "Yes", Label: "Yes"}, {Value: "No", Label: "No"}}
)

func oneDayTemplate() []Field {
	return []Field{
		{Name: FieldFirstName, Label: "First Name", Kind: KindText, Required: true},
		{Name: FieldLastName, Label: "Last Name", Kind: KindText, Required: true},
		{Name: FieldPhoneNumber, Label: "Phone Number", Kind: KindText, Required: true},
		{Name: FieldGender, Label: "Gender", Kind: KindSelect, Required: true, Options: genderOptions},
		{Name: FieldMissionDate, Label: "Mission Date", Kind: KindDate},
		{Name: FieldCanPayFull, Label: "Can pay the full amount?", Kind: KindSelect, Required: true, Options: yesNoOptions},
		{
			Name: FieldSupportNeeded, Label: "Support needed (Amount)", Kind: KindText, Required: true,
			ShowIf: &Condition{Field: FieldCanPayFull, Value: false},
		},
		{Name: FieldTravellingFrom, Label: "Travelling From", Kind: KindText},
	}
}

func weekLongTemplate() []Field {
	return []Field{
		{Name: FieldFirstName, Label: "First Name", Kind: KindText, Required: true},
		{Name: FieldLastName, Label: "Last Name", Kind: KindText, Required: true},
		{Name: FieldPhoneNumber, Label: "Phone Number", Kind: KindText, Required: true},
		{Name: FieldGender, Label: "Gender", Kind: KindSelect, Required: true, Options: genderOptions},
		{Name: FieldComingAsCouple, Label: "Coming as a couple?", Kind: KindCheckbox},
		{
			Name: FieldPartnerName, Label: "Partner's Full Name", Kind: KindText, Required: true,
			ShowIf: &Condition{Field: FieldComingAsCouple, Value: true},
		},
		{Name: FieldAttendingDays, Label: "Days you will attend", Kind: KindDaysMultiSelect, Required: true},
		{Name: FieldTravellingFrom, Label: "Travelling From", Kind: KindText},
		{Name: FieldCanPayFull, Label: "Can pay the full amount?", Kind: KindSelect, Required: true, Options: yesNoOptions},
		{
			Name: FieldSupportNeeded, Label: "Support needed (Amount)", Kind: KindText, Required: true,
			ShowIf: &Condition{Field: FieldCanPayFull, Value: false},
		},
		{Name: FieldDietaryWatch, Label: "Dietary Restrictions", Kind: KindTextarea},
	}
}

// Resolve picks the field template for the mission's effective kind. For
// week-long missions the day selector lists every date of the mission.
func Resolve(m models.MissionEvent) Template {
	kind := m.EffectiveKind()
	if kind == models.OneDay {
		return Template{Kind: kind, Fields: oneDayTemplate()}
	}

	fields := weekLongTemplate()
	for i := range fields {
		if fields[i].Kind != KindDaysMultiSelect {
			continue
		}
		days := EnumerateDays(m.StartDate, m.LastDay())
		opts := make([]Option, len(days))
		for j, d := range days {
			opts[j] = Option{Value: d.String(), Label: DayLabel(j, d)}
		}
		fields[i].Options = opts
	}
	return Template{Kind: kind, Fields: fields}
}

// EnumerateDays lists every date from start to end, both included. An end
// before start yields only the start date.
func EnumerateDays(start, end models.Date) []models.Date {
	if start.IsZero() {
		return nil
	}
	if end.IsZero() || end.Before(start) {
		end = start
	}
	days := make([]models.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// DayLabel renders a zero-based day index as "Day 1 – Mon, Dec 1".
func DayLabel(index int, d models.Date) string {
	return fmt.Sprintf("Day %d – %s", index+1, d.Time().Format("Mon, Jan 2"))
}
