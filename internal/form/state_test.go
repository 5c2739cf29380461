package form_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/mission-registration/internal/form"
	"github.com/gdg-garage/mission-registration/internal/models"
)

func TestNew_SeedsRecord(t *testing.T) {
	f := form.New(oneDayMission())

	assert.Equal(t, form.StatusEditing, f.Status())
	assert.Equal(t, int64(3), f.Value(form.FieldMissionID))
	assert.Equal(t, true, f.Value(form.FieldCanPayFull))
	assert.Equal(t, "Yes", f.Display(form.FieldCanPayFull))
	assert.Equal(t, "2025-11-20", f.Value(form.FieldMissionDate))
	assert.Empty(t, f.Errors())

	od, ok := f.Registration().(*models.OneDayRegistration)
	require.True(t, ok)
	assert.Equal(t, "2025-11-20", od.MissionDate.String())
}

func TestFieldChanged_SanitizesAndClearsError(t *testing.T) {
	f := form.New(oneDayMission())
	f.Dispatch(form.ValidationFailed{Errors: form.Errors{
		{Field: form.FieldFirstName, Message: "First name must be at least 2 characters"},
		{Field: form.FieldPhoneNumber, Message: "Phone number must be exactly 10 digits"},
	}})

	f.Dispatch(form.FieldChanged{Name: form.FieldFirstName, Value: "  Jo3hn  "})
	f.Dispatch(form.FieldChanged{Name: form.FieldTravellingFrom, Value: "Nakuru!"})

	assert.Equal(t, "John", f.Value(form.FieldFirstName))
	assert.Equal(t, "Nakuru", f.Value(form.FieldTravellingFrom))
	assert.Empty(t, f.Error(form.FieldFirstName))
	assert.NotEmpty(t, f.Error(form.FieldPhoneNumber))

	f.Dispatch(form.FieldChanged{Name: form.FieldPhoneNumber, Value: "+254 712 345 678"})
	assert.Equal(t, "2547123456", f.Value(form.FieldPhoneNumber))
	assert.Empty(t, f.Errors())
}

func TestFieldChanged_CanPayFullTogglesSupport(t *testing.T) {
	f := form.New(oneDayMission())

	support, _ := f.Template().Field(form.FieldSupportNeeded)
	assert.False(t, f.Visible(support))

	f.Dispatch(form.FieldChanged{Name: form.FieldSupportNeeded, Value: "100"})
	assert.Equal(t, "", f.Value(form.FieldSupportNeeded), "ignored while paying in full")

	f.Dispatch(form.FieldChanged{Name: form.FieldCanPayFull, Value: "No"})
	assert.Equal(t, false, f.Value(form.FieldCanPayFull))
	assert.Equal(t, "No", f.Display(form.FieldCanPayFull))
	assert.True(t, f.Visible(support))

	f.Dispatch(form.FieldChanged{Name: form.FieldSupportNeeded, Value: "KES 1,500"})
	assert.Equal(t, "1500", f.Value(form.FieldSupportNeeded))

	f.Dispatch(form.FieldChanged{Name: form.FieldCanPayFull, Value: "Yes"})
	assert.Equal(t, "", f.Value(form.FieldSupportNeeded))
	assert.False(t, f.Visible(support))

	f.Dispatch(form.FieldChanged{Name: form.FieldCanPayFull, Value: "maybe"})
	assert.Equal(t, true, f.Value(form.FieldCanPayFull))
}

func TestCheckboxChanged_ClearsPartnerName(t *testing.T) {
	f := form.New(weekLongMission())
	partner, _ := f.Template().Field(form.FieldPartnerName)

	f.Dispatch(form.FieldChanged{Name: form.FieldPartnerName, Value: "Baraka"})
	assert.Equal(t, "", f.Value(form.FieldPartnerName), "ignored while not a couple")

	f.Dispatch(form.CheckboxChanged{Name: form.FieldComingAsCouple, Checked: true})
	assert.True(t, f.Visible(partner))
	assert.Equal(t, int64(7000), f.DisplayedFee())

	f.Dispatch(form.FieldChanged{Name: form.FieldPartnerName, Value: "Baraka Otieno"})
	assert.Equal(t, "Baraka Otieno", f.Value(form.FieldPartnerName))

	f.Dispatch(form.CheckboxChanged{Name: form.FieldComingAsCouple, Checked: false})
	assert.Equal(t, "", f.Value(form.FieldPartnerName))
	assert.False(t, f.Visible(partner))
	assert.Equal(t, int64(4000), f.DisplayedFee())
}

func TestWeekLongFieldsIgnoredOnOneDay(t *testing.T) {
	f := form.New(oneDayMission())
	f.Dispatch(form.CheckboxChanged{Name: form.FieldComingAsCouple, Checked: true})
	f.Dispatch(form.FieldChanged{Name: form.FieldDietaryWatch, Value: "vegan"})
	f.Dispatch(form.DayToggled{Date: date("2025-11-20")})

	assert.Equal(t, false, f.Value(form.FieldComingAsCouple))
	assert.Equal(t, "", f.Value(form.FieldDietaryWatch))
	assert.Empty(t, f.SelectedDays())
}

func TestDayToggled(t *testing.T) {
	f := form.New(weekLongMission())

	f.Dispatch(form.DayToggled{Date: date("2025-12-03")})
	f.Dispatch(form.DayToggled{Date: date("2025-12-01")})
	f.Dispatch(form.DayToggled{Date: date("2025-12-09")})

	days := f.SelectedDays()
	require.Len(t, days, 2)
	assert.Equal(t, models.AttendanceDay{DayIndex: 0, Date: date("2025-12-01")}, days[0])
	assert.Equal(t, models.AttendanceDay{DayIndex: 2, Date: date("2025-12-03")}, days[1])

	f.Dispatch(form.DayToggled{Date: date("2025-12-03")})
	assert.Len(t, f.SelectedDays(), 1)
	assert.False(t, f.DaySelected(date("2025-12-03")))
}

func TestAllDaysToggled(t *testing.T) {
	f := form.New(weekLongMission())
	f.Dispatch(form.DayToggled{Date: date("2025-12-02")})

	f.Dispatch(form.AllDaysToggled{})
	assert.Len(t, f.SelectedDays(), 7)
	assert.True(t, f.AllDaysSelected())

	f.Dispatch(form.AllDaysToggled{})
	assert.Empty(t, f.SelectedDays())
	assert.False(t, f.AllDaysSelected())
}

func TestReplay_AppliesValuesInFieldOrder(t *testing.T) {
	f := form.New(weekLongMission())
	f.Replay(url.Values{
		form.FieldSupportNeeded:  {"2000"},
		form.FieldCanPayFull:     {"No"},
		form.FieldPartnerName:    {"Baraka Otieno"},
		form.FieldComingAsCouple: {"on"},
		form.FieldFirstName:      {"Amina"},
		form.FieldAttendingDays:  {"2025-12-02", "2025-12-02", "not-a-date", "2025-12-05"},
	})

	assert.Equal(t, "2000", f.Value(form.FieldSupportNeeded))
	assert.Equal(t, "Baraka Otieno", f.Value(form.FieldPartnerName))
	assert.Equal(t, "Amina", f.Value(form.FieldFirstName))
	assert.Len(t, f.SelectedDays(), 2)
}

func TestSubmissionLifecycle(t *testing.T) {
	f := form.New(weekLongMission())
	initialFields := f.Fields()
	initial := f.Registration()

	f.Dispatch(form.FieldChanged{Name: form.FieldFirstName, Value: "Amina"})
	f.Dispatch(form.DayToggled{Date: date("2025-12-01")})

	f.Dispatch(form.SubmitStarted{})
	assert.Equal(t, form.StatusSubmitting, f.Status())
	f.Dispatch(form.FieldChanged{Name: form.FieldLastName, Value: "Otieno"})
	assert.Equal(t, "", f.Value(form.FieldLastName), "edits are refused while submitting")

	f.Dispatch(form.SubmitFailed{Message: "network down"})
	assert.Equal(t, form.StatusEditing, f.Status())
	assert.Equal(t, "network down", f.FormError())
	assert.Equal(t, "Amina", f.Value(form.FieldFirstName))

	f.Dispatch(form.SubmitStarted{})
	assert.Empty(t, f.FormError())
	f.Dispatch(form.SubmitSucceeded{FirstName: "Amina"})
	assert.Equal(t, form.StatusSuccess, f.Status())
	assert.Equal(t, "Amina", f.SubmittedFirstName())
	assert.Equal(t, 1, f.Generation())
	assert.Empty(t, f.SelectedDays())

	f.Dispatch(form.Reset{})
	assert.Equal(t, form.StatusEditing, f.Status())
	assert.Equal(t, initialFields, f.Fields())
	assert.Equal(t, initial, f.Registration())
	assert.Empty(t, f.SubmittedFirstName())
}

func TestAlreadyRegisteredThenReset(t *testing.T) {
	f := form.New(oneDayMission())
	initial := f.Registration()
	f.Dispatch(form.FieldChanged{Name: form.FieldFirstName, Value: "Amina"})
	f.Dispatch(form.SubmitStarted{})
	f.Dispatch(form.AlreadyRegisteredDetected{FirstName: "Amina"})

	assert.Equal(t, form.StatusAlreadyRegistered, f.Status())
	assert.Equal(t, "Amina", f.SubmittedFirstName())

	f.Dispatch(form.FieldChanged{Name: form.FieldFirstName, Value: "Other"})
	assert.Equal(t, "", f.Value(form.FieldFirstName))

	f.Dispatch(form.Reset{})
	assert.Equal(t, initial, f.Registration())
}

func TestMissionChanged_ResetsTemplate(t *testing.T) {
	f := form.New(oneDayMission())
	f.Dispatch(form.FieldChanged{Name: form.FieldFirstName, Value: "Amina"})

	f.Dispatch(form.MissionChanged{Mission: weekLongMission()})
	assert.Equal(t, models.WeekLong, f.Template().Kind)
	assert.Equal(t, "", f.Value(form.FieldFirstName))
	assert.Equal(t, int64(7), f.Value(form.FieldMissionID))
}

func TestRegistrationIsACopy(t *testing.T) {
	f := form.New(weekLongMission())
	f.Dispatch(form.DayToggled{Date: date("2025-12-01")})

	r := f.Registration().(*models.WeekLongRegistration)
	r.AttendingDays = nil
	r.FirstName = "Mutated"

	assert.Len(t, f.SelectedDays(), 1)
	assert.Equal(t, "", f.Value(form.FieldFirstName))
}
