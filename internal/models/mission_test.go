package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/mission-registration/internal/models"
)

func TestParseDate(t *testing.T) {
	d, err := models.ParseDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", d.String())

	d, err = models.ParseDate("2025-12-01T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", d.String())

	_, err = models.ParseDate("01/12/2025")
	assert.ErrorContains(t, err, "models.ParseDate")
}

func TestDate_DaysSince(t *testing.T) {
	start := models.NewDate(2025, time.December, 30)
	assert.Equal(t, 0, start.DaysSince(start))
	assert.Equal(t, 3, models.NewDate(2026, time.January, 2).DaysSince(start))
	assert.Equal(t, -1, models.NewDate(2025, time.December, 29).DaysSince(start))
}

func TestDate_JSON(t *testing.T) {
	var m models.MissionEvent
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":"2025-11-20","end_date":"","registration_close_date":"2025-11-18T00:00:00Z"}`), &m))
	assert.Equal(t, "2025-11-20", m.StartDate.String())
	require.NotNil(t, m.EndDate)
	assert.True(t, m.EndDate.IsZero())
	assert.Equal(t, "2025-11-18", m.RegistrationCloseDate.String())

	b, err := json.Marshal(m.StartDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-11-20"`, string(b))
}

func TestDate_Scan(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan("2025-12-03"))
	assert.Equal(t, "2025-12-03", d.String())
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))

	v, err := models.NewDate(2025, time.December, 3).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-03", v)
}

func ptr(d models.Date) *models.Date { return &d }

func TestMissionEvent_EffectiveKind(t *testing.T) {
	start := models.NewDate(2025, time.December, 1)
	end := models.NewDate(2025, time.December, 7)

	for _, tc := range []struct {
		name     string
		flag     models.EventKind
		end      *models.Date
		want     models.EventKind
		conflict bool
	}{
		{"flag one day", models.OneDay, nil, models.OneDay, false},
		{"flag week long", models.WeekLong, ptr(end), models.WeekLong, false},
		{"no flag with range", "", ptr(end), models.WeekLong, false},
		{"no flag same dates", "", ptr(start), models.OneDay, false},
		{"unknown flag no end", "festival", nil, models.OneDay, false},
		{"flag wins over range", models.OneDay, ptr(end), models.OneDay, true},
		{"week long flag without range", models.WeekLong, nil, models.WeekLong, true},
		{"retreat spelling", "Retreat", ptr(end), models.WeekLong, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := models.MissionEvent{StartDate: start, EndDate: tc.end, EventType: tc.flag}
			assert.Equal(t, tc.want, m.EffectiveKind())
			assert.Equal(t, tc.conflict, m.KindConflict())
		})
	}
}

func TestMissionEvent_Fees(t *testing.T) {
	m := models.MissionEvent{RegistrationFeeRequired: true, RegistrationFee: 5000, CoupleRegistrationFee: 11000}
	assert.Equal(t, int64(5000), m.DisplayedFee(false))
	assert.Equal(t, int64(11000), m.DisplayedFee(true))
	assert.True(t, m.FeeApplies(false))

	m.CoupleRegistrationFee = 0
	assert.Equal(t, int64(5000), m.DisplayedFee(true))

	m.RegistrationFeeRequired = false
	assert.False(t, m.FeeApplies(true))
}

func TestMissionEvent_RegistrationClosed(t *testing.T) {
	m := models.MissionEvent{IsRegistrationOpen: true, RegistrationCloseDate: models.NewDate(2025, time.November, 18)}

	assert.False(t, m.RegistrationClosed(time.Date(2025, time.November, 18, 23, 59, 0, 0, time.UTC)))
	assert.True(t, m.RegistrationClosed(time.Date(2025, time.November, 19, 0, 0, 0, 0, time.UTC)))

	m.IsRegistrationOpen = false
	assert.True(t, m.RegistrationClosed(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)))

	m = models.MissionEvent{IsRegistrationOpen: true}
	assert.False(t, m.RegistrationClosed(time.Now()))
}

func TestWeekLongRegistration_Days(t *testing.T) {
	r := &models.WeekLongRegistration{}
	r.AddDay(models.AttendanceDay{DayIndex: 2, Date: models.NewDate(2025, time.December, 3)})
	r.AddDay(models.AttendanceDay{DayIndex: 0, Date: models.NewDate(2025, time.December, 1)})
	r.AddDay(models.AttendanceDay{DayIndex: 2, Date: models.NewDate(2025, time.December, 3)})

	require.Len(t, r.AttendingDays, 2)
	assert.Equal(t, 0, r.AttendingDays[0].DayIndex)

	r.RemoveDay(models.NewDate(2025, time.December, 1))
	require.Len(t, r.AttendingDays, 1)
	assert.True(t, r.HasDay(models.NewDate(2025, time.December, 3)))
}
