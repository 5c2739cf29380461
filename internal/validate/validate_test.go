package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/mission-registration/internal/models"
	"github.com/gdg-garage/mission-registration/internal/validate"
)

type contact struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty" validate:"required,phone"`
}

func TestStruct_Phone(t *testing.T) {
	for _, tc := range []struct {
		phone string
		ok    bool
	}{
		{"0712345678", true},
		{"+254 712-345678", true},
		{"0712", false},
		{"phone-number", false},
		{"0712345678901234567", false},
	} {
		err := validate.Struct(context.Background(), contact{Name: "Amina", Phone: tc.phone})
		if tc.ok {
			assert.NoError(t, err, tc.phone)
			continue
		}
		var fe *validate.FieldError
		require.True(t, errors.As(err, &fe), tc.phone)
		assert.Equal(t, "phone", fe.Field)
		assert.Equal(t, "phone", fe.Tag)
	}
}

func TestStruct_FirstErrorInDeclarationOrder(t *testing.T) {
	err := validate.Struct(context.Background(), contact{})

	var fe *validate.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
	assert.Equal(t, "required", fe.Tag)
	assert.Equal(t, "name failed required", fe.Error())
}

func TestStruct_RegistrationPayload(t *testing.T) {
	p := models.ApiRegistrationPayload{
		MissionID:        3,
		FullName:         "Amina Otieno",
		PhoneNumber:      "0712345678",
		Gender:           "female",
		DaysOfAttendance: []models.AttendanceEntry{{Day: 0, DayDate: "2025-11-20"}},
	}
	require.NoError(t, validate.Struct(context.Background(), p))

	p.ComingAsCouple = true
	var fe *validate.FieldError
	require.True(t, errors.As(validate.Struct(context.Background(), p), &fe))
	assert.Equal(t, "partner_name", fe.Field)
	assert.Equal(t, "required_if", fe.Tag)

	p.PartnerName = "Baraka Otieno"
	p.DaysOfAttendance[0].DayDate = "20/11/2025"
	require.True(t, errors.As(validate.Struct(context.Background(), p), &fe))
	assert.Equal(t, "day_date", fe.Field)
}
