package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2000-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2000-06-15T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("15/06/2000")
	assert.Error(t, err)
}

func TestToStudentCopiesNestedStructs(t *testing.T) {
	in := &StudentApplicationInput{
		FirstName:   "Priya",
		LastName:    "Sharma",
		Email:       "priya@example.com",
		DateOfBirth: "2000-06-15",
		Gender:      "Female",
		Address:     &Address{City: "Bengaluru"},
		PreviousEducation: &PreviousEducation{
			Qualification: "12th Science",
			Percentage:    87.5,
		},
		Guardian: &Guardian{Name: "Raj Sharma"},
	}

	s := in.ToStudent()

	assert.Equal(t, "Bengaluru", s.Address.City)
	assert.Equal(t, 87.5, s.PreviousEducation.Percentage)
	require.NotNil(t, s.Guardian)
	assert.Equal(t, "Raj Sharma", s.Guardian.Name)
	assert.Equal(t, 2000, s.DateOfBirth.Year())
}

func TestToStudentHandlesAbsentNestedStructs(t *testing.T) {
	in := &StudentApplicationInput{FirstName: "Priya"}
	s := in.ToStudent()

	assert.Equal(t, Address{}, s.Address)
	assert.Nil(t, s.Guardian)
	assert.True(t, s.DateOfBirth.IsZero())
}
