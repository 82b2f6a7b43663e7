package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func validApplication() *models.StudentApplicationInput {
	return &models.StudentApplicationInput{
		FirstName:   "Priya",
		LastName:    "Sharma",
		Email:       "priya.sharma@example.com",
		Phone:       "+91 98765 43210",
		DateOfBirth: "2000-06-15",
		Gender:      "Female",
		Program:     "Bachelor of Science in Nursing (BSc Nursing)",
		Address: &models.Address{
			Street:  "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560001",
		},
		PreviousEducation: &models.PreviousEducation{
			Qualification:    "12th Science",
			Institution:      "St. Mary's Junior College",
			YearOfCompletion: 2018,
			Percentage:       87.5,
		},
		AdmissionYear: 2024,
	}
}

func TestValidateStudentAcceptsCompleteApplication(t *testing.T) {
	errs := ValidateStudent(validApplication(), testNow)
	assert.Empty(t, errs)
}

func TestValidateStudentRequiredFields(t *testing.T) {
	errs := ValidateStudent(&models.StudentApplicationInput{}, testNow)

	for _, expected := range []string{
		"firstName is required",
		"lastName is required",
		"email is required",
		"phone is required",
		"dateOfBirth is required",
		"gender is required",
		"program is required",
		"admissionYear is required",
	} {
		assert.Contains(t, errs, expected)
	}
}

func TestValidateStudentFormats(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.StudentApplicationInput)
		message string
	}{
		{"bad email", func(in *models.StudentApplicationInput) { in.Email = "not-an-email" }, "Please provide a valid email"},
		{"short phone", func(in *models.StudentApplicationInput) { in.Phone = "12345" }, "Please provide a valid phone number"},
		{"phone with letters", func(in *models.StudentApplicationInput) { in.Phone = "98765abc43210" }, "Please provide a valid phone number"},
		{"unknown gender", func(in *models.StudentApplicationInput) { in.Gender = "Unknown" }, "Invalid gender selection"},
		{"unknown program", func(in *models.StudentApplicationInput) { in.Program = "Astro Physics" }, "Invalid program selection"},
		{"unparseable dob", func(in *models.StudentApplicationInput) { in.DateOfBirth = "15/06/2000" }, "Invalid date of birth format"},
		{"future dob", func(in *models.StudentApplicationInput) { in.DateOfBirth = "2030-01-01" }, "Date of birth must be in the past"},
		{"today dob", func(in *models.StudentApplicationInput) { in.DateOfBirth = "2024-06-15" }, "Date of birth must be in the past"},
		{"past admission year", func(in *models.StudentApplicationInput) { in.AdmissionYear = 2020 }, "Admission year cannot be in the past"},
		{"long first name", func(in *models.StudentApplicationInput) { in.FirstName = strings.Repeat("a", 51) }, "First name cannot exceed 50 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApplication()
			tt.mutate(in)
			errs := ValidateStudent(in, testNow)
			assert.Contains(t, errs, tt.message)
		})
	}
}

func TestValidateStudentAddressFieldsRequiredTogether(t *testing.T) {
	in := validApplication()
	in.Address = &models.Address{City: "Bengaluru"}

	errs := ValidateStudent(in, testNow)

	assert.Contains(t, errs, "Address street is required")
	assert.Contains(t, errs, "Address state is required")
	assert.Contains(t, errs, "Address zipCode is required")
	assert.NotContains(t, errs, "Address city is required")
}

func TestValidateStudentPreviousEducationBounds(t *testing.T) {
	in := validApplication()
	in.PreviousEducation.YearOfCompletion = 1985
	in.PreviousEducation.Percentage = 104

	errs := ValidateStudent(in, testNow)

	assert.Contains(t, errs, "Invalid year of completion")
	assert.Contains(t, errs, "Percentage must be between 0 and 100")
}

func TestValidateStudentGuardianFormatsCheckedOnlyWhenPresent(t *testing.T) {
	in := validApplication()
	in.Guardian = &models.Guardian{Name: "Raj Sharma", Phone: "bad", Email: "also-bad"}

	errs := ValidateStudent(in, testNow)

	assert.Contains(t, errs, "Please provide a valid guardian phone number")
	assert.Contains(t, errs, "Please provide a valid guardian email")

	in.Guardian = &models.Guardian{Name: "Raj Sharma"}
	assert.Empty(t, ValidateStudent(in, testNow))
}

func TestValidateStudentAccumulatesAllFailures(t *testing.T) {
	in := validApplication()
	in.Email = "bad"
	in.Phone = "bad"
	in.Motivation = strings.Repeat("x", 1001)

	errs := ValidateStudent(in, testNow)
	require.Len(t, errs, 3)
}

func validInquiry() *models.ContactInquiryInput {
	return &models.ContactInquiryInput{
		Name:        "Anil Kumar",
		Email:       "anil.kumar@example.com",
		Phone:       "9876543210",
		Subject:     "Hostel facilities",
		Message:     "Do you provide hostel accommodation for first-year students?",
		InquiryType: "Facility Information",
	}
}

func TestValidateContactAcceptsCompleteInquiry(t *testing.T) {
	assert.Empty(t, ValidateContact(validInquiry()))
}

func TestValidateContactRequiredFields(t *testing.T) {
	errs := ValidateContact(&models.ContactInquiryInput{})

	for _, expected := range []string{
		"name is required",
		"email is required",
		"phone is required",
		"subject is required",
		"message is required",
	} {
		assert.Contains(t, errs, expected)
	}
}

func TestValidateContactLimitsAndEnums(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ContactInquiryInput)
		message string
	}{
		{"bad email", func(in *models.ContactInquiryInput) { in.Email = "nope" }, "Please provide a valid email"},
		{"long name", func(in *models.ContactInquiryInput) { in.Name = strings.Repeat("n", 101) }, "Name cannot exceed 100 characters"},
		{"long subject", func(in *models.ContactInquiryInput) { in.Subject = strings.Repeat("s", 201) }, "Subject cannot exceed 200 characters"},
		{"long message", func(in *models.ContactInquiryInput) { in.Message = strings.Repeat("m", 2001) }, "Message cannot exceed 2000 characters"},
		{"unknown inquiry type", func(in *models.ContactInquiryInput) { in.InquiryType = "Gossip" }, "Invalid inquiry type"},
		{"unknown program interest", func(in *models.ContactInquiryInput) { in.ProgramInterest = "Astronomy" }, "Invalid program interest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInquiry()
			tt.mutate(in)
			assert.Contains(t, ValidateContact(in), tt.message)
		})
	}
}

func TestValidateContactOptionalEnumsMayBeEmpty(t *testing.T) {
	in := validInquiry()
	in.InquiryType = ""
	in.ProgramInterest = ""
	assert.Empty(t, ValidateContact(in))
}

func TestValidPhoneShapes(t *testing.T) {
	assert.True(t, ValidPhone("+91 (080) 2345-6789"))
	assert.True(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("98765"))
	assert.False(t, ValidPhone("abcdefghij"))
}
