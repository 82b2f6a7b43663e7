// Package validation checks intake payloads field by field, accumulating
// every failure into a flat list of human-readable messages. Callers surface
// the messages verbatim to API clients.
package validation

import (
	"regexp"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)
)

// ValidEmail reports whether the address is RFC-plausible.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the number matches the accepted phone shape:
// optional leading +, then at least ten characters drawn from digits,
// spaces, hyphens and parentheses.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateStudent checks an application payload against every rule and
// returns all failures. An empty slice means the payload is valid. The
// input is never mutated.
func ValidateStudent(in *models.StudentApplicationInput, now time.Time) []string {
	errs := []string{}

	required := []struct {
		value string
		name  string
	}{
		{in.FirstName, "firstName"},
		{in.LastName, "lastName"},
		{in.Email, "email"},
		{in.Phone, "phone"},
		{in.DateOfBirth, "dateOfBirth"},
		{in.Gender, "gender"},
		{in.Program, "program"},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	if in.AdmissionYear == 0 {
		errs = append(errs, "admissionYear is required")
	}

	if len(in.FirstName) > 50 {
		errs = append(errs, "First name cannot exceed 50 characters")
	}
	if len(in.LastName) > 50 {
		errs = append(errs, "Last name cannot exceed 50 characters")
	}

	if in.Email != "" && !ValidEmail(in.Email) {
		errs = append(errs, "Please provide a valid email")
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		errs = append(errs, "Please provide a valid phone number")
	}
	if in.Gender != "" && !contains(models.Genders, in.Gender) {
		errs = append(errs, "Invalid gender selection")
	}
	if in.Program != "" && !models.IsValidProgram(in.Program) {
		errs = append(errs, "Invalid program selection")
	}

	if in.DateOfBirth != "" {
		dob, err := models.ParseDate(in.DateOfBirth)
		if err != nil {
			errs = append(errs, "Invalid date of birth format")
		} else if !dob.Before(now.Truncate(24 * time.Hour)) {
			errs = append(errs, "Date of birth must be in the past")
		}
	}

	if in.AdmissionYear != 0 && in.AdmissionYear < now.Year() {
		errs = append(errs, "Admission year cannot be in the past")
	}

	if in.Address != nil {
		addressRequired := []struct {
			value string
			name  string
		}{
			{in.Address.Street, "street"},
			{in.Address.City, "city"},
			{in.Address.State, "state"},
			{in.Address.ZipCode, "zipCode"},
		}
		for _, f := range addressRequired {
			if f.value == "" {
				errs = append(errs, "Address "+f.name+" is required")
			}
		}
	}

	if in.PreviousEducation != nil {
		edu := in.PreviousEducation
		if edu.Qualification == "" {
			errs = append(errs, "Previous education qualification is required")
		}
		if edu.Institution == "" {
			errs = append(errs, "Previous education institution is required")
		}
		if edu.YearOfCompletion == 0 {
			errs = append(errs, "Previous education yearOfCompletion is required")
		} else if edu.YearOfCompletion < 1990 || edu.YearOfCompletion > now.Year() {
			errs = append(errs, "Invalid year of completion")
		}
		if edu.Percentage == 0 {
			errs = append(errs, "Previous education percentage is required")
		} else if edu.Percentage < 0 || edu.Percentage > 100 {
			errs = append(errs, "Percentage must be between 0 and 100")
		}
	}

	if in.Guardian != nil {
		if in.Guardian.Phone != "" && !ValidPhone(in.Guardian.Phone) {
			errs = append(errs, "Please provide a valid guardian phone number")
		}
		if in.Guardian.Email != "" && !ValidEmail(in.Guardian.Email) {
			errs = append(errs, "Please provide a valid guardian email")
		}
	}

	if len(in.MedicalHistory) > 500 {
		errs = append(errs, "Medical history cannot exceed 500 characters")
	}
	if len(in.SpecialNeeds) > 300 {
		errs = append(errs, "Special needs cannot exceed 300 characters")
	}
	if len(in.Motivation) > 1000 {
		errs = append(errs, "Motivation cannot exceed 1000 characters")
	}

	return errs
}

// ValidateContact checks an inquiry payload against every rule and returns
// all failures. An empty slice means the payload is valid.
func ValidateContact(in *models.ContactInquiryInput) []string {
	errs := []string{}

	required := []struct {
		value string
		name  string
	}{
		{in.Name, "name"},
		{in.Email, "email"},
		{in.Phone, "phone"},
		{in.Subject, "subject"},
		{in.Message, "message"},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, f.name+" is required")
		}
	}

	if in.Email != "" && !ValidEmail(in.Email) {
		errs = append(errs, "Please provide a valid email")
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		errs = append(errs, "Please provide a valid phone number")
	}

	if len(in.Name) > 100 {
		errs = append(errs, "Name cannot exceed 100 characters")
	}
	if len(in.Subject) > 200 {
		errs = append(errs, "Subject cannot exceed 200 characters")
	}
	if len(in.Message) > 2000 {
		errs = append(errs, "Message cannot exceed 2000 characters")
	}

	if in.InquiryType != "" && !models.IsValidInquiryType(in.InquiryType) {
		errs = append(errs, "Invalid inquiry type")
	}
	if in.ProgramInterest != "" && !models.IsValidProgramInterest(in.ProgramInterest) {
		errs = append(errs, "Invalid program interest")
	}

	return errs
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
