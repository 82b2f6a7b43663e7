package models

import "time"

// Accepted layouts for date-of-birth input.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a date-like input accepting "YYYY-MM-DD" or RFC 3339.
func ParseDate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// StudentApplicationInput is the raw submission payload. Numeric zero values
// count as absent for required-field checks.
type StudentApplicationInput struct {
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	DateOfBirth       string             `json:"dateOfBirth"`
	Gender            string             `json:"gender"`
	Address           *Address           `json:"address"`
	Program           string             `json:"program"`
	PreviousEducation *PreviousEducation `json:"previousEducation"`
	AdmissionYear     int                `json:"admissionYear"`
	Guardian          *Guardian          `json:"guardian"`
	MedicalHistory    string             `json:"medicalHistory"`
	SpecialNeeds      string             `json:"specialNeeds"`
	Motivation        string             `json:"motivation"`
}

// ToStudent builds the entity from a validated input. The date of birth must
// already have passed validation.
func (in *StudentApplicationInput) ToStudent() *Student {
	dob, _ := ParseDate(in.DateOfBirth)
	s := &Student{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		DateOfBirth:    dob,
		Gender:         Gender(in.Gender),
		Program:        in.Program,
		AdmissionYear:  in.AdmissionYear,
		Guardian:       in.Guardian,
		MedicalHistory: in.MedicalHistory,
		SpecialNeeds:   in.SpecialNeeds,
		Motivation:     in.Motivation,
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.PreviousEducation != nil {
		s.PreviousEducation = *in.PreviousEducation
	}
	return s
}

// ContactInquiryInput is the raw inquiry payload.
type ContactInquiryInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Subject         string `json:"subject"`
	Message         string `json:"message"`
	InquiryType     string `json:"inquiryType"`
	ProgramInterest string `json:"programInterest"`
}

// ToContact builds the entity from a validated input.
func (in *ContactInquiryInput) ToContact() *Contact {
	return &Contact{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Subject:         in.Subject,
		Message:         in.Message,
		InquiryType:     in.InquiryType,
		ProgramInterest: in.ProgramInterest,
	}
}

// RequestMeta carries request attribution captured at submission time.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// StatusUpdateInput is the admin payload for application status changes.
type StatusUpdateInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ContactStatusUpdateInput is the admin payload for inquiry status changes.
type ContactStatusUpdateInput struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// RespondInput is the admin payload for responding to an inquiry.
type RespondInput struct {
	ResponseContent string `json:"responseContent"`
	RespondedBy     string `json:"respondedBy"`
}
