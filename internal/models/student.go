package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "Pending"
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusApproved    ApplicationStatus = "Approved"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusWaitlisted  ApplicationStatus = "Waitlisted"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Programs offered by the college. Closed set; membership is validated on
// submission and the first word feeds the student-ID program code.
var Programs = []string{
	"General Nursing and Midwifery (GNM)",
	"Bachelor of Science in Nursing (BSc Nursing)",
	"Paramedical Courses",
	"Medical Lab Technician",
	"Cardiology Technician",
	"Multipurpose Health Assistant",
}

var ApplicationStatuses = []string{
	string(StatusPending),
	string(StatusUnderReview),
	string(StatusApproved),
	string(StatusRejected),
	string(StatusWaitlisted),
}

var Genders = []string{string(GenderMale), string(GenderFemale), string(GenderOther)}

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
	Country string `json:"country" bson:"country"`
}

type PreviousEducation struct {
	Qualification    string  `json:"qualification" bson:"qualification"`
	Institution      string  `json:"institution" bson:"institution"`
	YearOfCompletion int     `json:"yearOfCompletion" bson:"yearOfCompletion"`
	Percentage       float64 `json:"percentage" bson:"percentage"`
}

type Guardian struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Relationship string `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
}

type Documents struct {
	Photo       string `json:"photo,omitempty" bson:"photo,omitempty"`
	Marksheet   string `json:"marksheet,omitempty" bson:"marksheet,omitempty"`
	Certificate string `json:"certificate,omitempty" bson:"certificate,omitempty"`
	IDProof     string `json:"idProof,omitempty" bson:"idProof,omitempty"`
}

type Note struct {
	Content string    `json:"content" bson:"content"`
	AddedBy string    `json:"addedBy" bson:"addedBy"`
	AddedAt time.Time `json:"addedAt" bson:"addedAt"`
}

type Student struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName         string             `json:"firstName" bson:"firstName"`
	LastName          string             `json:"lastName" bson:"lastName"`
	Email             string             `json:"email" bson:"email"`
	Phone             string             `json:"phone" bson:"phone"`
	DateOfBirth       time.Time          `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender            Gender             `json:"gender" bson:"gender"`
	Address           Address            `json:"address" bson:"address"`
	Program           string             `json:"program" bson:"program"`
	PreviousEducation PreviousEducation  `json:"previousEducation" bson:"previousEducation"`
	ApplicationStatus ApplicationStatus  `json:"applicationStatus" bson:"applicationStatus"`
	ApplicationDate   time.Time          `json:"applicationDate" bson:"applicationDate"`
	AdmissionYear     int                `json:"admissionYear" bson:"admissionYear"`
	Guardian          *Guardian          `json:"guardian,omitempty" bson:"guardian,omitempty"`
	MedicalHistory    string             `json:"medicalHistory,omitempty" bson:"medicalHistory,omitempty"`
	SpecialNeeds      string             `json:"specialNeeds,omitempty" bson:"specialNeeds,omitempty"`
	Motivation        string             `json:"motivation,omitempty" bson:"motivation,omitempty"`
	Documents         *Documents         `json:"documents,omitempty" bson:"documents,omitempty"`
	StudentID         string             `json:"studentId,omitempty" bson:"studentId,omitempty"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	Notes             []Note             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults normalizes a freshly validated application before it is
// persisted: email lowercased, initial status, active flag, country default
// and timestamps.
func (s *Student) ApplyDefaults(now time.Time) {
	s.Email = strings.ToLower(s.Email)
	s.ApplicationStatus = StatusPending
	s.IsActive = true
	if s.Address.Country == "" {
		s.Address.Country = "India"
	}
	s.ApplicationDate = now
	s.CreatedAt = now
	s.UpdatedAt = now
}

// FullName returns first and last name joined, trimmed.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Age returns whole years between date of birth and now, decremented by one
// when the birthday has not yet occurred this year. Returns -1 when the
// date of birth is unset.
func (s *Student) Age(now time.Time) int {
	if s.DateOfBirth.IsZero() {
		return -1
	}
	age := now.Year() - s.DateOfBirth.Year()
	if now.Month() < s.DateOfBirth.Month() ||
		(now.Month() == s.DateOfBirth.Month() && now.Day() < s.DateOfBirth.Day()) {
		age--
	}
	return age
}

// IsValidApplicationStatus reports membership in the status set.
func IsValidApplicationStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidProgram reports membership in the program set.
func IsValidProgram(program string) bool {
	for _, p := range Programs {
		if p == program {
			return true
		}
	}
	return false
}

// AddNote appends an admin note with a timestamp.
func (s *Student) AddNote(content, addedBy string, now time.Time) {
	s.Notes = append(s.Notes, Note{Content: content, AddedBy: addedBy, AddedAt: now})
	s.UpdatedAt = now
}

// Three-letter codes used in generated student IDs.
var programCodes = map[string]string{
	"General Nursing and Midwifery (GNM)":          "GNM",
	"Bachelor of Science in Nursing (BSc Nursing)": "BSC",
	"Paramedical Courses":                          "PAR",
	"Medical Lab Technician":                       "MLT",
	"Cardiology Technician":                        "CAR",
	"Multipurpose Health Assistant":                "MHA",
}

// StudentIDPrefix builds the shared prefix for generated student IDs:
// "ACN" + two-digit year + three-letter program code, e.g. "ACN24BSC"
// for a 2024 BSc Nursing admission. Programs without a mapped code fall
// back to the first three letters of their first word, uppercased.
func StudentIDPrefix(program string, now time.Time) string {
	code, ok := programCodes[program]
	if !ok {
		word := program
		if idx := strings.IndexByte(program, ' '); idx > 0 {
			word = program[:idx]
		}
		code = strings.ToUpper(word)
		if len(code) > 3 {
			code = code[:3]
		}
	}
	return fmt.Sprintf("ACN%02d%s", now.Year()%100, code)
}

// NextStudentID returns the next ID in sequence for a prefix given the
// highest existing ID with that prefix ("" when none). An unparseable
// trailing sequence restarts at 1.
func NextStudentID(prefix, lastID string) string {
	sequence := 1
	if len(lastID) >= 3 {
		if last, err := strconv.Atoi(lastID[len(lastID)-3:]); err == nil {
			sequence = last + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

// ApplicationReceipt is the public response to a submitted application.
type ApplicationReceipt struct {
	ApplicationID     string            `json:"applicationId"`
	FullName          string            `json:"fullName"`
	Email             string            `json:"email"`
	Program           string            `json:"program"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	ApplicationDate   time.Time         `json:"applicationDate"`
}

// ApplicationStatusView is the limited public view of an application.
type ApplicationStatusView struct {
	FullName          string            `json:"fullName"`
	Email             string            `json:"email"`
	Program           string            `json:"program"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	ApplicationDate   time.Time         `json:"applicationDate"`
	AdmissionYear     int               `json:"admissionYear"`
}

// StudentDetail is the admin view: the full record plus derived fields.
type StudentDetail struct {
	*Student
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
}

// Detail builds the admin view of the student.
func (s *Student) Detail(now time.Time) StudentDetail {
	return StudentDetail{Student: s, FullName: s.FullName(), Age: s.Age(now)}
}

// StatusView builds the limited public view of the application.
func (s *Student) StatusView() ApplicationStatusView {
	return ApplicationStatusView{
		FullName:          s.FullName(),
		Email:             s.Email,
		Program:           s.Program,
		ApplicationStatus: s.ApplicationStatus,
		ApplicationDate:   s.ApplicationDate,
		AdmissionYear:     s.AdmissionYear,
	}
}

// Program catalog entry served by the public programs endpoint.
type ProgramInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ProgramCatalog lists the offered programs with durations and descriptions.
func ProgramCatalog() []ProgramInfo {
	return []ProgramInfo{
		{ID: "gnm", Name: "General Nursing and Midwifery (GNM)", Duration: "3.5 years", Description: "Comprehensive nursing program with midwifery training"},
		{ID: "bsc-nursing", Name: "Bachelor of Science in Nursing (BSc Nursing)", Duration: "4 years", Description: "Advanced nursing degree program"},
		{ID: "paramedical", Name: "Paramedical Courses", Duration: "1-2 years", Description: "Various paramedical specializations"},
		{ID: "mlt", Name: "Medical Lab Technician", Duration: "2 years", Description: "Laboratory technology and diagnostics"},
		{ID: "cardiology-tech", Name: "Cardiology Technician", Duration: "2 years", Description: "Specialized cardiac care technology"},
		{ID: "mpha", Name: "Multipurpose Health Assistant", Duration: "1 year", Description: "Community health assistance program"},
	}
}
