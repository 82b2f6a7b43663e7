package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "New"
	ContactStatusInProgress ContactStatus = "In Progress"
	ContactStatusResponded  ContactStatus = "Responded"
	ContactStatusResolved   ContactStatus = "Resolved"
	ContactStatusClosed     ContactStatus = "Closed"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

var InquiryTypes = []string{
	"General Inquiry",
	"Admission Information",
	"Course Details",
	"Fee Structure",
	"Placement Information",
	"Facility Information",
	"Technical Support",
	"Complaint",
	"Suggestion",
	"Other",
}

var ProgramInterests = append(append([]string{}, Programs...), "Not Specified")

var ContactStatuses = []string{
	string(ContactStatusNew),
	string(ContactStatusInProgress),
	string(ContactStatusResponded),
	string(ContactStatusResolved),
	string(ContactStatusClosed),
}

var Priorities = []string{
	string(PriorityLow),
	string(PriorityMedium),
	string(PriorityHigh),
	string(PriorityUrgent),
}

var Sources = []string{"Website", "Phone", "Email", "Walk-in", "Social Media", "Referral"}

// Inquiry types whose submissions need a staff follow-up within three days.
var followUpInquiryTypes = map[string]bool{
	"Admission Information": true,
	"Course Details":        true,
	"Fee Structure":         true,
}

type Response struct {
	Content     string    `json:"content" bson:"content"`
	RespondedBy string    `json:"respondedBy" bson:"respondedBy"`
	RespondedAt time.Time `json:"respondedAt" bson:"respondedAt"`
}

type Contact struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	Phone            string             `json:"phone" bson:"phone"`
	Subject          string             `json:"subject" bson:"subject"`
	Message          string             `json:"message" bson:"message"`
	InquiryType      string             `json:"inquiryType" bson:"inquiryType"`
	ProgramInterest  string             `json:"programInterest" bson:"programInterest"`
	Status           ContactStatus      `json:"status" bson:"status"`
	Priority         Priority           `json:"priority" bson:"priority"`
	Response         *Response          `json:"response,omitempty" bson:"response,omitempty"`
	Source           string             `json:"source" bson:"source"`
	IPAddress        string             `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent        string             `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	FollowUpRequired bool               `json:"followUpRequired" bson:"followUpRequired"`
	FollowUpDate     *time.Time         `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	FollowUpNotes    string             `json:"followUpNotes,omitempty" bson:"followUpNotes,omitempty"`
	InternalNotes    []Note             `json:"internalNotes,omitempty" bson:"internalNotes,omitempty"`
	Tags             []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	IsActive         bool               `json:"isActive" bson:"isActive"`
	IsSpam           bool               `json:"isSpam" bson:"isSpam"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults normalizes a freshly validated inquiry: email lowercased,
// enum defaults, initial status, priority derived from the inquiry type and
// follow-up scheduling for admission-related inquiries.
func (c *Contact) ApplyDefaults(now time.Time) {
	c.Email = strings.ToLower(c.Email)
	if c.InquiryType == "" {
		c.InquiryType = "General Inquiry"
	}
	if c.ProgramInterest == "" {
		c.ProgramInterest = "Not Specified"
	}
	c.Status = ContactStatusNew
	c.Source = "Website"
	c.IsActive = true
	c.IsSpam = false

	switch c.InquiryType {
	case "Complaint", "Technical Support":
		c.Priority = PriorityHigh
	default:
		c.Priority = PriorityMedium
	}

	if followUpInquiryTypes[c.InquiryType] {
		c.FollowUpRequired = true
		due := now.Add(3 * 24 * time.Hour)
		c.FollowUpDate = &due
	} else {
		c.FollowUpRequired = false
		c.FollowUpDate = nil
	}

	c.CreatedAt = now
	c.UpdatedAt = now
}

// UpdateStatus sets a new status, optionally overrides priority and appends
// an internal note. Both values are checked against their enumerated sets.
func (c *Contact) UpdateStatus(status, priority, notes string, now time.Time) error {
	if !IsValidContactStatus(status) {
		return fmt.Errorf("invalid status: %s", status)
	}
	if priority != "" && !IsValidPriority(priority) {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	c.Status = ContactStatus(status)
	if priority != "" {
		c.Priority = Priority(priority)
	}
	if notes != "" {
		c.InternalNotes = append(c.InternalNotes, Note{Content: notes, AddedBy: "Admin", AddedAt: now})
	}
	c.UpdatedAt = now
	return nil
}

// AddResponse records the staff response and forces status to Responded.
func (c *Contact) AddResponse(content, respondedBy string, now time.Time) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("response content is required")
	}
	if respondedBy == "" {
		respondedBy = "Admin"
	}
	c.Response = &Response{Content: content, RespondedBy: respondedBy, RespondedAt: now}
	c.Status = ContactStatusResponded
	c.UpdatedAt = now
	return nil
}

// SoftDelete deactivates the inquiry. Idempotent.
func (c *Contact) SoftDelete(now time.Time) {
	c.IsActive = false
	c.UpdatedAt = now
}

// ResponseTime formats the elapsed time between creation and response as
// "<H>h <M>m". Empty string when unresponded.
func (c *Contact) ResponseTime() string {
	if c.Response == nil || c.Response.RespondedAt.IsZero() {
		return ""
	}
	elapsed := c.Response.RespondedAt.Sub(c.CreatedAt)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// DaysSinceCreation returns whole days elapsed since creation plus one, so
// an inquiry submitted today reads as day 1.
func (c *Contact) DaysSinceCreation(now time.Time) int {
	return int(now.Sub(c.CreatedAt).Hours()/24) + 1
}

func IsValidContactStatus(status string) bool {
	for _, s := range ContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range Priorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidInquiryType(inquiryType string) bool {
	for _, t := range InquiryTypes {
		if t == inquiryType {
			return true
		}
	}
	return false
}

func IsValidProgramInterest(interest string) bool {
	for _, p := range ProgramInterests {
		if p == interest {
			return true
		}
	}
	return false
}

// InquiryReceipt is the public response to a submitted inquiry.
type InquiryReceipt struct {
	ContactID   string        `json:"contactId"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	InquiryType string        `json:"inquiryType"`
	Status      ContactStatus `json:"status"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// ContactDetail is the admin view: the full record plus derived fields.
type ContactDetail struct {
	*Contact
	ResponseTime      string `json:"responseTime,omitempty"`
	DaysSinceCreation int    `json:"daysSinceCreation"`
}

// Detail builds the admin view of the inquiry.
func (c *Contact) Detail(now time.Time) ContactDetail {
	return ContactDetail{
		Contact:           c,
		ResponseTime:      c.ResponseTime(),
		DaysSinceCreation: c.DaysSinceCreation(now),
	}
}

// FollowUpItem is the worklist row for inquiries due a follow-up.
type FollowUpItem struct {
	ContactID    string     `json:"contactId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	InquiryType  string     `json:"inquiryType"`
	Priority     Priority   `json:"priority"`
	FollowUpDate *time.Time `json:"followUpDate"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FollowUpItem projects the inquiry onto the follow-up worklist row.
func (c *Contact) FollowUpItem() FollowUpItem {
	return FollowUpItem{
		ContactID:    c.ID.Hex(),
		Name:         c.Name,
		Email:        c.Email,
		InquiryType:  c.InquiryType,
		Priority:     c.Priority,
		FollowUpDate: c.FollowUpDate,
		CreatedAt:    c.CreatedAt,
	}
}

// InquiryTypeInfo is the catalog entry served by the inquiry-types endpoint.
type InquiryTypeInfo struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// InquiryTypeCatalog lists the available inquiry types with descriptions.
func InquiryTypeCatalog() []InquiryTypeInfo {
	return []InquiryTypeInfo{
		{Value: "General Inquiry", Label: "General Inquiry", Description: "General questions about the college"},
		{Value: "Admission Information", Label: "Admission Information", Description: "Questions about admission process and requirements"},
		{Value: "Course Details", Label: "Course Details", Description: "Information about specific courses and programs"},
		{Value: "Fee Structure", Label: "Fee Structure", Description: "Questions about fees and payment options"},
		{Value: "Placement Information", Label: "Placement Information", Description: "Career opportunities and placement assistance"},
		{Value: "Facility Information", Label: "Facility Information", Description: "Questions about college facilities and infrastructure"},
		{Value: "Technical Support", Label: "Technical Support", Description: "Website or technical issues"},
		{Value: "Complaint", Label: "Complaint", Description: "Complaints or concerns"},
		{Value: "Suggestion", Label: "Suggestion", Description: "Suggestions for improvement"},
		{Value: "Other", Label: "Other", Description: "Other inquiries not listed above"},
	}
}
