// Package repository persists Student and Contact records. The primary
// implementation targets MongoDB; a local JSON file store serves as the
// write fallback when the primary is unreachable, with a best-effort CSV
// audit trail appended on every accepted application.
package repository

import (
	"context"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
)

// StudentListQuery filters, sorts and paginates the admin student listing.
// Search is matched case-insensitively as a substring of name, email, phone
// or student ID. SortBy accepts createdAt, name or status.
type StudentListQuery struct {
	Status  string
	Program string
	Search  string
	SortBy  string
	Order   string
	Page    int
	Limit   int
}

// ContactListQuery filters and paginates the admin inquiry listing.
type ContactListQuery struct {
	Status      string
	InquiryType string
	Priority    string
	Search      string
	SortBy      string
	Order       string
	Page        int
	Limit       int
}

// Pagination describes one page of a listing. Pages is ceil(Total/Limit).
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// NewPagination computes the pagination block for a listing result.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Current: page, Pages: pages, Total: total, Limit: limit}
}

type StudentPage struct {
	Students   []*models.Student `json:"students"`
	Pagination Pagination        `json:"pagination"`
}

type ContactPage struct {
	Contacts   []*models.Contact `json:"contacts"`
	Pagination Pagination        `json:"pagination"`
}

// GroupCount is one bucket of a frequency distribution. The bson tags match
// the $group stage output so aggregation results decode directly.
type GroupCount struct {
	Key   string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

type StudentOverview struct {
	TotalApplications   int64 `json:"totalApplications" bson:"totalApplications"`
	ApprovedStudents    int64 `json:"approvedStudents" bson:"approvedStudents"`
	PendingApplications int64 `json:"pendingApplications" bson:"pendingApplications"`
}

type StudentStats struct {
	Overview            StudentOverview `json:"overview"`
	ProgramDistribution []GroupCount    `json:"programDistribution"`
}

type ContactOverview struct {
	TotalContacts    int64 `json:"totalContacts" bson:"totalContacts"`
	NewContacts      int64 `json:"newContacts" bson:"newContacts"`
	ResolvedContacts int64 `json:"resolvedContacts" bson:"resolvedContacts"`
	// Average elapsed time to first response across responded inquiries,
	// in milliseconds. Nil when nothing has been responded to.
	AvgResponseTime *float64 `json:"avgResponseTime" bson:"avgResponseTime"`
}

type ContactStats struct {
	Overview            ContactOverview `json:"overview"`
	InquiryDistribution []GroupCount    `json:"inquiryDistribution"`
}

// StudentRepository is the persistence contract for applications.
type StudentRepository interface {
	// Insert stores a new application. Returns a Conflict error when an
	// active record with the same email already exists.
	Insert(ctx context.Context, student *models.Student) (string, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	// FindByEmail matches case-insensitively via the stored lowercase form.
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context, q StudentListQuery) (*StudentPage, error)
	// Save replaces the stored record. NotFound when the id is absent.
	Save(ctx context.Context, student *models.Student) error
	// LastStudentID returns the highest assigned student ID sharing the
	// prefix, or "" when none exists.
	LastStudentID(ctx context.Context, prefix string) (string, error)
	Statistics(ctx context.Context) (*StudentStats, error)
}

// ContactRepository is the persistence contract for inquiries. List,
// FollowUps and Statistics consider active records only; FindByID does not,
// so soft-deleted inquiries stay reachable by direct lookup.
type ContactRepository interface {
	Insert(ctx context.Context, contact *models.Contact) (string, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	List(ctx context.Context, q ContactListQuery) (*ContactPage, error)
	Save(ctx context.Context, contact *models.Contact) error
	// FollowUps returns active inquiries flagged for follow-up with a due
	// date at or before the cutoff, excluding resolved and closed ones,
	// sorted by due date ascending.
	FollowUps(ctx context.Context, cutoff time.Time) ([]*models.Contact, error)
	Statistics(ctx context.Context) (*ContactStats, error)
}
