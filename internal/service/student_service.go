// Package service orchestrates the public intake operations: validate,
// check duplicates, prepare and persist, then shape the response. No
// operation leaves partial side effects behind on validation failure.
package service

import (
	"context"
	"log"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/validation"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// Mailer sends the applicant acknowledgement. Implementations must be safe
// for concurrent use; a nil Mailer disables acknowledgements.
type Mailer interface {
	SendApplicationReceived(to, fullName, program string) error
}

type StudentService struct {
	repo   repository.StudentRepository
	mailer Mailer
	now    func() time.Time
}

func NewStudentService(repo repository.StudentRepository, mailer Mailer) *StudentService {
	return &StudentService{repo: repo, mailer: mailer, now: time.Now}
}

// SubmitApplication validates, normalizes and persists a new application.
func (s *StudentService) SubmitApplication(ctx context.Context, in *models.StudentApplicationInput) (*models.ApplicationReceipt, error) {
	now := s.now()
	if errs := validation.ValidateStudent(in, now); len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	student := in.ToStudent()
	student.ApplyDefaults(now)

	id, err := s.repo.Insert(ctx, student)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		// Best-effort; the application is already accepted.
		go func(to, name, program string) {
			if err := s.mailer.SendApplicationReceived(to, name, program); err != nil {
				log.Printf("acknowledgement email to %s failed: %v", to, err)
			}
		}(student.Email, student.FullName(), student.Program)
	}

	return &models.ApplicationReceipt{
		ApplicationID:     id,
		FullName:          student.FullName(),
		Email:             student.Email,
		Program:           student.Program,
		ApplicationStatus: student.ApplicationStatus,
		ApplicationDate:   student.ApplicationDate,
	}, nil
}

// CheckEmailExists reports whether an application with the email is already
// on file, matching case-insensitively.
func (s *StudentService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetApplicationStatus returns the limited public view of an application.
func (s *StudentService) GetApplicationStatus(ctx context.Context, id string) (*models.ApplicationStatusView, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := student.StatusView()
	return &view, nil
}

// GetStudent returns the full admin view with derived fields.
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := student.Detail(s.now())
	return &detail, nil
}

// ListApplications returns one page of the admin listing.
func (s *StudentService) ListApplications(ctx context.Context, q repository.StudentListQuery) (*repository.StudentPage, error) {
	normalizePage(&q.Page, &q.Limit)
	return s.repo.List(ctx, q)
}

// StatusUpdateSummary is the admin response after a status change.
type StatusUpdateSummary struct {
	StudentID         string                   `json:"studentId,omitempty"`
	FullName          string                   `json:"fullName"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
}

// UpdateApplicationStatus applies an admin status change. A transition to
// Approved assigns the student ID exactly once, continuing the sequence for
// the year and program.
func (s *StudentService) UpdateApplicationStatus(ctx context.Context, id string, in *models.StatusUpdateInput) (*StatusUpdateSummary, error) {
	if !models.IsValidApplicationStatus(in.Status) {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "Invalid status: "+in.Status)
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	student.ApplicationStatus = models.ApplicationStatus(in.Status)
	student.UpdatedAt = now
	if in.Notes != "" {
		student.AddNote(in.Notes, "Admin", now)
	}

	if student.ApplicationStatus == models.StatusApproved && student.StudentID == "" {
		prefix := models.StudentIDPrefix(student.Program, now)
		last, err := s.repo.LastStudentID(ctx, prefix)
		if err != nil {
			return nil, err
		}
		student.StudentID = models.NextStudentID(prefix, last)
	}

	if err := s.repo.Save(ctx, student); err != nil {
		return nil, err
	}

	return &StatusUpdateSummary{
		StudentID:         student.StudentID,
		FullName:          student.FullName(),
		ApplicationStatus: student.ApplicationStatus,
	}, nil
}

// Programs returns the public program catalog.
func (s *StudentService) Programs() []models.ProgramInfo {
	return models.ProgramCatalog()
}

// Statistics computes the application overview and program distribution.
func (s *StudentService) Statistics(ctx context.Context) (*repository.StudentStats, error) {
	return s.repo.Statistics(ctx)
}

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 10
	}
	if *limit > 100 {
		*limit = 100
	}
}
