package repository

import (
	"context"
	"log"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// FailoverStudentRepository delegates to the primary store and falls back
// to the local file store when the primary is unreachable. Conflict and
// not-found results never trigger the fallback. Accepted applications are
// additionally written to the CSV audit trail, best-effort.
type FailoverStudentRepository struct {
	primary  StudentRepository // nil when the primary was down at startup
	fallback StudentRepository
	audit    *CSVAuditor
}

func NewFailoverStudentRepository(primary, fallback StudentRepository, audit *CSVAuditor) *FailoverStudentRepository {
	return &FailoverStudentRepository{primary: primary, fallback: fallback, audit: audit}
}

func (r *FailoverStudentRepository) Insert(ctx context.Context, student *models.Student) (string, error) {
	id, err := r.insert(ctx, student)
	if err != nil {
		return "", err
	}
	if r.audit != nil {
		if auditErr := r.audit.RecordStudent(student); auditErr != nil {
			log.Printf("admissions audit append failed: %v", auditErr)
		}
	}
	return id, nil
}

func (r *FailoverStudentRepository) insert(ctx context.Context, student *models.Student) (string, error) {
	if r.primary == nil {
		return r.fallback.Insert(ctx, student)
	}
	id, err := r.primary.Insert(ctx, student)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		log.Printf("primary student store unavailable, writing to local store: %v", err)
		return r.fallback.Insert(ctx, student)
	}
	return id, err
}

// reads prefer the primary and only fall back on unavailability.
func (r *FailoverStudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if r.primary == nil {
		return r.fallback.FindByID(ctx, id)
	}
	student, err := r.primary.FindByID(ctx, id)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.FindByID(ctx, id)
	}
	return student, err
}

func (r *FailoverStudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	if r.primary == nil {
		return r.fallback.FindByEmail(ctx, email)
	}
	student, err := r.primary.FindByEmail(ctx, email)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.FindByEmail(ctx, email)
	}
	return student, err
}

func (r *FailoverStudentRepository) List(ctx context.Context, q StudentListQuery) (*StudentPage, error) {
	if r.primary == nil {
		return r.fallback.List(ctx, q)
	}
	page, err := r.primary.List(ctx, q)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.List(ctx, q)
	}
	return page, err
}

func (r *FailoverStudentRepository) Save(ctx context.Context, student *models.Student) error {
	if r.primary == nil {
		return r.fallback.Save(ctx, student)
	}
	err := r.primary.Save(ctx, student)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.Save(ctx, student)
	}
	return err
}

func (r *FailoverStudentRepository) LastStudentID(ctx context.Context, prefix string) (string, error) {
	if r.primary == nil {
		return r.fallback.LastStudentID(ctx, prefix)
	}
	last, err := r.primary.LastStudentID(ctx, prefix)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.LastStudentID(ctx, prefix)
	}
	return last, err
}

func (r *FailoverStudentRepository) Statistics(ctx context.Context) (*StudentStats, error) {
	if r.primary == nil {
		return r.fallback.Statistics(ctx)
	}
	stats, err := r.primary.Statistics(ctx)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.Statistics(ctx)
	}
	return stats, err
}

// FailoverContactRepository mirrors the student failover policy for
// inquiries.
type FailoverContactRepository struct {
	primary  ContactRepository
	fallback ContactRepository
	audit    *CSVAuditor
}

func NewFailoverContactRepository(primary, fallback ContactRepository, audit *CSVAuditor) *FailoverContactRepository {
	return &FailoverContactRepository{primary: primary, fallback: fallback, audit: audit}
}

func (r *FailoverContactRepository) Insert(ctx context.Context, contact *models.Contact) (string, error) {
	id, err := r.insert(ctx, contact)
	if err != nil {
		return "", err
	}
	if r.audit != nil {
		if auditErr := r.audit.RecordContact(contact); auditErr != nil {
			log.Printf("inquiries audit append failed: %v", auditErr)
		}
	}
	return id, nil
}

func (r *FailoverContactRepository) insert(ctx context.Context, contact *models.Contact) (string, error) {
	if r.primary == nil {
		return r.fallback.Insert(ctx, contact)
	}
	id, err := r.primary.Insert(ctx, contact)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		log.Printf("primary contact store unavailable, writing to local store: %v", err)
		return r.fallback.Insert(ctx, contact)
	}
	return id, err
}

func (r *FailoverContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	if r.primary == nil {
		return r.fallback.FindByID(ctx, id)
	}
	contact, err := r.primary.FindByID(ctx, id)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.FindByID(ctx, id)
	}
	return contact, err
}

func (r *FailoverContactRepository) List(ctx context.Context, q ContactListQuery) (*ContactPage, error) {
	if r.primary == nil {
		return r.fallback.List(ctx, q)
	}
	page, err := r.primary.List(ctx, q)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.List(ctx, q)
	}
	return page, err
}

func (r *FailoverContactRepository) Save(ctx context.Context, contact *models.Contact) error {
	if r.primary == nil {
		return r.fallback.Save(ctx, contact)
	}
	err := r.primary.Save(ctx, contact)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.Save(ctx, contact)
	}
	return err
}

func (r *FailoverContactRepository) FollowUps(ctx context.Context, cutoff time.Time) ([]*models.Contact, error) {
	if r.primary == nil {
		return r.fallback.FollowUps(ctx, cutoff)
	}
	contacts, err := r.primary.FollowUps(ctx, cutoff)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.FollowUps(ctx, cutoff)
	}
	return contacts, err
}

func (r *FailoverContactRepository) Statistics(ctx context.Context) (*ContactStats, error) {
	if r.primary == nil {
		return r.fallback.Statistics(ctx)
	}
	stats, err := r.primary.Statistics(ctx)
	if err != nil && apperrors.IsStoreUnavailable(err) && r.fallback != nil {
		return r.fallback.Statistics(ctx)
	}
	return stats, err
}
