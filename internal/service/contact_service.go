package service

import (
	"context"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/validation"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

type ContactService struct {
	repo repository.ContactRepository
	now  func() time.Time
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo, now: time.Now}
}

// SubmitInquiry validates, normalizes and persists a contact inquiry,
// recording the request attribution alongside it.
func (s *ContactService) SubmitInquiry(ctx context.Context, in *models.ContactInquiryInput, meta models.RequestMeta) (*models.InquiryReceipt, error) {
	if errs := validation.ValidateContact(in); len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	contact := in.ToContact()
	contact.ApplyDefaults(s.now())
	contact.IPAddress = meta.IPAddress
	contact.UserAgent = meta.UserAgent

	id, err := s.repo.Insert(ctx, contact)
	if err != nil {
		return nil, err
	}

	return &models.InquiryReceipt{
		ContactID:   id,
		Name:        contact.Name,
		Email:       contact.Email,
		InquiryType: contact.InquiryType,
		Status:      contact.Status,
		SubmittedAt: contact.CreatedAt,
	}, nil
}

// InquiryTypes returns the public inquiry-type catalog.
func (s *ContactService) InquiryTypes() []models.InquiryTypeInfo {
	return models.InquiryTypeCatalog()
}

// ListInquiries returns one page of the admin listing, active records only.
func (s *ContactService) ListInquiries(ctx context.Context, q repository.ContactListQuery) (*repository.ContactPage, error) {
	normalizePage(&q.Page, &q.Limit)
	return s.repo.List(ctx, q)
}

// GetInquiry returns the full admin view. Soft-deleted inquiries remain
// reachable here.
func (s *ContactService) GetInquiry(ctx context.Context, id string) (*models.ContactDetail, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := contact.Detail(s.now())
	return &detail, nil
}

// ContactUpdateSummary is the admin response after a status change or a
// response.
type ContactUpdateSummary struct {
	ContactID    string               `json:"contactId"`
	Name         string               `json:"name"`
	Status       models.ContactStatus `json:"status"`
	Priority     models.Priority      `json:"priority,omitempty"`
	ResponseTime string               `json:"responseTime,omitempty"`
}

// UpdateInquiryStatus applies an admin status change with an optional
// priority override and internal note.
func (s *ContactService) UpdateInquiryStatus(ctx context.Context, id string, in *models.ContactStatusUpdateInput) (*ContactUpdateSummary, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contact.UpdateStatus(in.Status, in.Priority, in.Notes, s.now()); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}

	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, err
	}

	return &ContactUpdateSummary{
		ContactID: contact.ID.Hex(),
		Name:      contact.Name,
		Status:    contact.Status,
		Priority:  contact.Priority,
	}, nil
}

// Respond records the staff response, forcing the inquiry to Responded.
func (s *ContactService) Respond(ctx context.Context, id string, in *models.RespondInput) (*ContactUpdateSummary, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contact.AddResponse(in.ResponseContent, in.RespondedBy, s.now()); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, err.Error())
	}

	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, err
	}

	return &ContactUpdateSummary{
		ContactID:    contact.ID.Hex(),
		Name:         contact.Name,
		Status:       contact.Status,
		ResponseTime: contact.ResponseTime(),
	}, nil
}

// FollowUps returns the worklist of inquiries due a follow-up by the end of
// today, soonest first.
func (s *ContactService) FollowUps(ctx context.Context) ([]models.FollowUpItem, error) {
	now := s.now()
	year, month, day := now.Date()
	cutoff := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())

	contacts, err := s.repo.FollowUps(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	items := make([]models.FollowUpItem, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, contact.FollowUpItem())
	}
	return items, nil
}

// SoftDelete deactivates an inquiry, removing it from listings and
// statistics while keeping it reachable by id.
func (s *ContactService) SoftDelete(ctx context.Context, id string) error {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	contact.SoftDelete(s.now())
	return s.repo.Save(ctx, contact)
}

// Statistics computes the inquiry overview and type distribution over
// active records.
func (s *ContactService) Statistics(ctx context.Context) (*repository.ContactStats, error) {
	return s.repo.Statistics(ctx)
}
