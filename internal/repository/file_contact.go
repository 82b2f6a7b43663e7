package repository

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// FileContactStore keeps inquiries in a single JSON array file, mirroring
// the contacts collection schema.
type FileContactStore struct {
	mu   sync.Mutex
	path string
}

func NewFileContactStore(path string) *FileContactStore {
	return &FileContactStore{path: path}
}

func (s *FileContactStore) load() ([]*models.Contact, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*models.Contact{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local contact store unreadable", err)
	}
	contacts := []*models.Contact{}
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local contact store corrupt", err)
	}
	return contacts, nil
}

func (s *FileContactStore) write(contacts []*models.Contact) error {
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "encode contact records", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local contact store unwritable", err)
	}
	return nil
}

func (s *FileContactStore) Insert(_ context.Context, contact *models.Contact) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return "", err
	}
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	contacts = append(contacts, contact)
	if err := s.write(contacts); err != nil {
		return "", err
	}
	return contact.ID.Hex(), nil
}

func (s *FileContactStore) FindByID(_ context.Context, id string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		if contact.ID.Hex() == id {
			return contact, nil
		}
	}
	return nil, apperrors.NotFound("Contact not found")
}

func (s *FileContactStore) List(_ context.Context, q ContactListQuery) (*ContactPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Contact, 0, len(contacts))
	search := strings.ToLower(q.Search)
	for _, contact := range contacts {
		if !contact.IsActive {
			continue
		}
		if q.Status != "" && string(contact.Status) != q.Status {
			continue
		}
		if q.InquiryType != "" && contact.InquiryType != q.InquiryType {
			continue
		}
		if q.Priority != "" && string(contact.Priority) != q.Priority {
			continue
		}
		if search != "" && !contactMatches(contact, search) {
			continue
		}
		filtered = append(filtered, contact)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if q.Order != "asc" {
			a, b = b, a
		}
		switch q.SortBy {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})

	total := int64(len(filtered))
	start := (q.Page - 1) * q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return &ContactPage{
		Contacts:   filtered[start:end],
		Pagination: NewPagination(q.Page, q.Limit, total),
	}, nil
}

func contactMatches(contact *models.Contact, search string) bool {
	return strings.Contains(strings.ToLower(contact.Name), search) ||
		strings.Contains(strings.ToLower(contact.Email), search) ||
		strings.Contains(strings.ToLower(contact.Phone), search)
}

func (s *FileContactStore) Save(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range contacts {
		if existing.ID == contact.ID {
			contacts[i] = contact
			return s.write(contacts)
		}
	}
	return apperrors.NotFound("Contact not found")
}

func (s *FileContactStore) FollowUps(_ context.Context, cutoff time.Time) ([]*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return nil, err
	}

	due := []*models.Contact{}
	for _, contact := range contacts {
		if !contact.IsActive || !contact.FollowUpRequired || contact.FollowUpDate == nil {
			continue
		}
		if contact.FollowUpDate.After(cutoff) {
			continue
		}
		if contact.Status == models.ContactStatusResolved || contact.Status == models.ContactStatusClosed {
			continue
		}
		due = append(due, contact)
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].FollowUpDate.Before(*due[j].FollowUpDate)
	})
	return due, nil
}

func (s *FileContactStore) Statistics(_ context.Context) (*ContactStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		return nil, err
	}

	stats := &ContactStats{InquiryDistribution: []GroupCount{}}
	byType := map[string]int64{}
	var responded int64
	var totalLatencyMs float64
	for _, contact := range contacts {
		if !contact.IsActive {
			continue
		}
		stats.Overview.TotalContacts++
		switch contact.Status {
		case models.ContactStatusNew:
			stats.Overview.NewContacts++
		case models.ContactStatusResolved:
			stats.Overview.ResolvedContacts++
		}
		if contact.Response != nil && !contact.Response.RespondedAt.IsZero() {
			responded++
			totalLatencyMs += float64(contact.Response.RespondedAt.Sub(contact.CreatedAt).Milliseconds())
		}
		byType[contact.InquiryType]++
	}
	if responded > 0 {
		avg := totalLatencyMs / float64(responded)
		stats.Overview.AvgResponseTime = &avg
	}
	for inquiryType, count := range byType {
		stats.InquiryDistribution = append(stats.InquiryDistribution, GroupCount{Key: inquiryType, Count: count})
	}
	sort.Slice(stats.InquiryDistribution, func(i, j int) bool {
		if stats.InquiryDistribution[i].Count != stats.InquiryDistribution[j].Count {
			return stats.InquiryDistribution[i].Count > stats.InquiryDistribution[j].Count
		}
		return stats.InquiryDistribution[i].Key < stats.InquiryDistribution[j].Key
	})
	return stats, nil
}
