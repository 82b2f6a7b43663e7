package repository

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// FileStudentStore keeps applications in a single JSON array file. It backs
// the service when the primary store is unreachable and carries the same
// logical schema, so records written here can be replayed later.
type FileStudentStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStudentStore(path string) *FileStudentStore {
	return &FileStudentStore{path: path}
}

func (s *FileStudentStore) load() ([]*models.Student, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*models.Student{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local student store unreadable", err)
	}
	students := []*models.Student{}
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local student store corrupt", err)
	}
	return students, nil
}

func (s *FileStudentStore) write(students []*models.Student) error {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "encode student records", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "local student store unwritable", err)
	}
	return nil
}

func (s *FileStudentStore) Insert(_ context.Context, student *models.Student) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return "", err
	}
	email := strings.ToLower(student.Email)
	for _, existing := range students {
		if existing.IsActive && strings.ToLower(existing.Email) == email {
			return "", apperrors.Conflict("A student with this email already exists")
		}
	}
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	students = append(students, student)
	if err := s.write(students); err != nil {
		return "", err
	}
	return student.ID.Hex(), nil
}

func (s *FileStudentStore) FindByID(_ context.Context, id string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		if student.ID.Hex() == id {
			return student, nil
		}
	}
	return nil, apperrors.NotFound("Application not found")
}

func (s *FileStudentStore) FindByEmail(_ context.Context, email string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	for _, student := range students {
		if strings.ToLower(student.Email) == email {
			return student, nil
		}
	}
	return nil, apperrors.NotFound("Application not found")
}

func (s *FileStudentStore) List(_ context.Context, q StudentListQuery) (*StudentPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Student, 0, len(students))
	search := strings.ToLower(q.Search)
	for _, student := range students {
		if q.Status != "" && string(student.ApplicationStatus) != q.Status {
			continue
		}
		if q.Program != "" && student.Program != q.Program {
			continue
		}
		if search != "" && !studentMatches(student, search) {
			continue
		}
		filtered = append(filtered, student)
	}

	sortStudents(filtered, q.SortBy, q.Order)

	total := int64(len(filtered))
	start := (q.Page - 1) * q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return &StudentPage{
		Students:   filtered[start:end],
		Pagination: NewPagination(q.Page, q.Limit, total),
	}, nil
}

func studentMatches(student *models.Student, search string) bool {
	return strings.Contains(strings.ToLower(student.FullName()), search) ||
		strings.Contains(strings.ToLower(student.Email), search) ||
		strings.Contains(strings.ToLower(student.Phone), search) ||
		strings.Contains(strings.ToLower(student.StudentID), search) ||
		strings.Contains(strings.ToLower(student.ID.Hex()), search)
}

func sortStudents(students []*models.Student, sortBy, order string) {
	sort.SliceStable(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if order != "asc" {
			a, b = b, a
		}
		switch sortBy {
		case "name":
			return strings.ToLower(a.FullName()) < strings.ToLower(b.FullName())
		case "status":
			return a.ApplicationStatus < b.ApplicationStatus
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

func (s *FileStudentStore) Save(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range students {
		if existing.ID == student.ID {
			students[i] = student
			return s.write(students)
		}
	}
	return apperrors.NotFound("Application not found")
}

func (s *FileStudentStore) LastStudentID(_ context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return "", err
	}
	last := ""
	for _, student := range students {
		if strings.HasPrefix(student.StudentID, prefix) && student.StudentID > last {
			last = student.StudentID
		}
	}
	return last, nil
}

func (s *FileStudentStore) Statistics(_ context.Context) (*StudentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return nil, err
	}

	stats := &StudentStats{ProgramDistribution: []GroupCount{}}
	byProgram := map[string]int64{}
	for _, student := range students {
		stats.Overview.TotalApplications++
		switch student.ApplicationStatus {
		case models.StatusApproved:
			stats.Overview.ApprovedStudents++
		case models.StatusPending:
			stats.Overview.PendingApplications++
		}
		byProgram[student.Program]++
	}
	for program, count := range byProgram {
		stats.ProgramDistribution = append(stats.ProgramDistribution, GroupCount{Key: program, Count: count})
	}
	sort.Slice(stats.ProgramDistribution, func(i, j int) bool {
		if stats.ProgramDistribution[i].Count != stats.ProgramDistribution[j].Count {
			return stats.ProgramDistribution[i].Count > stats.ProgramDistribution[j].Count
		}
		return stats.ProgramDistribution[i].Key < stats.ProgramDistribution[j].Key
	})
	return stats, nil
}
