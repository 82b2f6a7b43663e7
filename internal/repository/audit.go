package repository

import (
	"encoding/csv"
	"os"
	"sync"
	"time"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
)

// CSVAuditor appends intake records to an audit CSV. The header row is
// written once, when the file is first created. Append failures are the
// caller's to log; they must never fail the request that triggered them.
type CSVAuditor struct {
	mu     sync.Mutex
	path   string
	header []string
}

func NewAdmissionsAuditor(path string) *CSVAuditor {
	return &CSVAuditor{
		path:   path,
		header: []string{"Application ID", "Name", "Email", "Phone", "Program", "Status", "Timestamp"},
	}
}

func NewInquiriesAuditor(path string) *CSVAuditor {
	return &CSVAuditor{
		path:   path,
		header: []string{"Contact ID", "Name", "Email", "Phone", "Subject", "Inquiry Type", "Status", "Timestamp"},
	}
}

func (a *CSVAuditor) append(row []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, statErr := os.Stat(a.path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if isNew {
		if err := writer.Write(a.header); err != nil {
			return err
		}
	}
	if err := writer.Write(row); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// RecordStudent appends an accepted application to the audit trail.
func (a *CSVAuditor) RecordStudent(student *models.Student) error {
	return a.append([]string{
		student.ID.Hex(),
		student.FullName(),
		student.Email,
		student.Phone,
		student.Program,
		string(student.ApplicationStatus),
		student.CreatedAt.Format(time.RFC3339),
	})
}

// RecordContact appends an accepted inquiry to the audit trail.
func (a *CSVAuditor) RecordContact(contact *models.Contact) error {
	return a.append([]string{
		contact.ID.Hex(),
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Subject,
		contact.InquiryType,
		string(contact.Status),
		contact.CreatedAt.Format(time.RFC3339),
	})
}
