package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

type recordingMailer struct {
	sent chan string
}

func (m *recordingMailer) SendApplicationReceived(to, _, _ string) error {
	m.sent <- to
	return nil
}

func newStudentFixture(t *testing.T) (*StudentService, *repository.FileStudentStore, *recordingMailer) {
	t.Helper()
	store := repository.NewFileStudentStore(filepath.Join(t.TempDir(), "applications.json"))
	mailer := &recordingMailer{sent: make(chan string, 8)}
	return NewStudentService(store, mailer), store, mailer
}

func validApplication(email string) *models.StudentApplicationInput {
	return &models.StudentApplicationInput{
		FirstName:   "Priya",
		LastName:    "Sharma",
		Email:       email,
		Phone:       "9876543210",
		DateOfBirth: "2000-06-15",
		Gender:      "Female",
		Program:     "Bachelor of Science in Nursing (BSc Nursing)",
		Address: &models.Address{
			Street:  "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560001",
		},
		PreviousEducation: &models.PreviousEducation{
			Qualification:    "12th Science",
			Institution:      "St. Mary's Junior College",
			YearOfCompletion: 2018,
			Percentage:       87.5,
		},
		AdmissionYear: time.Now().Year(),
	}
}

func TestSubmitApplication(t *testing.T) {
	svc, store, mailer := newStudentFixture(t)
	ctx := context.Background()

	receipt, err := svc.SubmitApplication(ctx, validApplication("Priya.Sharma@Example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.ApplicationID)
	assert.Equal(t, "Priya Sharma", receipt.FullName)
	assert.Equal(t, "priya.sharma@example.com", receipt.Email)
	assert.Equal(t, models.StatusPending, receipt.ApplicationStatus)

	stored, err := store.FindByID(ctx, receipt.ApplicationID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "India", stored.Address.Country)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "priya.sharma@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("acknowledgement email was never sent")
	}
}

func TestSubmitApplicationValidationFailureLeavesNoRecord(t *testing.T) {
	svc, store, _ := newStudentFixture(t)
	ctx := context.Background()

	in := validApplication("priya@example.com")
	in.Phone = "123"

	_, err := svc.SubmitApplication(ctx, in)
	require.True(t, apperrors.IsValidation(err))
	assert.Contains(t, apperrors.ValidationDetails(err), "Please provide a valid phone number")

	page, err := store.List(ctx, repository.StudentListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Students)
}

func TestSubmitApplicationDuplicateEmail(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)

	_, err = svc.SubmitApplication(ctx, validApplication("PRIYA@EXAMPLE.COM"))
	assert.True(t, apperrors.IsConflict(err))
}

func TestCheckEmailExists(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	ctx := context.Background()

	exists, err := svc.CheckEmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)

	exists, err = svc.CheckEmailExists(ctx, "Priya@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetApplicationStatus(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	ctx := context.Background()

	receipt, err := svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)

	view, err := svc.GetApplicationStatus(ctx, receipt.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", view.FullName)
	assert.Equal(t, models.StatusPending, view.ApplicationStatus)

	_, err = svc.GetApplicationStatus(ctx, "ffffffffffffffffffffffff")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateApplicationStatusAssignsStudentIDOnApproval(t *testing.T) {
	svc, store, _ := newStudentFixture(t)
	ctx := context.Background()

	first, err := svc.SubmitApplication(ctx, validApplication("first@example.com"))
	require.NoError(t, err)
	second, err := svc.SubmitApplication(ctx, validApplication("second@example.com"))
	require.NoError(t, err)

	prefix := models.StudentIDPrefix("Bachelor of Science in Nursing (BSc Nursing)", time.Now())

	summary, err := svc.UpdateApplicationStatus(ctx, first.ApplicationID, &models.StatusUpdateInput{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, prefix+"001", summary.StudentID)
	assert.Equal(t, models.StatusApproved, summary.ApplicationStatus)

	// The sequence continues for the next approval in the same program.
	summary, err = svc.UpdateApplicationStatus(ctx, second.ApplicationID, &models.StatusUpdateInput{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, prefix+"002", summary.StudentID)

	// Re-approving keeps the already assigned ID.
	summary, err = svc.UpdateApplicationStatus(ctx, first.ApplicationID, &models.StatusUpdateInput{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, prefix+"001", summary.StudentID)

	stored, err := store.FindByID(ctx, first.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, prefix+"001", stored.StudentID)
}

func TestUpdateApplicationStatusOtherTransitionsSkipStudentID(t *testing.T) {
	svc, store, _ := newStudentFixture(t)
	ctx := context.Background()

	receipt, err := svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)

	summary, err := svc.UpdateApplicationStatus(ctx, receipt.ApplicationID, &models.StatusUpdateInput{Status: "Under Review", Notes: "Documents pending"})
	require.NoError(t, err)
	assert.Empty(t, summary.StudentID)

	stored, err := store.FindByID(ctx, receipt.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, stored.ApplicationStatus)
	require.Len(t, stored.Notes, 1)
	assert.Equal(t, "Documents pending", stored.Notes[0].Content)
}

func TestUpdateApplicationStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newStudentFixture(t)

	_, err := svc.UpdateApplicationStatus(context.Background(), "ffffffffffffffffffffffff", &models.StatusUpdateInput{Status: "Archived"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestListApplicationsNormalizesPaging(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)

	page, err := svc.ListApplications(ctx, repository.StudentListQuery{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Current)
	assert.Equal(t, 10, page.Pagination.Limit)

	page, err = svc.ListApplications(ctx, repository.StudentListQuery{Page: 1, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Pagination.Limit)
}

func TestProgramsCatalog(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	assert.Len(t, svc.Programs(), len(models.Programs))
}

func TestStudentStatistics(t *testing.T) {
	svc, _, _ := newStudentFixture(t)
	ctx := context.Background()

	receipt, err := svc.SubmitApplication(ctx, validApplication("priya@example.com"))
	require.NoError(t, err)
	_, err = svc.UpdateApplicationStatus(ctx, receipt.ApplicationID, &models.StatusUpdateInput{Status: "Approved"})
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Overview.TotalApplications)
	assert.Equal(t, int64(1), stats.Overview.ApprovedStudents)
	assert.Equal(t, int64(0), stats.Overview.PendingApplications)
}
