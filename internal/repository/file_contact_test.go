package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

func newContactStore(t *testing.T) *FileContactStore {
	t.Helper()
	return NewFileContactStore(filepath.Join(t.TempDir(), "contacts.json"))
}

func seedContact(t *testing.T, store *FileContactStore, mutate func(*models.Contact)) *models.Contact {
	t.Helper()
	c := &models.Contact{
		Name:        "Anil Kumar",
		Email:       "anil@example.com",
		Phone:       "9876543210",
		Subject:     "Hostel facilities",
		Message:     "Do you provide hostel accommodation?",
		InquiryType: "General Inquiry",
	}
	c.ApplyDefaults(time.Now())
	if mutate != nil {
		mutate(c)
	}
	_, err := store.Insert(context.Background(), c)
	require.NoError(t, err)
	return c
}

func TestFileContactStoreInsertAndFind(t *testing.T) {
	store := newContactStore(t)
	ctx := context.Background()

	c := seedContact(t, store, nil)
	require.False(t, c.ID.IsZero())

	found, err := store.FindByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "anil@example.com", found.Email)

	_, err = store.FindByID(ctx, "ffffffffffffffffffffffff")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFileContactStoreAllowsRepeatSubmissions(t *testing.T) {
	store := newContactStore(t)

	first := seedContact(t, store, nil)
	second := seedContact(t, store, nil)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFileContactStoreListExcludesSoftDeleted(t *testing.T) {
	store := newContactStore(t)
	ctx := context.Background()

	kept := seedContact(t, store, nil)
	deleted := seedContact(t, store, func(c *models.Contact) { c.IsActive = false })

	page, err := store.List(ctx, ContactListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, kept.ID, page.Contacts[0].ID)

	// Direct lookup still reaches the deleted record.
	found, err := store.FindByID(ctx, deleted.ID.Hex())
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestFileContactStoreListFilters(t *testing.T) {
	store := newContactStore(t)
	ctx := context.Background()

	seedContact(t, store, func(c *models.Contact) { c.InquiryType = "Complaint"; c.Priority = models.PriorityHigh })
	seedContact(t, store, func(c *models.Contact) { c.Status = models.ContactStatusResolved })
	seedContact(t, store, nil)

	complaints, err := store.List(ctx, ContactListQuery{InquiryType: "Complaint", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, complaints.Contacts, 1)

	high, err := store.List(ctx, ContactListQuery{Priority: "High", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, high.Contacts, 1)

	resolved, err := store.List(ctx, ContactListQuery{Status: "Resolved", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resolved.Contacts, 1)
}

func TestFileContactStoreListPaginates(t *testing.T) {
	store := newContactStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		i := i
		seedContact(t, store, func(c *models.Contact) {
			c.Email = fmt.Sprintf("caller%02d@example.com", i)
			c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		})
	}

	page, err := store.List(ctx, ContactListQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Contacts, 5)
	assert.Equal(t, int64(12), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)

	// Default order is newest first.
	newest, err := store.List(ctx, ContactListQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, newest.Contacts, 1)
	assert.Equal(t, "caller11@example.com", newest.Contacts[0].Email)
}

func TestFileContactStoreFollowUps(t *testing.T) {
	store := newContactStore(t)
	ctx := context.Background()
	now := time.Now()

	overdue := seedContact(t, store, func(c *models.Contact) {
		due := now.Add(-24 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
	})
	seedContact(t, store, func(c *models.Contact) {
		due := now.Add(48 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
	})
	seedContact(t, store, func(c *models.Contact) {
		due := now.Add(-48 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
		c.Status = models.ContactStatusResolved
	})
	seedContact(t, store, func(c *models.Contact) {
		due := now.Add(-48 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
		c.IsActive = false
	})

	due, err := store.FollowUps(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)
}

func TestFileContactStoreFollowUpsSortedByDueDate(t *testing.T) {
	store := newContactStore(t)
	now := time.Now()

	later := seedContact(t, store, func(c *models.Contact) {
		due := now.Add(-1 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
	})
	earlier := seedContact(t, store, func(c *models.Contact) {
		due := now.Add(-10 * time.Hour)
		c.FollowUpRequired = true
		c.FollowUpDate = &due
	})

	due, err := store.FollowUps(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, earlier.ID, due[0].ID)
	assert.Equal(t, later.ID, due[1].ID)
}

func TestFileContactStoreStatistics(t *testing.T) {
	store := newContactStore(t)
	created := time.Now().Add(-2 * time.Hour)

	seedContact(t, store, func(c *models.Contact) {
		c.CreatedAt = created
		c.Response = &models.Response{Content: "Replied", RespondedBy: "Admin", RespondedAt: created.Add(time.Hour)}
		c.Status = models.ContactStatusResolved
	})
	seedContact(t, store, nil)
	seedContact(t, store, func(c *models.Contact) { c.InquiryType = "Complaint" })
	seedContact(t, store, func(c *models.Contact) { c.IsActive = false })

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Overview.TotalContacts)
	assert.Equal(t, int64(2), stats.Overview.NewContacts)
	assert.Equal(t, int64(1), stats.Overview.ResolvedContacts)

	require.NotNil(t, stats.Overview.AvgResponseTime)
	assert.InDelta(t, float64(time.Hour.Milliseconds()), *stats.Overview.AvgResponseTime, 1)

	require.Len(t, stats.InquiryDistribution, 2)
	assert.Equal(t, "General Inquiry", stats.InquiryDistribution[0].Key)
	assert.Equal(t, int64(2), stats.InquiryDistribution[0].Count)
}

func TestFileContactStoreStatisticsNoResponses(t *testing.T) {
	store := newContactStore(t)
	seedContact(t, store, nil)

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stats.Overview.AvgResponseTime)
}
