package store_test

import (
	"civic_reports/internal/domain"
	"civic_reports/internal/store"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustRegister(t, s, "asha")

	issue, err := s.CreateIssue(ctx, &u.ID, store.CreateIssueInput{
		Title:       "  Pothole on <b>MG Road</b> ",
		Description: "Deep pothole near the bus stop",
		Category:    "roads",
		Location:    "MG Road",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pothole on MG Road", issue.Title, "markup stripped and trimmed")
	assert.Equal(t, domain.CategoryRoads, issue.Category, "category normalized")
	assert.Equal(t, domain.StatusPending, issue.Status)
	assert.Nil(t, issue.ImagePath, "no image means no image path")
	assert.Nil(t, issue.AssignedOfficer)
	require.NotNil(t, issue.ReporterID)
	assert.Equal(t, u.ID, *issue.ReporterID)
	assert.False(t, issue.CreatedAt.IsZero())
}

func TestCreateIssueWithImage(t *testing.T) {
	s := newTestStore(t)
	issue, err := s.CreateIssue(context.Background(), nil, store.CreateIssueInput{
		Title:       "Broken streetlight",
		Description: "Dark at night",
		Category:    domain.CategoryElectricity,
		ImagePath:   "/uploads/1-light.png",
	})
	require.NoError(t, err)
	require.NotNil(t, issue.ImagePath)
	assert.Equal(t, "/uploads/1-light.png", *issue.ImagePath)
	assert.Nil(t, issue.ReporterID, "anonymous report")
}

func TestCreateIssueValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateIssue(ctx, nil, store.CreateIssueInput{Title: "", Description: "d", Category: "Roads"})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = s.CreateIssue(ctx, nil, store.CreateIssueInput{Title: "<script></script>", Description: "d", Category: "Roads"})
	assert.ErrorIs(t, err, store.ErrValidation, "title that is only markup is empty")

	_, err = s.CreateIssue(ctx, nil, store.CreateIssueInput{Title: "t", Description: "d", Category: "Parks"})
	assert.ErrorIs(t, err, store.ErrValidation)

	total, err := s.CountIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	assert.Zero(t, total, "rejected reports must not be stored")
}

func TestUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	issue := mustCreateIssue(t, s, nil, "Overflowing bin", domain.CategoryGarbage)

	officer := "Officer Singh"
	require.NoError(t, s.UpdateStatus(ctx, issue.ID, domain.StatusInProgress, &officer))

	got, err := s.GetIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.AssignedOfficer)
	assert.Equal(t, officer, *got.AssignedOfficer)
	assert.False(t, got.UpdatedAt.Before(issue.UpdatedAt))

	// Without an officer the assignment is cleared
	require.NoError(t, s.UpdateStatus(ctx, issue.ID, domain.StatusResolved, nil))
	got, err = s.GetIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, got.Status)
	assert.Nil(t, got.AssignedOfficer)
}

func TestUpdateStatusErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	issue := mustCreateIssue(t, s, nil, "Leak", domain.CategoryWater)

	assert.ErrorIs(t, s.UpdateStatus(ctx, 4242, domain.StatusResolved, nil), store.ErrIssueNotFound)
	assert.ErrorIs(t, s.UpdateStatus(ctx, issue.ID, "  ", nil), store.ErrValidation)

	_, err := s.GetIssue(ctx, 4242)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
