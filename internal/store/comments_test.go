package store_test

import (
	"civic_reports/internal/domain"
	"civic_reports/internal/store"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustRegister(t, s, "asha")
	issue := mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)

	// Act
	first, err := s.AddComment(ctx, u.ID, issue.ID, "Still there today")
	require.NoError(t, err)
	_, err = s.AddComment(ctx, u.ID, issue.ID, " <i>Getting worse</i> ")
	require.NoError(t, err)

	// Assert
	comments, err := s.ListComments(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID, "oldest first")
	assert.Equal(t, "Still there today", comments[0].Text)
	assert.Equal(t, "Getting worse", comments[1].Text)
	require.NotNil(t, comments[0].Username)
	assert.Equal(t, "asha", *comments[0].Username)
}

func TestAddCommentErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	issue := mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)

	_, err := s.AddComment(ctx, 1, issue.ID, "   ")
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = s.AddComment(ctx, 1, 5150, "hello")
	assert.ErrorIs(t, err, store.ErrIssueNotFound)
}

func TestListCommentsEmpty(t *testing.T) {
	s := newTestStore(t)
	comments, err := s.ListComments(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestListCommentsUnknownAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	issue := mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)

	_, err := s.AddComment(ctx, 404, issue.ID, "orphan")
	require.NoError(t, err)

	comments, err := s.ListComments(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Nil(t, comments[0].Username)
}
