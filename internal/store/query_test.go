package store_test

import (
	"civic_reports/internal/domain"
	"civic_reports/internal/store"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(views []store.IssueView) []uint {
	out := make([]uint, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func voteN(t *testing.T, s *store.Store, issueID uint, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, s.CastVote(context.Background(), uint(1000+i), issueID))
	}
}

func TestQueryIssuesExactCategoryFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roads := mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)
	mustCreateIssue(t, s, nil, "Bin", domain.CategoryGarbage)

	got, err := s.QueryIssues(ctx, store.QuerySpec{Category: "Roads"})
	require.NoError(t, err)
	assert.Equal(t, []uint{roads.ID}, ids(got))

	// The server never matches partial names
	got, err = s.QueryIssues(ctx, store.QuerySpec{Category: "Road"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got, err = s.QueryIssues(ctx, store.QuerySpec{Category: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQueryIssuesStatusFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreateIssue(t, s, nil, "A", domain.CategoryRoads)
	mustCreateIssue(t, s, nil, "B", domain.CategoryRoads)
	require.NoError(t, s.UpdateStatus(ctx, a.ID, domain.StatusResolved, nil))

	got, err := s.QueryIssues(ctx, store.QuerySpec{Status: domain.StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, ids(got))
}

func TestQueryIssuesVoteOrderingBreaksTiesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Arrange - vote counts 2, 5, 0, 5 in creation order
	i1 := mustCreateIssue(t, s, nil, "one", domain.CategoryRoads)
	i2 := mustCreateIssue(t, s, nil, "two", domain.CategoryRoads)
	i3 := mustCreateIssue(t, s, nil, "three", domain.CategoryRoads)
	i4 := mustCreateIssue(t, s, nil, "four", domain.CategoryRoads)
	voteN(t, s, i1.ID, 2)
	voteN(t, s, i2.ID, 5)
	voteN(t, s, i4.ID, 5)

	// Act
	desc, err := s.QueryIssues(ctx, store.QuerySpec{SortBy: "votes", Order: "desc"})
	require.NoError(t, err)
	asc, err := s.QueryIssues(ctx, store.QuerySpec{SortBy: "votes", Order: "ASC"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []uint{i2.ID, i4.ID, i1.ID, i3.ID}, ids(desc))
	assert.Equal(t, []int64{5, 5, 2, 0}, []int64{desc[0].VoteCount, desc[1].VoteCount, desc[2].VoteCount, desc[3].VoteCount})
	assert.Equal(t, []uint{i3.ID, i1.ID, i2.ID, i4.ID}, ids(asc))
}

func TestQueryIssuesDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	older := mustCreateIssue(t, s, nil, "older", domain.CategoryRoads)
	newer := mustCreateIssue(t, s, nil, "newer", domain.CategoryRoads)
	voteN(t, s, older.ID, 1)

	// Descending unless asked otherwise
	public, err := s.QueryIssues(ctx, store.QuerySpec{SortBy: "id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{newer.ID, older.ID}, ids(public))

	// Most voted first for admins
	admin, err := s.QueryIssues(ctx, store.QuerySpec{Admin: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{older.ID, newer.ID}, ids(admin))
}

func TestQueryIssuesRejectsUnknownSort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.QueryIssues(ctx, store.QuerySpec{SortBy: "votes; DROP TABLE issues"})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = s.QueryIssues(ctx, store.QuerySpec{SortBy: "title", Order: "sideways"})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestQueryIssuesPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	var all []uint
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		all = append(all, mustCreateIssue(t, s, nil, title, domain.CategoryWater).ID)
	}

	page2, err := s.QueryIssues(ctx, store.QuerySpec{SortBy: "id", Order: "asc", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, all[2:4], ids(page2))

	total, err := s.CountIssues(ctx, store.QuerySpec{Category: domain.CategoryWater})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestIssueViewCarriesReporterName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustRegister(t, s, "asha")
	mine := mustCreateIssue(t, s, &u.ID, "mine", domain.CategoryRoads)
	anon := mustCreateIssue(t, s, nil, "anon", domain.CategoryRoads)

	view, err := s.GetIssueView(ctx, mine.ID)
	require.NoError(t, err)
	require.NotNil(t, view.ReporterName)
	assert.Equal(t, "asha", *view.ReporterName)
	assert.Equal(t, "mine", view.Title)

	view, err = s.GetIssueView(ctx, anon.ID)
	require.NoError(t, err)
	assert.Nil(t, view.ReporterName)

	_, err = s.GetIssueView(ctx, 999)
	assert.ErrorIs(t, err, store.ErrIssueNotFound)
}

func TestQueryIssuesCacheStaysFresh(t *testing.T) {
	s, database, mr := newCachedStore(t)
	ctx := context.Background()
	issue := mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)

	// First read fills the cache
	got, err := s.QueryIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].VoteCount)
	assert.NotEmpty(t, mr.Keys())

	// A write that bypasses the store is not seen while cached
	require.NoError(t, database.Create(&domain.Vote{UserID: 7, IssueID: issue.ID}).Error)
	got, err = s.QueryIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	assert.Zero(t, got[0].VoteCount, "served from cache")

	// A vote through the store invalidates every cached listing
	require.NoError(t, s.CastVote(ctx, 8, issue.ID))
	got, err = s.QueryIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got[0].VoteCount)
}

func TestQueryIssuesDropsCorruptCacheEntry(t *testing.T) {
	s, _, mr := newCachedStore(t)
	ctx := context.Background()
	mustCreateIssue(t, s, nil, "Pothole", domain.CategoryRoads)

	_, err := s.QueryIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	var cached []string
	for _, k := range mr.Keys() {
		if k != "issues:gen" {
			cached = append(cached, k)
		}
	}
	require.Len(t, cached, 1)
	require.NoError(t, mr.Set(cached[0], "{not json"))

	got, err := s.QueryIssues(ctx, store.QuerySpec{})
	require.NoError(t, err)
	assert.Len(t, got, 1, "falls back to the database")
	refilled, err := mr.Get(cached[0])
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(refilled)), "entry rewritten from the database")
}

func TestAnalytics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Analytics(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.CategoryStats)
	assert.Zero(t, empty.TotalStats.TotalIssues)

	a := mustCreateIssue(t, s, nil, "a", domain.CategoryRoads)
	b := mustCreateIssue(t, s, nil, "b", domain.CategoryRoads)
	mustCreateIssue(t, s, nil, "c", domain.CategoryWater)
	require.NoError(t, s.UpdateStatus(ctx, a.ID, domain.StatusResolved, nil))
	require.NoError(t, s.UpdateStatus(ctx, b.ID, domain.StatusInProgress, nil))

	stats, err := s.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.CategoryCount{
		{Category: domain.CategoryRoads, Count: 2},
		{Category: domain.CategoryWater, Count: 1},
	}, stats.CategoryStats)
	assert.Equal(t, store.TotalStats{
		TotalIssues:      3,
		ResolvedIssues:   1,
		InProgressIssues: 1,
		PendingIssues:    1,
	}, stats.TotalStats)
	assert.Len(t, stats.StatusStats, 3)
}
