package client_test

import (
	"civic_reports/internal/client"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func sample() []client.Issue {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []client.Issue{
		{ID: 1, Title: "Pothole near school", Category: "Roads", Location: "MG Road", VoteCount: 2, CreatedAt: ptr(base)},
		{ID: 2, Title: "Broken pipe", Category: "Water", Description: "leaking onto the road", VoteCount: 5, CreatedAt: ptr(base.Add(time.Hour))},
		{ID: 3, Title: "arterial roads flooded", Category: "Roads", ReporterName: ptr("meera"), VoteCount: 5, CreatedAt: ptr(base.Add(2 * time.Hour))},
		{ID: 4, Title: "Garbage", Category: "Garbage", VoteCount: 0},
	}
}

func idsOf(issues []client.Issue) []uint {
	out := make([]uint, len(issues))
	for i, issue := range issues {
		out[i] = issue.ID
	}
	return out
}

func TestRefineCategoryIsSubstring(t *testing.T) {
	got := client.Refine(sample(), client.RefineOptions{Category: "road"})
	assert.Equal(t, []uint{3, 1}, idsOf(got), "latest first")

	got = client.Refine(sample(), client.RefineOptions{Category: "All"})
	assert.Len(t, got, 4)
}

func TestRefineSearch(t *testing.T) {
	got := client.Refine(sample(), client.RefineOptions{Search: "ROAD", Sort: "oldest"})
	assert.Equal(t, []uint{1, 2, 3}, idsOf(got), "title, description and location are searched")

	got = client.Refine(sample(), client.RefineOptions{Search: "meera"})
	assert.Equal(t, []uint{3}, idsOf(got), "reporter name is searched")

	got = client.Refine(sample(), client.RefineOptions{Search: "nothing like this"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestRefineSorts(t *testing.T) {
	// Stable: 2 and 3 tie on votes and keep their input order
	assert.Equal(t, []uint{2, 3, 1, 4}, idsOf(client.Refine(sample(), client.RefineOptions{Sort: "most-voted"})))
	assert.Equal(t, []uint{3, 2, 4, 1}, idsOf(client.Refine(sample(), client.RefineOptions{Sort: "title"})))
	// Missing timestamps sort as the oldest
	assert.Equal(t, []uint{4, 1, 2, 3}, idsOf(client.Refine(sample(), client.RefineOptions{Sort: client.SortOldest})))
	assert.Equal(t, []uint{3, 2, 1, 4}, idsOf(client.Refine(sample(), client.RefineOptions{})))
}

func TestRefineLeavesInputAlone(t *testing.T) {
	in := sample()
	client.Refine(in, client.RefineOptions{Sort: "votes", Category: "roads"})
	assert.Equal(t, []uint{1, 2, 3, 4}, idsOf(in))
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, client.SortVotes, client.NormalizeSort(" Most Voted "))
	assert.Equal(t, client.SortTitle, client.NormalizeSort("a-z"))
	assert.Equal(t, client.SortLatest, client.NormalizeSort("whatever"))
}
