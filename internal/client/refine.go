package client

import (
	"sort"    // Stable ordering
	"strings" // Case-insensitive matching
	"time"    // Date ranges
)

// Client side sort keys
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortVotes  = "votes"
	SortTitle  = "title"
)

// RefineOptions is the second, looser pass applied on top of a server result
type RefineOptions struct {
	Category string // Case-insensitive substring of the category, "" or "all" keeps everything
	Search   string // Case-insensitive substring of title, description, location or reporter
	Sort     string // One of the Sort constants or an accepted alias, defaults to latest
}

var sortAliases = map[string]string{
	"latest":     SortLatest,
	"newest":     SortLatest,
	"oldest":     SortOldest,
	"votes":      SortVotes,
	"most-voted": SortVotes,
	"most voted": SortVotes,
	"title":      SortTitle,
	"a-z":        SortTitle,
	"name":       SortTitle,
}

// NormalizeSort maps a sort choice to its key, unknown values fall back to latest
func NormalizeSort(v string) string {
	if key, ok := sortAliases[strings.ToLower(strings.TrimSpace(v))]; ok {
		return key
	}
	return SortLatest
}

// Refine filters, searches and sorts issues without touching the input slice.
//
// Unlike the server, the category filter matches by substring, so "road"
// keeps "Roads". Sorting is stable: equal keys keep the server's order.
func Refine(issues []Issue, opts RefineOptions) []Issue {
	category := strings.ToLower(strings.TrimSpace(opts.Category))
	if category == "all" {
		category = ""
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if category != "" && !strings.Contains(strings.ToLower(issue.Category), category) {
			continue
		}
		if search != "" && !strings.Contains(haystack(issue), search) {
			continue
		}
		out = append(out, issue)
	}

	switch NormalizeSort(opts.Sort) {
	case SortVotes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].VoteCount > out[j].VoteCount })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return createdAt(out[i]).Before(createdAt(out[j])) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return createdAt(out[i]).After(createdAt(out[j])) })
	}
	return out
}

func haystack(issue Issue) string {
	reporter := ""
	if issue.ReporterName != nil {
		reporter = *issue.ReporterName
	}
	return strings.ToLower(strings.Join([]string{issue.Title, issue.Description, issue.Location, reporter}, " "))
}

// createdAt treats a missing timestamp as the oldest possible
func createdAt(issue Issue) time.Time {
	if issue.CreatedAt == nil {
		return time.Time{}
	}
	return *issue.CreatedAt
}
