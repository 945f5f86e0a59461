package store

import (
	"context"
	"sort"
	"strings"

	"github.com/rcliao/meletao/internal/chunker"
	"github.com/rcliao/meletao/internal/insight"
	"github.com/rcliao/meletao/internal/model"
)

// Record kinds reported in search results.
const (
	KindJournal   = "journal"
	KindGoal      = "goal"
	KindGratitude = "gratitude"
)

// SearchParams holds parameters for searching records.
type SearchParams struct {
	Query string
	Kind  string
	Limit int
}

// SearchResult is one matching record.
type SearchResult struct {
	Kind      string          `json:"kind"`
	ID        string          `json:"id"`
	Title     string          `json:"title,omitempty"`
	Excerpt   string          `json:"excerpt"`
	Line      int             `json:"line,omitempty"`
	CreatedAt model.Timestamp `json:"createdAt"`
}

// Search finds records whose text contains the query, case-insensitively,
// newest first. Journal results carry the matching passage and its line.
func (s *Stores) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(model.CleanText(p.Query))
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
	want := func(kind string) bool { return p.Kind == "" || p.Kind == kind }

	var results []SearchResult
	if want(KindJournal) {
		entries, err := s.Journal.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !match(e.Title, e.Content) {
				continue
			}
			r := SearchResult{Kind: KindJournal, ID: e.ID, Title: e.Title,
				Excerpt: insight.Preview(e.Content, PreviewLength), CreatedAt: e.CreatedAt}
			// Show the passage that matched rather than the opening.
			if p, ok := chunker.Find(e.Content, q, PreviewLength); ok {
				r.Excerpt = insight.Preview(p.Text, PreviewLength)
				r.Line = p.StartLine
			}
			results = append(results, r)
		}
	}
	if want(KindGoal) {
		goals, err := s.Goals.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range goals {
			if match(g.Title, g.Description) {
				results = append(results, SearchResult{Kind: KindGoal, ID: g.ID, Title: g.Title,
					Excerpt: insight.Preview(g.Description, PreviewLength), CreatedAt: g.CreatedAt})
			}
		}
	}
	if want(KindGratitude) {
		notes, err := s.Gratitude.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			if match(n.Text) {
				results = append(results, SearchResult{Kind: KindGratitude, ID: n.ID,
					Excerpt: insight.Preview(n.Text, PreviewLength), CreatedAt: n.CreatedAt})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
