package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"ticket-storefront/internal/models"
)

// DefaultSearchThreshold is the relevance cutoff on a 0 (identical) to
// 1 (unrelated) scale. Events scoring at or below it are included.
const DefaultSearchThreshold = 0.4

// SearchService ranks a locally-held event list against a free-text query
// using approximate matching over title and description.
type SearchService struct {
	threshold float64
}

// NewSearchService creates a search service with the given relevance
// threshold. Values outside (0, 1] fall back to the default.
func NewSearchService(threshold float64) *SearchService {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSearchThreshold
	}
	return &SearchService{threshold: threshold}
}

// Search returns the events matching the query, best match first. An empty
// or whitespace query is the no-filter fast path: the input is returned
// unchanged in its original order. The function is pure; it is safe to call
// on every keystroke.
func (s *SearchService) Search(events []models.EventSummary, query string) []models.EventSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return events
	}

	type scored struct {
		event models.EventSummary
		score float64
	}

	matches := make([]scored, 0, len(events))
	for _, event := range events {
		score := fieldScore(event.Title, query)
		if descScore := fieldScore(event.Description, query); descScore < score {
			score = descScore
		}
		if score <= s.threshold {
			matches = append(matches, scored{event: event, score: score})
		}
	}

	// Stable sort keeps catalog order for ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	results := make([]models.EventSummary, len(matches))
	for i, m := range matches {
		results[i] = m.event
	}
	return results
}

// fieldScore scores how well a field matches the query: 0 is identical,
// 1 is unrelated. A case-insensitive substring hit scores near zero, diluted
// slightly by how much of the field it covers so tighter matches rank first.
// Otherwise the score is the best normalized edit distance between the query
// and any single word of the field, which tolerates typos without letting a
// long description drown the comparison.
func fieldScore(field, query string) float64 {
	field = strings.ToLower(strings.TrimSpace(field))
	query = strings.ToLower(query)
	if field == query {
		return 0
	}
	if field == "" {
		return 1
	}
	if strings.Contains(field, query) {
		return 0.1 * (1 - float64(len(query))/float64(len(field)))
	}

	best := 1.0
	for _, word := range strings.Fields(field) {
		longer := len(query)
		if len(word) > longer {
			longer = len(word)
		}
		score := float64(levenshtein.ComputeDistance(query, word)) / float64(longer)
		if score < best {
			best = score
		}
	}
	return best
}
