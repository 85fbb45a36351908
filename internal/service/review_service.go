package service

import (
	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

// ReviewService builds the missed-words view from a student's
// accumulated results.
type ReviewService struct {
	store store.Store
}

// NewReviewService creates a new review service
func NewReviewService(st store.Store) *ReviewService {
	return &ReviewService{store: st}
}

// MissedWords returns every word the student has ever answered wrong,
// deduplicated by English term, oldest result first.
func (s *ReviewService) MissedWords(studentName string) ([]models.WordEntry, error) {
	results, err := s.store.ResultsByStudent(studentName)
	if err != nil {
		return nil, err
	}
	return AggregateWrongWords(results), nil
}

// AggregateWrongWords flattens results into a single missed-word list.
// Order follows first occurrence across results; a repeated English
// term keeps the entry it appeared with first.
func AggregateWrongWords(results []models.TestResult) []models.WordEntry {
	seen := make(map[string]bool)
	var words []models.WordEntry
	for _, result := range results {
		for _, word := range result.WrongWords {
			if seen[word.En] {
				continue
			}
			seen[word.En] = true
			words = append(words, word)
		}
	}
	return words
}
