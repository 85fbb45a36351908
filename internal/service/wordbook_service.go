package service

import (
	"errors"
	"log"
	"strings"

	"vocamaster/internal/audio"
	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

var (
	ErrEmptyTitle   = errors.New("title is required")
	ErrNoValidWords = errors.New("no valid word lines found")
)

// WordbookService manages wordbook publishing.
type WordbookService struct {
	store store.Store
	tts   *audio.TTSService
}

// NewWordbookService creates a new wordbook service. tts may be nil,
// in which case publishing skips the audio cache warm-up.
func NewWordbookService(st store.Store, tts *audio.TTSService) *WordbookService {
	return &WordbookService{store: st, tts: tts}
}

// Create parses the pasted word block and publishes a wordbook under
// the given author name.
func (s *WordbookService) Create(title, block, author string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	words := ParseWordBlock(block)
	if len(words) == 0 {
		return ErrNoValidWords
	}

	s.store.Append(store.KindWordbooks, models.Wordbook{
		Title:  title,
		Words:  words,
		Author: author,
	})

	// Warm the audio cache so the first quiz over this wordbook does
	// not wait on the speech fetch.
	if s.tts != nil {
		terms := make([]string, len(words))
		for i, w := range words {
			terms[i] = w.En
		}
		go func() {
			for word, err := range s.tts.Pregenerate(terms) {
				log.Printf("Failed to pregenerate audio for %q: %v", word, err)
			}
		}()
	}
	return nil
}

// Delete removes a wordbook by id.
func (s *WordbookService) Delete(id string) {
	s.store.Remove(store.KindWordbooks, id)
}

// ParseWordBlock turns pasted "english,korean" lines into word entries.
// A line needs at least two comma-separated fields with both the first
// and second non-empty after trimming; extra fields are ignored and
// bad lines are dropped without error.
func ParseWordBlock(block string) []models.WordEntry {
	var words []models.WordEntry
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		en := strings.TrimSpace(fields[0])
		ko := strings.TrimSpace(fields[1])
		if en == "" || ko == "" {
			continue
		}
		words = append(words, models.WordEntry{En: en, Ko: ko})
	}
	return words
}
