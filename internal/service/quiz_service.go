package service

import (
	"errors"
	"strings"
	"sync"

	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

var (
	ErrEmptyWordbook    = errors.New("wordbook has no words")
	ErrWordbookNotFound = errors.New("wordbook not found")
	ErrBadDirection     = errors.New("unknown quiz direction")
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
)

// QuizService drives quiz sessions. One session per student name, held
// in memory; each session walks its wordbook snapshot exactly once in
// order, and finalization persists a single immutable TestResult.
type QuizService struct {
	store store.Store

	mu       sync.Mutex
	sessions map[string]*quizSession
}

type quizSession struct {
	wordbookTitle string
	words         []models.WordEntry // snapshot at start, not live-linked
	direction     models.Direction
	cursor        int
	correct       int
	wrong         []models.WordEntry
	state         models.QuizState
}

// SubmitOutcome reports the grading of one answer. Next is nil when the
// session just finished.
type SubmitOutcome struct {
	Correct  bool               `json:"correct"`
	Expected string             `json:"expected"`
	Finished bool               `json:"finished"`
	Score    int                `json:"score"`
	Total    int                `json:"total"`
	Wrong    []models.WordEntry `json:"wrong,omitempty"`
	Next     *models.QuizPrompt `json:"next,omitempty"`
}

// NewQuizService creates a new quiz service
func NewQuizService(st store.Store) *QuizService {
	return &QuizService{
		store:    st,
		sessions: make(map[string]*quizSession),
	}
}

// Start begins a quiz over the given wordbook. Any previous session for
// the student is discarded.
func (s *QuizService) Start(studentName, wordbookID string, direction models.Direction) (*models.QuizPrompt, error) {
	if !direction.Valid() {
		return nil, ErrBadDirection
	}

	wb, err := s.store.Wordbook(wordbookID)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, ErrWordbookNotFound
	}
	if len(wb.Words) == 0 {
		return nil, ErrEmptyWordbook
	}

	session := &quizSession{
		wordbookTitle: wb.Title,
		words:         append([]models.WordEntry(nil), wb.Words...),
		direction:     direction,
		state:         models.QuizInProgress,
	}

	s.mu.Lock()
	s.sessions[studentName] = session
	s.mu.Unlock()

	return session.prompt(), nil
}

// Submit grades one answer for the student's active session. On the
// last word the session finalizes: a TestResult is appended to the
// store (fire-and-forget) and the session moves to finished.
func (s *QuizService) Submit(studentName, rawInput string) (*SubmitOutcome, error) {
	s.mu.Lock()
	session, ok := s.sessions[studentName]
	if !ok || session.state != models.QuizInProgress {
		s.mu.Unlock()
		return nil, ErrNoActiveQuiz
	}

	word := session.words[session.cursor]
	correct, expected := grade(word, session.direction, rawInput)

	if correct {
		session.correct++
	} else {
		session.wrong = append(session.wrong, word)
	}

	outcome := &SubmitOutcome{
		Correct:  correct,
		Expected: expected,
		Score:    session.correct,
		Total:    len(session.words),
	}

	if session.cursor+1 < len(session.words) {
		session.cursor++
		outcome.Next = session.prompt()
		s.mu.Unlock()
		return outcome, nil
	}

	// Last word: finalize
	session.state = models.QuizFinished
	outcome.Finished = true
	outcome.Wrong = append([]models.WordEntry(nil), session.wrong...)
	result := models.TestResult{
		StudentName:   studentName,
		WordbookTitle: session.wordbookTitle,
		Score:         session.correct,
		Total:         len(session.words),
		WrongWords:    append([]models.WordEntry(nil), session.wrong...),
	}
	s.mu.Unlock()

	s.store.Append(store.KindTestResults, result)

	return outcome, nil
}

// Reset discards the student's session. Persisted results are untouched.
func (s *QuizService) Reset(studentName string) {
	s.mu.Lock()
	delete(s.sessions, studentName)
	s.mu.Unlock()
}

// State reports the student's session state
func (s *QuizService) State(studentName string) models.QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[studentName]
	if !ok {
		return models.QuizNotStarted
	}
	return session.state
}

// grade checks rawInput against the answer side of word. Forward quizzes
// expect the Korean meaning with an exact match after trimming; reverse
// quizzes expect the English term case-insensitively after trimming.
// The asymmetry is deliberate: Korean answers need exact spacing and
// diacritics, English answers tolerate case.
func grade(word models.WordEntry, direction models.Direction, rawInput string) (bool, string) {
	input := strings.TrimSpace(rawInput)

	if direction == models.DirectionForward {
		expected := strings.TrimSpace(word.Ko)
		return input == expected, expected
	}

	expected := strings.TrimSpace(word.En)
	return strings.EqualFold(input, expected), expected
}

func (q *quizSession) prompt() *models.QuizPrompt {
	word := q.words[q.cursor]
	p := &models.QuizPrompt{
		Index: q.cursor,
		Total: len(q.words),
	}
	if q.direction == models.DirectionForward {
		p.Prompt = word.En
		p.Speakable = true
	} else {
		p.Prompt = word.Ko
	}
	return p
}
