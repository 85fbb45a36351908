package models

// Direction selects which side of a word pair is prompted.
type Direction string

const (
	// DirectionForward prompts the English term and expects the Korean
	// meaning, graded by exact match after trimming.
	DirectionForward Direction = "forward"
	// DirectionReverse prompts the Korean meaning and expects the
	// English term, graded case-insensitively after trimming.
	DirectionReverse Direction = "reverse"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionForward || d == DirectionReverse
}

// QuizState is the lifecycle of one quiz session.
type QuizState string

const (
	QuizNotStarted QuizState = "not_started"
	QuizInProgress QuizState = "in_progress"
	QuizFinished   QuizState = "finished"
)

// QuizPrompt is what the client needs to render the current word.
type QuizPrompt struct {
	Prompt    string `json:"prompt"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Speakable bool   `json:"speakable"` // true when the prompt is the English side
}
