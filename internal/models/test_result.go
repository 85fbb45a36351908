package models

import "time"

// TestResult records one finished quiz. It is written exactly once at
// finalization and never updated or deleted. WrongWords is a snapshot
// copy of the missed entries, not a reference into the wordbook, so
// later wordbook edits do not affect it.
type TestResult struct {
	ID            string      `json:"id"`
	StudentName   string      `json:"studentName"`
	WordbookTitle string      `json:"wordbookTitle"`
	Score         int         `json:"score"`
	Total         int         `json:"total"`
	WrongWords    []WordEntry `json:"wrongWords"`
	Timestamp     time.Time   `json:"timestamp"`
}
