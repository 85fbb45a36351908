package service

import (
	"testing"

	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

func TestAggregateWrongWords(t *testing.T) {
	tests := []struct {
		name    string
		results []models.TestResult
		want    []string
	}{
		{
			name:    "no results",
			results: nil,
			want:    nil,
		},
		{
			name: "single result",
			results: []models.TestResult{
				{WrongWords: []models.WordEntry{{En: "cat", Ko: "고양이"}}},
			},
			want: []string{"cat"},
		},
		{
			name: "duplicates across results keep first occurrence",
			results: []models.TestResult{
				{WrongWords: []models.WordEntry{{En: "cat", Ko: "고양이"}, {En: "dog", Ko: "개"}}},
				{WrongWords: []models.WordEntry{{En: "dog", Ko: "개"}, {En: "bird", Ko: "새"}}},
			},
			want: []string{"cat", "dog", "bird"},
		},
		{
			name: "result with no wrong words",
			results: []models.TestResult{
				{WrongWords: []models.WordEntry{}},
				{WrongWords: []models.WordEntry{{En: "cat", Ko: "고양이"}}},
			},
			want: []string{"cat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateWrongWords(tt.results)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d words, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, en := range tt.want {
				if got[i].En != en {
					t.Errorf("word %d = %q, want %q", i, got[i].En, en)
				}
			}
		})
	}
}

func TestMissedWordsPerStudent(t *testing.T) {
	st := store.NewMemoryStore()
	st.Append(store.KindTestResults, models.TestResult{
		StudentName: "Alice",
		WrongWords:  []models.WordEntry{{En: "cat", Ko: "고양이"}},
	})
	st.Append(store.KindTestResults, models.TestResult{
		StudentName: "Bob",
		WrongWords:  []models.WordEntry{{En: "dog", Ko: "개"}},
	})

	svc := NewReviewService(st)
	words, err := svc.MissedWords("Alice")
	if err != nil {
		t.Fatalf("MissedWords() error: %v", err)
	}
	if len(words) != 1 || words[0].En != "cat" {
		t.Errorf("Alice's missed words = %+v, want [cat]", words)
	}
}
