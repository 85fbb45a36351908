package service

import (
	"errors"
	"testing"

	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

func TestParseWordBlock(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []models.WordEntry
	}{
		{
			name:  "mixed valid and invalid lines",
			block: "cat,고양이\ndog\n ,비어있음\nbird,새,extra\n\nfish,물고기",
			want: []models.WordEntry{
				{En: "cat", Ko: "고양이"},
				{En: "bird", Ko: "새"},
				{En: "fish", Ko: "물고기"},
			},
		},
		{
			name:  "comma-only and no-comma lines dropped",
			block: "apple, 사과\nbanana,바나나\nmalformed_line\n,\ncherry, 체리",
			want: []models.WordEntry{
				{En: "apple", Ko: "사과"},
				{En: "banana", Ko: "바나나"},
				{En: "cherry", Ko: "체리"},
			},
		},
		{
			name:  "whitespace around fields",
			block: "  cat , 고양이  ",
			want:  []models.WordEntry{{En: "cat", Ko: "고양이"}},
		},
		{
			name:  "empty block",
			block: "",
			want:  nil,
		},
		{
			name:  "only invalid lines",
			block: "justoneword\n,\n,missing",
			want:  nil,
		},
		{
			name:  "extra fields ignored",
			block: "run,달리다,verb,common",
			want:  []models.WordEntry{{En: "run", Ko: "달리다"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWordBlock(tt.block)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWordbookCreate(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewWordbookService(st, nil)

	if err := svc.Create("Set1", "cat,고양이", "Alice"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	wordbooks, err := st.Wordbooks()
	if err != nil {
		t.Fatalf("Wordbooks() error: %v", err)
	}
	if len(wordbooks) != 1 {
		t.Fatalf("got %d wordbooks, want 1", len(wordbooks))
	}
	wb := wordbooks[0]
	if wb.Title != "Set1" || wb.Author != "Alice" {
		t.Errorf("wordbook = %+v", wb)
	}
	if wb.ID == "" {
		t.Error("wordbook should get an id")
	}
	if len(wb.Words) != 1 || wb.Words[0].En != "cat" {
		t.Errorf("words = %+v", wb.Words)
	}
}

func TestWordbookCreateErrors(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewWordbookService(st, nil)

	if err := svc.Create("  ", "cat,고양이", "Alice"); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title: got %v, want ErrEmptyTitle", err)
	}
	if err := svc.Create("Set1", "no commas here", "Alice"); !errors.Is(err, ErrNoValidWords) {
		t.Errorf("no valid lines: got %v, want ErrNoValidWords", err)
	}

	wordbooks, _ := st.Wordbooks()
	if len(wordbooks) != 0 {
		t.Errorf("got %d wordbooks after failed creates, want 0", len(wordbooks))
	}
}

func TestWordbookDelete(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewWordbookService(st, nil)

	if err := svc.Create("Set1", "cat,고양이", "Alice"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	wordbooks, _ := st.Wordbooks()
	svc.Delete(wordbooks[0].ID)

	wordbooks, _ = st.Wordbooks()
	if len(wordbooks) != 0 {
		t.Errorf("got %d wordbooks after delete, want 0", len(wordbooks))
	}
}
