package store

import (
	"testing"

	"vocamaster/internal/models"
)

func TestSubscribeFiresImmediately(t *testing.T) {
	st := NewMemoryStore()
	st.Append(KindStudents, models.Student{Name: "Alice"})

	var got []models.Student
	calls := 0
	st.Subscribe(KindStudents, func(records interface{}) {
		calls++
		got = records.([]models.Student)
	})

	if calls != 1 {
		t.Fatalf("subscriber called %d times, want 1", calls)
	}
	if len(got) != 1 || got[0].Name != "Alice" {
		t.Errorf("snapshot = %+v, want existing roster", got)
	}
}

func TestSubscribeNotifiedOnAppendAndRemove(t *testing.T) {
	st := NewMemoryStore()

	var got []models.Student
	calls := 0
	st.Subscribe(KindStudents, func(records interface{}) {
		calls++
		got = records.([]models.Student)
	})

	st.Append(KindStudents, models.Student{Name: "Alice"})
	if calls != 2 {
		t.Fatalf("subscriber called %d times after append, want 2", calls)
	}
	if len(got) != 1 {
		t.Fatalf("snapshot after append = %+v", got)
	}

	st.Remove(KindStudents, got[0].ID)
	if calls != 3 {
		t.Fatalf("subscriber called %d times after remove, want 3", calls)
	}
	if len(got) != 0 {
		t.Errorf("snapshot after remove = %+v, want empty", got)
	}
}

func TestSubscriptionsArePerKind(t *testing.T) {
	st := NewMemoryStore()

	studentCalls := 0
	st.Subscribe(KindStudents, func(interface{}) { studentCalls++ })

	st.Append(KindWordbooks, models.Wordbook{Title: "Set1"})

	// One wordbook append must not wake the students subscriber
	if studentCalls != 1 {
		t.Errorf("students subscriber called %d times, want only the initial snapshot", studentCalls)
	}
}

func TestUnsubscribeStopsUpdates(t *testing.T) {
	st := NewMemoryStore()

	calls := 0
	cancel := st.Subscribe(KindStudents, func(interface{}) { calls++ })
	cancel()

	st.Append(KindStudents, models.Student{Name: "Alice"})
	if calls != 1 {
		t.Errorf("subscriber called %d times after cancel, want 1", calls)
	}
}

func TestAppendOnlyKindsRejectRemove(t *testing.T) {
	st := NewMemoryStore()
	st.Append(KindNotifications, models.Notification{Message: "hello"})
	st.Append(KindTestResults, models.TestResult{StudentName: "Alice", Score: 1, Total: 1})

	notifications, _ := st.Notifications()
	st.Remove(KindNotifications, notifications[0].ID)
	results, _ := st.Results()
	st.Remove(KindTestResults, results[0].ID)

	notifications, _ = st.Notifications()
	if len(notifications) != 1 {
		t.Errorf("notifications = %d, want 1 (append-only)", len(notifications))
	}
	results, _ = st.Results()
	if len(results) != 1 {
		t.Errorf("results = %d, want 1 (append-only)", len(results))
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	st := NewMemoryStore()
	st.Append(KindTestResults, models.TestResult{StudentName: "Alice", Score: 1, Total: 2})

	results, _ := st.Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ID == "" {
		t.Error("result should get an id")
	}
	if r.Timestamp.IsZero() {
		t.Error("result should get a timestamp")
	}
	if r.WrongWords == nil {
		t.Error("wrong words should never be nil")
	}
}

func TestArrivalOrderPreserved(t *testing.T) {
	st := NewMemoryStore()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		st.Append(KindStudents, models.Student{Name: name})
	}

	students, _ := st.Students()
	want := []string{"Alice", "Bob", "Carol"}
	for i, name := range want {
		if students[i].Name != name {
			t.Errorf("students[%d] = %q, want %q", i, students[i].Name, name)
		}
	}
}
