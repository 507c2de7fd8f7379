package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestNoteSaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.NoteRepo()
	ctx := context.Background()

	notes, err := repo.List(ctx, "learner-1")
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}

	n := &Note{
		OwnerID:       "learner-1",
		Title:         "photosynthesis.txt",
		Content:       "# Study Notes\n\nChlorophyll absorbs light.",
		SourcePath:    "/docs/photosynthesis.txt",
		ConceptCount:  4,
		MasteredCount: 2,
	}
	if err := repo.Save(ctx, n); err != nil {
		t.Fatalf("save: %v", err)
	}
	if n.ID == 0 {
		t.Error("expected ID to be filled in after save")
	}
	if n.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled in after save")
	}

	notes, err = repo.List(ctx, "learner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Title != "photosynthesis.txt" {
		t.Errorf("title = %q", notes[0].Title)
	}
	if notes[0].MasteredCount != 2 {
		t.Errorf("mastered count = %d, want 2", notes[0].MasteredCount)
	}
}

func TestNoteListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.NoteRepo()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := repo.Save(ctx, &Note{OwnerID: "learner-1", Title: title, Content: "x"}); err != nil {
			t.Fatalf("save %q: %v", title, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	notes, err := repo.List(ctx, "learner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if notes[0].Title != "third" {
		t.Errorf("newest note = %q, want 'third'", notes[0].Title)
	}
}

func TestNoteGetAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.NoteRepo()
	ctx := context.Background()

	n := &Note{OwnerID: "learner-1", Title: "a", Content: "b"}
	if err := repo.Save(ctx, n); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "learner-1", n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Title != "a" {
		t.Fatalf("get = %+v, want title 'a'", got)
	}

	missing, err := repo.Get(ctx, "learner-1", n.ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing note")
	}

	deleted, err := repo.Delete(ctx, "learner-1", n.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = repo.Delete(ctx, "learner-1", n.ID)
	if err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}
}

func TestNoteOwnerIsolation(t *testing.T) {
	s := openTestStore(t)
	repo := s.NoteRepo()
	ctx := context.Background()

	mine := &Note{OwnerID: "alice", Title: "mine", Content: "x"}
	theirs := &Note{OwnerID: "bob", Title: "theirs", Content: "y"}
	for _, n := range []*Note{mine, theirs} {
		if err := repo.Save(ctx, n); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	notes, err := repo.List(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "mine" {
		t.Fatalf("list for alice = %+v, want only 'mine'", notes)
	}

	cross, err := repo.Get(ctx, "alice", theirs.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cross != nil {
		t.Error("alice can read bob's note")
	}

	deleted, err := repo.Delete(ctx, "alice", theirs.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Error("alice deleted bob's note")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "answer-eval", InputTokens: 200, OutputTokens: 30, LatencyMs: 600, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "question-gen", InputTokens: 120, OutputTokens: 60, LatencyMs: 900, Success: false, ErrorMessage: "rate limited"},
	}
	for i, data := range events {
		if err := repo.AppendLLMRequest(ctx, data); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}

	// Newest first.
	if got[0].Purpose != "question-gen" || got[0].Success {
		t.Errorf("first event = %+v, want the failed question-gen", got[0])
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", got[0].Sequence, got[1].Sequence)
	}

	// Purpose filter.
	evals, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "answer-eval"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("expected 1 answer-eval event, got %d", len(evals))
	}

	// Limit.
	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 events, got %d", len(limited))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o",
		Purpose:      "summary",
		Success:      true,
		RequestBody:  "[system]\nsummarize",
		ResponseBody: `{"summary":"ok"}`,
	}
	if err := repo.AppendLLMRequest(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected non-nil event")
	}
	if e.RequestBody != data.RequestBody {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != data.ResponseBody {
		t.Errorf("response body = %q", e.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(ctx, e.ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen",
			InputTokens: 100, OutputTokens: 40, LatencyMs: 500, Success: true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "summary",
		InputTokens: 300, OutputTokens: 200, LatencyMs: 1500, Success: true,
	})
	if err != nil {
		t.Fatalf("append summary: %v", err)
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}

	byPurpose := make(map[string]LLMUsage, len(usage))
	for _, u := range usage {
		byPurpose[u.Purpose] = u
	}

	qg, ok := byPurpose["question-gen"]
	if !ok {
		t.Fatal("missing question-gen usage row")
	}
	if qg.Calls != 3 {
		t.Errorf("question-gen calls = %d, want 3", qg.Calls)
	}
	if qg.InputTokens != 300 {
		t.Errorf("question-gen input tokens = %d, want 300", qg.InputTokens)
	}
	if qg.AvgLatencyMs != 500 {
		t.Errorf("question-gen avg latency = %d, want 500", qg.AvgLatencyMs)
	}

	sm, ok := byPurpose["summary"]
	if !ok {
		t.Fatal("missing summary usage row")
	}
	if sm.OutputTokens != 200 {
		t.Errorf("summary output tokens = %d, want 200", sm.OutputTokens)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	models := []string{"gpt-4o", "gpt-4o", "claude-sonnet-4-5"}
	for i, m := range models {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "test", Model: m, Purpose: "answer-eval",
			InputTokens: 10, OutputTokens: 5, Success: true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 model rows, got %d", len(usage))
	}

	byModel := make(map[string]LLMModelUsage, len(usage))
	for _, u := range usage {
		byModel[u.Model] = u
	}
	if byModel["gpt-4o"].Calls != 2 {
		t.Errorf("gpt-4o calls = %d, want 2", byModel["gpt-4o"].Calls)
	}
	if byModel["gpt-4o"].InputTokens != 20 {
		t.Errorf("gpt-4o input tokens = %d, want 20", byModel["gpt-4o"].InputTokens)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"notes", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}
