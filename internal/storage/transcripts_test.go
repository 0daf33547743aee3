// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"testing"

	"github.com/jeranaias/ollamachat/internal/model"
)

func newTestStore(t *testing.T) *TranscriptStore {
	t.Helper()
	store, err := NewTranscriptStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func newTestTranscript(userContent string) *model.Transcript {
	tr := model.NewTranscriptWithModel("llama3.2")
	tr.AppendUser(userContent)
	tr.Append(model.NewAssistantMessage("a reply", "llama3.2"))
	return tr
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	tr := newTestTranscript("hello there")
	id, err := store.Save(tr)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id != tr.ID {
		t.Errorf("Save returned %q, want transcript ID %q", id, tr.ID)
	}

	loaded, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("loaded %d messages, want 2", loaded.Len())
	}
	if loaded.Model != "llama3.2" {
		t.Errorf("loaded model = %q", loaded.Model)
	}
	if loaded.Messages[0].Content != "hello there" {
		t.Errorf("first message = %q", loaded.Messages[0].Content)
	}
}

func TestSaveIsSnapshot(t *testing.T) {
	store := newTestStore(t)

	tr := newTestTranscript("before save")
	id, err := store.Save(tr)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Appending after the save must not alter the stored snapshot.
	tr.AppendUser("after save")

	loaded, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("snapshot has %d messages, want 2", loaded.Len())
	}
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("chat_nonexistent")
	if !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("err = %v, want ErrTranscriptNotFound", err)
	}
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(newTestTranscript("first chat")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(newTestTranscript("second chat")); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(metas))
	}
	for _, meta := range metas {
		if meta.MessageCount != 2 {
			t.Errorf("MessageCount = %d, want 2", meta.MessageCount)
		}
		if meta.Preview == "" {
			t.Error("Preview should come from the first user message")
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	store := newTestStore(t)

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("List returned %d entries, want 0", len(metas))
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Save(newTestTranscript("to delete"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(id); !errors.Is(err, ErrTranscriptNotFound) {
		t.Error("transcript should be gone after Delete")
	}
	if err := store.Delete(id); !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("second Delete = %v, want ErrTranscriptNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	store.Save(newTestTranscript("one"))
	store.Save(newTestTranscript("two"))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	metas, _ := store.List()
	if len(metas) != 0 {
		t.Errorf("List after Clear returned %d entries", len(metas))
	}
}

func TestEnforceLimit(t *testing.T) {
	store := newTestStore(t)
	store.MaxTranscripts = 3

	for i := 0; i < 5; i++ {
		if _, err := store.Save(newTestTranscript("chat")); err != nil {
			t.Fatal(err)
		}
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) > 3 {
		t.Errorf("store holds %d transcripts, limit is 3", len(metas))
	}
}

func TestSearchMessages(t *testing.T) {
	store := newTestStore(t)

	store.Save(newTestTranscript("tell me about gophers"))
	store.Save(newTestTranscript("what is the weather"))

	results, err := store.SearchMessages("gophers")
	if err != nil {
		t.Fatalf("SearchMessages failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("SearchMessages returned %d results, want 1", len(results))
	}

	// Empty query lists everything.
	all, err := store.SearchMessages("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("empty query returned %d results, want 2", len(all))
	}
}

func TestFormatTranscriptList(t *testing.T) {
	if got := FormatTranscriptList(nil); got != "No saved chats." {
		t.Errorf("empty list format = %q", got)
	}

	store := newTestStore(t)
	store.Save(newTestTranscript("formatting check"))
	metas, _ := store.List()

	out := FormatTranscriptList(metas)
	if out == "" || out == "No saved chats." {
		t.Error("list format should include the saved chat")
	}
}
