package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory("", 0)
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_Add(t *testing.T) {
	h := NewHistory("", 10)

	h.Add("team list")
	h.Add("  ")
	h.Add("team list")
	h.Add(" whoami ")
	h.Add("team list")

	want := []string{"team list", "whoami", "team list"}
	got := h.Entries()
	if len(got) != len(want) {
		t.Fatalf("entries = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_Add_MaxSize(t *testing.T) {
	h := NewHistory("", 3)

	h.Add("cmd1")
	h.Add("cmd2")
	h.Add("cmd3")
	h.Add("cmd4")

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if e := h.Entries(); e[0] != "cmd2" {
		t.Errorf("oldest = %q, want cmd2", e[0])
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("first")
	h.Add("second")
	h.Add("third")

	tests := []struct {
		index int
		want  string
	}{
		{0, "third"},
		{1, "second"},
		{2, "first"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_EntriesIsACopy(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("whoami")

	e := h.Entries()
	e[0] = "changed"
	if h.Get(0) != "whoami" {
		t.Error("Entries exposed internal state")
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(file, 10)
	h.Add("login --email ana@trailguard.app")
	h.Add("team send 3 'see you there'")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("history file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
	dirInfo, err := os.Stat(filepath.Dir(file))
	if err != nil {
		t.Fatal(err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0o700 {
		t.Errorf("dir mode = %o, want 700", perm)
	}

	loaded := NewHistory(file, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 || loaded.Get(0) != "team send 3 'see you there'" {
		t.Errorf("loaded = %q", loaded.Entries())
	}
}

func TestHistory_LoadTrimsToMaxSize(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(file, []byte("a\nb\nc\nd\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(file, 2)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e := h.Entries(); len(e) != 2 || e[0] != "c" || e[1] != "d" {
		t.Errorf("entries = %q, want [c d]", e)
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"), 10)
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d", h.Len())
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("whoami")
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}
