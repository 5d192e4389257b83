package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", FileName)
	want := Profile{Name: "Ada", Category: "Female"}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("complete profile loaded with ok=false")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadMissingTriggersOnboarding(t *testing.T) {
	_, ok, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("missing file returned error: %v", err)
	}
	if ok {
		t.Error("missing profile reported ok")
	}
}

func TestLoadCorruptTriggersOnboarding(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path)
	if err != nil {
		t.Fatalf("corrupt file returned error: %v", err)
	}
	if ok {
		t.Error("corrupt profile reported ok")
	}
}

func TestLoadIncompleteTriggersOnboarding(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"name":"Ada"}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("incomplete profile reported ok")
	}
}

func TestSaveRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, Profile{Name: "Ada"}); err == nil {
		t.Error("saved a profile without a category")
	}
	if err := Save(path, Profile{Name: "  ", Category: "Other"}); err == nil {
		t.Error("saved a profile with a blank name")
	}
}
