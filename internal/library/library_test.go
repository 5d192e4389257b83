package library

import (
	"errors"
	"testing"
)

func TestCatalogs(t *testing.T) {
	music := Tracks(CollectionMusic)
	songs := Tracks(CollectionSongs)

	if len(music) != 7 {
		t.Errorf("music catalog has %d tracks, want 7", len(music))
	}
	if len(songs) != 10 {
		t.Errorf("song catalog has %d tracks, want 10", len(songs))
	}
	for _, tr := range append(append([]Track{}, music...), songs...) {
		if tr.Title == "" || tr.Artist == "" || tr.VideoID == "" {
			t.Errorf("incomplete track: %+v", tr)
		}
	}
}

func TestTrackURL(t *testing.T) {
	tr := Track{Title: "Weightless", Artist: "Marconi Union", VideoID: "UfcAVejslrU"}
	if got := tr.URL(); got != "https://www.youtube.com/watch?v=UfcAVejslrU" {
		t.Errorf("URL = %q", got)
	}
}

func TestFind(t *testing.T) {
	cases := []struct {
		query string
		title string
		ok    bool
	}{
		{"weightless", "Weightless", true},
		{"QUEEN", "Don't Stop Me Now", true},
		{"dQw4w9WgXcQ", "Never Gonna Give You Up", true},
		{"sunshine", "Walking on Sunshine", true},
		{"", "", false},
		{"  ", "", false},
		{"polka", "", false},
	}
	for _, tc := range cases {
		got, ok := Find(tc.query)
		if ok != tc.ok {
			t.Errorf("Find(%q) ok = %v, want %v", tc.query, ok, tc.ok)
			continue
		}
		if ok && got.Title != tc.title {
			t.Errorf("Find(%q) = %q, want %q", tc.query, got.Title, tc.title)
		}
	}
}

func TestPlayUsesOpener(t *testing.T) {
	orig := openCommand
	defer func() { openCommand = orig }()

	var opened string
	openCommand = func(url string) error {
		opened = url
		return nil
	}

	tr, _ := Find("happy")
	if err := Play(tr); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if opened != tr.URL() {
		t.Errorf("opened %q, want %q", opened, tr.URL())
	}

	openCommand = func(url string) error { return errors.New("no browser") }
	if err := Play(tr); err == nil {
		t.Error("opener failure swallowed")
	}
}
