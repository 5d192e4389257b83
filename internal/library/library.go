// Package library holds the curated music and song catalogs for the
// refreshment corner. Playback is delegated to the system browser.
package library

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"quantumedge/internal/logging"
)

// Collection names one of the two catalogs.
type Collection string

const (
	CollectionMusic Collection = "music" // Relaxing Music
	CollectionSongs Collection = "songs" // Refreshing Songs
)

// Track is one playable entry.
type Track struct {
	Title   string
	Artist  string
	VideoID string
}

// URL returns the playable address of the track.
func (t Track) URL() string {
	return "https://www.youtube.com/watch?v=" + t.VideoID
}

var musicTracks = []Track{
	{Title: "Weightless", Artist: "Marconi Union", VideoID: "UfcAVejslrU"},
	{Title: "Clair de Lune", Artist: "Claude Debussy", VideoID: "CvFH_6DNRCY"},
	{Title: "lofi hip hop radio - beats to relax/study to", Artist: "Lofi Girl", VideoID: "5qap5aO4i9A"},
	{Title: "Time", Artist: "Hans Zimmer", VideoID: "RxabLA7UQ9k"},
	{Title: "One More Time", Artist: "Daft Punk", VideoID: "A_gI-6Y_AMw"},
	{Title: "Comptine d'un autre été", Artist: "Yann Tiersen", VideoID: "H2-1u8xvk54"},
	{Title: "Nuvole Bianche", Artist: "Ludovico Einaudi", VideoID: "kcihcYEOeic"},
}

var songTracks = []Track{
	{Title: "Everybody (Backstreet's Back)", Artist: "Backstreet Boys", VideoID: "O6XE1XRiLeY"},
	{Title: "Livin' On A Prayer", Artist: "Bon Jovi", VideoID: "lDK9gVbbemc"},
	{Title: "Don't Stop Me Now", Artist: "Queen", VideoID: "HgzGwKwLmgM"},
	{Title: "Don't Stop Believin'", Artist: "Journey", VideoID: "VcjzPHKF3p4"},
	{Title: "Walking on Sunshine", Artist: "Katrina & The Waves", VideoID: "iPUmE-tne5U"},
	{Title: "Happy", Artist: "Pharrell Williams", VideoID: "y6Sxv-sUYtM"},
	{Title: "Here Comes The Sun", Artist: "The Beatles", VideoID: "-6G73aPLaVw"},
	{Title: "Lovely Day", Artist: "Bill Withers", VideoID: "-c9-poC5HGw"},
	{Title: "Three Little Birds", Artist: "Bob Marley & The Wailers", VideoID: "zaGUr6wS_DE"},
	{Title: "Never Gonna Give You Up", Artist: "Rick Astley", VideoID: "dQw4w9WgXcQ"},
}

// Tracks returns the catalog for a collection.
func Tracks(c Collection) []Track {
	switch c {
	case CollectionSongs:
		return songTracks
	default:
		return musicTracks
	}
}

// Find locates the first track whose title or artist contains the query,
// case-insensitively, or whose video id matches exactly. Both catalogs are
// searched, music first.
func Find(query string) (Track, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return Track{}, false
	}
	for _, c := range []Collection{CollectionMusic, CollectionSongs} {
		for _, t := range Tracks(c) {
			if t.VideoID == query ||
				strings.Contains(strings.ToLower(t.Title), needle) ||
				strings.Contains(strings.ToLower(t.Artist), needle) {
				return t, true
			}
		}
	}
	return Track{}, false
}

// openCommand is replaceable in tests.
var openCommand = func(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// Play opens the track in the system browser.
func Play(t Track) error {
	logging.Audio("opening track %q by %s", t.Title, t.Artist)
	if err := openCommand(t.URL()); err != nil {
		return fmt.Errorf("failed to open %s: %w", t.URL(), err)
	}
	return nil
}
