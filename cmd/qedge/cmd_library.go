package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quantumedge/internal/library"
)

var libraryPlay string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the curated music & song library",
	Long: `Lists the relaxing-music and refreshing-songs catalogs. With --play,
opens the first track matching the query in your browser.

Example:
  qedge library
  qedge library --play "coffee"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if libraryPlay != "" {
			track, ok := library.Find(libraryPlay)
			if !ok {
				return fmt.Errorf("no track matches %q", libraryPlay)
			}
			fmt.Printf("Opening %s — %s\n", track.Title, track.Artist)
			return library.Play(track)
		}

		fmt.Println("Relaxing Music 🎵")
		for _, t := range library.Tracks(library.CollectionMusic) {
			fmt.Printf("  %-34s %s\n", t.Title, t.Artist)
		}
		fmt.Println("\nRefreshing Songs 🎤")
		for _, t := range library.Tracks(library.CollectionSongs) {
			fmt.Printf("  %-34s %s\n", t.Title, t.Artist)
		}
		fmt.Println("\nUse --play \"title or artist\" to open a track.")
		return nil
	},
}

func init() {
	libraryCmd.Flags().StringVar(&libraryPlay, "play", "", "Open the first track matching this query")
}
