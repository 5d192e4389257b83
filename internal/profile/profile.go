// Package profile persists the minimal user identity collected at
// onboarding. The record is written once and treated as read-only for the
// rest of the session; it is passed down explicitly rather than kept in
// ambient global state.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the fixed key the profile is stored under inside the state
// directory.
const FileName = "profile.json"

// Profile is the minimal persisted user-identity record.
type Profile struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Complete reports whether both required fields are set.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Category) != ""
}

// DefaultPath returns the profile path inside the given state directory.
func DefaultPath(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// Load reads the profile from path. A missing file returns ok=false, which
// triggers the first-run onboarding flow; a corrupt file is treated the
// same way so onboarding can recreate it.
func Load(path string) (Profile, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, false, nil
		}
		return Profile{}, false, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, false, nil
	}
	if !p.Complete() {
		return p, false, nil
	}
	return p, true, nil
}

// Save writes the profile to path, creating parent directories as needed.
func Save(path string, p Profile) error {
	if !p.Complete() {
		return fmt.Errorf("profile requires both a name and a category")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
