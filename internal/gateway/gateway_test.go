package gateway

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"quantumedge/internal/convo"
	"quantumedge/internal/geo"
	"quantumedge/internal/persona"
)

func TestHistoryContentsRoleMapping(t *testing.T) {
	history := []convo.Turn{
		convo.AssistantTurn("Hello!", nil),
		convo.UserTurn("hi there"),
		convo.AssistantTurn("How can I help?", nil),
	}

	contents := historyContents(history)
	if len(contents) != 3 {
		t.Fatalf("got %d contents, want 3", len(contents))
	}
	wantRoles := []genai.Role{genai.RoleModel, genai.RoleUser, genai.RoleModel}
	for i, c := range contents {
		if genai.Role(c.Role) != wantRoles[i] {
			t.Errorf("content %d role = %q, want %q", i, c.Role, wantRoles[i])
		}
		if len(c.Parts) != 1 || c.Parts[0].Text != history[i].Text {
			t.Errorf("content %d text mismatch", i)
		}
	}
}

func TestGroundingTools(t *testing.T) {
	fin := groundingTools(persona.Financial())
	if len(fin) != 1 || fin[0].GoogleSearch == nil {
		t.Errorf("financial tools = %+v, want search only", fin)
	}

	trv := groundingTools(persona.Travel())
	if len(trv) != 2 {
		t.Fatalf("travel tools = %d, want 2", len(trv))
	}
	if trv[0].GoogleMaps == nil || trv[1].GoogleSearch == nil {
		t.Errorf("travel tool order = %+v, want maps then search", trv)
	}
}

func TestNormalizeSources(t *testing.T) {
	chunks := []*genai.GroundingChunk{
		{Web: &genai.GroundingChunkWeb{Title: "Vanguard", URI: "https://vanguard.com"}},
		nil,
		{Maps: &genai.GroundingChunkMaps{Title: "Cafe Luna", URI: "https://maps.example/luna"}},
		{}, // neither web nor maps
	}

	sources := normalizeSources(chunks)
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Kind != convo.SourceWeb || sources[0].Title != "Vanguard" {
		t.Errorf("source 0 = %+v", sources[0])
	}
	if sources[1].Kind != convo.SourcePlace || sources[1].URI != "https://maps.example/luna" {
		t.Errorf("source 1 = %+v", sources[1])
	}
}

// stubLocator scripts a single Locate result.
type stubLocator struct {
	coords *geo.Coordinates
	err    error
	calls  int
}

func (s *stubLocator) Locate(ctx context.Context) (*geo.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

func TestCallConfigLocationBias(t *testing.T) {
	loc := &stubLocator{coords: &geo.Coordinates{Latitude: 40.4, Longitude: -3.7}}
	a := &Assistant{persona: persona.Travel(), displayName: "Ada", locator: loc}

	cfg := a.callConfig(context.Background())
	if cfg.ToolConfig == nil || cfg.ToolConfig.RetrievalConfig == nil {
		t.Fatal("travel config missing retrieval bias")
	}
	if got := cfg.ToolConfig.RetrievalConfig.LatLng; *got.Latitude != 40.4 || *got.Longitude != -3.7 {
		t.Errorf("latlng = %+v", got)
	}

	// Coordinates are resolved once and reused.
	a.callConfig(context.Background())
	if loc.calls != 1 {
		t.Errorf("locator called %d times, want 1", loc.calls)
	}
}

func TestCallConfigOmitsBiasOnLookupFailure(t *testing.T) {
	loc := &stubLocator{err: errors.New("network down")}
	a := &Assistant{persona: persona.Travel(), locator: loc}

	cfg := a.callConfig(context.Background())
	if cfg.ToolConfig != nil {
		t.Errorf("config carries bias despite lookup failure: %+v", cfg.ToolConfig)
	}
	if len(cfg.Tools) != 2 {
		t.Errorf("grounding tools dropped on lookup failure: %d", len(cfg.Tools))
	}
}

func TestCallConfigWithoutLocator(t *testing.T) {
	a := &Assistant{persona: persona.Financial(), displayName: "Ada"}

	cfg := a.callConfig(context.Background())
	if cfg.ToolConfig != nil {
		t.Error("financial config should never carry location bias")
	}
	if cfg.ThinkingConfig == nil || *cfg.ThinkingConfig.ThinkingBudget != 32768 {
		t.Error("financial config missing thinking budget")
	}
	if cfg.SystemInstruction == nil {
		t.Fatal("missing system instruction")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Error("New accepted an empty API key")
	}
}
