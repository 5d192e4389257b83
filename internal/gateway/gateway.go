// Package gateway translates conversational turns into Gemini chat calls.
// Each Send is exactly one remote round trip: no retries, no caching. The
// prior history is transmitted as chat history and the new message as a
// separate part, mirroring the remote API's expected shape.
package gateway

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"quantumedge/internal/convo"
	"quantumedge/internal/geo"
	"quantumedge/internal/logging"
	"quantumedge/internal/persona"
)

// Client wraps the shared genai client.
type Client struct {
	ai *genai.Client
}

// New connects to the Gemini API with the given credential.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	ai, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{ai: ai}, nil
}

// GenAI exposes the underlying client for the media tools.
func (c *Client) GenAI() *genai.Client {
	return c.ai
}

// Assistant binds a persona configuration to the client, producing a
// convo.Gateway for one conversation. displayName personalizes the system
// framing; locator may be nil for personas that are not location-aware.
func (c *Client) Assistant(p persona.Persona, displayName string, locator geo.Locator) *Assistant {
	return &Assistant{client: c, persona: p, displayName: displayName, locator: locator}
}

// Assistant performs persona-configured conversational calls.
type Assistant struct {
	client      *Client
	persona     persona.Persona
	displayName string

	locator geo.Locator
	locOnce sync.Once
	coords  *geo.Coordinates
}

// Send performs one conversational round trip and normalizes the reply.
func (a *Assistant) Send(ctx context.Context, message string, history []convo.Turn) (convo.Reply, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "Assistant.Send("+a.persona.ID+")")
	defer timer.Stop()

	cfg := a.callConfig(ctx)
	chat, err := a.client.ai.Chats.Create(ctx, a.persona.Model, cfg, historyContents(history))
	if err != nil {
		return convo.Reply{}, fmt.Errorf("failed to create %s chat: %w", a.persona.ID, err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return convo.Reply{}, fmt.Errorf("%s call failed: %w", a.persona.ID, err)
	}

	reply := convo.Reply{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		reply.Sources = normalizeSources(resp.Candidates[0].GroundingMetadata.GroundingChunks)
	}
	logging.API("%s reply: %d chars, %d sources", a.persona.ID, len(reply.Text), len(reply.Sources))
	return reply, nil
}

// callConfig assembles the per-call configuration: system framing,
// grounding tools, thinking budget, and optional location bias.
func (a *Assistant) callConfig(ctx context.Context) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(a.persona.SystemInstruction(a.displayName), genai.RoleUser),
		Tools:             groundingTools(a.persona),
	}
	if a.persona.ThinkingBudget > 0 {
		budget := a.persona.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	if a.persona.LocationAware {
		if loc := a.location(ctx); loc != nil {
			cfg.ToolConfig = &genai.ToolConfig{
				RetrievalConfig: &genai.RetrievalConfig{
					LatLng: &genai.LatLng{Latitude: &loc.Latitude, Longitude: &loc.Longitude},
				},
			}
		}
	}
	return cfg
}

// location resolves coordinates once per assistant. Lookup failure degrades
// gracefully to no location bias.
func (a *Assistant) location(ctx context.Context) *geo.Coordinates {
	if a.locator == nil {
		return nil
	}
	a.locOnce.Do(func() {
		coords, err := a.locator.Locate(ctx)
		if err != nil {
			logging.Geo("location unavailable, omitting bias: %v", err)
			return
		}
		a.coords = coords
	})
	return a.coords
}

// historyContents converts prior turns into genai chat history. The just-
// submitted message is never in this list; it travels with SendMessage.
func historyContents(history []convo.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, t := range history {
		role := genai.Role(genai.RoleModel)
		if t.Role == convo.RoleUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}

// groundingTools maps the persona's grounding set to genai tools.
func groundingTools(p persona.Persona) []*genai.Tool {
	var tools []*genai.Tool
	if p.HasGrounding(persona.GroundingMaps) {
		tools = append(tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if p.HasGrounding(persona.GroundingSearch) {
		tools = append(tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	return tools
}

// normalizeSources converts grounding chunks into sources, preserving the
// remote ordering. Chunks with neither a web nor a maps reference are
// dropped.
func normalizeSources(chunks []*genai.GroundingChunk) []convo.Source {
	var sources []convo.Source
	for _, chunk := range chunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			sources = append(sources, convo.Source{
				Kind:  convo.SourceWeb,
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		case chunk.Maps != nil:
			sources = append(sources, convo.Source{
				Kind:  convo.SourcePlace,
				Title: chunk.Maps.Title,
				URI:   chunk.Maps.URI,
			})
		}
	}
	return sources
}
