// Package persona defines the assistant personalities. Both the financial
// and the travel assistant share one conversational pipeline; what differs
// is captured here: the model, the system framing, the grounding toolset,
// and the fixed greeting/apology texts.
package persona

import "fmt"

// GroundingTool names a remote grounding capability to request.
type GroundingTool string

const (
	GroundingSearch GroundingTool = "google_search"
	GroundingMaps   GroundingTool = "google_maps"
)

// Persona is a named configuration for one conversational assistant.
type Persona struct {
	ID    string
	Title string
	Model string

	// ThinkingBudget enables extended reasoning when non-zero.
	ThinkingBudget int32

	// Grounding lists the tools the remote call should be allowed to use.
	Grounding []GroundingTool

	// LocationAware personas attach coordinates to bias place grounding
	// when a location is available.
	LocationAware bool

	// Apology is the fixed assistant turn appended when a call fails.
	Apology string

	greeting    func(name string) string
	instruction func(name string) string
}

// Greeting returns the session-start turn text, personalized with the
// display name when present.
func (p Persona) Greeting(name string) string {
	return p.greeting(name)
}

// SystemInstruction returns the system framing for the remote call.
func (p Persona) SystemInstruction(name string) string {
	return p.instruction(orName(name))
}

// HasGrounding reports whether the persona requests the given tool.
func (p Persona) HasGrounding(tool GroundingTool) bool {
	for _, g := range p.Grounding {
		if g == tool {
			return true
		}
	}
	return false
}

func orName(name string) string {
	if name == "" {
		return "the user"
	}
	return name
}

// nameSuffix renders ", Name" for greetings, or nothing when unset.
func nameSuffix(name string) string {
	if name == "" {
		return ""
	}
	return ", " + name
}

// Financial is the investment-advice persona. It runs the pro model with an
// extended thinking budget and web-grounded answers.
func Financial() Persona {
	return Persona{
		ID:             "financial",
		Title:          "Investment Assistant 📈",
		Model:          "gemini-2.5-pro",
		ThinkingBudget: 32768,
		Grounding:      []GroundingTool{GroundingSearch},
		Apology:        "Sorry, I encountered an error. Please try again.",
		greeting: func(name string) string {
			return fmt.Sprintf("Hello%s! I'm your AI Investment Assistant, powered by advanced AI.\n\nHow can I help you with your financial questions today? Please remember, I'm an **AI** and **not** a certified financial advisor.", nameSuffix(name))
		},
		instruction: func(name string) string {
			return fmt.Sprintf("You are an AI Investment Assistant. The user's name is %s. Address them by their name when it feels natural and appropriate. You are an AI and not a certified financial advisor. Keep your tone professional but friendly.", name)
		},
	}
}

// Travel is the escape-suggester persona. It requests both web and place
// grounding and biases results toward the user's location when known.
func Travel() Persona {
	return Persona{
		ID:            "travel",
		Title:         "Escape Suggester ✈️",
		Model:         "gemini-2.5-flash",
		Grounding:     []GroundingTool{GroundingMaps, GroundingSearch},
		LocationAware: true,
		Apology:       "Sorry, I couldn't find any suggestions right now. Please try again.",
		greeting: func(name string) string {
			return fmt.Sprintf("Hello%s! I'm your Escape Suggester! ✈️\n\nWhere are you dreaming of going? I can find nearby places or destinations around the world.", nameSuffix(name))
		},
		instruction: func(name string) string {
			return fmt.Sprintf("You are a friendly and enthusiastic travel assistant named the Escape Suggester. The user's name is %s. Address them by name sometimes.", name)
		},
	}
}
