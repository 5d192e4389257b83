// Package convo implements the conversational turn-taking protocol shared by
// the assistant personas: an append-only turn buffer plus a single-flight
// controller that mediates submissions against the remote gateway.
package convo

import "time"

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SourceKind distinguishes the two citation flavors a reply can carry.
type SourceKind string

const (
	SourceWeb   SourceKind = "web"
	SourcePlace SourceKind = "place"
)

// Source is a grounding citation attached to an assistant turn.
type Source struct {
	Kind  SourceKind `json:"kind"`
	Title string     `json:"title"`
	URI   string     `json:"uri"`
}

// Turn is one message in a conversation. Turns are never mutated after they
// are appended; a reset replaces the whole sequence instead.
type Turn struct {
	Role    Role      `json:"role"`
	Text    string    `json:"text"`
	Sources []Source  `json:"sources,omitempty"`
	Time    time.Time `json:"time"`
}

// UserTurn builds a user turn with the current time.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text, Time: time.Now()}
}

// AssistantTurn builds an assistant turn with the current time.
func AssistantTurn(text string, sources []Source) Turn {
	return Turn{Role: RoleAssistant, Text: text, Sources: sources, Time: time.Now()}
}
