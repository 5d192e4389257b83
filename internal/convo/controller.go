package convo

import (
	"context"
	"strings"
	"sync"

	"quantumedge/internal/logging"
)

// Reply is the normalized result of one gateway round trip.
type Reply struct {
	Text    string
	Sources []Source
}

// Gateway performs exactly one remote call per Submit. The new message is
// transmitted separately from history; history must be the conversation
// state from before the message was appended.
type Gateway interface {
	Send(ctx context.Context, message string, history []Turn) (Reply, error)
}

// Controller mediates submissions for one persona's conversation. It
// guarantees at most one outstanding remote call at a time and always leaves
// the conversation in a consistent state: a failed call is absorbed as a
// fixed apology turn, never an inconsistent buffer.
//
// State machine: Idle -> Sending -> Idle on both success and failure.
// Reset is a self-transition allowed only while Idle.
type Controller struct {
	mu       sync.Mutex
	turns    []Turn
	inFlight bool

	gateway  Gateway
	greeting func() string
	apology  string
}

// NewController seeds the conversation with the persona's greeting.
// greeting is re-evaluated on every Reset so profile changes show up.
func NewController(gateway Gateway, greeting func() string, apology string) *Controller {
	return &Controller{
		gateway:  gateway,
		turns:    []Turn{AssistantTurn(greeting(), nil)},
		greeting: greeting,
		apology:  apology,
	}
}

// Submit runs one full turn cycle: optimistic user-turn append, gateway
// call, assistant-turn append. It blocks until the call settles, so callers
// run it off the UI loop. The returned bool reports whether the submission
// was accepted; empty input and in-flight submissions are ignored without
// error.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	// Snapshot history before the optimistic append: the new message is
	// sent as a separate field, not as part of history.
	history := make([]Turn, len(c.turns))
	copy(history, c.turns)
	c.turns = append(c.turns, UserTurn(trimmed))
	c.mu.Unlock()

	reply, err := c.gateway.Send(ctx, trimmed, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		logging.API("assistant call failed: %v", err)
		c.turns = append(c.turns, AssistantTurn(c.apology, nil))
		return true
	}
	c.turns = append(c.turns, AssistantTurn(reply.Text, reply.Sources))
	return true
}

// Reset replaces the conversation with a single fresh greeting turn.
// It is refused while a call is in flight.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.turns = []Turn{AssistantTurn(c.greeting(), nil)}
	return true
}

// Turns returns a copy of the conversation in chronological order.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len reports the number of turns without copying.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// InFlight reports whether a remote call is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
