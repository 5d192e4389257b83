package convo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

const testApology = "Sorry, I encountered an error. Please try again."

// fakeGateway scripts replies and records what the controller sent.
type fakeGateway struct {
	mu       sync.Mutex
	replies  []Reply
	errs     []error
	calls    int
	messages []string
	history  [][]Turn

	// block, when set, holds Send until released.
	block chan struct{}
}

func (f *fakeGateway) Send(ctx context.Context, message string, history []Turn) (Reply, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.messages = append(f.messages, message)
	snapshot := make([]Turn, len(history))
	copy(snapshot, history)
	f.history = append(f.history, snapshot)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply Reply
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func greetFixed(s string) func() string {
	return func() string { return s }
}

func TestControllerSeedsGreeting(t *testing.T) {
	c := NewController(&fakeGateway{}, greetFixed("Hello, Ada!"), testApology)

	turns := c.Turns()
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].Role != RoleAssistant || turns[0].Text != "Hello, Ada!" {
		t.Errorf("greeting turn = %+v", turns[0])
	}
}

func TestSubmitAppendsExactlyOneExchange(t *testing.T) {
	gw := &fakeGateway{replies: []Reply{{Text: "VTI is a total-market ETF."}}}
	c := NewController(gw, greetFixed("hi"), testApology)

	if !c.Submit(context.Background(), "what is VTI?") {
		t.Fatal("submit rejected")
	}

	turns := c.Turns()
	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3 (greeting + user + assistant)", len(turns))
	}
	if turns[1].Role != RoleUser || turns[1].Text != "what is VTI?" {
		t.Errorf("user turn = %+v", turns[1])
	}
	if turns[2].Role != RoleAssistant || turns[2].Text != "VTI is a total-market ETF." {
		t.Errorf("assistant turn = %+v", turns[2])
	}
	if c.InFlight() {
		t.Error("still in flight after settle")
	}
}

func TestSubmitSendsHistoryWithoutNewMessage(t *testing.T) {
	gw := &fakeGateway{replies: []Reply{{Text: "a"}, {Text: "b"}}}
	c := NewController(gw, greetFixed("hi"), testApology)

	c.Submit(context.Background(), "first")
	c.Submit(context.Background(), "second")

	// The message travels separately; history must be the state from
	// before the optimistic append.
	if gw.messages[1] != "second" {
		t.Fatalf("message = %q", gw.messages[1])
	}
	h := gw.history[1]
	if len(h) != 3 {
		t.Fatalf("history length = %d, want 3", len(h))
	}
	for _, turn := range h {
		if turn.Text == "second" {
			t.Error("new message leaked into history")
		}
	}
}

func TestSubmitTrimsAndRejectsWhitespace(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, greetFixed("hi"), testApology)

	for _, input := range []string{"", "   ", "\n\t"} {
		if c.Submit(context.Background(), input) {
			t.Errorf("Submit(%q) accepted", input)
		}
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times for blank input", gw.calls)
	}
	if c.Len() != 1 {
		t.Errorf("conversation grew to %d turns", c.Len())
	}
}

func TestSubmitWhileInFlightIgnored(t *testing.T) {
	gw := &fakeGateway{
		replies: []Reply{{Text: "done"}},
		block:   make(chan struct{}),
	}
	c := NewController(gw, greetFixed("hi"), testApology)

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background(), "slow question")
		close(done)
	}()

	// Wait until the first submission is actually in flight.
	deadline := time.After(2 * time.Second)
	for !c.InFlight() {
		select {
		case <-deadline:
			t.Fatal("first submission never became in-flight")
		case <-time.After(time.Millisecond):
		}
	}

	if c.Submit(context.Background(), "impatient second") {
		t.Error("concurrent submit accepted")
	}
	if c.Reset() {
		t.Error("reset allowed while in flight")
	}

	close(gw.block)
	<-done

	if gw.calls != 1 {
		t.Errorf("gateway called %d times, want 1", gw.calls)
	}
	if c.Len() != 3 {
		t.Errorf("got %d turns, want 3", c.Len())
	}
}

func TestFailureAppendsApology(t *testing.T) {
	gw := &fakeGateway{errs: []error{errors.New("boom")}}
	c := NewController(gw, greetFixed("hi"), testApology)

	if !c.Submit(context.Background(), "doomed") {
		t.Fatal("submit rejected")
	}

	turns := c.Turns()
	last := turns[len(turns)-1]
	if last.Role != RoleAssistant || last.Text != testApology {
		t.Errorf("last turn = %+v, want apology", last)
	}
	// The optimistic user turn stays.
	if turns[len(turns)-2].Text != "doomed" {
		t.Errorf("user turn missing before apology")
	}
	if c.InFlight() {
		t.Error("in flight after failure")
	}

	// The controller recovers: the next submit works.
	gw2 := &fakeGateway{replies: []Reply{{Text: "ok"}}}
	c2 := NewController(gw2, greetFixed("hi"), testApology)
	c2.Submit(context.Background(), "q")
	if c2.Len() != 3 {
		t.Errorf("fresh controller has %d turns", c2.Len())
	}
}

func TestResetRestoresSingleGreeting(t *testing.T) {
	gw := &fakeGateway{replies: []Reply{{Text: "a"}}}
	name := ""
	c := NewController(gw, func() string {
		if name == "" {
			return "Hello!"
		}
		return "Hello, " + name + "!"
	}, testApology)

	c.Submit(context.Background(), "q")
	name = "Ada"

	if !c.Reset() {
		t.Fatal("reset refused while idle")
	}
	turns := c.Turns()
	if len(turns) != 1 {
		t.Fatalf("got %d turns after reset, want 1", len(turns))
	}
	// Greeting is re-evaluated so it reflects the current profile.
	if turns[0].Text != "Hello, Ada!" {
		t.Errorf("greeting after reset = %q", turns[0].Text)
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	c := NewController(&fakeGateway{}, greetFixed("hi"), testApology)
	turns := c.Turns()
	turns[0].Text = "mutated"
	if c.Turns()[0].Text != "hi" {
		t.Error("Turns() exposed internal state")
	}
}
