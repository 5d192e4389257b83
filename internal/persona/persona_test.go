package persona

import (
	"strings"
	"testing"
)

func TestFinancialGreeting(t *testing.T) {
	p := Financial()

	got := p.Greeting("Ada")
	if !strings.HasPrefix(got, "Hello, Ada! I'm your AI Investment Assistant") {
		t.Errorf("greeting = %q", got)
	}
	if !strings.Contains(got, "**not** a certified financial advisor") {
		t.Errorf("greeting missing disclaimer: %q", got)
	}

	anon := p.Greeting("")
	if !strings.HasPrefix(anon, "Hello! I'm your") {
		t.Errorf("anonymous greeting = %q", anon)
	}
	if strings.Contains(anon, "Hello, !") {
		t.Errorf("anonymous greeting has dangling comma: %q", anon)
	}
}

func TestTravelGreeting(t *testing.T) {
	p := Travel()
	got := p.Greeting("Ada")
	if !strings.HasPrefix(got, "Hello, Ada! I'm your Escape Suggester!") {
		t.Errorf("greeting = %q", got)
	}
}

func TestSystemInstructionFallsBackToTheUser(t *testing.T) {
	for _, p := range []Persona{Financial(), Travel()} {
		instr := p.SystemInstruction("")
		if !strings.Contains(instr, "the user") {
			t.Errorf("%s instruction without name = %q", p.ID, instr)
		}
		named := p.SystemInstruction("Ada")
		if !strings.Contains(named, "Ada") {
			t.Errorf("%s instruction with name = %q", p.ID, named)
		}
	}
}

func TestPersonaConfigurations(t *testing.T) {
	fin := Financial()
	if fin.Model != "gemini-2.5-pro" {
		t.Errorf("financial model = %q", fin.Model)
	}
	if fin.ThinkingBudget != 32768 {
		t.Errorf("financial thinking budget = %d", fin.ThinkingBudget)
	}
	if !fin.HasGrounding(GroundingSearch) || fin.HasGrounding(GroundingMaps) {
		t.Errorf("financial grounding = %v", fin.Grounding)
	}
	if fin.LocationAware {
		t.Error("financial persona should not be location aware")
	}

	trv := Travel()
	if trv.Model != "gemini-2.5-flash" {
		t.Errorf("travel model = %q", trv.Model)
	}
	if !trv.HasGrounding(GroundingMaps) || !trv.HasGrounding(GroundingSearch) {
		t.Errorf("travel grounding = %v", trv.Grounding)
	}
	if !trv.LocationAware {
		t.Error("travel persona should be location aware")
	}
	if trv.ThinkingBudget != 0 {
		t.Errorf("travel thinking budget = %d", trv.ThinkingBudget)
	}
}

func TestApologiesAreFixedTexts(t *testing.T) {
	if got := Financial().Apology; got != "Sorry, I encountered an error. Please try again." {
		t.Errorf("financial apology = %q", got)
	}
	if got := Travel().Apology; got != "Sorry, I couldn't find any suggestions right now. Please try again." {
		t.Errorf("travel apology = %q", got)
	}
}
