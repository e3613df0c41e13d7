package characters

import (
	"strings"
	"testing"
)

func TestEnterAndMentionLedger(t *testing.T) {
	text := "Alice entered the kitchen.\n\nBob left the kitchen. Alice smiled."
	result := Analyze(text, nil, Options{})

	var alice, bob *Character
	for i := range result.Characters {
		switch result.Characters[i].Name {
		case "Alice":
			alice = &result.Characters[i]
		case "Bob":
			bob = &result.Characters[i]
		}
	}
	if alice == nil || bob == nil {
		t.Fatalf("expected Alice and Bob, got %+v", result.Characters)
	}
	if len(alice.Appearances) != 2 {
		t.Fatalf("expected 2 appearances for Alice, got %+v", alice.Appearances)
	}
	if alice.Appearances[0].Action != ActionEnter || alice.Appearances[0].Paragraph != 1 {
		t.Fatalf("expected enter@1, got %+v", alice.Appearances[0])
	}
	if alice.Appearances[1].Action != ActionMention || alice.Appearances[1].Paragraph != 2 {
		t.Fatalf("expected mention@2, got %+v", alice.Appearances[1])
	}
	if alice.CurrentLocation != "kitchen" {
		t.Fatalf("expected Alice in the kitchen, got %q", alice.CurrentLocation)
	}
	if len(bob.Appearances) != 1 || bob.Appearances[0].Action != ActionExit || bob.Appearances[0].Paragraph != 2 {
		t.Fatalf("expected a single exit@2 for Bob, got %+v", bob.Appearances)
	}
	if len(result.ContinuityErrors) != 0 {
		t.Fatalf("expected no continuity errors, got %+v", result.ContinuityErrors)
	}
}

func TestExitThenActingIsHighSeverity(t *testing.T) {
	text := strings.Join([]string{
		"Carol entered the garden.",
		"The roses bloomed along the wall.",
		"Carol left the garden.",
		"Wind scattered the petals.",
		"Carol grabbed the lantern.",
	}, "\n\n")
	result := Analyze(text, nil, Options{})

	found := false
	for _, e := range result.ContinuityErrors {
		if e.Type == "character" && e.Severity == SeverityHigh && e.Paragraph == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a high-severity character error at paragraph 5, got %+v", result.ContinuityErrors)
	}
}

func TestLocationJumpWithoutTravelIsMediumSeverity(t *testing.T) {
	text := "Dave entered the cellar.\n\nDave smiled in the ballroom."
	result := Analyze(text, nil, Options{})

	found := false
	for _, e := range result.ContinuityErrors {
		if e.Type == "character" && e.Severity == SeverityMedium && e.Paragraph == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a medium-severity location error, got %+v", result.ContinuityErrors)
	}
}

func TestLedgerMonotonicity(t *testing.T) {
	text := strings.Join([]string{
		"Erin entered the library.",
		"Erin looked at the shelves.",
		"Erin smiled.",
		"Erin left the library.",
	}, "\n\n")
	result := Analyze(text, nil, Options{})
	for _, c := range result.Characters {
		last := 0
		for _, a := range c.Appearances {
			if a.Paragraph < last {
				t.Fatalf("appearances out of order for %s: %+v", c.Name, c.Appearances)
			}
			last = a.Paragraph
		}
		if c.LastMention != c.Appearances[len(c.Appearances)-1].Paragraph {
			t.Fatalf("lastMention %d does not match final appearance for %s", c.LastMention, c.Name)
		}
	}
}

func TestAllowListRestrictsDetection(t *testing.T) {
	text := "Frank met Grace at the station. Henry watched from the platform."
	result := Analyze(text, []string{"Frank", "Grace"}, Options{})
	if len(result.Characters) != 2 {
		t.Fatalf("expected only allow-listed characters, got %+v", result.Characters)
	}
	if result.Statistics.Interactions["Frank|Grace"] != 1 {
		t.Fatalf("expected one Frank|Grace interaction, got %+v", result.Statistics.Interactions)
	}
}

func TestEmptyTextYieldsEmptyResult(t *testing.T) {
	result := Analyze("", nil, Options{})
	if len(result.Characters) != 0 || len(result.ContinuityErrors) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestConflictingTimeMarkersAtSameLocation(t *testing.T) {
	text := "Yesterday Iris entered the tavern.\n\nTomorrow, or so he claimed, Jack entered the tavern."
	result := Analyze(text, nil, Options{})

	found := false
	for _, e := range result.ContinuityErrors {
		if e.Type == "timeline" && e.Severity == SeverityLow {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a low-severity timeline error, got %+v", result.ContinuityErrors)
	}
}
