package events

import (
	"strings"
	"testing"
)

func TestAnalyzeExtractsEventsWithActors(t *testing.T) {
	text := "Alice discovered the hidden door in the cellar.\n\nAlice confronted Bob beside the door."
	result := Analyze(text, Options{})
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, got %+v", result.Events)
	}
	if result.Events[0].Name != "discovered" || result.Events[0].Paragraph != 1 {
		t.Fatalf("unexpected first event: %+v", result.Events[0])
	}
	if len(result.Events[1].Characters) != 2 {
		t.Fatalf("expected both actors on the confrontation, got %+v", result.Events[1].Characters)
	}
}

func TestSequencesGroupAdjacentRelatedEvents(t *testing.T) {
	text := strings.Join([]string{
		"Alice discovered the letter in the study.",
		"Alice decided to burn it.",
		"Far away, years later, Miguel married in the chapel.",
	}, "\n\n")
	result := Analyze(text, Options{})
	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events, got %+v", result.Events)
	}
	if len(result.EventChain.Sequences) != 2 {
		t.Fatalf("expected 2 sequences, got %+v", result.EventChain.Sequences)
	}
	if len(result.EventChain.Sequences[0]) != 2 {
		t.Fatalf("expected the Alice events grouped, got %+v", result.EventChain.Sequences[0])
	}
}

func TestTimelineOrdersByMarkers(t *testing.T) {
	text := "Tomorrow, Alice decided, she would leave.\n\nYesterday Bob arrived at the station."
	result := Analyze(text, Options{})
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, got %+v", result.Events)
	}
	timeline := result.EventChain.Timeline
	if result.Events[timeline[0]].Timestamp != "Yesterday" {
		t.Fatalf("expected the yesterday event first, got %+v", result.Events[timeline[0]])
	}
}

func TestPlotHoleWhenObjectNeverEstablished(t *testing.T) {
	text := "Alice confronted the stranger and fired the pistol."
	result := Analyze(text, Options{})
	if len(result.EventChain.PossiblePlotHoles) == 0 {
		t.Fatalf("expected a plot hole for the unestablished pistol")
	}
}

func TestNoPlotHoleWhenObjectEstablishedEarlier(t *testing.T) {
	text := "The pistol lay on the table.\n\nAlice confronted the stranger and fired the pistol."
	result := Analyze(text, Options{})
	if len(result.EventChain.PossiblePlotHoles) != 0 {
		t.Fatalf("expected no plot holes, got %+v", result.EventChain.PossiblePlotHoles)
	}
}

func TestDeadCharacterActingIsHighSeverity(t *testing.T) {
	text := "Victor died in the fire.\n\nVictor confessed everything to the priest."
	result := Analyze(text, Options{})
	found := false
	for _, e := range result.ContinuityErrors {
		if e.Type == "event" && e.Severity == "high" && e.Paragraph == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a high-severity event error, got %+v", result.ContinuityErrors)
	}
}

func TestDepartedCharacterActingIsMediumSeverity(t *testing.T) {
	text := "Miriam left the tavern at dusk.\n\nMiriam confessed everything to the priest."
	result := Analyze(text, Options{})
	found := false
	for _, e := range result.ContinuityErrors {
		if e.Type == "event" && e.Severity == "medium" && e.Paragraph == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a medium-severity event error, got %+v", result.ContinuityErrors)
	}
}

func TestEmptyTextYieldsEmptyResult(t *testing.T) {
	result := Analyze("", Options{})
	if len(result.Events) != 0 || len(result.EventChain.Sequences) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
