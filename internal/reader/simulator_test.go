package reader

import (
	"strings"
	"testing"
)

func validDemographics() Demographics {
	return Demographics{
		Age:                 34,
		EducationLevel:      "college",
		ReadingSpeed:        "average",
		AttentionSpan:       10,
		Interests:           []string{"sailing"},
		GenrePreferences:    []string{"mystery"},
		LanguageProficiency: "native",
	}
}

func TestValidationRejectsMalformedProfiles(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Demographics)
	}{
		{"age too low", func(d *Demographics) { d.Age = 3 }},
		{"age too high", func(d *Demographics) { d.Age = 150 }},
		{"bad education", func(d *Demographics) { d.EducationLevel = "wizard" }},
		{"bad speed", func(d *Demographics) { d.ReadingSpeed = "supersonic" }},
		{"bad proficiency", func(d *Demographics) { d.LanguageProficiency = "telepathic" }},
		{"bad attention span", func(d *Demographics) { d.AttentionSpan = 0 }},
	}
	for _, tc := range cases {
		d := validDemographics()
		tc.mutate(&d)
		if _, err := NewSimulator(d, Options{}); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestTimelineBoundsAndShape(t *testing.T) {
	sim, err := NewSimulator(validDemographics(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paragraphs := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		paragraphs = append(paragraphs, "The committee deliberated at considerable length regarding administrative jurisdictional particularities and organizational responsibilities.")
	}
	result := sim.SimulateReading(strings.Join(paragraphs, "\n\n"))

	if len(result.ReadingTimeline) != 30 {
		t.Fatalf("expected one sample per paragraph, got %d", len(result.ReadingTimeline))
	}
	for _, b := range result.ReadingTimeline {
		if b.AttentionLevel < 0 || b.AttentionLevel > 1 {
			t.Fatalf("attention out of bounds: %+v", b)
		}
		if b.ComprehensionLevel < 0 || b.ComprehensionLevel > 1 {
			t.Fatalf("comprehension out of bounds: %+v", b)
		}
	}
}

func TestSkimmingMarkersAtTransitionEdges(t *testing.T) {
	sim, err := NewSimulator(Demographics{
		Age: 20, EducationLevel: "high_school", ReadingSpeed: "fast",
		AttentionSpan: 2, GenrePreferences: []string{"mystery"}, LanguageProficiency: "fluent",
	}, Options{SkimThreshold: 0.5, SkimRunLength: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dull := make([]string, 0, 24)
	for i := 0; i < 20; i++ {
		dull = append(dull, "Routine inventory continued without incident across the warehouse floor.")
	}
	// A late burst of mystery cues should re-engage this reader.
	for i := 0; i < 3; i++ {
		dull = append(dull, "A detective found a clue beside the murder weapon, a secret at last.")
	}
	result := sim.SimulateReading(strings.Join(dull, "\n\n"))

	starts, ends := 0, 0
	for _, b := range result.ReadingTimeline {
		for _, m := range b.EngagementMarkers {
			switch m {
			case "skimming_start":
				starts++
			case "skimming_end":
				ends++
			}
		}
	}
	if starts == 0 {
		t.Fatalf("expected at least one skimming_start marker")
	}
	if ends == 0 {
		t.Fatalf("expected a skimming_end once interest returns")
	}
	if len(result.EngagementSummary.SkimmedRuns) == 0 {
		t.Fatalf("expected skimmed runs in the summary")
	}
}

func TestDeterministicSimulation(t *testing.T) {
	sim, _ := NewSimulator(validDemographics(), Options{})
	text := "The detective studied the clue.\n\nOutside, rain kept falling.\n\nShe made tea."
	a := sim.SimulateReading(text)
	b := sim.SimulateReading(text)
	if len(a.ReadingTimeline) != len(b.ReadingTimeline) {
		t.Fatalf("timeline length differs between runs")
	}
	for i := range a.ReadingTimeline {
		if a.ReadingTimeline[i].AttentionLevel != b.ReadingTimeline[i].AttentionLevel ||
			a.ReadingTimeline[i].ElapsedTime != b.ReadingTimeline[i].ElapsedTime {
			t.Fatalf("simulation is not deterministic at sample %d", i)
		}
	}
}

func TestEmptyTextYieldsEmptyTimeline(t *testing.T) {
	sim, _ := NewSimulator(validDemographics(), Options{})
	result := sim.SimulateReading("")
	if len(result.ReadingTimeline) != 0 {
		t.Fatalf("expected empty timeline, got %d", len(result.ReadingTimeline))
	}
	if result.EngagementSummary.CompletionRate != 1.0 {
		t.Fatalf("empty document is trivially complete, got %f", result.EngagementSummary.CompletionRate)
	}
}

func TestInterestBoostRaisesAttention(t *testing.T) {
	sim, _ := NewSimulator(validDemographics(), Options{})
	text := strings.Join([]string{
		"The ledger entries were reconciled quarterly by the auditors.",
		"The ledger entries were reconciled quarterly by the auditors.",
		"The sailing ship cut through the whitecaps toward open water.",
	}, "\n\n")
	result := sim.SimulateReading(text)
	if len(result.ReadingTimeline) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(result.ReadingTimeline))
	}
	if result.ReadingTimeline[2].AttentionLevel <= result.ReadingTimeline[1].AttentionLevel {
		t.Fatalf("expected the sailing paragraph to boost attention: %+v", result.ReadingTimeline)
	}
}
