package reader

import (
	"fmt"
	"strings"

	"storylens/internal/emotion"
	"storylens/internal/segment"
)

// Demographic enums. Validation rejects anything else before simulation
// begins; values are never silently clamped.
var educationLevels = map[string]float64{
	"elementary":  0.55,
	"high_school": 0.68,
	"college":     0.80,
	"graduate":    0.90,
}

var readingSpeeds = map[string]float64{
	"slow":    160,
	"average": 240,
	"fast":    320,
}

var languageProficiencies = map[string]float64{
	"beginner":     0.55,
	"intermediate": 0.75,
	"fluent":       0.95,
	"native":       1.0,
}

type Demographics struct {
	Age                 int      `json:"age"`
	EducationLevel      string   `json:"educationLevel"`
	ReadingSpeed        string   `json:"readingSpeed"`
	AttentionSpan       float64  `json:"attentionSpan"` // minutes
	Interests           []string `json:"interests"`
	GenrePreferences    []string `json:"genre_preferences"`
	LanguageProficiency string   `json:"language_proficiency"`
}

// Validate rejects malformed profiles.
func (d Demographics) Validate() error {
	if d.Age < 5 || d.Age > 120 {
		return fmt.Errorf("age %d out of range [5, 120]", d.Age)
	}
	if _, ok := educationLevels[d.EducationLevel]; !ok {
		return fmt.Errorf("unrecognized education level %q", d.EducationLevel)
	}
	if _, ok := readingSpeeds[d.ReadingSpeed]; !ok {
		return fmt.Errorf("unrecognized reading speed %q", d.ReadingSpeed)
	}
	if _, ok := languageProficiencies[d.LanguageProficiency]; !ok {
		return fmt.Errorf("unrecognized language proficiency %q", d.LanguageProficiency)
	}
	if d.AttentionSpan <= 0 {
		return fmt.Errorf("attention span must be positive, got %g", d.AttentionSpan)
	}
	return nil
}

type Behavior struct {
	ElapsedTime        float64  `json:"elapsed_time"` // minutes since the session started
	ParagraphNumber    int      `json:"paragraph_number"`
	AttentionLevel     float64  `json:"attention_level"`
	ComprehensionLevel float64  `json:"comprehension_level"`
	IsSkimming         bool     `json:"is_skimming"`
	ReadingSpeedWPM    float64  `json:"reading_speed_wpm"`
	EngagementMarkers  []string `json:"engagement_markers"`
}

type Run struct {
	StartParagraph   int     `json:"start_paragraph"`
	EndParagraph     int     `json:"end_paragraph"`
	AverageAttention float64 `json:"average_attention"`
}

type Summary struct {
	MostEngaging         *Run    `json:"most_engaging,omitempty"`
	LeastEngaging        *Run    `json:"least_engaging,omitempty"`
	SkimmedRuns          []Run   `json:"skimmed_runs"`
	OverallEngagement    float64 `json:"overall_engagement"`
	CompletionRate       float64 `json:"completion_rate"`
	AverageComprehension float64 `json:"average_comprehension"`
}

type Result struct {
	ReadingTimeline   []Behavior `json:"reading_timeline"`
	EngagementSummary Summary    `json:"engagement_summary"`
	Suggestions       []string   `json:"suggestions"`
}

type Options struct {
	SkimThreshold float64
	SkimRunLength int
}

func defaultOptions(opts Options) Options {
	if opts.SkimThreshold <= 0 {
		opts.SkimThreshold = 0.4
	}
	if opts.SkimRunLength <= 0 {
		opts.SkimRunLength = 3
	}
	return opts
}

// Simulator models one reader profile over manuscript text. The model is
// fully deterministic: the same profile and text always yield the same
// timeline.
type Simulator struct {
	demographics Demographics
	opts         Options
}

func NewSimulator(demographics Demographics, opts Options) (*Simulator, error) {
	if err := demographics.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reader demographics: %w", err)
	}
	return &Simulator{demographics: demographics, opts: defaultOptions(opts)}, nil
}

// SimulateReading walks the paragraph sequence with a per-paragraph state
// machine over attention, comprehension, speed, and skimming.
func (s *Simulator) SimulateReading(text string) Result {
	paragraphs := segment.Paragraphs(text)
	timeline := make([]Behavior, 0, len(paragraphs))

	proficiency := languageProficiencies[s.demographics.LanguageProficiency]
	baseWPM := readingSpeeds[s.demographics.ReadingSpeed] * (0.7 + 0.3*proficiency)
	baseComprehension := educationLevels[s.demographics.EducationLevel] * proficiency

	attention := 0.9
	elapsed := 0.0
	sinceBoost := 0.0
	skimming := false
	lowRun := 0

	for _, p := range paragraphs {
		words := segment.Words(p.Text)
		markers := make([]string, 0, 2)

		boosted := s.matchesInterests(p.Text)
		emotional := emotion.ScoreWords(words).Total()
		if emotional >= 3.0 {
			boosted = true
		}
		if boosted {
			attention = clamp01(attention + 0.25)
			sinceBoost = 0
			markers = append(markers, "interest_boost")
		} else {
			// Attention decays with time since the last engaging moment,
			// faster for short attention spans.
			attention = clamp01(attention - 0.05*(1.0+sinceBoost/s.demographics.AttentionSpan))
		}

		if attention < s.opts.SkimThreshold {
			lowRun++
		} else {
			lowRun = 0
			if skimming {
				skimming = false
				markers = append(markers, "skimming_end")
			}
		}
		if !skimming && lowRun >= s.opts.SkimRunLength {
			skimming = true
			markers = append(markers, "skimming_start")
		}

		wpm := baseWPM
		if skimming {
			wpm *= 1.6
		}

		complexity := complexityPenalty(p.Text, words)
		comprehension := clamp01(baseComprehension - complexity + 0.1*attention)
		if skimming {
			comprehension = clamp01(comprehension * 0.6)
		}

		minutes := 0.0
		if len(words) > 0 {
			minutes = float64(len(words)) / wpm
		}
		elapsed += minutes
		sinceBoost += minutes

		timeline = append(timeline, Behavior{
			ElapsedTime:        elapsed,
			ParagraphNumber:    p.Index,
			AttentionLevel:     attention,
			ComprehensionLevel: comprehension,
			IsSkimming:         skimming,
			ReadingSpeedWPM:    wpm,
			EngagementMarkers:  markers,
		})
	}

	summary := summarize(timeline)
	return Result{
		ReadingTimeline:   timeline,
		EngagementSummary: summary,
		Suggestions:       suggestions(summary, timeline),
	}
}

func (s *Simulator) matchesInterests(text string) bool {
	lower := strings.ToLower(text)
	for _, interest := range s.demographics.Interests {
		if interest != "" && strings.Contains(lower, strings.ToLower(interest)) {
			return true
		}
	}
	for _, genre := range s.demographics.GenrePreferences {
		for _, cue := range genreCues[strings.ToLower(genre)] {
			if strings.Contains(lower, cue) {
				return true
			}
		}
	}
	return false
}

var genreCues = map[string][]string{
	"mystery":   {"clue", "detective", "murder", "suspect", "secret"},
	"romance":   {"kiss", "love", "heart", "embrace"},
	"thriller":  {"chase", "danger", "gun", "escape", "threat"},
	"fantasy":   {"magic", "dragon", "sword", "kingdom", "spell"},
	"horror":    {"shadow", "scream", "blood", "haunted", "dark"},
	"adventure": {"journey", "map", "treasure", "voyage", "expedition"},
}

func complexityPenalty(text string, words []string) float64 {
	sentences := segment.Sentences(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}
	avgSentence := float64(len(words)) / float64(len(sentences))
	long := 0
	for _, w := range words {
		if len(w) >= 9 {
			long++
		}
	}
	longRatio := float64(long) / float64(len(words))
	penalty := 0.0
	if avgSentence > 20 {
		penalty += (avgSentence - 20) * 0.01
	}
	penalty += longRatio * 0.5
	if penalty > 0.4 {
		penalty = 0.4
	}
	return penalty
}

func summarize(timeline []Behavior) Summary {
	if len(timeline) == 0 {
		return Summary{SkimmedRuns: []Run{}, CompletionRate: 1.0}
	}

	var totalAttention, totalComprehension float64
	finished := 0
	for _, b := range timeline {
		totalAttention += b.AttentionLevel
		totalComprehension += b.ComprehensionLevel
		if b.AttentionLevel > 0.05 {
			finished++
		}
	}

	skimmed := make([]Run, 0, 2)
	var current *Run
	var runTotal float64
	for _, b := range timeline {
		if b.IsSkimming {
			if current == nil {
				current = &Run{StartParagraph: b.ParagraphNumber}
				runTotal = 0
			}
			current.EndParagraph = b.ParagraphNumber
			runTotal += b.AttentionLevel
			continue
		}
		if current != nil {
			current.AverageAttention = runTotal / float64(current.EndParagraph-current.StartParagraph+1)
			skimmed = append(skimmed, *current)
			current = nil
		}
	}
	if current != nil {
		current.AverageAttention = runTotal / float64(current.EndParagraph-current.StartParagraph+1)
		skimmed = append(skimmed, *current)
	}

	most, least := engagementExtremes(timeline)

	return Summary{
		MostEngaging:         most,
		LeastEngaging:        least,
		SkimmedRuns:          skimmed,
		OverallEngagement:    totalAttention / float64(len(timeline)),
		CompletionRate:       float64(finished) / float64(len(timeline)),
		AverageComprehension: totalComprehension / float64(len(timeline)),
	}
}

// engagementExtremes finds the highest- and lowest-attention contiguous
// windows of up to three paragraphs.
func engagementExtremes(timeline []Behavior) (*Run, *Run) {
	window := 3
	if len(timeline) < window {
		window = len(timeline)
	}
	var most, least *Run
	for i := 0; i+window <= len(timeline); i++ {
		total := 0.0
		for j := i; j < i+window; j++ {
			total += timeline[j].AttentionLevel
		}
		avg := total / float64(window)
		run := Run{
			StartParagraph:   timeline[i].ParagraphNumber,
			EndParagraph:     timeline[i+window-1].ParagraphNumber,
			AverageAttention: avg,
		}
		if most == nil || avg > most.AverageAttention {
			r := run
			most = &r
		}
		if least == nil || avg < least.AverageAttention {
			r := run
			least = &r
		}
	}
	return most, least
}

func suggestions(summary Summary, timeline []Behavior) []string {
	out := make([]string, 0, 2)
	for _, run := range summary.SkimmedRuns {
		if run.EndParagraph-run.StartParagraph+1 >= 4 {
			out = append(out, fmt.Sprintf("Paragraphs %d-%d were skimmed; the pacing may sag there.", run.StartParagraph, run.EndParagraph))
			break
		}
	}
	low := 0
	for _, b := range timeline {
		if b.ComprehensionLevel < 0.45 {
			low++
		}
	}
	if len(timeline) > 0 && low*10 >= len(timeline)*4 {
		out = append(out, "Comprehension stays low for much of the document; consider simplifying sentence structure or vocabulary for this audience.")
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
