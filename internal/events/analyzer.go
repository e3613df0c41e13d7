package events

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"storylens/internal/nlptag"
	"storylens/internal/segment"
)

var eventVerbPattern = regexp.MustCompile(`(?i)\b(arrived|left|discovered|revealed|decided|confronted|killed|died|escaped|found|lost|won|failed|confessed|attacked|agreed|refused|warned|promised|betrayed|collapsed|resigned|married|fled|returned|investigated|accused|admitted|exposed|stole|rescued|buried|burned|broke|met)\b`)
var fatalVerbPattern = regexp.MustCompile(`(?i)\b(died|was killed|perished|was murdered)\b`)
var possessionUsePattern = regexp.MustCompile(`(?i)\b(used|drew|raised|unsheathed|fired|swung|brandished|unlocked|opened) (?:the|his|her|their) ([a-z]+)\b`)

type Event struct {
	Name        string   `json:"name"`
	Paragraph   int      `json:"paragraph"`
	Characters  []string `json:"characters"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

type PlotHole struct {
	Paragraph   int    `json:"paragraph"`
	Description string `json:"description"`
}

// Chain orders and groups events. Sequences and Timeline hold indexes into
// the events slice.
type Chain struct {
	Sequences         [][]int    `json:"sequences"`
	Timeline          []int      `json:"timeline"`
	PossiblePlotHoles []PlotHole `json:"possiblePlotHoles"`
}

type ContinuityError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Paragraph   int    `json:"paragraph"`
	Severity    string `json:"severity"`
	Suggestion  string `json:"suggestion,omitempty"`
}

type Result struct {
	Events           []Event           `json:"events"`
	ContinuityErrors []ContinuityError `json:"continuityErrors"`
	EventChain       Chain             `json:"eventChain"`
	Suggestions      []string          `json:"suggestions"`
}

type Options struct {
	Tagger nlptag.Tagger
}

// Analyze extracts discrete narrative events via verb-phrase heuristics and
// builds the event chain with plot-hole and continuity checks.
func Analyze(text string, opts Options) Result {
	tagger := opts.Tagger
	if tagger == nil {
		tagger = nlptag.Heuristic{}
	}

	paragraphs := segment.Paragraphs(text)
	events := make([]Event, 0, 8)
	seenWords := map[string]int{} // lowercase word -> first paragraph
	holes := make([]PlotHole, 0, 2)
	exitedAt := map[string]int{}
	diedAt := map[string]int{}
	errors := make([]ContinuityError, 0, 2)

	for _, p := range paragraphs {
		tokens := tagger.Tag(p.Text)
		names := nlptag.Names(tokens)
		location := nlptag.FirstLocation(tokens)
		markers := nlptag.TimeMarkers(p.Text)

		for _, sentence := range segment.Sentences(p.Text) {
			verb := eventVerbPattern.FindString(sentence)
			if verb == "" {
				continue
			}
			actors := namesIn(sentence, names)
			event := Event{
				Name:        strings.ToLower(verb),
				Paragraph:   p.Index,
				Characters:  actors,
				Location:    location,
				Description: segment.FirstWords(sentence, 22),
			}
			if len(markers) > 0 {
				event.Timestamp = markers[0]
			}
			events = append(events, event)

			if m := possessionUsePattern.FindStringSubmatch(sentence); m != nil {
				object := strings.ToLower(m[2])
				if first, ok := seenWords[object]; !ok || first >= p.Index {
					holes = append(holes, PlotHole{
						Paragraph:   p.Index,
						Description: fmt.Sprintf("Paragraph %d has a character who %s the %s, but the %s was never established earlier.", p.Index, strings.ToLower(m[1]), object, object),
					})
				}
			}

			for _, actor := range actors {
				if at, gone := diedAt[actor]; gone {
					errors = append(errors, ContinuityError{
						Type:        "event",
						Description: fmt.Sprintf("%s takes part in an event at paragraph %d after dying at paragraph %d", actor, p.Index, at),
						Paragraph:   p.Index,
						Severity:    "high",
						Suggestion:  fmt.Sprintf("Resolve the mutually exclusive outcomes for %s.", actor),
					})
					continue
				}
				if at, gone := exitedAt[actor]; gone {
					errors = append(errors, ContinuityError{
						Type:        "event",
						Description: fmt.Sprintf("event at paragraph %d references %s, who left the scene at paragraph %d", p.Index, actor, at),
						Paragraph:   p.Index,
						Severity:    "medium",
						Suggestion:  fmt.Sprintf("Bring %s back on stage before this event.", actor),
					})
				}
			}

			if fatalVerbPattern.MatchString(sentence) {
				for _, actor := range actors {
					diedAt[actor] = p.Index
				}
			}
			if strings.EqualFold(verb, "left") || strings.EqualFold(verb, "fled") {
				for _, actor := range actors {
					exitedAt[actor] = p.Index
				}
			} else {
				for _, actor := range actors {
					delete(exitedAt, actor)
				}
			}
		}

		// Track vocabulary for precondition checks after event scanning so
		// same-paragraph establishment still counts as "later".
		for _, w := range segment.Words(p.Text) {
			if _, ok := seenWords[w]; !ok {
				seenWords[w] = p.Index
			}
		}
	}

	chain := Chain{
		Sequences:         buildSequences(events),
		Timeline:          buildTimeline(events),
		PossiblePlotHoles: holes,
	}

	return Result{
		Events:           events,
		ContinuityErrors: errors,
		EventChain:       chain,
		Suggestions:      suggestions(errors, holes),
	}
}

// buildSequences groups adjacent events that share a character or location.
func buildSequences(events []Event) [][]int {
	sequences := make([][]int, 0, 4)
	var current []int
	for i, e := range events {
		if len(current) == 0 {
			current = []int{i}
			continue
		}
		prev := events[current[len(current)-1]]
		if e.Paragraph-prev.Paragraph <= 2 && related(prev, e) {
			current = append(current, i)
			continue
		}
		sequences = append(sequences, current)
		current = []int{i}
	}
	if len(current) > 0 {
		sequences = append(sequences, current)
	}
	return sequences
}

func related(a, b Event) bool {
	if a.Location != "" && a.Location == b.Location {
		return true
	}
	for _, ca := range a.Characters {
		for _, cb := range b.Characters {
			if ca == cb {
				return true
			}
		}
	}
	return false
}

// buildTimeline orders events by detected time markers, falling back to
// paragraph order. Relative markers and calendar years sort in separate
// bands, years last.
func buildTimeline(events []Event) []int {
	idx := make([]int, len(events))
	for i := range events {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		oi, okI := nlptag.MarkerOrder(events[idx[i]].Timestamp)
		oj, okJ := nlptag.MarkerOrder(events[idx[j]].Timestamp)
		if okI && okJ && oi != oj {
			return oi < oj
		}
		return events[idx[i]].Paragraph < events[idx[j]].Paragraph
	})
	return idx
}

func namesIn(sentence string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(sentence, n) {
			out = append(out, n)
		}
	}
	return out
}

func suggestions(errors []ContinuityError, holes []PlotHole) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(errors)+len(holes))
	for _, e := range errors {
		if e.Suggestion == "" {
			continue
		}
		if _, ok := seen[e.Suggestion]; ok {
			continue
		}
		seen[e.Suggestion] = struct{}{}
		out = append(out, e.Suggestion)
	}
	for _, h := range holes {
		s := "Establish preconditions earlier: " + h.Description
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
