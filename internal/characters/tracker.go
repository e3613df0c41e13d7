package characters

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"storylens/internal/nlptag"
	"storylens/internal/segment"
)

// Appearance actions.
const (
	ActionEnter   = "enter"
	ActionExit    = "exit"
	ActionMention = "mention"
)

// Continuity severities, ordered high > medium > low.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

var exitVerbPattern = regexp.MustCompile(`(?i)\b(left|departed|exited|walked out|stormed out|fled|vanished|went away|slipped away)\b`)
var arrivalVerbPattern = regexp.MustCompile(`(?i)\b(entered|arrived|returned|came in|came back|walked in|walked into|stepped in|stepped into|appeared|joined|burst in|burst into)\b`)
var travelVerbPattern = regexp.MustCompile(`(?i)\b(entered|arrived|returned|walked|ran|rode|drove|travelled|traveled|crossed|climbed|went|moved|stepped|hurried|followed|reached)\b`)
var actionVerbPattern = regexp.MustCompile(`(?i)\b(said|asked|replied|whispered|shouted|murmured|called|told|answered|cried|snapped|smiled|laughed|frowned|nodded|grabbed|opened|closed|turned|looked|stared|reached|stood|sat|jumped|fought|drew|raised|fired|threw|caught|took|held|pushed|pulled|ran|walked)\b`)

type Appearance struct {
	Paragraph int    `json:"paragraph"`
	Action    string `json:"action"`
	Location  string `json:"location,omitempty"`
}

type Character struct {
	Name            string            `json:"name"`
	CurrentLocation string            `json:"currentLocation,omitempty"`
	LastMention     int               `json:"lastMention"`
	Attributes      map[string]string `json:"attributes"`
	Appearances     []Appearance      `json:"appearances"`
}

type ContinuityError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Paragraph   int    `json:"paragraph"`
	Severity    string `json:"severity"`
	Suggestion  string `json:"suggestion,omitempty"`
}

type Statistics struct {
	AppearanceCounts  map[string]int `json:"appearanceCounts"`
	LocationFrequency map[string]int `json:"locationFrequency"`
	Interactions      map[string]int `json:"interactions"`
}

type Result struct {
	Characters       []Character       `json:"characters"`
	ContinuityErrors []ContinuityError `json:"continuityErrors"`
	Statistics       Statistics        `json:"statistics"`
	Suggestions      []string          `json:"suggestions"`
}

type Options struct {
	Tagger nlptag.Tagger
}

// ledger accumulates per-character scan state.
type ledger struct {
	character    *Character
	lastAction   string
	lastLocation string
	markerAt     map[string]string
}

// Analyze scans paragraphs in order, building the character ledger and then
// evaluating continuity rules over the appearance history. mainCharacters,
// when supplied, restricts detection to that allow-list.
func Analyze(text string, mainCharacters []string, opts Options) Result {
	tagger := opts.Tagger
	if tagger == nil {
		tagger = nlptag.Heuristic{}
	}

	paragraphs := segment.Paragraphs(text)
	ledgers := map[string]*ledger{}
	order := make([]string, 0, 8)
	errors := make([]ContinuityError, 0, 2)
	locationFrequency := map[string]int{}
	interactions := map[string]int{}

	for _, p := range paragraphs {
		tokens := tagger.Tag(p.Text)
		names := detectNames(p.Text, tokens, mainCharacters)
		location := nlptag.FirstLocation(tokens)
		if location != "" {
			locationFrequency[location]++
		}
		markers := nlptag.TimeMarkers(p.Text)

		for _, name := range names {
			entry, ok := ledgers[name]
			if !ok {
				entry = &ledger{character: &Character{Name: name, Attributes: map[string]string{}}, markerAt: map[string]string{}}
				ledgers[name] = entry
				order = append(order, name)
			}

			sentence := sentenceWith(p.Text, name)
			exiting := exitVerbPattern.MatchString(sentence) && verbFollowsName(sentence, name, exitVerbPattern)
			arriving := arrivalVerbPattern.MatchString(sentence) && verbFollowsName(sentence, name, arrivalVerbPattern)
			acting := verbFollowsName(sentence, name, actionVerbPattern)
			traveling := verbFollowsName(sentence, name, travelVerbPattern)

			action := ActionMention
			switch {
			case exiting:
				action = ActionExit
			case len(entry.character.Appearances) == 0 || entry.lastAction == ActionExit:
				action = ActionEnter
			}

			// Reappearing as an actor after an exit, with no arrival
			// language, contradicts the departure.
			if entry.lastAction == ActionExit && action == ActionEnter && acting && !arriving {
				errors = append(errors, ContinuityError{
					Type:        "character",
					Description: fmt.Sprintf("%s acts in paragraph %d after exiting in paragraph %d with no new entrance", name, p.Index, entry.character.LastMention),
					Paragraph:   p.Index,
					Severity:    SeverityHigh,
					Suggestion:  fmt.Sprintf("Add an entrance for %s before paragraph %d or remove the earlier exit.", name, p.Index),
				})
			}

			// Acting somewhere new without any travel language breaks
			// location continuity.
			if location != "" && entry.lastLocation != "" && location != entry.lastLocation &&
				(action == ActionEnter || acting) && !traveling && !arriving {
				errors = append(errors, ContinuityError{
					Type:        "character",
					Description: fmt.Sprintf("%s appears in the %s at paragraph %d but was last seen in the %s", name, location, p.Index, entry.lastLocation),
					Paragraph:   p.Index,
					Severity:    SeverityMedium,
					Suggestion:  fmt.Sprintf("Show %s traveling from the %s to the %s.", name, entry.lastLocation, location),
				})
			}

			appearance := Appearance{Paragraph: p.Index, Action: action}
			if location != "" && (action == ActionEnter || traveling) {
				appearance.Location = location
				entry.character.CurrentLocation = location
				entry.lastLocation = location
				if len(markers) > 0 {
					entry.markerAt[location] = markers[0]
				}
			}
			entry.character.Appearances = append(entry.character.Appearances, appearance)
			entry.character.LastMention = p.Index
			entry.lastAction = action
		}

		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				interactions[pairKey(names[i], names[j])]++
			}
		}
	}

	errors = append(errors, timelineErrors(ledgers, order)...)

	out := make([]Character, 0, len(order))
	appearanceCounts := map[string]int{}
	for _, name := range order {
		c := ledgers[name].character
		appearanceCounts[name] = len(c.Appearances)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Appearances) == len(out[j].Appearances) {
			return out[i].Name < out[j].Name
		}
		return len(out[i].Appearances) > len(out[j].Appearances)
	})

	return Result{
		Characters:       out,
		ContinuityErrors: errors,
		Statistics: Statistics{
			AppearanceCounts:  appearanceCounts,
			LocationFrequency: locationFrequency,
			Interactions:      interactions,
		},
		Suggestions: dedupSuggestions(errors),
	}
}

// timelineErrors flags two characters placed at the same location under
// conflicting time markers.
func timelineErrors(ledgers map[string]*ledger, order []string) []ContinuityError {
	out := make([]ContinuityError, 0, 1)
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := ledgers[order[i]], ledgers[order[j]]
			if a.character.CurrentLocation == "" || a.character.CurrentLocation != b.character.CurrentLocation {
				continue
			}
			location := a.character.CurrentLocation
			ma, okA := nlptag.MarkerOrder(a.markerAt[location])
			mb, okB := nlptag.MarkerOrder(b.markerAt[location])
			if !okA || !okB || ma == mb {
				continue
			}
			paragraph := a.character.LastMention
			if b.character.LastMention > paragraph {
				paragraph = b.character.LastMention
			}
			out = append(out, ContinuityError{
				Type:        "timeline",
				Description: fmt.Sprintf("%s and %s are both placed in the %s under conflicting time markers (%q vs %q)", order[i], order[j], location, a.markerAt[location], b.markerAt[location]),
				Paragraph:   paragraph,
				Severity:    SeverityLow,
				Suggestion:  fmt.Sprintf("Reconcile when %s and %s are in the %s.", order[i], order[j], location),
			})
		}
	}
	return out
}

// detectNames returns the paragraph's character names in order of first
// occurrence. With an allow-list, plain word-boundary matching is used so
// detection does not depend on tagger recall.
func detectNames(text string, tokens []nlptag.Token, allowList []string) []string {
	if len(allowList) == 0 {
		return nlptag.Names(tokens)
	}
	type hit struct {
		name string
		at   int
	}
	hits := make([]hit, 0, len(allowList))
	for _, name := range allowList {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if loc := pattern.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{name: name, at: loc[0]})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

// sentenceWith returns the first sentence of text containing name, falling
// back to the whole text.
func sentenceWith(text, name string) string {
	for _, s := range segment.Sentences(text) {
		if strings.Contains(s, name) {
			return s
		}
	}
	return text
}

// verbFollowsName reports whether a pattern match occurs shortly after the
// name within the sentence, i.e. the character is the likely subject.
func verbFollowsName(sentence, name string, pattern *regexp.Regexp) bool {
	idx := strings.Index(sentence, name)
	if idx == -1 {
		return false
	}
	rest := sentence[idx+len(name):]
	loc := pattern.FindStringIndex(rest)
	return loc != nil && loc[0] < 40
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func dedupSuggestions(errors []ContinuityError) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(errors))
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
	return out
}
