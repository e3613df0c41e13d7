package dialogue

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"storylens/internal/emotion"
	"storylens/internal/nlptag"
	"storylens/internal/segment"
)

var quotePattern = regexp.MustCompile(`["\x{201C}]([^"\x{201C}\x{201D}]+)["\x{201D}]`)
var plainSaidPattern = regexp.MustCompile(`(?i)\bsaid\b`)

type Segment struct {
	Speaker       string   `json:"speaker,omitempty"`
	Text          string   `json:"text"`
	Paragraph     int      `json:"paragraph"`
	EmotionalTone string   `json:"emotionalTone"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

type Statistics struct {
	TotalSegments        int            `json:"totalSegments"`
	SegmentsBySpeaker    map[string]int `json:"segmentsBySpeaker"`
	UnattributedSegments int            `json:"unattributedSegments"`
	AverageWords         float64        `json:"averageWords"`
}

type Result struct {
	DialogueSegments   []Segment  `json:"dialogueSegments"`
	Statistics         Statistics `json:"statistics"`
	GeneralSuggestions []string   `json:"generalSuggestions"`
}

type Options struct {
	Tagger nlptag.Tagger
}

// Analyze extracts quoted spans, attributes speakers by name proximity within
// the paragraph, and tags each span's emotional tone. When focusCharacter is
// set, statistics and suggestions are scoped to that speaker's segments.
func Analyze(text, focusCharacter string, opts Options) Result {
	tagger := opts.Tagger
	if tagger == nil {
		tagger = nlptag.Heuristic{}
	}

	paragraphs := segment.Paragraphs(text)
	segments := make([]Segment, 0, 8)
	dialogueOnly := make([]bool, len(paragraphs))

	for i, p := range paragraphs {
		tokens := tagger.Tag(p.Text)
		matches := quotePattern.FindAllStringSubmatchIndex(p.Text, -1)
		quotedBytes := 0
		for _, m := range matches {
			quoted := p.Text[m[2]:m[3]]
			quotedBytes += m[1] - m[0]
			seg := Segment{
				Speaker:       attributeSpeaker(p.Text, tokens, m[0], m[1]),
				Text:          strings.TrimSpace(quoted),
				Paragraph:     p.Index,
				EmotionalTone: tone(quoted),
			}
			seg.Suggestions = segmentSuggestions(p.Text, seg)
			segments = append(segments, seg)
		}
		if len(matches) > 0 && quotedBytes*10 >= len(p.Text)*8 {
			dialogueOnly[i] = true
		}
	}

	scoped := segments
	if focusCharacter != "" {
		scoped = make([]Segment, 0, len(segments))
		for _, s := range segments {
			if strings.EqualFold(s.Speaker, focusCharacter) {
				scoped = append(scoped, s)
			}
		}
	}

	return Result{
		DialogueSegments:   segments,
		Statistics:         statistics(scoped),
		GeneralSuggestions: generalSuggestions(scoped, dialogueOnly, focusCharacter),
	}
}

// attributeSpeaker picks the nearest character name before or after the
// quote within the same paragraph. Equidistant competing candidates leave
// the speaker unset.
func attributeSpeaker(text string, tokens []nlptag.Token, quoteStart, quoteEnd int) string {
	best := ""
	bestDistance := -1
	tied := false
	for _, tok := range tokens {
		if tok.Role != nlptag.RoleName {
			continue
		}
		var distance int
		switch {
		case tok.Start < quoteStart:
			distance = quoteStart - (tok.Start + len(tok.Text))
		case tok.Start >= quoteEnd:
			distance = tok.Start - quoteEnd
		default:
			continue // a name inside the quote is an addressee, not the speaker
		}
		if bestDistance == -1 || distance < bestDistance {
			best = tok.Text
			bestDistance = distance
			tied = false
		} else if distance == bestDistance && tok.Text != best {
			tied = true
		}
	}
	if tied || bestDistance == -1 || bestDistance > 60 {
		return ""
	}
	return best
}

func tone(quoted string) string {
	score := emotion.ScoreWords(segment.Words(quoted))
	axis, intensity := score.Dominant()
	if intensity <= 0 {
		return "neutral"
	}
	return axis
}

func segmentSuggestions(paragraph string, seg Segment) []string {
	out := make([]string, 0, 1)
	if len(strings.Fields(seg.Text)) > 40 {
		out = append(out, "Long speech; consider splitting it with a beat or a reaction.")
	}
	if seg.EmotionalTone != "neutral" && plainSaidPattern.MatchString(paragraph) {
		out = append(out, fmt.Sprintf("The line carries %s but is tagged with a plain 'said'; a stronger verb or beat could do more.", seg.EmotionalTone))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func statistics(segments []Segment) Statistics {
	bySpeaker := map[string]int{}
	unattributed := 0
	words := 0
	for _, s := range segments {
		if s.Speaker == "" {
			unattributed++
		} else {
			bySpeaker[s.Speaker]++
		}
		words += len(strings.Fields(s.Text))
	}
	avg := 0.0
	if len(segments) > 0 {
		avg = float64(words) / float64(len(segments))
	}
	return Statistics{
		TotalSegments:        len(segments),
		SegmentsBySpeaker:    bySpeaker,
		UnattributedSegments: unattributed,
		AverageWords:         avg,
	}
}

func generalSuggestions(segments []Segment, dialogueOnly []bool, focusCharacter string) []string {
	out := make([]string, 0, 3)
	stats := statistics(segments)
	if stats.UnattributedSegments > 0 {
		out = append(out, fmt.Sprintf("%d dialogue segment(s) have no attributable speaker; consider adding dialogue tags.", stats.UnattributedSegments))
	}

	run := 0
	longestRun := 0
	for _, d := range dialogueOnly {
		if d {
			run++
			if run > longestRun {
				longestRun = run
			}
		} else {
			run = 0
		}
	}
	if longestRun >= 4 {
		out = append(out, fmt.Sprintf("A run of %d dialogue-heavy paragraphs has no narrative beats; consider grounding the exchange in action.", longestRun))
	}

	if focusCharacter == "" && stats.TotalSegments >= 5 {
		speakers := make([]string, 0, len(stats.SegmentsBySpeaker))
		for s := range stats.SegmentsBySpeaker {
			speakers = append(speakers, s)
		}
		sort.Strings(speakers)
		for _, s := range speakers {
			if stats.SegmentsBySpeaker[s]*10 > stats.TotalSegments*7 {
				out = append(out, fmt.Sprintf("%s carries %d of %d dialogue segments; the exchange may feel one-sided.", s, stats.SegmentsBySpeaker[s], stats.TotalSegments))
			}
		}
	}
	return out
}
