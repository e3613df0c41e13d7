package repetition

import (
	"sort"
	"strings"

	"storylens/internal/segment"
)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "at": {}, "by": {}, "for": {}, "with": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"were": {}, "are": {}, "be": {}, "been": {}, "it": {}, "its": {}, "he": {}, "she": {}, "his": {},
	"her": {}, "him": {}, "they": {}, "them": {}, "their": {}, "that": {}, "this": {}, "there": {},
	"had": {}, "has": {}, "have": {}, "not": {}, "no": {}, "so": {}, "up": {}, "out": {}, "into": {},
	"i": {}, "you": {}, "we": {}, "all": {}, "when": {}, "then": {}, "said": {},
}

type Context struct {
	Before    string `json:"before"`
	After     string `json:"after"`
	Paragraph int    `json:"paragraph"`
	Position  int    `json:"position"` // word offset into the document
}

type Instance struct {
	Term     string    `json:"term"`
	Count    int       `json:"count"`
	Contexts []Context `json:"contexts"`
	IsPhrase bool      `json:"isPhrase"`
}

type Statistics struct {
	TotalWords         int    `json:"totalWords"`
	MostFrequentWord   string `json:"mostFrequentWord"`
	MostFrequentPhrase string `json:"mostFrequentPhrase"`
	FlaggedWords       int    `json:"flaggedWords"`
	FlaggedPhrases     int    `json:"flaggedPhrases"`
}

type Result struct {
	RepeatedWords   []Instance `json:"repeatedWords"`
	RepeatedPhrases []Instance `json:"repeatedPhrases"`
	Statistics      Statistics `json:"statistics"`
}

type Options struct {
	MinCount    int // occurrences needed inside one proximity window
	Window      int // proximity window, in words
	MaxContexts int
}

func defaultOptions(opts Options) Options {
	if opts.MinCount <= 0 {
		opts.MinCount = 3
	}
	if opts.Window <= 0 {
		opts.Window = 150
	}
	if opts.MaxContexts <= 0 {
		opts.MaxContexts = 5
	}
	return opts
}

type occurrence struct {
	position  int
	paragraph int
}

// Analyze counts word and 2-4 gram frequency and flags terms whose
// occurrences cluster inside the proximity window. Repeats scattered far
// apart in a long document are not flagged.
func Analyze(text string, opts Options) Result {
	opts = defaultOptions(opts)

	paragraphs := segment.Paragraphs(text)
	var words []string
	var wordParagraph []int
	for _, p := range paragraphs {
		for _, w := range segment.Words(p.Text) {
			words = append(words, w)
			wordParagraph = append(wordParagraph, p.Index)
		}
	}

	wordOccurrences := map[string][]occurrence{}
	for i, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) < 3 {
			continue
		}
		wordOccurrences[w] = append(wordOccurrences[w], occurrence{position: i, paragraph: wordParagraph[i]})
	}

	phraseOccurrences := map[string][]occurrence{}
	for n := 2; n <= 4; n++ {
		for i := 0; i+n <= len(words); i++ {
			gram := words[i : i+n]
			if allStopwords(gram) {
				continue
			}
			phrase := strings.Join(gram, " ")
			phraseOccurrences[phrase] = append(phraseOccurrences[phrase], occurrence{position: i, paragraph: wordParagraph[i]})
		}
	}

	repeatedWords := collect(wordOccurrences, words, opts, false)
	repeatedPhrases := collect(phraseOccurrences, words, opts, true)

	return Result{
		RepeatedWords:   repeatedWords,
		RepeatedPhrases: repeatedPhrases,
		Statistics: Statistics{
			TotalWords:         len(words),
			MostFrequentWord:   mostFrequent(repeatedWords),
			MostFrequentPhrase: mostFrequent(repeatedPhrases),
			FlaggedWords:       len(repeatedWords),
			FlaggedPhrases:     len(repeatedPhrases),
		},
	}
}

func collect(occurrences map[string][]occurrence, words []string, opts Options, isPhrase bool) []Instance {
	out := make([]Instance, 0, 8)
	for term, occs := range occurrences {
		if len(occs) < opts.MinCount {
			continue
		}
		if !clusteredWithinWindow(occs, opts.MinCount, opts.Window) {
			continue
		}
		if isPhrase && subsumedByLonger(term, occurrences, len(occs)) {
			continue
		}
		instance := Instance{Term: term, Count: len(occs), IsPhrase: isPhrase}
		for _, occ := range occs {
			if len(instance.Contexts) >= opts.MaxContexts {
				break
			}
			instance.Contexts = append(instance.Contexts, contextAt(words, occ, term))
		}
		out = append(out, instance)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return firstPosition(occurrences[out[i].Term]) < firstPosition(occurrences[out[j].Term])
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// clusteredWithinWindow reports whether some window of the given word span
// contains at least minCount occurrences.
func clusteredWithinWindow(occs []occurrence, minCount, window int) bool {
	for i := 0; i+minCount-1 < len(occs); i++ {
		if occs[i+minCount-1].position-occs[i].position <= window {
			return true
		}
	}
	return false
}

// subsumedByLonger suppresses an n-gram that only repeats as part of a
// longer repeated phrase with the same count.
func subsumedByLonger(term string, occurrences map[string][]occurrence, count int) bool {
	for other, occs := range occurrences {
		if other == term || len(occs) != count {
			continue
		}
		if len(other) > len(term) && strings.Contains(" "+other+" ", " "+term+" ") {
			return true
		}
	}
	return false
}

func contextAt(words []string, occ occurrence, term string) Context {
	termLen := len(strings.Fields(term))
	beforeStart := occ.position - 6
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := occ.position + termLen + 6
	if afterEnd > len(words) {
		afterEnd = len(words)
	}
	return Context{
		Before:    strings.Join(words[beforeStart:occ.position], " "),
		After:     strings.Join(words[occ.position+termLen:afterEnd], " "),
		Paragraph: occ.paragraph,
		Position:  occ.position,
	}
}

func firstPosition(occs []occurrence) int {
	if len(occs) == 0 {
		return 0
	}
	return occs[0].position
}

func mostFrequent(instances []Instance) string {
	if len(instances) == 0 {
		return ""
	}
	return instances[0].Term
}

func allStopwords(gram []string) bool {
	for _, w := range gram {
		if _, ok := stopwords[w]; !ok {
			return false
		}
	}
	return true
}
