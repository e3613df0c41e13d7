package thesaurus

import (
	"regexp"
	"sort"
	"strings"

	"storylens/internal/emotion"
	"storylens/internal/segment"
)

// Register labels for the surrounding context.
const (
	ContextDialogue    = "dialogue"
	ContextAction      = "action"
	ContextDescription = "description"
)

type candidate struct {
	word      string
	pos       string // verb, adjective, adverb, noun
	formality int    // 0 informal .. 2 formal
	intensity int    // 0 mild .. 2 strong
}

// Fixed candidate sets for common narrative vocabulary. Unknown terms return
// no suggestions, never an error.
var candidates = map[string][]candidate{
	"said":      {{"remarked", "verb", 2, 0}, {"stated", "verb", 2, 0}, {"muttered", "verb", 1, 1}, {"declared", "verb", 2, 1}, {"blurted", "verb", 0, 1}, {"announced", "verb", 1, 1}},
	"walked":    {{"strolled", "verb", 1, 0}, {"strode", "verb", 1, 1}, {"ambled", "verb", 1, 0}, {"trudged", "verb", 1, 1}, {"marched", "verb", 1, 1}, {"wandered", "verb", 1, 0}},
	"ran":       {{"sprinted", "verb", 1, 2}, {"dashed", "verb", 1, 2}, {"bolted", "verb", 0, 2}, {"hurried", "verb", 1, 1}, {"raced", "verb", 1, 2}},
	"looked":    {{"gazed", "verb", 1, 0}, {"glanced", "verb", 1, 0}, {"stared", "verb", 1, 1}, {"peered", "verb", 1, 0}, {"surveyed", "verb", 2, 0}},
	"whispered": {{"murmured", "verb", 1, 0}, {"breathed", "verb", 1, 0}, {"hissed", "verb", 1, 1}, {"muttered", "verb", 1, 0}},
	"shouted":   {{"yelled", "verb", 0, 2}, {"bellowed", "verb", 1, 2}, {"roared", "verb", 1, 2}, {"exclaimed", "verb", 2, 1}, {"hollered", "verb", 0, 2}},
	"big":       {{"huge", "adjective", 0, 1}, {"enormous", "adjective", 1, 2}, {"vast", "adjective", 2, 2}, {"immense", "adjective", 2, 2}, {"massive", "adjective", 1, 2}},
	"small":     {{"tiny", "adjective", 0, 1}, {"slight", "adjective", 2, 0}, {"minute", "adjective", 2, 1}, {"cramped", "adjective", 1, 1}, {"modest", "adjective", 2, 0}},
	"beautiful": {{"lovely", "adjective", 1, 0}, {"gorgeous", "adjective", 0, 2}, {"exquisite", "adjective", 2, 2}, {"radiant", "adjective", 2, 1}, {"striking", "adjective", 1, 1}},
	"dark":      {{"gloomy", "adjective", 1, 1}, {"shadowy", "adjective", 1, 1}, {"murky", "adjective", 1, 1}, {"dim", "adjective", 1, 0}, {"somber", "adjective", 2, 1}},
	"afraid":    {{"scared", "adjective", 0, 1}, {"terrified", "adjective", 1, 2}, {"fearful", "adjective", 2, 1}, {"uneasy", "adjective", 1, 0}, {"apprehensive", "adjective", 2, 1}},
	"happy":     {{"glad", "adjective", 1, 0}, {"cheerful", "adjective", 1, 1}, {"elated", "adjective", 2, 2}, {"content", "adjective", 2, 0}, {"thrilled", "adjective", 1, 2}},
	"sad":       {{"unhappy", "adjective", 1, 0}, {"sorrowful", "adjective", 2, 1}, {"mournful", "adjective", 2, 2}, {"glum", "adjective", 0, 1}, {"dejected", "adjective", 2, 1}},
	"angry":     {{"furious", "adjective", 1, 2}, {"irate", "adjective", 2, 2}, {"livid", "adjective", 1, 2}, {"annoyed", "adjective", 1, 0}, {"cross", "adjective", 1, 0}},
	"old":       {{"ancient", "adjective", 1, 2}, {"aged", "adjective", 2, 1}, {"weathered", "adjective", 1, 1}, {"elderly", "adjective", 2, 0}, {"worn", "adjective", 1, 1}},
	"quickly":   {{"swiftly", "adverb", 2, 1}, {"rapidly", "adverb", 2, 1}, {"hastily", "adverb", 1, 1}, {"briskly", "adverb", 1, 1}},
	"slowly":    {{"gradually", "adverb", 2, 0}, {"lazily", "adverb", 1, 0}, {"leisurely", "adverb", 2, 0}, {"sluggishly", "adverb", 1, 1}},
	"house":     {{"dwelling", "noun", 2, 0}, {"cottage", "noun", 1, 0}, {"residence", "noun", 2, 0}, {"home", "noun", 0, 0}},
}

type Suggestion struct {
	Word             string   `json:"word"`
	Synonyms         []string `json:"synonyms"`
	Context          string   `json:"context"`
	NarrativeContext string   `json:"narrativeContext"`
}

var quoteMarkPattern = regexp.MustCompile(`["\x{201C}\x{201D}]`)
var actionCuePattern = regexp.MustCompile(`(?i)\b(ran|grabbed|jumped|fought|threw|struck|chased|dodged|slammed|burst|leapt|fired|swung)\b`)
var informalCuePattern = regexp.MustCompile(`(?i)\b(gonna|wanna|yeah|okay|ok|kid|stuff|guy)\b|n't\b|'ll\b|'re\b`)

// FindSynonyms ranks the fixed candidate set for term by contextual fit:
// register (dialogue/action/description), formality, and emotional intensity
// of the surrounding text. sceneContext broadens the classification window.
func FindSynonyms(term, context, sceneContext string) []Suggestion {
	key := strings.ToLower(strings.TrimSpace(term))
	set, ok := candidates[key]
	if !ok || len(set) == 0 {
		return []Suggestion{}
	}

	register := classifyRegister(context)
	surrounding := context
	if sceneContext != "" {
		surrounding = context + " " + sceneContext
	}
	formality := classifyFormality(surrounding)
	intensity := classifyIntensity(surrounding)

	type scored struct {
		candidate candidate
		score     int
		index     int
	}
	ranked := make([]scored, 0, len(set))
	for i, c := range set {
		score := 0
		if c.formality == formality {
			score += 2
		} else if abs(c.formality-formality) == 1 {
			score++
		}
		if c.intensity == intensity {
			score += 2
		} else if abs(c.intensity-intensity) == 1 {
			score++
		}
		// Dialogue favors informal, clipped words; description favors
		// formal ones.
		if register == ContextDialogue && c.formality == 0 {
			score++
		}
		if register == ContextDescription && c.formality == 2 {
			score++
		}
		ranked = append(ranked, scored{candidate: c, score: score, index: i})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	synonyms := make([]string, 0, len(ranked))
	for _, r := range ranked {
		synonyms = append(synonyms, r.candidate.word)
	}

	return []Suggestion{{
		Word:             key,
		Synonyms:         synonyms,
		Context:          context,
		NarrativeContext: register + ", " + formalityLabel(formality) + ", " + intensityLabel(intensity),
	}}
}

func classifyRegister(context string) string {
	if quoteMarkPattern.MatchString(context) {
		return ContextDialogue
	}
	if actionCuePattern.MatchString(context) {
		return ContextAction
	}
	return ContextDescription
}

func classifyFormality(text string) int {
	if informalCuePattern.MatchString(text) {
		return 0
	}
	words := segment.Words(text)
	if len(words) == 0 {
		return 1
	}
	long := 0
	for _, w := range words {
		if len(w) >= 9 {
			long++
		}
	}
	if long*10 >= len(words) { // at least 10% long words
		return 2
	}
	return 1
}

func classifyIntensity(text string) int {
	total := emotion.ScoreWords(segment.Words(text)).Total()
	switch {
	case total >= 8:
		return 2
	case total >= 2:
		return 1
	default:
		return 0
	}
}

func formalityLabel(f int) string {
	switch f {
	case 0:
		return "informal"
	case 2:
		return "formal"
	default:
		return "neutral"
	}
}

func intensityLabel(i int) string {
	switch i {
	case 0:
		return "calm"
	case 2:
		return "charged"
	default:
		return "tense"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
