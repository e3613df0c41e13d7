package emotion

// Axis-keyed word weights. Weights are relative; scores are comparable only
// within a single document.
var lexicon = map[string]map[string]float64{
	"joy": {
		"happy": 1.0, "joy": 1.2, "smiled": 0.8, "smile": 0.8, "laughed": 1.0, "laughter": 1.0,
		"delighted": 1.2, "glad": 0.8, "cheerful": 1.0, "warm": 0.5, "wonderful": 1.0,
		"celebrated": 1.0, "grinned": 0.8, "love": 1.0, "loved": 1.0, "hope": 0.6, "relieved": 0.8,
		"beamed": 0.9, "bright": 0.4, "danced": 0.6, "hugged": 0.8, "kissed": 0.8, "triumphant": 1.2,
	},
	"sadness": {
		"sad": 1.0, "wept": 1.2, "cried": 1.0, "tears": 1.0, "grief": 1.3, "mourned": 1.3,
		"lonely": 1.0, "sorrow": 1.2, "miserable": 1.1, "lost": 0.5, "sighed": 0.6, "empty": 0.6,
		"regret": 0.9, "ached": 0.8, "gloomy": 0.9, "despair": 1.3, "funeral": 1.0, "goodbye": 0.5,
		"sobbed": 1.2, "heartbroken": 1.4, "grave": 0.6, "dead": 0.8, "died": 0.9,
	},
	"anger": {
		"angry": 1.0, "furious": 1.3, "rage": 1.3, "shouted": 0.8, "yelled": 0.8, "snapped": 0.7,
		"slammed": 0.8, "hate": 1.1, "hated": 1.1, "glared": 0.8, "snarled": 1.0, "fists": 0.6,
		"bitter": 0.7, "resentment": 1.0, "outraged": 1.2, "seething": 1.2, "hostile": 0.9,
		"stormed": 0.8, "growled": 0.8, "spat": 0.7,
	},
	"fear": {
		"afraid": 1.0, "fear": 1.0, "terrified": 1.4, "trembled": 1.0, "shivered": 0.9,
		"dread": 1.2, "panic": 1.2, "horror": 1.3, "scared": 1.0, "nightmare": 1.0, "dark": 0.4,
		"shadow": 0.4, "screamed": 1.0, "frozen": 0.6, "nervous": 0.7, "danger": 0.8,
		"threat": 0.8, "haunted": 0.9, "creeping": 0.6, "whimpered": 0.9,
	},
	"surprise": {
		"suddenly": 0.7, "surprised": 1.0, "astonished": 1.2, "gasped": 1.0, "shocked": 1.1,
		"unexpected": 0.9, "startled": 1.0, "stunned": 1.1, "revealed": 0.7, "discovered": 0.6,
		"impossible": 0.7, "unbelievable": 1.0, "blinked": 0.5, "jolted": 0.9, "amazed": 1.0,
	},
}

// Axes lists the emotion axes in their canonical order.
var Axes = []string{"joy", "sadness", "anger", "fear", "surprise"}

// ScoreWords sums lexicon weights over lowercase tokens, one magnitude per
// axis, normalized per 100 words.
func ScoreWords(words []string) Score {
	if len(words) == 0 {
		return Score{}
	}
	totals := map[string]float64{}
	for _, w := range words {
		for axis, weights := range lexicon {
			if weight, ok := weights[w]; ok {
				totals[axis] += weight
			}
		}
	}
	norm := 100.0 / float64(len(words))
	return Score{
		Joy:      totals["joy"] * norm,
		Sadness:  totals["sadness"] * norm,
		Anger:    totals["anger"] * norm,
		Fear:     totals["fear"] * norm,
		Surprise: totals["surprise"] * norm,
	}
}
