package emotion

import (
	"fmt"
	"sort"

	"storylens/internal/nlptag"
	"storylens/internal/segment"
)

type Score struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
}

// Total is the summed magnitude across all axes.
func (s Score) Total() float64 {
	return s.Joy + s.Sadness + s.Anger + s.Fear + s.Surprise
}

// Dominant returns the strongest axis and its magnitude. Ties resolve in
// canonical axis order.
func (s Score) Dominant() (string, float64) {
	values := map[string]float64{
		"joy": s.Joy, "sadness": s.Sadness, "anger": s.Anger, "fear": s.Fear, "surprise": s.Surprise,
	}
	best := ""
	bestValue := -1.0
	for _, axis := range Axes {
		if values[axis] > bestValue {
			best = axis
			bestValue = values[axis]
		}
	}
	return best, bestValue
}

type Scene struct {
	StartParagraph int      `json:"startParagraph"`
	EndParagraph   int      `json:"endParagraph"`
	Characters     []string `json:"characters"`
	Location       string   `json:"location,omitempty"`
	EmotionalScore Score    `json:"emotionalScore"`
}

type ArcPoint struct {
	Scene int     `json:"scene"`
	Score Score   `json:"score"`
	Total float64 `json:"total"`
}

type Arc struct {
	Points       []ArcPoint `json:"points"`
	OverallTrend string     `json:"overallTrend"`
}

type HighPoint struct {
	Scene     int     `json:"scene"`
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	Excerpt   string  `json:"excerpt"`
}

type Result struct {
	Scenes              []Scene     `json:"scenes"`
	EmotionalArc        Arc         `json:"emotionalArc"`
	PacingSuggestions   []string    `json:"pacingSuggestions"`
	EmotionalHighPoints []HighPoint `json:"emotionalHighPoints"`
}

type Options struct {
	MaxSceneParagraphs int
	HighPointThreshold float64
	Tagger             nlptag.Tagger
}

func defaultOptions(opts Options) Options {
	if opts.MaxSceneParagraphs <= 0 {
		opts.MaxSceneParagraphs = 8
	}
	if opts.HighPointThreshold <= 0 {
		opts.HighPointThreshold = 2.5
	}
	if opts.Tagger == nil {
		opts.Tagger = nlptag.Heuristic{}
	}
	return opts
}

// Analyze scores emotional content scene by scene. Scenes are bounded by the
// delimiter when it occurs in the text; otherwise paragraphs are clustered
// into fixed-size runs so the scene ranges still partition the document.
func Analyze(text, sceneDelimiter string, opts Options) Result {
	opts = defaultOptions(opts)
	paragraphs := segment.Paragraphs(text)
	if len(paragraphs) == 0 {
		return Result{Scenes: []Scene{}, EmotionalArc: Arc{Points: []ArcPoint{}, OverallTrend: "flat"}, PacingSuggestions: []string{}, EmotionalHighPoints: []HighPoint{}}
	}

	groups := buildSceneGroups(paragraphs, sceneDelimiter, opts.MaxSceneParagraphs)
	scenes := make([]Scene, 0, len(groups))
	points := make([]ArcPoint, 0, len(groups))
	highPoints := make([]HighPoint, 0, 2)

	for i, group := range groups {
		var words []string
		var sceneText string
		names := map[string]struct{}{}
		location := ""
		for _, p := range group {
			words = append(words, segment.Words(p.Text)...)
			if sceneText == "" {
				sceneText = p.Text
			}
			tokens := opts.Tagger.Tag(p.Text)
			for _, n := range nlptag.Names(tokens) {
				names[n] = struct{}{}
			}
			if location == "" {
				location = nlptag.FirstLocation(tokens)
			}
		}
		score := ScoreWords(words)
		scene := Scene{
			StartParagraph: group[0].Index,
			EndParagraph:   group[len(group)-1].Index,
			Characters:     sortedKeys(names),
			Location:       location,
			EmotionalScore: score,
		}
		scenes = append(scenes, scene)
		points = append(points, ArcPoint{Scene: i + 1, Score: score, Total: score.Total()})

		if axis, intensity := score.Dominant(); intensity >= opts.HighPointThreshold {
			highPoints = append(highPoints, HighPoint{
				Scene:     i + 1,
				Emotion:   axis,
				Intensity: intensity,
				Excerpt:   segment.FirstWords(sceneText, 18),
			})
		}
	}

	return Result{
		Scenes:              scenes,
		EmotionalArc:        Arc{Points: points, OverallTrend: trend(points)},
		PacingSuggestions:   pacingSuggestions(points),
		EmotionalHighPoints: highPoints,
	}
}

// buildSceneGroups honors delimiter boundaries whenever the delimiter occurs
// in the text, even when it bounds a single scene. Only without any
// occurrence are paragraphs chunked into runs of at most maxLen, so the
// scene ranges still partition the document.
func buildSceneGroups(paragraphs []segment.Paragraph, delimiter string, maxLen int) [][]segment.Paragraph {
	if segment.HasDelimiter(paragraphs, delimiter) {
		return segment.Scenes(paragraphs, delimiter)
	}
	groups := make([][]segment.Paragraph, 0, (len(paragraphs)/maxLen)+1)
	for start := 0; start < len(paragraphs); start += maxLen {
		end := start + maxLen
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		groups = append(groups, paragraphs[start:end])
	}
	return groups
}

func trend(points []ArcPoint) string {
	if len(points) < 2 {
		return "flat"
	}
	// Least-squares slope over scene totals.
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Total
		sumXY += x * p.Total
		sumXX += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	switch {
	case slope > 0.15:
		return "rising"
	case slope < -0.15:
		return "falling"
	default:
		return "flat"
	}
}

func pacingSuggestions(points []ArcPoint) []string {
	out := make([]string, 0, 2)
	for i, p := range points {
		neighbors := 0.0
		count := 0
		if i > 0 {
			neighbors += points[i-1].Total
			count++
		}
		if i+1 < len(points) {
			neighbors += points[i+1].Total
			count++
		}
		if count == 0 {
			continue
		}
		avg := neighbors / float64(count)
		if avg > 1.0 && p.Total < avg*0.35 {
			out = append(out, fmt.Sprintf("Scene %d reads as a flat stretch compared to its neighbors; consider raising the stakes or trimming it.", p.Scene))
		}
		if i > 0 && points[i-1].Total > 0.2 && p.Total > points[i-1].Total*2.5 {
			out = append(out, fmt.Sprintf("Scene %d spikes emotionally without setup; consider foreshadowing it in scene %d.", p.Scene, p.Scene-1))
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
