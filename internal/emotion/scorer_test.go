package emotion

import (
	"strings"
	"testing"
)

func TestAnalyzeDelimitedScenes(t *testing.T) {
	text := strings.Join([]string{
		"Alice laughed and smiled, delighted by the wonderful morning.",
		"***",
		"The funeral left her heartbroken. She wept alone and sobbed in grief.",
		"***",
		"A shadow moved. She was terrified, frozen by dread and panic.",
	}, "\n\n")

	result := Analyze(text, "***", Options{})
	if len(result.Scenes) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(result.Scenes))
	}
	if len(result.EmotionalArc.Points) != 3 {
		t.Fatalf("expected 3 arc points, got %d", len(result.EmotionalArc.Points))
	}
	if axis, _ := result.Scenes[0].EmotionalScore.Dominant(); axis != "joy" {
		t.Fatalf("expected joy-dominant first scene, got %s", axis)
	}
	if axis, _ := result.Scenes[1].EmotionalScore.Dominant(); axis != "sadness" {
		t.Fatalf("expected sadness-dominant second scene, got %s", axis)
	}
	if axis, _ := result.Scenes[2].EmotionalScore.Dominant(); axis != "fear" {
		t.Fatalf("expected fear-dominant third scene, got %s", axis)
	}
}

func TestSceneRangesPartitionParagraphsWithoutDelimiter(t *testing.T) {
	paragraphs := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, "The road stretched on and the travelers kept walking through the dust.")
	}
	result := Analyze(strings.Join(paragraphs, "\n\n"), "***", Options{MaxSceneParagraphs: 8})

	covered := map[int]int{}
	for _, scene := range result.Scenes {
		if scene.StartParagraph > scene.EndParagraph {
			t.Fatalf("scene range inverted: %d > %d", scene.StartParagraph, scene.EndParagraph)
		}
		for p := scene.StartParagraph; p <= scene.EndParagraph; p++ {
			covered[p]++
		}
	}
	for p := 1; p <= 20; p++ {
		if covered[p] != 1 {
			t.Fatalf("paragraph %d covered %d times", p, covered[p])
		}
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	result := Analyze("", "***", Options{})
	if len(result.Scenes) != 0 || len(result.EmotionalArc.Points) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestHighPointsCarryExcerpts(t *testing.T) {
	text := "She was terrified. Horror and dread and panic seized her. The nightmare screamed. Terror. Fear. Danger. Panic. Horror."
	result := Analyze(text, "***", Options{HighPointThreshold: 1.0})
	if len(result.EmotionalHighPoints) == 0 {
		t.Fatalf("expected a high point for concentrated fear vocabulary")
	}
	hp := result.EmotionalHighPoints[0]
	if hp.Emotion != "fear" || hp.Excerpt == "" {
		t.Fatalf("unexpected high point: %+v", hp)
	}
}

func TestScoreWordsNormalizesByLength(t *testing.T) {
	short := ScoreWords([]string{"happy", "road"})
	long := ScoreWords([]string{"happy", "road", "road", "road", "road", "road", "road", "road"})
	if short.Joy <= long.Joy {
		t.Fatalf("expected dilution by length: short=%f long=%f", short.Joy, long.Joy)
	}
}

func TestAnalyzeDelimiterOnlyDocument(t *testing.T) {
	result := Analyze("***", "***", Options{})
	if len(result.Scenes) != 0 {
		t.Fatalf("expected no scenes, got %d", len(result.Scenes))
	}
	if len(result.EmotionalArc.Points) != 0 {
		t.Fatalf("expected no arc points, got %d", len(result.EmotionalArc.Points))
	}
	if result.EmotionalArc.OverallTrend != "flat" {
		t.Fatalf("expected flat trend, got %s", result.EmotionalArc.OverallTrend)
	}
}

func TestTrailingDelimiterBoundsOneScene(t *testing.T) {
	paragraphs := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		paragraphs = append(paragraphs, "The road stretched on and the travelers kept walking through the dust.")
	}
	paragraphs = append(paragraphs, "***")
	result := Analyze(strings.Join(paragraphs, "\n\n"), "***", Options{MaxSceneParagraphs: 8})

	if len(result.Scenes) != 1 {
		t.Fatalf("expected one delimiter-bounded scene, got %d", len(result.Scenes))
	}
	if result.Scenes[0].StartParagraph != 1 || result.Scenes[0].EndParagraph != 10 {
		t.Fatalf("expected scene spanning 1-10, got %d-%d", result.Scenes[0].StartParagraph, result.Scenes[0].EndParagraph)
	}
}
