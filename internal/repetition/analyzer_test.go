package repetition

import (
	"strings"
	"testing"
)

func TestRepeatedPhraseWithinWindow(t *testing.T) {
	text := "The shadow crept close. The shadow waited there. The shadow grew darker. " +
		"The shadow touched him. The shadow whispered softly."
	result := Analyze(text, Options{MinCount: 3, Window: 150, MaxContexts: 5})

	var found *Instance
	for i := range result.RepeatedPhrases {
		if result.RepeatedPhrases[i].Term == "the shadow" {
			found = &result.RepeatedPhrases[i]
		}
	}
	if found == nil {
		t.Fatalf("expected 'the shadow' to be flagged, got %+v", result.RepeatedPhrases)
	}
	if found.Count != 5 {
		t.Fatalf("expected count 5, got %d", found.Count)
	}
	if len(found.Contexts) != 5 {
		t.Fatalf("expected 5 contexts, got %d", len(found.Contexts))
	}
	if !found.IsPhrase {
		t.Fatalf("expected phrase instance")
	}
}

func TestBelowThresholdNeverFlagged(t *testing.T) {
	text := "The lantern flickered twice. The lantern went out."
	result := Analyze(text, Options{MinCount: 3})
	for _, w := range result.RepeatedWords {
		if w.Term == "lantern" {
			t.Fatalf("lantern appears twice and must not be flagged: %+v", result.RepeatedWords)
		}
	}
}

func TestFarApartRepeatsNotFlagged(t *testing.T) {
	filler := strings.Repeat("walking slowly onward together forever again beyond distant silent rivers ", 30)
	text := "glimmering stone. " + filler + " glimmering stone. " + filler + " glimmering stone."
	result := Analyze(text, Options{MinCount: 3, Window: 50})
	for _, w := range result.RepeatedWords {
		if w.Term == "glimmering" {
			t.Fatalf("far-apart repeats must not be flagged: %+v", w)
		}
	}
}

func TestStatisticsReportMostFrequent(t *testing.T) {
	text := "Rain fell on rain and more rain. Cold wind and cold rain and cold stone."
	result := Analyze(text, Options{MinCount: 3, Window: 100})
	if result.Statistics.MostFrequentWord != "rain" {
		t.Fatalf("expected rain as most frequent word, got %q", result.Statistics.MostFrequentWord)
	}
	if result.Statistics.TotalWords == 0 {
		t.Fatalf("expected word count to be reported")
	}
}

func TestStopwordsExcludedFromSingleWords(t *testing.T) {
	text := "and the and the and the and the and the"
	result := Analyze(text, Options{MinCount: 2})
	if len(result.RepeatedWords) != 0 {
		t.Fatalf("stopwords must not be flagged as words: %+v", result.RepeatedWords)
	}
}

func TestEmptyTextYieldsEmptyResult(t *testing.T) {
	result := Analyze("", Options{})
	if len(result.RepeatedWords) != 0 || len(result.RepeatedPhrases) != 0 || result.Statistics.TotalWords != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
