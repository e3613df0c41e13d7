package engine

import (
	"context"
	"fmt"
	"sync"

	"storylens/internal/characters"
	"storylens/internal/config"
	"storylens/internal/dialogue"
	"storylens/internal/emotion"
	"storylens/internal/events"
	"storylens/internal/nlptag"
	"storylens/internal/reader"
	"storylens/internal/repetition"
	"storylens/internal/thesaurus"
)

// StoryAnalysis is the merged output of the comprehensive pass.
type StoryAnalysis struct {
	Characters characters.Result `json:"characters"`
	Events     events.Result     `json:"events"`
	Emotions   emotion.Result    `json:"emotions"`
	Dialogue   dialogue.Result   `json:"dialogue"`
	// Suggestions merges per-analyzer advice with cross-analyzer hints.
	Suggestions []string `json:"suggestions"`
}

// Engine binds the analyzers to one configuration and tagger. Every call is
// evaluated fresh from the supplied text; the engine holds no per-call state.
type Engine struct {
	cfg    config.Config
	tagger nlptag.Tagger
}

func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg, tagger: nlptag.Heuristic{}}
}

// NewWithTagger lets callers swap the heuristic tagger out.
func NewWithTagger(cfg config.Config, tagger nlptag.Tagger) *Engine {
	if tagger == nil {
		tagger = nlptag.Heuristic{}
	}
	return &Engine{cfg: cfg, tagger: tagger}
}

func (e *Engine) AnalyzeCharacters(text string, mainCharacters []string) characters.Result {
	return characters.Analyze(text, mainCharacters, characters.Options{Tagger: e.tagger})
}

func (e *Engine) AnalyzeEvents(text string) events.Result {
	return events.Analyze(text, events.Options{Tagger: e.tagger})
}

func (e *Engine) AnalyzeEmotions(text, sceneDelimiter string) emotion.Result {
	if sceneDelimiter == "" {
		sceneDelimiter = e.cfg.SceneDelimiter
	}
	return emotion.Analyze(text, sceneDelimiter, emotion.Options{
		MaxSceneParagraphs: e.cfg.MaxSceneParagraphs,
		HighPointThreshold: e.cfg.HighPointThreshold,
		Tagger:             e.tagger,
	})
}

func (e *Engine) AnalyzeDialogue(text, focusCharacter string) dialogue.Result {
	return dialogue.Analyze(text, focusCharacter, dialogue.Options{Tagger: e.tagger})
}

func (e *Engine) AnalyzeRepetitions(text string) repetition.Result {
	return repetition.Analyze(text, repetition.Options{
		MinCount:    e.cfg.RepetitionMinCount,
		Window:      e.cfg.RepetitionWindow,
		MaxContexts: e.cfg.RepetitionMaxContexts,
	})
}

func (e *Engine) FindSynonyms(term, context, sceneContext string) []thesaurus.Suggestion {
	return thesaurus.FindSynonyms(term, context, sceneContext)
}

func (e *Engine) NewReaderSimulator(demographics reader.Demographics) (*reader.Simulator, error) {
	return reader.NewSimulator(demographics, reader.Options{
		SkimThreshold: e.cfg.SkimThreshold,
		SkimRunLength: e.cfg.SkimRunLength,
	})
}

// AnalyzeStory dispatches the four narrative analyzers concurrently over the
// same text and merges their outputs. Any failed task fails the whole call;
// the merge never proceeds on partial results.
func (e *Engine) AnalyzeStory(ctx context.Context, text string, mainCharacters []string) (*StoryAnalysis, error) {
	var result StoryAnalysis

	tasks := []struct {
		name string
		run  func()
	}{
		{"characters", func() { result.Characters = e.AnalyzeCharacters(text, mainCharacters) }},
		{"events", func() { result.Events = e.AnalyzeEvents(text) }},
		{"emotions", func() { result.Emotions = e.AnalyzeEmotions(text, e.cfg.SceneDelimiter) }},
		{"dialogue", func() { result.Dialogue = e.AnalyzeDialogue(text, "") }},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(tasks))
	for _, task := range tasks {
		wg.Add(1)
		go func(name string, run func()) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs <- fmt.Errorf("%s analyzer failed: %v", name, r)
				}
			}()
			run()
		}(task.name, task.run)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comprehensive analysis canceled: %w", err)
	}

	result.Suggestions = e.mergeSuggestions(&result, text)
	return &result, nil
}

// mergeSuggestions gathers per-analyzer advice and chains repetition
// findings into thesaurus lookups.
func (e *Engine) mergeSuggestions(analysis *StoryAnalysis, text string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 8)
	add := func(items ...string) {
		for _, s := range items {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}

	add(analysis.Characters.Suggestions...)
	add(analysis.Events.Suggestions...)
	add(analysis.Emotions.PacingSuggestions...)
	add(analysis.Dialogue.GeneralSuggestions...)

	repeats := e.AnalyzeRepetitions(text)
	for i, instance := range repeats.RepeatedWords {
		if i >= 3 {
			break
		}
		contextText := ""
		if len(instance.Contexts) > 0 {
			c := instance.Contexts[0]
			contextText = c.Before + " " + instance.Term + " " + c.After
		}
		suggestions := thesaurus.FindSynonyms(instance.Term, contextText, "")
		if len(suggestions) == 0 || len(suggestions[0].Synonyms) == 0 {
			continue
		}
		limit := len(suggestions[0].Synonyms)
		if limit > 3 {
			limit = 3
		}
		add(fmt.Sprintf("%q repeats %d times; nearby alternatives: %v.", instance.Term, instance.Count, suggestions[0].Synonyms[:limit]))
	}
	return out
}
