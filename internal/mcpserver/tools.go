package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storylens/internal/characters"
	"storylens/internal/dialogue"
	"storylens/internal/emotion"
	"storylens/internal/engine"
	"storylens/internal/events"
	"storylens/internal/reader"
	"storylens/internal/repetition"
	"storylens/internal/thesaurus"
	"storylens/internal/thinking"
)

type storyInput struct {
	Text           string   `json:"text" jsonschema:"narrative text to analyze"`
	MainCharacters []string `json:"main_characters,omitempty" jsonschema:"character names to track even when rarely mentioned"`
	SceneDelimiter string   `json:"scene_delimiter,omitempty" jsonschema:"scene separator line, defaults to ***"`
}

func analyzeStoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_story",
		Description: "Runs the character, event, emotion, and dialogue analyzers over a story and merges their findings",
	}
}

func (s *Server) analyzeStoryHandler() mcp.ToolHandlerFor[storyInput, engine.StoryAnalysis] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input storyInput) (*mcp.CallToolResult, engine.StoryAnalysis, error) {
		eng := s.engine
		if input.SceneDelimiter != "" && input.SceneDelimiter != s.cfg.SceneDelimiter {
			cfg := s.cfg
			cfg.SceneDelimiter = input.SceneDelimiter
			eng = engine.New(cfg)
		}
		result, err := eng.AnalyzeStory(ctx, input.Text, input.MainCharacters)
		if err != nil {
			return nil, engine.StoryAnalysis{}, err
		}
		return nil, *result, nil
	}
}

type charactersInput struct {
	Text           string   `json:"text" jsonschema:"narrative text to analyze"`
	MainCharacters []string `json:"main_characters,omitempty" jsonschema:"character names to track even when rarely mentioned"`
}

func analyzeCharactersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_characters",
		Description: "Tracks character appearances and locations and flags continuity errors",
	}
}

func (s *Server) analyzeCharactersHandler() mcp.ToolHandlerFor[charactersInput, characters.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input charactersInput) (*mcp.CallToolResult, characters.Result, error) {
		return nil, s.engine.AnalyzeCharacters(input.Text, input.MainCharacters), nil
	}
}

type textInput struct {
	Text string `json:"text" jsonschema:"narrative text to analyze"`
}

func analyzeEventsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_events",
		Description: "Extracts narrative events, builds sequences and a timeline, and flags plot holes",
	}
}

func (s *Server) analyzeEventsHandler() mcp.ToolHandlerFor[textInput, events.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input textInput) (*mcp.CallToolResult, events.Result, error) {
		return nil, s.engine.AnalyzeEvents(input.Text), nil
	}
}

type emotionsInput struct {
	Text           string `json:"text" jsonschema:"narrative text to analyze"`
	SceneDelimiter string `json:"scene_delimiter,omitempty" jsonschema:"scene separator line, defaults to ***"`
}

func analyzeEmotionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_emotions",
		Description: "Scores emotional intensity per scene and reports the arc, high points, and pacing",
	}
}

func (s *Server) analyzeEmotionsHandler() mcp.ToolHandlerFor[emotionsInput, emotion.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input emotionsInput) (*mcp.CallToolResult, emotion.Result, error) {
		return nil, s.engine.AnalyzeEmotions(input.Text, input.SceneDelimiter), nil
	}
}

type dialogueInput struct {
	Text           string `json:"text" jsonschema:"narrative text to analyze"`
	FocusCharacter string `json:"focus_character,omitempty" jsonschema:"restrict per-speaker findings to this character"`
}

func analyzeDialogueTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_dialogue",
		Description: "Extracts dialogue segments, attributes speakers, and suggests improvements",
	}
}

func (s *Server) analyzeDialogueHandler() mcp.ToolHandlerFor[dialogueInput, dialogue.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input dialogueInput) (*mcp.CallToolResult, dialogue.Result, error) {
		return nil, s.engine.AnalyzeDialogue(input.Text, input.FocusCharacter), nil
	}
}

func analyzeRepetitionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "analyze_repetitions",
		Description: "Flags words and phrases repeated in close proximity",
	}
}

func (s *Server) analyzeRepetitionsHandler() mcp.ToolHandlerFor[textInput, repetition.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input textInput) (*mcp.CallToolResult, repetition.Result, error) {
		return nil, s.engine.AnalyzeRepetitions(input.Text), nil
	}
}

type synonymsInput struct {
	Word         string `json:"word" jsonschema:"the overused word to replace"`
	Context      string `json:"context" jsonschema:"the sentence or passage containing the word"`
	SceneContext string `json:"scene_context,omitempty" jsonschema:"surrounding scene text for register detection"`
}

type synonymsResult struct {
	Suggestions []thesaurus.Suggestion `json:"suggestions"`
}

func findSynonymsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "find_synonyms",
		Description: "Suggests context-aware synonyms ranked by narrative register",
	}
}

func (s *Server) findSynonymsHandler() mcp.ToolHandlerFor[synonymsInput, synonymsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input synonymsInput) (*mcp.CallToolResult, synonymsResult, error) {
		if input.Word == "" {
			return nil, synonymsResult{}, fmt.Errorf("word must not be empty")
		}
		return nil, synonymsResult{Suggestions: s.engine.FindSynonyms(input.Word, input.Context, input.SceneContext)}, nil
	}
}

type simulateInput struct {
	Text         string              `json:"text" jsonschema:"narrative text to read"`
	Demographics reader.Demographics `json:"demographics" jsonschema:"reader profile to simulate"`
}

func simulateReadingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "simulate_reading",
		Description: "Simulates how a reader with the given demographics moves through the text",
	}
}

func (s *Server) simulateReadingHandler() mcp.ToolHandlerFor[simulateInput, reader.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input simulateInput) (*mcp.CallToolResult, reader.Result, error) {
		sim, err := s.engine.NewReaderSimulator(input.Demographics)
		if err != nil {
			return nil, reader.Result{}, err
		}
		return nil, sim.SimulateReading(input.Text), nil
	}
}

type thinkInput struct {
	SessionID         string `json:"session_id,omitempty" jsonschema:"existing session to continue; omit to start a new one"`
	Thought           string `json:"thought" jsonschema:"the reasoning step to record"`
	ThoughtNumber     int    `json:"thought_number" jsonschema:"1-based position of this thought"`
	TotalThoughts     int    `json:"total_thoughts" jsonschema:"current estimate of total thoughts"`
	NextThoughtNeeded bool   `json:"next_thought_needed" jsonschema:"whether another thought follows"`
}

type thinkResult struct {
	SessionID         string `json:"session_id"`
	ThoughtNumber     int    `json:"thoughtNumber"`
	TotalThoughts     int    `json:"totalThoughts"`
	NextThoughtNeeded bool   `json:"nextThoughtNeeded"`
	HistoryLength     int    `json:"historyLength"`
}

func thinkThroughStoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "think_through_story",
		Description: "Records one step of sequential reasoning about a story in a per-session ledger",
	}
}

func (s *Server) thinkThroughStoryHandler() mcp.ToolHandlerFor[thinkInput, thinkResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input thinkInput) (*mcp.CallToolResult, thinkResult, error) {
		session := s.sessions.Acquire(input.SessionID)
		thought := thinking.Thought{
			Number:        input.ThoughtNumber,
			Content:       input.Thought,
			TotalThoughts: input.TotalThoughts,
			NextNeeded:    input.NextThoughtNeeded,
		}
		if err := session.Append(thought); err != nil {
			return nil, thinkResult{}, err
		}
		total := input.TotalThoughts
		if total < input.ThoughtNumber {
			total = input.ThoughtNumber
		}
		if !input.NextThoughtNeeded {
			s.sessions.Drop(session.ID())
		}
		return nil, thinkResult{
			SessionID:         session.ID(),
			ThoughtNumber:     input.ThoughtNumber,
			TotalThoughts:     total,
			NextThoughtNeeded: input.NextThoughtNeeded,
			HistoryLength:     session.Len(),
		}, nil
	}
}
