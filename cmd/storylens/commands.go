package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storylens/internal/config"
	"storylens/internal/engine"
	"storylens/internal/ingest"
	"storylens/internal/reader"
)

var (
	mainCharacters []string
	sceneDelimiter string
	focusCharacter string

	synonymContext string
	synonymScene   string

	demoAge         int
	demoEducation   string
	demoSpeed       string
	demoAttention   float64
	demoInterests   []string
	demoGenres      []string
	demoProficiency string
)

func init() {
	charactersCmd.Flags().StringSliceVar(&mainCharacters, "characters", nil, "main character names to always track")
	reportCmd.Flags().StringSliceVar(&mainCharacters, "characters", nil, "main character names to always track")
	emotionsCmd.Flags().StringVar(&sceneDelimiter, "delimiter", "", "scene delimiter (defaults to ***)")
	dialogueCmd.Flags().StringVar(&focusCharacter, "focus", "", "restrict findings to one character")

	synonymsCmd.Flags().StringVar(&synonymContext, "context", "", "sentence containing the word")
	synonymsCmd.Flags().StringVar(&synonymScene, "scene", "", "surrounding scene text")

	simulateCmd.Flags().IntVar(&demoAge, "age", 30, "reader age")
	simulateCmd.Flags().StringVar(&demoEducation, "education", "college", "education level (elementary, high_school, college, graduate)")
	simulateCmd.Flags().StringVar(&demoSpeed, "speed", "average", "reading speed (slow, average, fast)")
	simulateCmd.Flags().Float64Var(&demoAttention, "attention", 15, "attention span in minutes")
	simulateCmd.Flags().StringSliceVar(&demoInterests, "interests", nil, "reader interests")
	simulateCmd.Flags().StringSliceVar(&demoGenres, "genres", nil, "preferred genres")
	simulateCmd.Flags().StringVar(&demoProficiency, "proficiency", "native", "language proficiency (beginner, intermediate, fluent, native)")
}

func newEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return engine.New(cfg), nil
}

func loadText(path string) (string, error) {
	m, err := ingest.Load(path)
	if err != nil {
		return "", err
	}
	return m.Text, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var charactersCmd = &cobra.Command{
	Use:   "characters [manuscript]",
	Short: "Track character appearances and continuity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(e.AnalyzeCharacters(text, mainCharacters))
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events [manuscript]",
	Short: "Extract events, timelines, and plot holes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(e.AnalyzeEvents(text))
	},
}

var emotionsCmd = &cobra.Command{
	Use:   "emotions [manuscript]",
	Short: "Score the emotional arc scene by scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(e.AnalyzeEmotions(text, sceneDelimiter))
	},
}

var dialogueCmd = &cobra.Command{
	Use:   "dialogue [manuscript]",
	Short: "Analyze dialogue segments and attribution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(e.AnalyzeDialogue(text, focusCharacter))
	},
}

var repetitionsCmd = &cobra.Command{
	Use:   "repetitions [manuscript]",
	Short: "Flag words and phrases repeated in close proximity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(e.AnalyzeRepetitions(text))
	},
}

var synonymsCmd = &cobra.Command{
	Use:   "synonyms [word]",
	Short: "Suggest context-aware synonyms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		return printJSON(e.FindSynonyms(args[0], synonymContext, synonymScene))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [manuscript]",
	Short: "Simulate a reader profile moving through the manuscript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		sim, err := e.NewReaderSimulator(reader.Demographics{
			Age:                 demoAge,
			EducationLevel:      demoEducation,
			ReadingSpeed:        demoSpeed,
			AttentionSpan:       demoAttention,
			Interests:           demoInterests,
			GenrePreferences:    demoGenres,
			LanguageProficiency: demoProficiency,
		})
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		return printJSON(sim.SimulateReading(text))
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [manuscript]",
	Short: "Run every analyzer and print the merged report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		text, err := loadText(args[0])
		if err != nil {
			return err
		}
		result, err := e.AnalyzeStory(cmd.Context(), text, mainCharacters)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}
