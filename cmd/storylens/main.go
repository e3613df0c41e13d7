package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(emotionsCmd)
	rootCmd.AddCommand(dialogueCmd)
	rootCmd.AddCommand(repetitionsCmd)
	rootCmd.AddCommand(synonymsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(reportCmd)
}

var rootCmd = &cobra.Command{
	Use:           "storylens",
	Short:         "Narrative manuscript analysis",
	Long:          `Analyzes manuscripts for character continuity, event timelines, emotional arcs, dialogue quality, and word repetition.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
