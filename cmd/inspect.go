package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/motifdex/score"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects a parsed note stream",
	Long:  `Inspects the note stream parsed from a MIDI file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := score.ReadScoreFile(path)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}

	if s.Title != "" {
		fmt.Printf("title: %v\n", s.Title)
	}
	if s.Composer != "" {
		fmt.Printf("composer: %v\n", s.Composer)
	}

	for _, part := range s.Parts {
		notes := s.PartNotes(part)
		fmt.Printf("part: %v (%v notes)\n", part, len(notes))
		for _, n := range notes {
			fmt.Printf("  m%v b%v pitch=%v dur=%v offset=%v\n", n.Measure, n.Beat, n.Pitch, n.Duration, n.Offset)
		}
	}
}
