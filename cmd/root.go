package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motifdex",
	Short: "Motif detection for MIDI scores",
	Long:  `Detects recurring melodic/rhythmic motifs in MIDI scores and finds where they occur.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
