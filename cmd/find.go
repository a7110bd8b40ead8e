package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/motifdex/match"
	"github.com/jsphweid/motifdex/model"
	"github.com/jsphweid/motifdex/motif"
	"github.com/jsphweid/motifdex/score"
)

var (
	findID                string
	findDescription       string
	findRhythm            []string
	findIntervals         []int
	findEmotion           string
	findConfidence        float64
	findMinConfidence     float64
	findIntervalTolerance int
	findRhythmTolerance   float64
)

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVar(&findID, "id", "manual", "Motif id")
	findCmd.Flags().StringVar(&findDescription, "description", "", "Motif description (generated when empty)")
	findCmd.Flags().StringSliceVar(&findRhythm, "rhythm", nil, "Duration labels, e.g. quarter,quarter,half")
	findCmd.Flags().IntSliceVar(&findIntervals, "intervals", nil, "Semitone intervals, e.g. 2,2")
	findCmd.Flags().StringVar(&findEmotion, "emotion", "", "Optional emotional character tag")
	findCmd.Flags().Float64Var(&findConfidence, "confidence", 1.0, "Confidence of the motif definition")
	findCmd.Flags().Float64Var(&findMinConfidence, "min-confidence", 0.5, "Minimum confidence for instance matching")
	findCmd.Flags().IntVar(&findIntervalTolerance, "interval-tolerance", 0, "Semitone tolerance for interval matching")
	findCmd.Flags().Float64Var(&findRhythmTolerance, "rhythm-tolerance", 0.0, "Tolerance for rhythm matching")
}

var findCmd = &cobra.Command{
	Use:   "find <file>",
	Short: "Finds instances of a motif",
	Long:  `Finds all instances of a manually defined motif in a MIDI file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		find(args[0])
	},
}

func find(path string) {
	description := findDescription
	if description == "" {
		description = motif.Describe(findIntervals, findRhythm)
	}
	var emotion *string
	if findEmotion != "" {
		emotion = &findEmotion
	}

	m, err := model.NewMotif(findID, description, findRhythm, findIntervals, findConfidence, emotion)
	if err != nil {
		panic("Invalid motif definition: " + err.Error())
	}

	s, err := score.ReadScoreFile(path)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}

	instances, err := match.FindInstances(m, s, findIntervalTolerance, findRhythmTolerance, findMinConfidence)
	if err != nil {
		panic("Could not match motif: " + err.Error())
	}
	if instances == nil {
		instances = []model.MotifInstance{}
	}

	fmt.Printf("Found %v instances of %v\n", len(instances), m.ID)
	data, err := json.MarshalIndent(instances, "", "  ")
	if err != nil {
		panic(err.Error())
	}
	fmt.Println(string(data))
}
