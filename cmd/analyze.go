package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsphweid/motifdex/constants"
	"github.com/jsphweid/motifdex/db"
	"github.com/jsphweid/motifdex/detect"
	"github.com/jsphweid/motifdex/match"
	"github.com/jsphweid/motifdex/model"
	"github.com/jsphweid/motifdex/output"
	"github.com/jsphweid/motifdex/score"
	"github.com/jsphweid/motifdex/util"
)

var (
	analyzeMinLength         int
	analyzeMaxLength         int
	analyzeMinOccurrences    int
	analyzeMinConfidence     float64
	analyzeIntervalTolerance int
	analyzeRhythmTolerance   float64
	analyzeOutput            string
	analyzeSave              bool
	analyzeMetadata          bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeMinLength, "min-length", 3, "Minimum notes in a motif")
	analyzeCmd.Flags().IntVar(&analyzeMaxLength, "max-length", 5, "Maximum notes in a motif")
	analyzeCmd.Flags().IntVar(&analyzeMinOccurrences, "min-occurrences", 2, "Minimum times a pattern must occur")
	analyzeCmd.Flags().Float64Var(&analyzeMinConfidence, "min-confidence", 0.5, "Minimum confidence for instance matching")
	analyzeCmd.Flags().IntVar(&analyzeIntervalTolerance, "interval-tolerance", 0, "Semitone tolerance for interval matching")
	analyzeCmd.Flags().Float64Var(&analyzeRhythmTolerance, "rhythm-tolerance", 0.0, "Tolerance for rhythm matching (0.0 exact, 1.0 very loose)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output JSON file path (default: print to stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the result under the output dir with a generated name")
	analyzeCmd.Flags().BoolVar(&analyzeMetadata, "metadata", false, "Look up work metadata in DynamoDB by filename")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyzes a MIDI file for motifs",
	Long:  `Analyzes a MIDI file for recurring motifs and their instances`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(args[0])
	},
}

func analyze(path string) {
	fmt.Printf("Parsing %v...\n", path)
	s, err := score.ReadScoreFile(path)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}

	if analyzeMetadata {
		enrichFromDb(s, filepath.Base(path))
	}

	fmt.Printf("Found %v notes across %v parts\n", len(s.Notes), len(s.Parts))
	if s.Title != "" {
		fmt.Printf("Work: %v\n", s.Title)
	}
	if s.Composer != "" {
		fmt.Printf("Composer: %v\n", s.Composer)
	}

	fmt.Printf("\nDetecting motifs (length %v-%v)...\n", analyzeMinLength, analyzeMaxLength)
	motifs, err := detect.Detect(s, analyzeMinLength, analyzeMaxLength, analyzeMinOccurrences)
	if err != nil {
		panic("Could not detect motifs: " + err.Error())
	}
	fmt.Printf("Found %v recurring motifs\n", len(motifs))

	fmt.Printf("\nFinding motif instances...\n")
	var allInstances []model.MotifInstance
	var counts []int
	for _, m := range motifs {
		instances, err := match.FindInstances(m, s, analyzeIntervalTolerance, analyzeRhythmTolerance, analyzeMinConfidence)
		if err != nil {
			panic("Could not match motif " + m.ID + ": " + err.Error())
		}
		allInstances = append(allInstances, instances...)
		counts = append(counts, len(instances))
		fmt.Printf("  %v: %v instances - %v\n", m.ID, len(instances), m.Description)
	}
	fmt.Printf("\nTotal instances found: %v\n", util.Sum(counts))

	notes := fmt.Sprintf("Detected with min_length=%v, max_length=%v, min_occurrences=%v",
		analyzeMinLength, analyzeMaxLength, analyzeMinOccurrences)
	analysis := output.NewAnalysis(s, motifs, allInstances, notes)

	switch {
	case analyzeOutput != "":
		if err := output.Save(analysis, analyzeOutput); err != nil {
			panic(err.Error())
		}
		fmt.Printf("\nResults saved to %v\n", analyzeOutput)
	case analyzeSave:
		saved, err := output.SaveToDir(analysis, constants.GetOutDir())
		if err != nil {
			panic(err.Error())
		}
		fmt.Printf("\nResults saved to %v\n", saved)
	default:
		jsonStr, err := output.FormatJSON(analysis)
		if err != nil {
			panic(err.Error())
		}
		fmt.Printf("\n%v\n", jsonStr)
	}
}

func enrichFromDb(s *model.Score, filename string) {
	metadatas, err := db.GetScoreMetadatas([]string{filename})
	if err != nil {
		fmt.Printf("Skipping metadata lookup because: %v\n", err)
		return
	}
	if m, ok := metadatas[filename]; ok {
		applyMetadata(s, m)
	}
}

// stored fields win, but never blank out what was parsed
func applyMetadata(s *model.Score, m model.ScoreMetadata) {
	if m.Title != "" {
		s.Title = m.Title
	}
	if m.Composer != "" {
		s.Composer = m.Composer
	}
}
