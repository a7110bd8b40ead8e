package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
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

var allScores map[string]*model.Score

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis API",
	Long:  `Loads every MIDI file under MEDIA_PATH and serves motif analysis over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles parses every MIDI file under the media dir into memory,
// keyed by filename relative to it.
func LoadServeFiles() {
	mediaDir := constants.GetMediaDir()
	allScores = make(map[string]*model.Score)

	paths := util.GatherAllMidiPaths(mediaDir, 0)
	for i, path := range paths {
		fmt.Printf("Loading %v of %v midi files\n", i+1, len(paths))
		s, err := score.ReadScoreFile(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		rel, err := filepath.Rel(mediaDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		allScores[rel] = s
	}

	enrichLoadedScores(allScores, db.GetScoreMetadatas)

	loaded := util.GetKeys(allScores)
	sort.Strings(loaded)
	fmt.Printf("Loaded %v scores: %v\n", len(loaded), loaded)
}

type metadataFetcher func(filenames []string) (map[string]model.ScoreMetadata, error)

// enrichLoadedScores overlays stored work metadata onto parsed scores,
// batching lookups to the sidecar's 10-filename limit. A failed lookup is
// logged and skipped; the parsed metadata stands.
func enrichLoadedScores(scores map[string]*model.Score, fetch metadataFetcher) {
	filenames := util.GetKeys(scores)
	sort.Strings(filenames)

	for start := 0; start < len(filenames); start += 10 {
		batch := filenames[start:util.Min(start+10, len(filenames))]
		metadatas, err := fetch(batch)
		if err != nil {
			fmt.Printf("Skipping metadata lookup for %v because: %v\n", batch, err)
			continue
		}
		for _, filename := range batch {
			if m, ok := metadatas[filename]; ok {
				applyMetadata(scores[filename], m)
			}
		}
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body: "+err.Error())
		return
	}

	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	s, ok := allScores[input.File]
	if !ok {
		writeError(w, 404, "Unknown file: "+input.File)
		return
	}

	// zero-valued detection params take the analyze defaults
	if input.MinLength == 0 {
		input.MinLength = 3
	}
	if input.MaxLength == 0 {
		input.MaxLength = 5
	}
	if input.MinOccurrences == 0 {
		input.MinOccurrences = 2
	}
	if input.MinConfidence == 0 {
		input.MinConfidence = 0.5
	}

	motifs, err := detect.Detect(s, input.MinLength, input.MaxLength, input.MinOccurrences)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	var allInstances []model.MotifInstance
	for _, m := range motifs {
		instances, err := match.FindInstances(m, s, input.IntervalTolerance, input.RhythmTolerance, input.MinConfidence)
		if err != nil {
			writeError(w, 400, err.Error())
			return
		}
		allInstances = append(allInstances, instances...)
	}

	notes := fmt.Sprintf("Detected with min_length=%v, max_length=%v, min_occurrences=%v",
		input.MinLength, input.MaxLength, input.MinOccurrences)
	json.NewEncoder(w).Encode(output.NewAnalysis(s, motifs, allInstances, notes))
}

func HandleFind(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body: "+err.Error())
		return
	}

	var input model.FindRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	s, ok := allScores[input.File]
	if !ok {
		writeError(w, 404, "Unknown file: "+input.File)
		return
	}

	confidence := input.Motif.Confidence
	if confidence == 0 {
		confidence = 1.0
	}
	m, err := model.NewMotif(input.Motif.ID, input.Motif.Description, input.Motif.Rhythm,
		input.Motif.Intervals, confidence, input.Motif.Emotion)
	if err != nil {
		writeError(w, 400, "Invalid motif: "+err.Error())
		return
	}

	instances, err := match.FindInstances(m, s, input.IntervalTolerance, input.RhythmTolerance, input.MinConfidence)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	if instances == nil {
		instances = []model.MotifInstance{}
	}

	json.NewEncoder(w).Encode(model.FindResponse{Instances: instances})
}

func serve() {
	LoadServeFiles()

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/find", HandleFind).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
