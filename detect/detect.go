// Package detect mines recurring (interval, rhythm) patterns from a parsed
// score and promotes the frequent ones to motifs.
package detect

import (
	"fmt"
	"sort"

	"github.com/jsphweid/motifdex/model"
	"github.com/jsphweid/motifdex/motif"
)

type patternEntry struct {
	intervals []int
	rhythm    []string
	count     int
}

// Detect scans every part for windows of minLength..maxLength notes and
// returns a motif for every (intervals, rhythm) pattern seen at least
// minOccurrences times, counted across all parts and lengths. A window never
// spans a part boundary. Motifs come back sorted by confidence descending,
// ties in first-discovery order.
func Detect(score *model.Score, minLength, maxLength, minOccurrences int) ([]model.Motif, error) {
	if minLength < 1 || maxLength < minLength {
		return nil, fmt.Errorf("invalid length range [%v, %v]", minLength, maxLength)
	}
	if minOccurrences < 1 {
		return nil, fmt.Errorf("minOccurrences must be >= 1, got %v", minOccurrences)
	}

	patterns := make(map[string]*patternEntry)
	// map iteration order is not deterministic, so first-discovery order is
	// tracked explicitly and drives both motif ids and tie-break order
	var discovered []string

	for _, part := range score.Parts {
		partNotes := score.PartNotes(part)

		for length := minLength; length <= maxLength; length++ {
			for i := 0; i+length <= len(partNotes); i++ {
				window := partNotes[i : i+length]

				intervals := motif.Intervals(window)
				rhythm := motif.Rhythm(window)
				key := motif.CreatePatternKey(intervals, rhythm)

				entry, ok := patterns[key]
				if !ok {
					entry = &patternEntry{
						intervals: intervals,
						rhythm:    rhythm,
					}
					patterns[key] = entry
					discovered = append(discovered, key)
				}
				entry.count++
			}
		}
	}

	var motifs []model.Motif
	motifNum := 1

	for _, key := range discovered {
		entry := patterns[key]
		if entry.count < minOccurrences {
			continue
		}

		// more occurrences, more confidence, saturating at 1.0
		confidence := 0.7 + float64(entry.count)*0.05
		if confidence > 1.0 {
			confidence = 1.0
		}

		description := motif.Describe(entry.intervals, entry.rhythm)

		m, err := model.NewMotif(fmt.Sprintf("m%v", motifNum), description, entry.rhythm, entry.intervals, confidence, nil)
		if err != nil {
			return nil, err
		}
		motifs = append(motifs, m)
		motifNum++
	}

	sort.SliceStable(motifs, func(i, j int) bool {
		return motifs[i].Confidence > motifs[j].Confidence
	})

	return motifs, nil
}
