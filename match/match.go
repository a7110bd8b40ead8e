// Package match finds instances of a motif throughout a parsed score, with
// fuzzy per-position scoring on the interval and rhythm axes.
package match

import (
	"fmt"

	"github.com/jsphweid/motifdex/model"
	"github.com/jsphweid/motifdex/motif"
)

// Pitch patterns define motif identity more than rhythm does, but both
// matter.
const (
	intervalWeight = 0.6
	rhythmWeight   = 0.4
)

// FindInstances slides a window of the motif's exact length over every part
// and emits an instance for every window whose combined score reaches
// minConfidence. Overlapping windows are all reported; callers filter by
// confidence.
func FindInstances(m model.Motif, score *model.Score, intervalTolerance int, rhythmTolerance, minConfidence float64) ([]model.MotifInstance, error) {
	if intervalTolerance < 0 {
		return nil, fmt.Errorf("intervalTolerance must be >= 0, got %v", intervalTolerance)
	}
	if rhythmTolerance < 0.0 || rhythmTolerance > 1.0 {
		return nil, fmt.Errorf("rhythmTolerance must be between 0.0 and 1.0, got %v", rhythmTolerance)
	}
	if minConfidence < 0.0 || minConfidence > 1.0 {
		return nil, fmt.Errorf("minConfidence must be between 0.0 and 1.0, got %v", minConfidence)
	}

	var instances []model.MotifInstance
	motifLength := len(m.Rhythm)

	for _, part := range score.Parts {
		partNotes := score.PartNotes(part)

		for i := 0; i+motifLength <= len(partNotes); i++ {
			window := partNotes[i : i+motifLength]

			windowIntervals := motif.Intervals(window)
			windowRhythm := motif.Rhythm(window)

			ivScore := intervalScore(windowIntervals, m.Intervals, intervalTolerance)
			rhScore := rhythmScore(windowRhythm, m.Rhythm, rhythmTolerance)
			confidence := ivScore*intervalWeight + rhScore*rhythmWeight

			if confidence < minConfidence {
				continue
			}

			variations := motif.DescribeVariations(windowIntervals, windowRhythm, m)

			instance, err := model.NewMotifInstance(m.ID, window[0].Measure, part, window[0].Beat, confidence, variations)
			if err != nil {
				return nil, err
			}
			instances = append(instances, instance)
		}
	}

	return instances, nil
}

// intervalScore scores interval proximity in [0, 1]. Positions within
// tolerance earn linear partial credit, strictly decreasing in the
// deviation; positions beyond it earn nothing.
func intervalScore(window, motifIntervals []int, tolerance int) float64 {
	if len(window) != len(motifIntervals) {
		return 0.0
	}
	if len(window) == 0 {
		// single-note motif, nothing to compare
		return 1.0
	}

	var matches float64
	for i := range window {
		diff := window[i] - motifIntervals[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			continue
		}
		if diff == 0 {
			matches += 1.0
		} else {
			matches += 1.0 - float64(diff)/float64(tolerance+1)
		}
	}

	return matches / float64(len(window))
}

// rhythmScore scores rhythm proximity in [0, 1]. Tolerance 0 demands exact
// labels, 1 accepts anything, and in between neighboring duration
// categories earn partial credit by their distance in the fixed ordering.
func rhythmScore(window, motifRhythm []string, tolerance float64) float64 {
	if len(window) != len(motifRhythm) {
		return 0.0
	}
	if tolerance >= 1.0 {
		return 1.0
	}

	if tolerance == 0.0 {
		var exact int
		for i := range window {
			if window[i] == motifRhythm[i] {
				exact++
			}
		}
		return float64(exact) / float64(len(motifRhythm))
	}

	var similarity float64
	for i := range window {
		if window[i] == motifRhythm[i] {
			similarity += 1.0
			continue
		}
		distance, ok := motif.DurationDistance(window[i], motifRhythm[i])
		if !ok {
			// unknown duration label, no partial credit
			continue
		}
		credit := 1.0 - float64(distance)*(1.0-tolerance)
		if credit > 0 {
			similarity += credit
		}
	}

	return similarity / float64(len(motifRhythm))
}
