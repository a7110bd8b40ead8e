// Package motif extracts pattern signatures from note windows and renders
// the human-readable texts derived from them. Everything here is pure: the
// detector and matcher share these so their signatures always agree.
package motif

import (
	"fmt"
	"strings"

	"github.com/jsphweid/motifdex/constants"
	"github.com/jsphweid/motifdex/model"
)

// Intervals converts a window of notes to consecutive pitch deltas in
// semitones (next minus previous). For notes C-D-E (60, 62, 64) it returns
// [2, 2]. Windows shorter than 2 notes have no intervals.
func Intervals(window []model.Note) []int {
	if len(window) < 2 {
		return nil
	}
	res := make([]int, 0, len(window)-1)
	for i := 0; i < len(window)-1; i++ {
		res = append(res, window[i+1].Pitch-window[i].Pitch)
	}
	return res
}

// Rhythm extracts the duration labels of a window, in order.
func Rhythm(window []model.Note) []string {
	res := make([]string, 0, len(window))
	for _, n := range window {
		res = append(res, n.Duration)
	}
	return res
}

// CreatePatternKey builds a map key for an (intervals, rhythm) signature
// pair. Two windows get the same key iff both signatures are identical.
func CreatePatternKey(intervals []int, rhythm []string) string {
	parts := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		parts = append(parts, fmt.Sprintf("%v", iv))
	}
	return strings.Join(parts, ",") + "|" + strings.Join(rhythm, ",")
}

// Describe generates a human-readable description of a pattern, e.g.
// "quarter-quarter-half ascending stepwise pattern". Labeling only, never
// used for matching.
func Describe(intervals []int, rhythm []string) string {
	rhythmDesc := strings.Join(rhythm, "-")

	var contourDesc string
	switch {
	case len(intervals) == 0:
		contourDesc = "single note"
	case allMatch(intervals, func(i int) bool { return i == 0 }):
		contourDesc = "repeated note"
	case allMatch(intervals, func(i int) bool { return i > 0 }):
		contourDesc = "ascending"
	case allMatch(intervals, func(i int) bool { return i < 0 }):
		contourDesc = "descending"
	default:
		var ups, downs int
		for _, iv := range intervals {
			if iv > 0 {
				ups++
			} else if iv < 0 {
				downs++
			}
		}
		switch {
		case ups > downs:
			contourDesc = "mostly ascending"
		case downs > ups:
			contourDesc = "mostly descending"
		default:
			contourDesc = "wave-like"
		}
	}

	parts := []string{rhythmDesc, contourDesc}

	if len(intervals) > 0 {
		var maxInterval int
		for _, iv := range intervals {
			if iv < 0 {
				iv = -iv
			}
			if iv > maxInterval {
				maxInterval = iv
			}
		}
		switch {
		case maxInterval <= 2:
			parts = append(parts, "stepwise")
		case maxInterval <= 4:
			parts = append(parts, "small leaps")
		default:
			parts = append(parts, "wide leaps")
		}
	}

	return strings.Join(parts, " ") + " pattern"
}

// DescribeVariations reports how a window's signatures differ from a
// motif's, or nil when both are identical. Assumes equal-length signatures,
// which the matcher guarantees.
func DescribeVariations(windowIntervals []int, windowRhythm []string, m model.Motif) *string {
	var variations []string

	if !IntervalsEqual(windowIntervals, m.Intervals) {
		// Transpositions are invisible here since intervals are relative;
		// only inversions and genuine alterations remain.
		if isInversion(windowIntervals, m.Intervals) {
			variations = append(variations, "inverted")
		} else {
			variations = append(variations, "altered intervals")
		}
	}

	if !RhythmsEqual(windowRhythm, m.Rhythm) {
		variations = append(variations, "rhythmic variation")
	}

	if len(variations) == 0 {
		return nil
	}
	res := strings.Join(variations, ", ")
	return &res
}

// IntervalsEqual reports whether two interval signatures are identical.
func IntervalsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RhythmsEqual reports whether two rhythm signatures are identical.
func RhythmsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isInversion(window, motif []int) bool {
	if len(window) != len(motif) || len(window) == 0 {
		return false
	}
	for i := range window {
		if window[i] != -motif[i] {
			return false
		}
	}
	return true
}

func allMatch(intervals []int, pred func(int) bool) bool {
	for _, iv := range intervals {
		if !pred(iv) {
			return false
		}
	}
	return true
}

// DurationDistance is the distance between two duration labels in the fixed
// shortest-to-longest ordering. ok is false when either label is outside
// the vocabulary.
func DurationDistance(a, b string) (int, bool) {
	ai, aok := constants.DurationIndex(a)
	bi, bok := constants.DurationIndex(b)
	if !aok || !bok {
		return 0, false
	}
	d := ai - bi
	if d < 0 {
		d = -d
	}
	return d, true
}
