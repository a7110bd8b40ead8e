// Package score turns standard MIDI files into the per-part note streams
// the detector and matcher consume.
package score

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/motifdex/constants"
	"github.com/jsphweid/motifdex/model"
	"github.com/jsphweid/motifdex/util"
)

// ReadScoreFile reads and parses a MIDI file into a Score.
func ReadScoreFile(path string) (s *model.Score, e error) {
	// the smf reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file... %s", err.Error())
	}

	parsed, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file... %s", err.Error())
	}

	return FromSMF(parsed)
}

type rawNote struct {
	startTick int64
	durTicks  int64
	key       uint8
}

type rawTrack struct {
	name string
	raws []rawNote
}

type timeSig struct {
	tick int64
	num  int
	den  int
	// 1-based measure number at this signature's start tick
	startMeasure int
}

// FromSMF derives the note stream: one part per note-bearing track, duration
// categories quantized against the file's PPQ, measure/beat positions from
// the time-signature events (4/4 when absent).
func FromSMF(s *smf.SMF) (*model.Score, error) {
	metric, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported SMF time format: %v", s.TimeFormat)
	}
	ppq := float64(metric.Ticks4th())

	var res model.Score
	var sigs []timeSig
	var tracks []rawTrack

	for ti, track := range s.Tracks {
		var absTicks int64
		var rt rawTrack
		pressed := make(map[uint8]int64)

		for _, event := range track {
			absTicks += int64(event.Delta)

			var channel uint8
			var key uint8
			var velocity uint8
			var text string
			var num uint8
			var den uint8

			switch {
			case event.Message.GetMetaTrackName(&text):
				if rt.name == "" {
					rt.name = text
				}
			case event.Message.GetMetaCopyright(&text):
				if res.Composer == "" {
					res.Composer = text
				}
			case event.Message.GetMetaMeter(&num, &den):
				if num > 0 && den > 0 {
					sigs = append(sigs, timeSig{tick: absTicks, num: int(num), den: int(den)})
				}
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				if velocity == 0 {
					// running-status note off
					rt.raws = closeNote(rt.raws, pressed, key, absTicks)
				} else {
					pressed[key] = absTicks
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				rt.raws = closeNote(rt.raws, pressed, key, absTicks)
			}
		}

		if len(rt.raws) == 0 {
			// conventional SMF title track: names only, no notes
			if ti == 0 && rt.name != "" && res.Title == "" {
				res.Title = rt.name
			}
			continue
		}

		sort.Slice(rt.raws, func(i, j int) bool {
			return rt.raws[i].startTick < rt.raws[j].startTick
		})
		tracks = append(tracks, rt)
	}

	sort.Slice(sigs, func(i, j int) bool {
		return sigs[i].tick < sigs[j].tick
	})
	sigs = numberMeasures(sigs, ppq)

	for i, rt := range tracks {
		name := rt.name
		if name == "" {
			name = fmt.Sprintf("Part %v", i+1)
		}
		res.Parts = append(res.Parts, name)

		for _, raw := range rt.raws {
			measure, beat := measureAndBeat(sigs, raw.startTick, ppq)
			res.Notes = append(res.Notes, model.Note{
				Pitch:    int(raw.key),
				Duration: DurationCategory(raw.durTicks, ppq),
				Measure:  measure,
				Beat:     beat,
				Part:     name,
				Offset:   float64(raw.startTick) / ppq,
			})
		}
	}

	return &res, nil
}

func closeNote(raws []rawNote, pressed map[uint8]int64, key uint8, tick int64) []rawNote {
	start, ok := pressed[key]
	if !ok {
		// note off without a matching on, skip
		return raws
	}
	delete(pressed, key)
	return append(raws, rawNote{startTick: start, durTicks: tick - start, key: key})
}

// numberMeasures assigns the 1-based measure number at each signature's
// start tick. A change that lands mid-measure starts a fresh measure.
func numberMeasures(sigs []timeSig, ppq float64) []timeSig {
	if len(sigs) == 0 || sigs[0].tick > 0 {
		sigs = append([]timeSig{{tick: 0, num: 4, den: 4}}, sigs...)
	}
	sigs[0].startMeasure = 1
	for i := 1; i < len(sigs); i++ {
		prev := sigs[i-1]
		measureLen := measureLenTicks(prev, ppq)
		elapsed := float64(sigs[i].tick - prev.tick)
		full := math.Floor(elapsed / measureLen)
		if elapsed > full*measureLen {
			full++
		}
		sigs[i].startMeasure = prev.startMeasure + int(full)
	}
	return sigs
}

func measureLenTicks(sig timeSig, ppq float64) float64 {
	return beatLenTicks(sig, ppq) * float64(sig.num)
}

// one beat is a denominator note, e.g. a quarter in 4/4, an eighth in 6/8
func beatLenTicks(sig timeSig, ppq float64) float64 {
	return ppq * 4.0 / float64(sig.den)
}

func measureAndBeat(sigs []timeSig, tick int64, ppq float64) (int, float64) {
	sig := sigs[0]
	for _, s := range sigs {
		if s.tick > tick {
			break
		}
		sig = s
	}

	measureLen := measureLenTicks(sig, ppq)
	elapsed := float64(tick - sig.tick)
	full := math.Floor(elapsed / measureLen)
	measure := sig.startMeasure + int(full)
	beat := 1.0 + (elapsed-full*measureLen)/beatLenTicks(sig, ppq)
	return measure, beat
}

// DurationCategory quantizes a tick length to the nearest power-of-two
// duration label relative to the quarter note, clamped to the fixed
// vocabulary. Dotted lengths round up to the longer neighbor.
func DurationCategory(durTicks int64, ppq float64) string {
	if durTicks <= 0 {
		return constants.DurationOrder[0]
	}
	ratio := float64(durTicks) / ppq
	idx := constants.QuarterIdx + int(math.Round(math.Log2(ratio)))
	idx = util.Max(0, util.Min(idx, len(constants.DurationOrder)-1))
	return constants.DurationOrder[idx]
}
