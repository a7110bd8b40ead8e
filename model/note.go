package model

// Note is one parsed note in its score context. Produced once by the score
// adapter and never mutated afterwards.
type Note struct {
	// MIDI pitch number, e.g. C4 = 60
	Pitch int
	// duration category, one of constants.DurationOrder
	Duration string
	// 1-based measure number
	Measure int
	// 1-based beat position within the measure, may be fractional
	Beat float64
	Part string
	// offset from the start of the piece in quarter-note units
	Offset float64
}

// Score is a parsed score: metadata plus all notes in chronological order,
// with Parts preserving track order.
type Score struct {
	Title    string
	Composer string
	Parts    []string
	Notes    []Note
}

// PartNotes returns the notes belonging to one part, in order.
func (s *Score) PartNotes(part string) []Note {
	var res []Note
	for _, n := range s.Notes {
		if n.Part == part {
			res = append(res, n)
		}
	}
	return res
}
