package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMotifValid(t *testing.T) {
	m, err := NewMotif("m1", "test pattern", []string{"quarter", "quarter"}, []int{2}, 0.8, nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("m1", m.ID)
	assert.Equal([]string{"quarter", "quarter"}, m.Rhythm)
	assert.Equal([]int{2}, m.Intervals)
	assert.Equal(0.8, m.Confidence)
	assert.Nil(m.Emotion)
}

func TestNewMotifSingleNote(t *testing.T) {
	_, err := NewMotif("m1", "single", []string{"half"}, nil, 1.0, nil)
	assert.NoError(t, err)
}

func TestNewMotifConfidenceOutOfRange(t *testing.T) {
	cases := []float64{-0.1, 1.1, 2.0}
	for _, confidence := range cases {
		_, err := NewMotif("m1", "test", []string{"quarter"}, nil, confidence, nil)
		assert.Error(t, err)
	}
}

func TestNewMotifIntervalLengthMismatch(t *testing.T) {
	// intervals must be exactly one shorter than rhythm
	_, err := NewMotif("m1", "test", []string{"quarter", "quarter"}, []int{2, 2}, 1.0, nil)
	assert.Error(t, err)

	_, err = NewMotif("m1", "test", []string{"quarter", "quarter", "quarter"}, []int{2}, 1.0, nil)
	assert.Error(t, err)

	_, err = NewMotif("m1", "test", nil, nil, 1.0, nil)
	assert.Error(t, err)
}

func TestNewMotifEmotion(t *testing.T) {
	emotion := "heroic"
	m, err := NewMotif("m1", "test", []string{"quarter"}, nil, 1.0, &emotion)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("heroic", *m.Emotion)
}

func TestNewMotifInstanceValid(t *testing.T) {
	mi, err := NewMotifInstance("m1", 3, "Piano", 1.5, 0.9, nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("m1", mi.MotifID)
	assert.Equal(3, mi.Measure)
	assert.Equal("Piano", mi.Part)
	assert.Equal(1.5, mi.StartBeat)
	assert.Nil(mi.Variations)
}

func TestNewMotifInstanceInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMotifInstance("m1", 0, "Piano", 1.0, 0.9, nil)
	assert.Error(err)

	_, err = NewMotifInstance("m1", 1, "Piano", 0.5, 0.9, nil)
	assert.Error(err)

	_, err = NewMotifInstance("m1", 1, "Piano", 1.0, 1.5, nil)
	assert.Error(err)

	_, err = NewMotifInstance("m1", 1, "Piano", 1.0, -0.5, nil)
	assert.Error(err)
}

func TestPartNotes(t *testing.T) {
	s := Score{
		Parts: []string{"Piano", "Violin"},
		Notes: []Note{
			{Pitch: 60, Part: "Piano"},
			{Pitch: 64, Part: "Violin"},
			{Pitch: 62, Part: "Piano"},
		},
	}

	assert := assert.New(t)
	piano := s.PartNotes("Piano")
	assert.Len(piano, 2)
	assert.Equal(60, piano[0].Pitch)
	assert.Equal(62, piano[1].Pitch)
	assert.Empty(s.PartNotes("Cello"))
}
