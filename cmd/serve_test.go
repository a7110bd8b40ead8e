package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/motifdex/model"
)

func TestEnrichLoadedScoresBatchesAndMerges(t *testing.T) {
	scores := make(map[string]*model.Score)
	for i := 0; i < 12; i++ {
		scores[fmt.Sprintf("f%02d.mid", i)] = &model.Score{Title: "Parsed Title"}
	}

	var batches [][]string
	fetch := func(filenames []string) (map[string]model.ScoreMetadata, error) {
		batches = append(batches, filenames)
		return map[string]model.ScoreMetadata{
			"f00.mid": {Title: "Stored Title", Composer: "Stored Composer"},
		}, nil
	}

	enrichLoadedScores(scores, fetch)

	assert := assert.New(t)
	// 12 files fit in two lookups of at most 10 filenames each
	assert.Len(batches, 2)
	for _, batch := range batches {
		assert.LessOrEqual(len(batch), 10)
	}
	assert.Equal("Stored Title", scores["f00.mid"].Title)
	assert.Equal("Stored Composer", scores["f00.mid"].Composer)
	assert.Equal("Parsed Title", scores["f01.mid"].Title)
}

func TestEnrichLoadedScoresSurvivesLookupFailure(t *testing.T) {
	scores := map[string]*model.Score{
		"a.mid": {Title: "Parsed Title"},
	}
	fetch := func(filenames []string) (map[string]model.ScoreMetadata, error) {
		return nil, errors.New("dynamo is down")
	}

	enrichLoadedScores(scores, fetch)

	assert.Equal(t, "Parsed Title", scores["a.mid"].Title)
}

func TestApplyMetadataKeepsParsedWhenStoredBlank(t *testing.T) {
	s := model.Score{Title: "Parsed Title", Composer: "Parsed Composer"}

	applyMetadata(&s, model.ScoreMetadata{Composer: "Stored Composer"})

	assert := assert.New(t)
	assert.Equal("Parsed Title", s.Title)
	assert.Equal("Stored Composer", s.Composer)
}
