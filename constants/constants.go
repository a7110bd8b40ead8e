package constants

import "os"

// DurationOrder is the fixed duration vocabulary, shortest to longest.
// Matcher partial credit depends on exact positions in this table, so the
// order must never change.
var DurationOrder = []string{
	"1024th", "512th", "256th", "128th", "64th", "32nd", "16th",
	"eighth", "quarter", "half", "whole", "breve", "long",
}

// QuarterIdx is the position of "quarter" in DurationOrder.
const QuarterIdx = 8

var durationIdx = func() map[string]int {
	m := make(map[string]int, len(DurationOrder))
	for i, d := range DurationOrder {
		m[d] = i
	}
	return m
}()

// DurationIndex returns the position of a duration label in DurationOrder.
// ok is false for labels outside the vocabulary.
func DurationIndex(label string) (int, bool) {
	i, ok := durationIdx[label]
	return i, ok
}

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMO_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

const MetadataTable = "motifdex-metadata"
