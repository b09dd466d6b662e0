package models

import "time"

// Word represents a vocabulary entry in the catalog. Catalog rows are seeded
// once by the importer and never mutated by the learning core.
type Word struct {
	ID                 int64     `json:"id" db:"id"`
	Word               string    `json:"word" db:"word"`
	Translation        string    `json:"translation" db:"translation"`
	Transcription      string    `json:"transcription" db:"transcription"`
	Example            string    `json:"example" db:"example"`
	ExampleTranslation string    `json:"example_translation" db:"example_translation"`
	Level              string    `json:"level" db:"level"` // A1..C1
	Topic              string    `json:"topic" db:"topic"`
	Frequency          int       `json:"frequency" db:"frequency"` // higher = more common
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// Levels lists the supported proficiency levels from easiest to hardest.
var Levels = []string{"A1", "A2", "B1", "B2", "C1"}

// LevelRank returns the position of a level on the CEFR ladder, or -1 for an
// unknown level.
func LevelRank(level string) int {
	for i, l := range Levels {
		if l == level {
			return i
		}
	}
	return -1
}
