package models

import "time"

type Vocabulary struct {
	ID            string      `db:"id"`
	UserID        string      `db:"user_id"`
	Word          string      `db:"word"`
	Definition    string      `db:"definition"`
	Example       string      `db:"example"`
	Difficulty    string      `db:"difficulty"`
	Pronunciation string      `db:"pronunciation"`
	PartOfSpeech  string      `db:"part_of_speech"`
	Synonyms      StringSlice `db:"synonyms"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}
