package domain

import (
	"context"
	"time"
)

const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// Vocabulary is a word saved by a user.
type Vocabulary struct {
	ID            string
	UserID        string
	Word          string
	Definition    string
	Example       string
	Difficulty    string
	Pronunciation string
	PartOfSpeech  string
	Synonyms      []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VocabularyRepository persists vocabulary entries.
type VocabularyRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Vocabulary, error)
	GetByID(ctx context.Context, id string) (*Vocabulary, error)
	GetByUserAndWord(ctx context.Context, userID, word string) (*Vocabulary, error)
	Create(ctx context.Context, v *Vocabulary) error
	Update(ctx context.Context, v *Vocabulary) error
	Delete(ctx context.Context, id string) error
}

// DictionaryEntry is the subset of a dictionary lookup the app uses.
type DictionaryEntry struct {
	Word          string `json:"word"`
	Definition    string `json:"definition"`
	PartOfSpeech  string `json:"partOfSpeech"`
	Pronunciation string `json:"pronunciation"`
	Synonyms      string `json:"synonyms"`
	Example       string `json:"example"`
}

// DictionaryClient looks words up in an external dictionary.
// It returns ErrWordNotFound when the dictionary has no entry.
type DictionaryClient interface {
	Lookup(ctx context.Context, word string) (*DictionaryEntry, error)
}
