package dto

import "time"

// VocabularyRequest is the body of POST /api/vocab.
// @Description Word to add or refresh in the caller's vocabulary
type VocabularyRequest struct {
	Word          string `json:"word" validate:"required,min=1,max=200"`
	Definition    string `json:"definition"`
	Example       string `json:"example"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Pronunciation string `json:"pronunciation"`
	PartOfSpeech  string `json:"partOfSpeech"`
	Synonyms      string `json:"synonyms"`
}

// VocabularyUpdateRequest is the body of PUT /api/vocab/:id. Nil fields are left unchanged.
type VocabularyUpdateRequest struct {
	Word          *string `json:"word" validate:"omitempty,min=1,max=200"`
	Definition    *string `json:"definition"`
	Example       *string `json:"example"`
	Difficulty    *string `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Pronunciation *string `json:"pronunciation"`
	PartOfSpeech  *string `json:"partOfSpeech"`
	Synonyms      *string `json:"synonyms"`
}

type VocabularyResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Word          string    `json:"word"`
	Definition    string    `json:"definition"`
	Example       string    `json:"example"`
	Difficulty    string    `json:"difficulty"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	PartOfSpeech  string    `json:"partOfSpeech,omitempty"`
	Synonyms      []string  `json:"synonyms"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
