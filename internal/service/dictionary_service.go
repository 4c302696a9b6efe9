package service

import (
	"context"
	"errors"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	dictionarySource    = "Free Dictionary API"
	noDefinitionMessage = "No definition available"
)

// DictionaryService answers word lookups for the public dictionary route.
type DictionaryService interface {
	Lookup(ctx context.Context, word string) (*dto.DictionaryResponse, error)
}

type dictionaryService struct {
	client domain.DictionaryClient
}

func NewDictionaryService(client domain.DictionaryClient) DictionaryService {
	return &dictionaryService{client: client}
}

func (s *dictionaryService) Lookup(ctx context.Context, word string) (*dto.DictionaryResponse, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "is required", nil)
	}

	entry, err := s.client.Lookup(ctx, word)
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) {
			return nil, domain.NewWordNotFoundError(word)
		}
		logger.Get().Error("Dictionary lookup failed", zap.String("word", word), zap.Error(err))
		return nil, domain.NewDictionaryUnavailableError(err)
	}

	definition := entry.Definition
	if definition == "" {
		definition = noDefinitionMessage
	}
	return &dto.DictionaryResponse{
		Word:          entry.Word,
		Definition:    definition,
		PartOfSpeech:  entry.PartOfSpeech,
		Pronunciation: entry.Pronunciation,
		Synonyms:      entry.Synonyms,
		Source:        dictionarySource,
	}, nil
}
