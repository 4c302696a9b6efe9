package service

import (
	"context"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/validation"

	"go.uber.org/zap"
)

// VocabularyService manages the personal word list of a user.
type VocabularyService interface {
	List(ctx context.Context, userID string) ([]dto.VocabularyResponse, error)
	Upsert(ctx context.Context, userID string, req *dto.VocabularyRequest) (*dto.VocabularyResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.VocabularyUpdateRequest) (*dto.VocabularyResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type vocabularyService struct {
	repo       domain.VocabularyRepository
	dictionary domain.DictionaryClient
	validator  *validation.Validator
}

// NewVocabularyService creates a VocabularyService. dictionary may be nil to disable enrichment.
func NewVocabularyService(repo domain.VocabularyRepository, dictionary domain.DictionaryClient, validator *validation.Validator) VocabularyService {
	return &vocabularyService{
		repo:       repo,
		dictionary: dictionary,
		validator:  validator,
	}
}

func (s *vocabularyService) List(ctx context.Context, userID string) ([]dto.VocabularyResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch vocabulary", err)
	}
	out := make([]dto.VocabularyResponse, 0, len(items))
	for i := range items {
		out = append(out, toVocabularyResponse(&items[i]))
	}
	return out, nil
}

// Upsert adds the word or refreshes the user's existing entry for it.
// Definitions that are missing or repeat the word are looked up in the dictionary.
func (s *vocabularyService) Upsert(ctx context.Context, userID string, req *dto.VocabularyRequest) (*dto.VocabularyResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	word := strings.TrimSpace(req.Word)
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}

	fields := vocabularyFields{
		definition:    req.Definition,
		example:       req.Example,
		pronunciation: req.Pronunciation,
		partOfSpeech:  req.PartOfSpeech,
		synonyms:      req.Synonyms,
	}
	if needsDefinition(word, req.Definition) {
		s.enrich(ctx, word, &fields)
	}

	existing, err := s.repo.GetByUserAndWord(ctx, userID, word)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save vocabulary", err)
	}

	if existing != nil {
		existing.Definition = fields.definition
		existing.Example = fields.example
		existing.Difficulty = difficulty
		if fields.pronunciation != "" {
			existing.Pronunciation = fields.pronunciation
		}
		if fields.partOfSpeech != "" {
			existing.PartOfSpeech = fields.partOfSpeech
		}
		if fields.synonyms != "" {
			existing.Synonyms = splitList(fields.synonyms)
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			logger.Get().Error("Failed to update vocabulary", zap.String("userID", userID), zap.String("word", word), zap.Error(err))
			return nil, domain.NewInternalError("Failed to save vocabulary", err)
		}
		resp := toVocabularyResponse(existing)
		return &resp, nil
	}

	item := &domain.Vocabulary{
		UserID:        userID,
		Word:          word,
		Definition:    fields.definition,
		Example:       fields.example,
		Difficulty:    difficulty,
		Pronunciation: fields.pronunciation,
		PartOfSpeech:  fields.partOfSpeech,
		Synonyms:      splitList(fields.synonyms),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		logger.Get().Error("Failed to create vocabulary", zap.String("userID", userID), zap.String("word", word), zap.Error(err))
		return nil, domain.NewInternalError("Failed to save vocabulary", err)
	}
	resp := toVocabularyResponse(item)
	return &resp, nil
}

type vocabularyFields struct {
	definition    string
	example       string
	pronunciation string
	partOfSpeech  string
	synonyms      string
}

func needsDefinition(word, definition string) bool {
	d := strings.TrimSpace(definition)
	return d == "" || d == word
}

// enrich fills f from the dictionary. On any lookup failure the definition becomes the word.
func (s *vocabularyService) enrich(ctx context.Context, word string, f *vocabularyFields) {
	if s.dictionary == nil {
		f.definition = word
		return
	}
	entry, err := s.dictionary.Lookup(ctx, word)
	if err != nil || entry == nil {
		logger.Get().Debug("No dictionary data, using the word as definition", zap.String("word", word), zap.Error(err))
		f.definition = word
		return
	}

	f.definition = entry.Definition
	if f.definition == "" {
		f.definition = word
	}
	if f.example == "" {
		f.example = entry.Example
	}
	f.pronunciation = entry.Pronunciation
	f.partOfSpeech = entry.PartOfSpeech
	f.synonyms = entry.Synonyms
}

// Update applies the non-nil fields of req to an entry owned by userID.
func (s *vocabularyService) Update(ctx context.Context, userID, id string, req *dto.VocabularyUpdateRequest) (*dto.VocabularyResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	item, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Word != nil {
		item.Word = strings.TrimSpace(*req.Word)
	}
	if req.Definition != nil {
		item.Definition = *req.Definition
	}
	if req.Example != nil {
		item.Example = *req.Example
	}
	if req.Difficulty != nil {
		item.Difficulty = *req.Difficulty
	}
	if req.Pronunciation != nil {
		item.Pronunciation = *req.Pronunciation
	}
	if req.PartOfSpeech != nil {
		item.PartOfSpeech = *req.PartOfSpeech
	}
	if req.Synonyms != nil {
		item.Synonyms = splitList(*req.Synonyms)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if isDomainCode(err, domain.CodeNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to update vocabulary", err)
	}
	resp := toVocabularyResponse(item)
	return &resp, nil
}

func (s *vocabularyService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isDomainCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("Failed to delete vocabulary", err)
	}
	return nil
}

// owned loads the entry and hides entries of other users behind the same 404.
func (s *vocabularyService) owned(ctx context.Context, userID, id string) (*domain.Vocabulary, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load vocabulary", err)
	}
	if item == nil || item.UserID != userID {
		return nil, domain.NewNotFoundError("Not found")
	}
	return item, nil
}

// splitList splits a comma separated list, trimming items and dropping empty ones.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toVocabularyResponse(v *domain.Vocabulary) dto.VocabularyResponse {
	synonyms := v.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}
	return dto.VocabularyResponse{
		ID:            v.ID,
		UserID:        v.UserID,
		Word:          v.Word,
		Definition:    v.Definition,
		Example:       v.Example,
		Difficulty:    v.Difficulty,
		Pronunciation: v.Pronunciation,
		PartOfSpeech:  v.PartOfSpeech,
		Synonyms:      synonyms,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
