package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"
	"lingo-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const vocabularyColumns = `id, user_id, word, definition, example, difficulty, pronunciation, part_of_speech, synonyms, created_at, updated_at`

type VocabularyRepository struct {
	db *sqlx.DB
}

func NewVocabularyRepository(db *sqlx.DB) domain.VocabularyRepository {
	return &VocabularyRepository{db: db}
}

func (r *VocabularyRepository) ListByUser(ctx context.Context, userID string) ([]domain.Vocabulary, error) {
	var rows []models.Vocabulary
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE user_id = $1 ORDER BY created_at DESC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	out := make([]domain.Vocabulary, 0, len(rows))
	for i := range rows {
		out = append(out, *toDomainVocabulary(&rows[i]))
	}
	return out, nil
}

func (r *VocabularyRepository) GetByID(ctx context.Context, id string) (*domain.Vocabulary, error) {
	return r.getOne(ctx, `SELECT `+vocabularyColumns+` FROM vocabulary WHERE id = $1`, id)
}

func (r *VocabularyRepository) GetByUserAndWord(ctx context.Context, userID, word string) (*domain.Vocabulary, error) {
	return r.getOne(ctx, `SELECT `+vocabularyColumns+` FROM vocabulary WHERE user_id = $1 AND word = $2`, userID, word)
}

func (r *VocabularyRepository) Create(ctx context.Context, v *domain.Vocabulary) error {
	if v.ID == "" {
		v.ID = util.NewULID()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `INSERT INTO vocabulary (` + vocabularyColumns + `)
		VALUES (:id, :user_id, :word, :definition, :example, :difficulty, :pronunciation, :part_of_speech, :synonyms, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainVocabulary(v)); err != nil {
		return fmt.Errorf("failed to create vocabulary %q: %w", v.Word, err)
	}
	return nil
}

func (r *VocabularyRepository) Update(ctx context.Context, v *domain.Vocabulary) error {
	v.UpdatedAt = time.Now().UTC()
	query := `UPDATE vocabulary SET
			word = :word,
			definition = :definition,
			example = :example,
			difficulty = :difficulty,
			pronunciation = :pronunciation,
			part_of_speech = :part_of_speech,
			synonyms = :synonyms,
			updated_at = :updated_at
		WHERE id = :id`
	res, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainVocabulary(v))
	if err != nil {
		return fmt.Errorf("failed to update vocabulary %s: %w", v.ID, err)
	}
	return requireAffected(res, domain.NewNotFoundError("Not found"))
}

func (r *VocabularyRepository) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM vocabulary WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vocabulary %s: %w", id, err)
	}
	return requireAffected(res, domain.NewNotFoundError("Not found"))
}

func (r *VocabularyRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Vocabulary, error) {
	var m models.Vocabulary
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}
	return toDomainVocabulary(&m), nil
}

// requireAffected returns notFound when res reports zero affected rows.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func toDomainVocabulary(m *models.Vocabulary) *domain.Vocabulary {
	synonyms := []string(m.Synonyms)
	if synonyms == nil {
		synonyms = []string{}
	}
	return &domain.Vocabulary{
		ID:            m.ID,
		UserID:        m.UserID,
		Word:          m.Word,
		Definition:    m.Definition,
		Example:       m.Example,
		Difficulty:    m.Difficulty,
		Pronunciation: m.Pronunciation,
		PartOfSpeech:  m.PartOfSpeech,
		Synonyms:      synonyms,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainVocabulary(d *domain.Vocabulary) *models.Vocabulary {
	return &models.Vocabulary{
		ID:            d.ID,
		UserID:        d.UserID,
		Word:          d.Word,
		Definition:    d.Definition,
		Example:       d.Example,
		Difficulty:    d.Difficulty,
		Pronunciation: d.Pronunciation,
		PartOfSpeech:  d.PartOfSpeech,
		Synonyms:      models.StringSlice(d.Synonyms),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
