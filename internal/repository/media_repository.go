package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"
	"lingo-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const mediaSelect = `SELECT m.id, m.title, m.description, m.type, m.file_path, m.thumbnail_path, m.duration,
	m.difficulty, m.category, m.tags, m.lyrics, m.uploader_id, m.is_active, m.created_at, m.updated_at,
	u.name AS uploader_name, u.email AS uploader_email
	FROM media_content m
	LEFT JOIN users u ON u.id = m.uploader_id`

// MediaRepository implements domain.MediaRepository on Postgres.
type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) domain.MediaRepository {
	return &MediaRepository{db: db}
}

// mediaWhere renders filter as a WHERE clause with positional placeholders starting at $1.
func mediaWhere(filter domain.MediaFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.ActiveOnly {
		conds = append(conds, "m.is_active = TRUE")
	}
	if filter.Type != "" {
		add("m.type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		add("m.difficulty = ?", filter.Difficulty)
	}
	if filter.Category != "" {
		add("m.category ILIKE ?", "%"+filter.Category+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *MediaRepository) List(ctx context.Context, filter domain.MediaFilter, limit, offset int) ([]domain.MediaContent, error) {
	where, args := mediaWhere(filter)
	n := len(args)
	query := mediaSelect + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	var rows []models.MediaContent
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list media content: %w", err)
	}
	out := make([]domain.MediaContent, 0, len(rows))
	for i := range rows {
		out = append(out, *toDomainMedia(&rows[i]))
	}
	return out, nil
}

func (r *MediaRepository) Count(ctx context.Context, filter domain.MediaFilter) (int, error) {
	where, args := mediaWhere(filter)
	var count int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM media_content m`+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count media content: %w", err)
	}
	return count, nil
}

// GetByID returns (nil, nil) when no row matches.
func (r *MediaRepository) GetByID(ctx context.Context, id string, activeOnly bool) (*domain.MediaContent, error) {
	query := mediaSelect + ` WHERE m.id = $1`
	if activeOnly {
		query += ` AND m.is_active = TRUE`
	}
	var m models.MediaContent
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get media content %s: %w", id, err)
	}
	return toDomainMedia(&m), nil
}

// ListCategories returns the distinct non-empty categories of active content, sorted.
func (r *MediaRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	query := `SELECT DISTINCT category FROM media_content
		WHERE is_active = TRUE AND category IS NOT NULL AND category <> ''
		ORDER BY category`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list media categories: %w", err)
	}
	return categories, nil
}

func (r *MediaRepository) Create(ctx context.Context, m *domain.MediaContent) error {
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO media_content (id, title, description, type, file_path, thumbnail_path, duration,
			difficulty, category, tags, lyrics, uploader_id, is_active, created_at, updated_at)
		VALUES (:id, :title, :description, :type, :file_path, :thumbnail_path, :duration,
			:difficulty, :category, :tags, :lyrics, :uploader_id, :is_active, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainMedia(m)); err != nil {
		return fmt.Errorf("failed to create media content: %w", err)
	}
	return nil
}

func (r *MediaRepository) Update(ctx context.Context, m *domain.MediaContent) error {
	m.UpdatedAt = time.Now().UTC()
	query := `UPDATE media_content SET
			title = :title,
			description = :description,
			type = :type,
			file_path = :file_path,
			thumbnail_path = :thumbnail_path,
			duration = :duration,
			difficulty = :difficulty,
			category = :category,
			tags = :tags,
			lyrics = :lyrics,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`
	res, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainMedia(m))
	if err != nil {
		return fmt.Errorf("failed to update media content %s: %w", m.ID, err)
	}
	return requireAffected(res, domain.NewMediaNotFoundError("Media content not found"))
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM media_content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media content %s: %w", id, err)
	}
	return requireAffected(res, domain.NewMediaNotFoundError("Media content not found"))
}

func toDomainMedia(m *models.MediaContent) *domain.MediaContent {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	d := &domain.MediaContent{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description.String,
		Type:          m.Type,
		FilePath:      m.FilePath,
		ThumbnailPath: m.ThumbnailPath.String,
		Duration:      util.NullInt32ToPtr(m.Duration),
		Difficulty:    m.Difficulty,
		Category:      m.Category.String,
		Tags:          tags,
		Lyrics:        m.Lyrics.String,
		UploaderID:    m.UploaderID.String,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.UploaderID.Valid {
		d.Uploader = &domain.MediaUploader{
			ID:    m.UploaderID.String,
			Name:  m.UploaderName.String,
			Email: m.UploaderEmail.String,
		}
	}
	return d
}

func fromDomainMedia(d *domain.MediaContent) *models.MediaContent {
	return &models.MediaContent{
		ID:            d.ID,
		Title:         d.Title,
		Description:   util.StringToNullString(d.Description),
		Type:          d.Type,
		FilePath:      d.FilePath,
		ThumbnailPath: util.StringToNullString(d.ThumbnailPath),
		Duration:      util.IntPtrToNullInt32(d.Duration),
		Difficulty:    d.Difficulty,
		Category:      util.StringToNullString(d.Category),
		Tags:          models.StringSlice(d.Tags),
		Lyrics:        util.StringToNullString(d.Lyrics),
		UploaderID:    util.StringToNullString(d.UploaderID),
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
