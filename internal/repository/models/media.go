package models

import (
	"database/sql"
	"time"
)

// MediaContent maps media_content. The uploader_* columns come from a LEFT JOIN on users.
type MediaContent struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Type          string         `db:"type"`
	FilePath      string         `db:"file_path"`
	ThumbnailPath sql.NullString `db:"thumbnail_path"`
	Duration      sql.NullInt32  `db:"duration"`
	Difficulty    string         `db:"difficulty"`
	Category      sql.NullString `db:"category"`
	Tags          StringSlice    `db:"tags"`
	Lyrics        sql.NullString `db:"lyrics"`
	UploaderID    sql.NullString `db:"uploader_id"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`

	UploaderName  sql.NullString `db:"uploader_name"`
	UploaderEmail sql.NullString `db:"uploader_email"`
}
