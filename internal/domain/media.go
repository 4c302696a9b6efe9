package domain

import (
	"context"
	"io"
	"time"
)

const (
	MediaTypeVideo      = "VIDEO"
	MediaTypeAudio      = "AUDIO"
	MediaTypeMusicVideo = "MUSIC_VIDEO"
)

// MediaContent is an uploaded video or audio item.
type MediaContent struct {
	ID            string
	Title         string
	Description   string
	Type          string
	FilePath      string
	ThumbnailPath string
	Duration      *int
	Difficulty    string
	Category      string
	Tags          []string
	Lyrics        string
	UploaderID    string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Uploader *MediaUploader
}

// MediaUploader is the admin who uploaded a media item.
type MediaUploader struct {
	ID    string
	Name  string
	Email string
}

// MediaFilter narrows the public content listing.
type MediaFilter struct {
	Type       string
	Difficulty string
	Category   string
	ActiveOnly bool
}

// MediaRepository persists media content.
type MediaRepository interface {
	List(ctx context.Context, filter MediaFilter, limit, offset int) ([]MediaContent, error)
	Count(ctx context.Context, filter MediaFilter) (int, error)
	GetByID(ctx context.Context, id string, activeOnly bool) (*MediaContent, error)
	ListCategories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, m *MediaContent) error
	Update(ctx context.Context, m *MediaContent) error
	Delete(ctx context.Context, id string) error
}

// FileStorage stores uploaded media files.
// Save returns the public path clients use to fetch the object.
type FileStorage interface {
	Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
