package dto

import (
	"io"
	"time"
)

// MediaListRequest carries the public catalog filters.
type MediaListRequest struct {
	PageRequest
	Type       string
	Difficulty string
	Category   string
}

// MediaContentResponse is a catalog item. Lyrics are only set on single-item reads.
type MediaContentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	FilePath      string    `json:"filePath"`
	ThumbnailPath *string   `json:"thumbnailPath"`
	Duration      *int      `json:"duration"`
	Difficulty    string    `json:"difficulty"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Lyrics        string    `json:"lyrics,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MediaListResponse is one page of the catalog.
// @Description Paginated media catalog
type MediaListResponse struct {
	MediaContent []MediaContentResponse `json:"mediaContent"`
	Pagination   Pagination             `json:"pagination"`
}

type MediaCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type MediaUploaderResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminMediaResponse is the full admin view of a media item.
type AdminMediaResponse struct {
	MediaContentResponse
	UploaderID *string                `json:"uploaderId"`
	IsActive   bool                   `json:"isActive"`
	UpdatedAt  time.Time              `json:"updatedAt"`
	Uploader   *MediaUploaderResponse `json:"uploader,omitempty"`
}

type AdminMediaListResponse struct {
	MediaContent []AdminMediaResponse `json:"mediaContent"`
	Pagination   Pagination           `json:"pagination"`
}

// MediaUploadForm holds the multipart text fields of an upload.
type MediaUploadForm struct {
	Title       string `form:"title" json:"title" validate:"required,min=1,max=255"`
	Description string `form:"description" json:"description"`
	Type        string `form:"type" json:"type" validate:"required,oneof=VIDEO AUDIO MUSIC_VIDEO"`
	Difficulty  string `form:"difficulty" json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category    string `form:"category" json:"category"`
	Tags        string `form:"tags" json:"tags"`
	Lyrics      string `form:"lyrics" json:"lyrics"`
}

// MediaUpdateRequest is a partial update of a media item. Nil fields are left unchanged.
type MediaUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,oneof=VIDEO AUDIO MUSIC_VIDEO"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
	Lyrics      *string `json:"lyrics"`
	IsActive    *bool   `json:"isActive"`
}

// UploadedFile is a multipart file handed to the media service.
type UploadedFile struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type UploadedMedia struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	FilePath      string  `json:"filePath"`
	ThumbnailPath *string `json:"thumbnailPath"`
}

// MediaUploadResponse confirms a new media item.
type MediaUploadResponse struct {
	Message      string        `json:"message"`
	MediaContent UploadedMedia `json:"mediaContent"`
}

// AdminMediaMessageResponse is returned by update, toggle and file replacement.
type AdminMediaMessageResponse struct {
	Message      string             `json:"message"`
	MediaContent AdminMediaResponse `json:"mediaContent"`
}
