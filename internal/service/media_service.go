package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/util"
	"lingo-quiz/internal/validation"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxUploadBytes is the size limit of a single uploaded file.
	MaxUploadBytes int64 = 100 * 1024 * 1024

	DefaultContentLimit = 20
	DefaultAdminLimit   = 10
	MaxMediaLimit       = 100

	FieldMediaFile = "mediaFile"
	FieldThumbnail = "thumbnail"
)

var allowedMediaTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/mpeg": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// MediaService serves the media catalog and the admin media management routes.
type MediaService interface {
	ListContent(ctx context.Context, req dto.MediaListRequest) (*dto.MediaListResponse, error)
	GetContent(ctx context.Context, id string) (*dto.MediaContentResponse, error)
	Categories(ctx context.Context) (*dto.MediaCategoriesResponse, error)

	AdminList(ctx context.Context, page dto.PageRequest) (*dto.AdminMediaListResponse, error)
	AdminGet(ctx context.Context, id string) (*dto.AdminMediaResponse, error)
	Upload(ctx context.Context, uploaderID string, form *dto.MediaUploadForm, mediaFile, thumbnail *dto.UploadedFile) (*dto.MediaUploadResponse, error)
	Update(ctx context.Context, id string, req *dto.MediaUpdateRequest) (*dto.AdminMediaMessageResponse, error)
	Delete(ctx context.Context, id string) (*dto.MessageResponse, error)
	Toggle(ctx context.Context, id string) (*dto.AdminMediaMessageResponse, error)
	ReplaceFiles(ctx context.Context, id string, mediaFile, thumbnail *dto.UploadedFile) (*dto.AdminMediaMessageResponse, error)
}

type mediaService struct {
	repo      domain.MediaRepository
	storage   domain.FileStorage
	validator *validation.Validator
}

func NewMediaService(repo domain.MediaRepository, storage domain.FileStorage, validator *validation.Validator) MediaService {
	return &mediaService{
		repo:      repo,
		storage:   storage,
		validator: validator,
	}
}

func (s *mediaService) ListContent(ctx context.Context, req dto.MediaListRequest) (*dto.MediaListResponse, error) {
	page := normalizePage(req.PageRequest, DefaultContentLimit, MaxMediaLimit)
	filter := domain.MediaFilter{
		Type:       strings.TrimSpace(req.Type),
		Difficulty: strings.TrimSpace(req.Difficulty),
		Category:   strings.TrimSpace(req.Category),
		ActiveOnly: true,
	}

	items, total, err := s.list(ctx, filter, page)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch media content", err)
	}

	out := make([]dto.MediaContentResponse, 0, len(items))
	for i := range items {
		out = append(out, toMediaContentResponse(&items[i], false))
	}
	return &dto.MediaListResponse{MediaContent: out, Pagination: pagination(page, total)}, nil
}

func (s *mediaService) GetContent(ctx context.Context, id string) (*dto.MediaContentResponse, error) {
	m, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch media content", err)
	}
	if m == nil {
		return nil, domain.NewMediaNotFoundError("Content not found")
	}
	resp := toMediaContentResponse(m, true)
	return &resp, nil
}

func (s *mediaService) Categories(ctx context.Context) (*dto.MediaCategoriesResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch categories", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return &dto.MediaCategoriesResponse{Categories: categories}, nil
}

func (s *mediaService) AdminList(ctx context.Context, page dto.PageRequest) (*dto.AdminMediaListResponse, error) {
	page = normalizePage(page, DefaultAdminLimit, MaxMediaLimit)

	items, total, err := s.list(ctx, domain.MediaFilter{}, page)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch media content", err)
	}

	out := make([]dto.AdminMediaResponse, 0, len(items))
	for i := range items {
		out = append(out, toAdminMediaResponse(&items[i]))
	}
	return &dto.AdminMediaListResponse{MediaContent: out, Pagination: pagination(page, total)}, nil
}

func (s *mediaService) list(ctx context.Context, filter domain.MediaFilter, page dto.PageRequest) ([]domain.MediaContent, int, error) {
	var (
		items []domain.MediaContent
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.repo.List(gctx, filter, page.Limit, page.Offset())
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *mediaService) AdminGet(ctx context.Context, id string) (*dto.AdminMediaResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAdminMediaResponse(m)
	return &resp, nil
}

// Upload stores the files and then the record. Stored files are removed again if a later step fails.
func (s *mediaService) Upload(ctx context.Context, uploaderID string, form *dto.MediaUploadForm, mediaFile, thumbnail *dto.UploadedFile) (*dto.MediaUploadResponse, error) {
	if errs := s.validator.Struct(form); len(errs) > 0 {
		return nil, errs
	}
	if mediaFile == nil {
		return nil, domain.NewInvalidInputError("Media file is required")
	}
	if err := checkUpload(mediaFile); err != nil {
		return nil, err
	}
	if thumbnail != nil {
		if err := checkUpload(thumbnail); err != nil {
			return nil, err
		}
	}

	var stored []string
	cleanup := func() {
		for _, p := range stored {
			s.removeFile(ctx, p)
		}
	}

	filePath, err := s.store(ctx, mediaFile, form.Title)
	if err != nil {
		return nil, err
	}
	stored = append(stored, filePath)

	var thumbnailPath string
	if thumbnail != nil {
		thumbnailPath, err = s.store(ctx, thumbnail, form.Title)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, thumbnailPath)
	}

	difficulty := form.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	m := &domain.MediaContent{
		Title:         strings.TrimSpace(form.Title),
		Description:   form.Description,
		Type:          form.Type,
		FilePath:      filePath,
		ThumbnailPath: thumbnailPath,
		Difficulty:    difficulty,
		Category:      strings.TrimSpace(form.Category),
		Tags:          splitList(form.Tags),
		Lyrics:        form.Lyrics,
		UploaderID:    uploaderID,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		cleanup()
		logger.Get().Error("Failed to create media content", zap.String("uploaderID", uploaderID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to save media content", err)
	}

	logger.Get().Info("Media content uploaded", zap.String("mediaID", m.ID), zap.String("uploaderID", uploaderID))
	return &dto.MediaUploadResponse{
		Message: "Media content uploaded successfully",
		MediaContent: dto.UploadedMedia{
			ID:            m.ID,
			Title:         m.Title,
			Type:          m.Type,
			FilePath:      m.FilePath,
			ThumbnailPath: optionalString(m.ThumbnailPath),
		},
	}, nil
}

func (s *mediaService) Update(ctx context.Context, id string, req *dto.MediaUpdateRequest) (*dto.AdminMediaMessageResponse, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Type != nil {
		m.Type = *req.Type
	}
	if req.Difficulty != nil {
		m.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		m.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		m.Tags = splitList(*req.Tags)
	}
	if req.Lyrics != nil {
		m.Lyrics = *req.Lyrics
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}
	return &dto.AdminMediaMessageResponse{
		Message:      "Media content updated successfully",
		MediaContent: toAdminMediaResponse(m),
	}, nil
}

// Delete removes the record. Failures to remove its files are logged and ignored.
func (s *mediaService) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.removeFile(ctx, m.FilePath)
	if m.ThumbnailPath != "" {
		s.removeFile(ctx, m.ThumbnailPath)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if isDomainCode(err, domain.CodeMediaNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to delete media content", err)
	}
	logger.Get().Info("Media content deleted", zap.String("mediaID", id))
	return &dto.MessageResponse{Message: "Media content deleted successfully"}, nil
}

func (s *mediaService) Toggle(ctx context.Context, id string) (*dto.AdminMediaMessageResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	m.IsActive = !m.IsActive
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	state := "deactivated"
	if m.IsActive {
		state = "activated"
	}
	return &dto.AdminMediaMessageResponse{
		Message:      fmt.Sprintf("Media content %s successfully", state),
		MediaContent: toAdminMediaResponse(m),
	}, nil
}

// ReplaceFiles swaps the media file, the thumbnail or both. Old files are removed after the update.
func (s *mediaService) ReplaceFiles(ctx context.Context, id string, mediaFile, thumbnail *dto.UploadedFile) (*dto.AdminMediaMessageResponse, error) {
	if mediaFile == nil && thumbnail == nil {
		return nil, domain.NewInvalidInputError("At least one file is required")
	}
	for _, f := range []*dto.UploadedFile{mediaFile, thumbnail} {
		if f != nil {
			if err := checkUpload(f); err != nil {
				return nil, err
			}
		}
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var stored, replaced []string
	if mediaFile != nil {
		p, err := s.store(ctx, mediaFile, m.Title)
		if err != nil {
			return nil, err
		}
		stored = append(stored, p)
		replaced = append(replaced, m.FilePath)
		m.FilePath = p
	}
	if thumbnail != nil {
		p, err := s.store(ctx, thumbnail, m.Title)
		if err != nil {
			for _, sp := range stored {
				s.removeFile(ctx, sp)
			}
			return nil, err
		}
		stored = append(stored, p)
		if m.ThumbnailPath != "" {
			replaced = append(replaced, m.ThumbnailPath)
		}
		m.ThumbnailPath = p
	}

	if err := s.save(ctx, m); err != nil {
		for _, sp := range stored {
			s.removeFile(ctx, sp)
		}
		return nil, err
	}
	for _, old := range replaced {
		s.removeFile(ctx, old)
	}

	return &dto.AdminMediaMessageResponse{
		Message:      "Media files updated successfully",
		MediaContent: toAdminMediaResponse(m),
	}, nil
}

func (s *mediaService) find(ctx context.Context, id string) (*domain.MediaContent, error) {
	m, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch media content", err)
	}
	if m == nil {
		return nil, domain.NewMediaNotFoundError("Media content not found")
	}
	return m, nil
}

func (s *mediaService) save(ctx context.Context, m *domain.MediaContent) error {
	if err := s.repo.Update(ctx, m); err != nil {
		if isDomainCode(err, domain.CodeMediaNotFound) {
			return err
		}
		logger.Get().Error("Failed to update media content", zap.String("mediaID", m.ID), zap.Error(err))
		return domain.NewInternalError("Failed to update media content", err)
	}
	return nil
}

func (s *mediaService) store(ctx context.Context, f *dto.UploadedFile, title string) (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", domain.NewInternalError("Failed to read uploaded file", err)
	}
	defer r.Close()

	p, err := s.storage.Save(ctx, f.Field, storedFileName(f.Field, title, f.Filename), r, f.Size, f.ContentType)
	if err != nil {
		logger.Get().Error("Failed to store uploaded file", zap.String("field", f.Field), zap.Error(err))
		return "", domain.NewInternalError("Failed to store uploaded file", err)
	}
	return p, nil
}

func (s *mediaService) removeFile(ctx context.Context, publicPath string) {
	if err := s.storage.Delete(ctx, publicPath); err != nil {
		logger.Get().Warn("Failed to remove media file", zap.String("path", publicPath), zap.Error(err))
	}
}

func checkUpload(f *dto.UploadedFile) error {
	if !allowedMediaTypes[strings.ToLower(f.ContentType)] {
		return domain.NewInvalidFileTypeError(f.ContentType)
	}
	if f.Size > MaxUploadBytes {
		return domain.NewFileTooLargeError(MaxUploadBytes)
	}
	return nil
}

// storedFileName builds "<field>-<slug(title)>-<ulid><ext>".
func storedFileName(field, title, original string) string {
	s := slug.Make(title)
	if s == "" {
		s = "media"
	}
	return fmt.Sprintf("%s-%s-%s%s", field, s, strings.ToLower(util.NewULID()), strings.ToLower(path.Ext(original)))
}

func pagination(page dto.PageRequest, total int) dto.Pagination {
	return dto.Pagination{
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
		Pages: util.TotalPages(total, page.Limit),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toMediaContentResponse(m *domain.MediaContent, withLyrics bool) dto.MediaContentResponse {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := dto.MediaContentResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Type:          m.Type,
		FilePath:      m.FilePath,
		ThumbnailPath: optionalString(m.ThumbnailPath),
		Duration:      m.Duration,
		Difficulty:    m.Difficulty,
		Category:      m.Category,
		Tags:          tags,
		CreatedAt:     m.CreatedAt,
	}
	if withLyrics {
		resp.Lyrics = m.Lyrics
	}
	return resp
}

func toAdminMediaResponse(m *domain.MediaContent) dto.AdminMediaResponse {
	resp := dto.AdminMediaResponse{
		MediaContentResponse: toMediaContentResponse(m, true),
		UploaderID:           optionalString(m.UploaderID),
		IsActive:             m.IsActive,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.Uploader != nil {
		resp.Uploader = &dto.MediaUploaderResponse{
			ID:    m.Uploader.ID,
			Name:  m.Uploader.Name,
			Email: m.Uploader.Email,
		}
	}
	return resp
}
