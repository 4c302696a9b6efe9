package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// MediaHandler serves the media catalog to signed-in users.
type MediaHandler struct {
	media service.MediaService
}

func NewMediaHandler(media service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// ListContent godoc
// @Summary List active media content
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param type query string false "VIDEO, AUDIO or MUSIC_VIDEO"
// @Param difficulty query string false "BEGINNER, INTERMEDIATE or ADVANCED"
// @Param category query string false "Category substring, case-insensitive"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} dto.MediaListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /media/content [get]
func (h *MediaHandler) ListContent(c *fiber.Ctx) error {
	resp, err := h.media.ListContent(c.UserContext(), dto.MediaListRequest{
		PageRequest: middleware.PageFrom(c),
		Type:        c.Query("type"),
		Difficulty:  c.Query("difficulty"),
		Category:    c.Query("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetContent godoc
// @Summary Get one media item with lyrics
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 200 {object} dto.MediaContentResponse
// @Failure 404 {object} middleware.ErrorResponse "Content not found"
// @Router /media/content/{id} [get]
func (h *MediaHandler) GetContent(c *fiber.Ctx) error {
	resp, err := h.media.GetContent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategories godoc
// @Summary List media categories
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MediaCategoriesResponse
// @Router /media/categories [get]
func (h *MediaHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.media.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// formFile returns the uploaded file of field, or nil when the field is absent.
func formFile(c *fiber.Ctx, field string) (*dto.UploadedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, domain.NewInvalidInputError("Invalid multipart form")
	}
	return uploadedFile(field, fh), nil
}

func uploadedFile(field string, fh *multipart.FileHeader) *dto.UploadedFile {
	return &dto.UploadedFile{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
