package handler

import (
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the media management routes. Every route runs behind RequireAdmin.
type AdminHandler struct {
	media service.MediaService
}

func NewAdminHandler(media service.MediaService) *AdminHandler {
	return &AdminHandler{media: media}
}

// UploadMedia godoc
// @Summary Upload media content
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param type formData string true "VIDEO, AUDIO or MUSIC_VIDEO"
// @Param difficulty formData string false "BEGINNER, INTERMEDIATE or ADVANCED"
// @Param category formData string false "Category"
// @Param tags formData string false "Comma separated tags"
// @Param lyrics formData string false "Lyrics"
// @Param mediaFile formData file true "Media file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} dto.MediaUploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /admin/upload-media [post]
func (h *AdminHandler) UploadMedia(c *fiber.Ctx) error {
	var form dto.MediaUploadForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody(err)
	}
	mediaFile, err := formFile(c, service.FieldMediaFile)
	if err != nil {
		return err
	}
	thumbnail, err := formFile(c, service.FieldThumbnail)
	if err != nil {
		return err
	}

	resp, err := h.media.Upload(c.UserContext(), middleware.UserID(c), &form, mediaFile, thumbnail)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListMedia godoc
// @Summary List all media content, active or not
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.AdminMediaListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/media [get]
func (h *AdminHandler) ListMedia(c *fiber.Ctx) error {
	resp, err := h.media.AdminList(c.UserContext(), middleware.PageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMedia godoc
// @Summary Get one media item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 200 {object} dto.AdminMediaResponse
// @Failure 404 {object} middleware.ErrorResponse "Media content not found"
// @Router /admin/media/{id} [get]
func (h *AdminHandler) GetMedia(c *fiber.Ctx) error {
	resp, err := h.media.AdminGet(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateMedia godoc
// @Summary Update media metadata
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Param media body dto.MediaUpdateRequest true "Fields to change"
// @Success 200 {object} dto.AdminMediaMessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/media/{id} [put]
func (h *AdminHandler) UpdateMedia(c *fiber.Ctx) error {
	var req dto.MediaUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.media.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteMedia godoc
// @Summary Delete media content and its files
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/media/{id} [delete]
func (h *AdminHandler) DeleteMedia(c *fiber.Ctx) error {
	resp, err := h.media.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ToggleMedia godoc
// @Summary Activate or deactivate media content
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 200 {object} dto.AdminMediaMessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/media/{id}/toggle [patch]
func (h *AdminHandler) ToggleMedia(c *fiber.Ctx) error {
	resp, err := h.media.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ReplaceMediaFiles godoc
// @Summary Replace the media file, the thumbnail or both
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Param mediaFile formData file false "Media file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} dto.AdminMediaMessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/media/{id}/files [put]
func (h *AdminHandler) ReplaceMediaFiles(c *fiber.Ctx) error {
	mediaFile, err := formFile(c, service.FieldMediaFile)
	if err != nil {
		return err
	}
	thumbnail, err := formFile(c, service.FieldThumbnail)
	if err != nil {
		return err
	}

	resp, err := h.media.ReplaceFiles(c.UserContext(), c.Params("id"), mediaFile, thumbnail)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
