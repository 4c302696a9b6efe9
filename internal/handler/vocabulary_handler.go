package handler

import (
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// VocabularyHandler serves the caller's own word list.
type VocabularyHandler struct {
	vocabulary service.VocabularyService
}

func NewVocabularyHandler(vocabulary service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabulary: vocabulary}
}

// List godoc
// @Summary List vocabulary
// @Tags vocabulary
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.VocabularyResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /vocab [get]
func (h *VocabularyHandler) List(c *fiber.Ctx) error {
	resp, err := h.vocabulary.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Upsert godoc
// @Summary Add or refresh a word
// @Description Missing definitions are filled from the dictionary
// @Tags vocabulary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param word body dto.VocabularyRequest true "Word"
// @Success 200 {object} dto.VocabularyResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /vocab [post]
func (h *VocabularyHandler) Upsert(c *fiber.Ctx) error {
	var req dto.VocabularyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.vocabulary.Upsert(c.UserContext(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary Update a word
// @Tags vocabulary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vocabulary ID"
// @Param word body dto.VocabularyUpdateRequest true "Fields to change"
// @Success 200 {object} dto.VocabularyResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /vocab/{id} [put]
func (h *VocabularyHandler) Update(c *fiber.Ctx) error {
	var req dto.VocabularyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	resp, err := h.vocabulary.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a word
// @Tags vocabulary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vocabulary ID"
// @Success 200 {object} dto.OKResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /vocab/{id} [delete]
func (h *VocabularyHandler) Delete(c *fiber.Ctx) error {
	if err := h.vocabulary.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}
