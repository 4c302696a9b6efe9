package handler

import (
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DictionaryHandler struct {
	dictionary service.DictionaryService
}

func NewDictionaryHandler(dictionary service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{dictionary: dictionary}
}

// Lookup godoc
// @Summary Look a word up in the dictionary
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Success 200 {object} dto.DictionaryResponse
// @Failure 404 {object} middleware.ErrorResponse "Word not found in dictionary"
// @Failure 502 {object} middleware.ErrorResponse "Failed to fetch word definition"
// @Router /auth/dictionary/{word} [get]
func (h *DictionaryHandler) Lookup(c *fiber.Ctx) error {
	resp, err := h.dictionary.Lookup(c.UserContext(), c.Params("word"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
