package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz result HTTP requests
type QuizHandler struct {
	results service.QuizResultService
	stats   service.QuizStatsService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(results service.QuizResultService, stats service.QuizStatsService) *QuizHandler {
	return &QuizHandler{
		results: results,
		stats:   stats,
	}
}

// SubmitResult godoc
// @Summary Submit a finished quiz
// @Description Records the attempt, its per-question answers and the category progress in one transaction
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param result body dto.SubmitQuizResultRequest true "Quiz result"
// @Success 200 {object} dto.SubmitQuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/submit-result [post]
func (h *QuizHandler) SubmitResult(c *fiber.Ctx) error {
	var req dto.SubmitQuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	resp, err := h.results.SubmitResult(c.UserContext(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary List quiz history
// @Description Returns the caller's quiz results, newest first, with their question results
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.QuizHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	resp, err := h.results.GetHistory(c.UserContext(), middleware.UserID(c), middleware.PageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetStats godoc
// @Summary Get quiz statistics
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.QuizStatsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/stats [get]
func (h *QuizHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.stats.GetStats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResult godoc
// @Summary Get one quiz result
// @Description Results of other users are reported as not found
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz result ID"
// @Success 200 {object} dto.QuizResultDetail
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/result/{id} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	resp, err := h.results.GetResult(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAnalytics godoc
// @Summary Get quiz analytics
// @Description Per-question accuracy, timing, monthly trend and weak areas
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param category query string false "Quiz category"
// @Success 200 {object} dto.QuizAnalyticsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/analytics [get]
func (h *QuizHandler) GetAnalytics(c *fiber.Ctx) error {
	resp, err := h.stats.GetAnalytics(c.UserContext(), middleware.UserID(c), strings.TrimSpace(c.Query("category")))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// invalidBody maps a body parse failure to a client error. A well-formed
// body with a wrongly typed field is reported against that field.
func invalidBody(err error) error {
	logger.Get().Debug("Failed to parse request body", zap.Error(err))

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewValidationError(field, fmt.Sprintf("must be of type %s, got %s", typeErr.Type, typeErr.Value), nil)
	}
	return domain.NewInvalidInputError("Invalid request body")
}
