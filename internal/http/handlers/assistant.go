package handlers

import (
	"errors"
	"net/http"
	"strings"

	"fluidbook/internal/ai"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AssistantHandler handles the admin AI assistant endpoints
type AssistantHandler struct {
	assistant *ai.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *ai.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// AskRequest represents an operator question for the assistant
type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

// Ask godoc
// @Summary Ask the assistant
// @Description Answer a business question, optionally executing one predefined action
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body AskRequest true "Question"
// @Success 200 {object} ai.Response
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /admin/assistant [post]
func (h *AssistantHandler) Ask(c echo.Context) error {
	if h.assistant == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Assistant not configured"})
	}

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response, err := h.assistant.Ask(c.Request().Context(), req.Question)
	if err != nil {
		log.Error().Err(err).Msg("Assistant request failed")
		if errors.Is(err, ai.ErrGenerationFailed) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to generate answer"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Assistant request failed"})
	}

	return c.JSON(http.StatusOK, response)
}

// DownloadReport godoc
// @Summary Download a generated artifact
// @Description Return assistant-generated CSV or HTML embedded in the query as an attachment
// @Tags assistant
// @Produce plain
// @Param data query string true "Artifact content"
// @Param filename query string true "Suggested filename"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Router /admin/reports/download [get]
func (h *AssistantHandler) DownloadReport(c echo.Context) error {
	data := c.QueryParam("data")
	filename := c.QueryParam("filename")
	if data == "" || filename == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing data or filename"})
	}

	contentType := "text/csv"
	if strings.HasSuffix(filename, ".html") {
		contentType = "text/html"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, []byte(data))
}
