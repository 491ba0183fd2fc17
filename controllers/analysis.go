package controllers

import (
	"errors"
	"net/http"

	"fakecheckapi/models"
	"fakecheckapi/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	detailInvalidBody     = "invalid request body"
	detailMalformedReply  = "malformed JSON response"
	detailProcessingError = "processing error"
)

type AnalysisController struct {
	Analyzer services.AuthenticityAnalyzerProvider
}

func (controller *AnalysisController) AnalysisRoutes(g *echo.Group) {
	g.POST("/analizza-oggetto", controller.AnalyzeObject)
}

func (controller *AnalysisController) AnalyzeObject(c echo.Context) error {
	var req models.ObjectAnalysisIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: detailInvalidBody})
	}
	if err := c.Validate(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if message, ok := httpErr.Message.(string); ok {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: message})
			}
		}
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: err.Error()})
	}

	result, err := controller.Analyzer.Analyze(c.Request().Context(), req)
	if err != nil {
		status, detail := analysisErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Warn().Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("analysis request failed")
		}
		return c.JSON(status, models.ErrorResponse{Detail: detail})
	}
	return c.JSON(http.StatusOK, result)
}

// analysisErrorResponse maps analyzer failures to the status and detail
// returned to the client. Remote failure details are never exposed.
func analysisErrorResponse(err error) (int, string) {
	var malformed *services.MalformedResponseError
	var missing *services.MissingFieldError
	var invalid *services.InvalidFieldError
	switch {
	case errors.Is(err, services.ErrNoImages):
		return http.StatusBadRequest, services.ErrNoImages.Error()
	case errors.As(err, &malformed):
		return http.StatusInternalServerError, detailMalformedReply
	case errors.As(err, &missing):
		return http.StatusInternalServerError, missing.Error()
	case errors.As(err, &invalid):
		return http.StatusInternalServerError, "invalid field: " + invalid.Field
	default:
		return http.StatusInternalServerError, detailProcessingError
	}
}
