package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"fakecheckapi/config"
	"fakecheckapi/models"
	"fakecheckapi/services"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return nil
}

// validationMessage renders validator errors with the JSON field names the
// client sent, e.g. "immagini[1] failed on base64".
func validationMessage(err error) string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(messages, "; ")
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	v.RegisterValidation("category", models.ValidateCategory)
	return &CustomValidator{validator: v}
}

// detailErrorHandler renders framework errors (404, 405, 413, panics) with
// the same {"detail": ...} body the analysis endpoint uses.
func detailErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	detail := http.StatusText(status)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail = fmt.Sprint(httpErr.Message)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, models.ErrorResponse{Detail: detail})
}

func SetupServer(
	cfg *config.Config,
	provider services.VisionProvider,
	analyzer services.AuthenticityAnalyzerProvider,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = detailErrorHandler

	e.Use(middleware.RequestID())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	if cfg.Server.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	healthController := HealthController{Provider: provider}
	healthController.HealthRoutes(e.Group(""))

	analysisController := AnalysisController{Analyzer: analyzer}
	analysisController.AnalysisRoutes(e.Group(""))

	return e
}
