package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fakecheckapi/config"
	"fakecheckapi/models"
	"fakecheckapi/services"
	"fakecheckapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(mock *test.VisionProviderMock, timeout time.Duration) *echo.Echo {
	cfg := &config.Config{Server: config.ServerConfig{BodyLimit: "20M"}}
	analyzer := services.NewAuthenticityAnalyzer(mock, nil, services.AnalyzerConfig{Timeout: timeout})
	return SetupServer(cfg, mock, analyzer)
}

func postAnalysis(e *echo.Echo, body interface{}) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, test.NewJSONRequest(http.MethodPost, "/analizza-oggetto", body))
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Detail
}

func TestAnalyzeObjectOk(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: "```json\n" + `{"percentuale": 35, "motivazione": "logo leggermente storto", "richiedi_altra_foto": true, "dettaglio_richiesto": "etichetta interna", "marca_stimata": "Gucci"}` + "\n```"}
	e := setupTestServer(mock, time.Second)

	rec := postAnalysis(e, models.ObjectAnalysisIn{Category: "borsa", Brand: "Gucci", Images: test.FakeImages(1)})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 35, response.Percentage)
	assert.Equal(t, "logo leggermente storto", response.Rationale)
	assert.True(t, response.NeedsMorePhotos)
	assert.Equal(t, "etichetta interna", response.RequestedDetail)
	require.NotNil(t, response.EstimatedBrand)
	assert.Equal(t, "Gucci", *response.EstimatedBrand)
	assert.Contains(t, mock.LastRequest().Prompt, "una sola fotografia")
}

func TestAnalyzeObjectThreePhotosFinalVerdict(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: `{"percentuale": 15, "motivazione": "ok", "richiedi_altra_foto": true, "dettaglio_richiesto": "zip"}`}
	e := setupTestServer(mock, time.Second)

	rec := postAnalysis(e, models.ObjectAnalysisIn{Category: "borsa", Images: test.FakeImages(3)})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"percentuale": 15, "motivazione": "ok", "richiedi_altra_foto": false, "dettaglio_richiesto": ""}`, rec.Body.String())
	assert.Contains(t, mock.LastRequest().Prompt, "valutazione finale")
}

func TestAnalyzeObjectNoImages(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: "{}"}
	e := setupTestServer(mock, time.Second)

	for _, body := range []string{`{"tipologia": "borsa", "immagini": []}`, `{"tipologia": "borsa"}`, `{"immagini": null}`} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, test.NewJSONRequestRaw(http.MethodPost, "/analizza-oggetto", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "no images supplied", decodeDetail(t, rec))
	}
	assert.Equal(t, 0, mock.Calls())
}

func TestAnalyzeObjectInvalidBase64(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: "{}"}
	e := setupTestServer(mock, time.Second)

	rec := postAnalysis(e, models.ObjectAnalysisIn{Images: []string{test.FakeJPEG(1), "not base64!"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "immagini[1]")
	assert.Equal(t, 0, mock.Calls())
}

func TestAnalyzeObjectFreeFormCategory(t *testing.T) {
	for _, category := range []string{"borsa (vintage)", "scarpe: sneakers", "orologio #1", "t-shirt!", "borsa\u00a0tote"} {
		mock := &test.VisionProviderMock{Reply: `{"percentuale": 10, "motivazione": "ok", "richiedi_altra_foto": false, "dettaglio_richiesto": ""}`}
		e := setupTestServer(mock, time.Second)

		rec := postAnalysis(e, models.ObjectAnalysisIn{Category: category, Images: test.FakeImages(1)})

		assert.Equal(t, http.StatusOK, rec.Code, "%q: %s", category, rec.Body.String())
		assert.Equal(t, 1, mock.Calls(), category)
	}
}

func TestAnalyzeObjectBlankCategoryFallsBack(t *testing.T) {
	for _, category := range []string{"\t", "\u00a0", "   "} {
		mock := &test.VisionProviderMock{Reply: `{"percentuale": 10, "motivazione": "ok", "richiedi_altra_foto": false, "dettaglio_richiesto": ""}`}
		e := setupTestServer(mock, time.Second)

		rec := postAnalysis(e, models.ObjectAnalysisIn{Category: category, Images: test.FakeImages(1)})

		require.Equal(t, http.StatusOK, rec.Code, "%q: %s", category, rec.Body.String())
		assert.Contains(t, mock.LastRequest().Prompt, "'borsa'")
	}
}

func TestAnalyzeObjectControlCharacterCategory(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: "{}"}
	e := setupTestServer(mock, time.Second)

	rec := postAnalysis(e, models.ObjectAnalysisIn{Category: "borsa\x00", Images: test.FakeImages(1)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "tipologia")
	assert.Equal(t, 0, mock.Calls())
}

func TestAnalyzeObjectInvalidBody(t *testing.T) {
	mock := &test.VisionProviderMock{Reply: "{}"}
	e := setupTestServer(mock, time.Second)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, test.NewJSONRequestRaw(http.MethodPost, "/analizza-oggetto", `{"immagini": "abc"`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeDetail(t, rec))
}

func TestAnalyzeObjectModelFailures(t *testing.T) {
	cases := []struct {
		name   string
		mock   *test.VisionProviderMock
		detail string
	}{
		{"malformed", &test.VisionProviderMock{Reply: "Not JSON"}, "malformed JSON response"},
		{"missing field", &test.VisionProviderMock{Reply: `{"percentuale": 10, "motivazione": "x", "dettaglio_richiesto": ""}`}, "missing field: richiedi_altra_foto"},
		{"invalid field", &test.VisionProviderMock{Reply: `{"percentuale": 140, "motivazione": "x", "richiedi_altra_foto": false, "dettaglio_richiesto": ""}`}, "invalid field: percentuale"},
		{"remote error", &test.VisionProviderMock{Err: errors.New("401 unauthorized: bad key")}, "processing error"},
		{"timeout", &test.VisionProviderMock{Reply: "{}", Delay: 5 * time.Second}, "processing error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := setupTestServer(tc.mock, 50*time.Millisecond)

			rec := postAnalysis(e, models.ObjectAnalysisIn{Images: test.FakeImages(2)})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tc.detail, decodeDetail(t, rec))
			assert.NotContains(t, rec.Body.String(), "bad key")
		})
	}
}

func TestHealthz(t *testing.T) {
	e := setupTestServer(&test.VisionProviderMock{}, time.Second)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "mock", response.Provider)
	assert.Equal(t, "mock-vision", response.Model)
}

func TestUnknownRouteUsesDetailBody(t *testing.T) {
	e := setupTestServer(&test.VisionProviderMock{}, time.Second)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decodeDetail(t, rec))
}

func TestAnalysisErrorResponse(t *testing.T) {
	status, detail := analysisErrorResponse(&services.RemoteCallError{Provider: "azure", Err: services.ErrRemoteCallTimeout})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "processing error", detail)

	status, detail = analysisErrorResponse(services.ErrNoImages)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no images supplied", detail)
}
