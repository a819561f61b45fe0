package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/internal"
	"datastory/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
		// No AI key: predictions run in fallback mode.
	}
	app, err := NewApp(cfg, internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)
	return app
}

func uploadCSV(t *testing.T, app *App, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("dataset", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func salesCSV(n int) string {
	var b bytes.Buffer
	b.WriteString("revenue,spend,region\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d,%d,region-%d\n", i*10, i*4+2, i%3)
	}
	return b.String()
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestUploadAndFetchAnalysis(t *testing.T) {
	app := newTestApp(t)

	rec := uploadCSV(t, app, "sales.csv", salesCSV(50))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var uploaded struct {
		DatasetName string `json:"datasetName"`
		Statistics  []any  `json:"statistics"`
		Narrative   string `json:"narrative"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, "sales.csv", uploaded.DatasetName)
	assert.Len(t, uploaded.Statistics, 3)
	assert.Contains(t, uploaded.Narrative, "Overview")

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/statistics", nil)
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "revenue")
}

func TestAnalysisBeforeUpload(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{
		"/api/analysis",
		"/api/analysis/statistics",
		"/api/analysis/charts",
		"/api/analysis/insights",
		"/api/analysis/correlations",
		"/api/analysis/quality",
		"/api/analysis/narrative",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestUploadUnsupportedFile(t *testing.T) {
	app := newTestApp(t)
	rec := uploadCSV(t, app, "image.png", "not a table")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadReplacesSession(t *testing.T) {
	app := newTestApp(t)

	rec := uploadCSV(t, app, "first.csv", salesCSV(30))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = uploadCSV(t, app, "second.csv", "a,b\n1,2\n3,4\n")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	resp := httptest.NewRecorder()
	app.Router().ServeHTTP(resp, req)

	var result struct {
		DatasetName string `json:"datasetName"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "second.csv", result.DatasetName)
}

func TestNarrativeFormats(t *testing.T) {
	app := newTestApp(t)
	rec := uploadCSV(t, app, "sales.csv", salesCSV(40))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/narrative", nil)
	resp := httptest.NewRecorder()
	app.Router().ServeHTTP(resp, req)
	assert.Equal(t, "text/markdown", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "## sales.csv Overview")

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/narrative?format=html", nil)
	resp = httptest.NewRecorder()
	app.Router().ServeHTTP(resp, req)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "<h2")
}

func TestPredictionsFallbackWithoutCollaborator(t *testing.T) {
	app := newTestApp(t)
	rec := uploadCSV(t, app, "sales.csv", salesCSV(40))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/predictions", nil)
	resp := httptest.NewRecorder()
	app.Router().ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Degraded bool `json:"degraded"`
		Report   struct {
			Predictions      []string `json:"predictions"`
			OpportunityScore int      `json:"opportunityScore"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Degraded)
	assert.NotEmpty(t, payload.Report.Predictions)
	assert.Equal(t, 50, payload.Report.OpportunityScore)
}

func TestIndexPage(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No dataset loaded")

	uploadCSV(t, app, "sales.csv", salesCSV(30))
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "sales.csv")
}
