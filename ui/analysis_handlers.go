package ui

import (
	"fmt"
	"net/http"
	"strings"

	"datastory/adapters/llm"
	"datastory/adapters/tabular"
	appsvc "datastory/app"
	"datastory/domain/core"
)

// handleDatasetUpload accepts a multipart upload under the "dataset" field,
// parses it, runs the full pipeline, and installs the result as the
// current session.
func (a *App) handleDatasetUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(a.config.Upload.MaxBytes); err != nil {
		a.logger.Warn("[ui] upload rejected: %v", err)
		a.writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	reader, err := tabular.NewReader(header.Filename)
	if err != nil {
		a.writeError(w, errorStatus(err), fmt.Sprintf("unsupported file %q", header.Filename))
		return
	}

	table, err := reader.Read(file)
	if err != nil {
		a.logger.Warn("[ui] parse %s failed: %v", header.Filename, err)
		a.writeError(w, errorStatus(core.NewParseError(header.Filename, err)), "could not parse file")
		return
	}

	ds, err := tabular.BuildDataset(table, header.Filename)
	if err != nil {
		a.writeError(w, errorStatus(err), err.Error())
		return
	}

	req := appsvc.AnalysisRequest{
		AnalysisType: r.FormValue("analysisType"),
	}
	if cols := r.FormValue("columns"); cols != "" {
		for _, c := range strings.Split(cols, ",") {
			if trimmed := strings.TrimSpace(c); trimmed != "" {
				req.SelectedColumns = append(req.SelectedColumns, trimmed)
			}
		}
	}

	result, err := a.analysis.Run(r.Context(), ds, req)
	if err != nil {
		a.logger.Error("[ui] analysis of %s failed: %v", ds.Name, err)
		a.writeError(w, errorStatus(err), err.Error())
		return
	}

	a.session.Replace(ds, result)
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleStatistics(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"statistics": result.Statistics})
}

func (a *App) handleCharts(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"charts": result.Charts})
}

func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"insights": result.Insights})
}

func (a *App) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"correlations": result.Correlations})
}

func (a *App) handleQuality(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}
	a.writeJSON(w, http.StatusOK, result.Quality)
}

// handleNarrative serves markdown by default, HTML with ?format=html.
func (a *App) handleNarrative(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}

	report := a.reports.RenderReport(result)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, a.reports.RenderHTML(report))
		return
	}
	w.Header().Set("Content-Type", "text/markdown")
	fmt.Fprint(w, report)
}

// handlePredictions asks the collaborator for a forward-looking report.
// Failures degrade to the fallback report with degraded=true rather than
// an error status.
func (a *App) handlePredictions(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.session.Current()
	if !ok {
		a.writeError(w, http.StatusNotFound, "no dataset uploaded yet")
		return
	}

	summary := a.analysis.Summary(result)
	if a.predictor == nil {
		a.writeJSON(w, http.StatusOK, map[string]any{
			"report":   llm.FallbackReport(summary),
			"degraded": true,
			"reason":   "no prediction collaborator configured",
		})
		return
	}

	report, err := a.predictor.Predict(r.Context(), summary)
	if err != nil {
		a.writeJSON(w, http.StatusOK, map[string]any{
			"report":   report,
			"degraded": true,
			"reason":   err.Error(),
		})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"report":   report,
		"degraded": false,
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	type indexData struct {
		HasDataset  bool
		DatasetName string
		RowCount    int
		ColumnCount int
		Confidence  float64
	}

	data := indexData{}
	if ds, result, ok := a.session.Current(); ok {
		data.HasDataset = true
		data.DatasetName = ds.Name
		data.RowCount = ds.RowCount
		data.ColumnCount = len(ds.Columns)
		data.Confidence = result.Quality.Overall.Confidence
	}
	a.renderTemplate(w, "index.html", data)
}
