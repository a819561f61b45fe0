package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/internal"
)

func TestRenderHTML(t *testing.T) {
	svc := NewReportService(internal.NewLogger(internal.LogLevelError))

	html := svc.RenderHTML("## Findings\n\nRevenue is **up**.\n\n- point one\n")
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "<strong>up</strong>")
	assert.Contains(t, html, "<li>point one</li>")
}

func TestRenderReportIncludesQuality(t *testing.T) {
	analysisSvc := NewAnalysisService(internal.NewLogger(internal.LogLevelError))
	ds := testDataset(t, 40)
	result, err := analysisSvc.Run(context.Background(), ds, AnalysisRequest{})
	require.NoError(t, err)

	svc := NewReportService(internal.NewLogger(internal.LogLevelError))
	report := svc.RenderReport(result)
	assert.Contains(t, report, result.Narrative)
	assert.Contains(t, report, "## Data Quality")
	assert.Contains(t, report, "Overall confidence:")
}
