package app

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datastory/internal"
)

// ReportService renders analysis narratives for delivery: raw markdown for
// API clients, HTML for the browser surface.
type ReportService struct {
	logger *internal.Logger
}

func NewReportService(logger *internal.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// RenderHTML converts the narrative markdown to an HTML fragment. The
// parser is rebuilt per call; gomarkdown parsers are single-use.
func (s *ReportService) RenderHTML(narrative string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(narrative))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})
	return string(markdown.Render(doc, renderer))
}

// RenderReport wraps a result's narrative and headline numbers into one
// markdown document for export.
func (s *ReportService) RenderReport(result *AnalysisResult) string {
	var b strings.Builder
	b.WriteString(result.Narrative)
	b.WriteString("\n\n## Data Quality\n\n")
	b.WriteString(fmt.Sprintf("Overall confidence: %.0f/100 (statistics %.0f, visualizations %.0f, correlations %.0f).\n",
		result.Quality.Overall.Confidence,
		result.Quality.Statistics.Confidence,
		result.Quality.Visualizations.Confidence,
		result.Quality.Correlations.Confidence))
	b.WriteString(fmt.Sprintf("Completeness %.1f%%, accuracy %.1f%%, consistency %.1f%%.\n",
		result.Quality.Completeness, result.Quality.Accuracy, result.Quality.Consistency))
	if len(result.Quality.Overall.Recommendations) > 0 {
		b.WriteString("\n")
		for _, rec := range result.Quality.Overall.Recommendations {
			b.WriteString("- " + rec + "\n")
		}
	}
	return b.String()
}
