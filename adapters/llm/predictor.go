package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"datastory/domain/analysis"
	"datastory/domain/core"
)

const predictMaxTokens = 1200

// Predictor turns a DataSummary into a PredictionReport via the chat
// endpoint. It never fails hard: a non-nil error marks the returned report
// as the degraded fallback, and the report is always renderable.
type Predictor struct {
	client Client
	logger Logger
}

// Logger is the narrow logging surface the predictor needs.
type Logger interface {
	Printf(format string, v ...any)
}

func NewPredictor(client Client, logger Logger) *Predictor {
	return &Predictor{client: client, logger: logger}
}

func (p *Predictor) Predict(ctx context.Context, summary analysis.DataSummary) (analysis.PredictionReport, error) {
	prompt, err := buildPrompt(summary)
	if err != nil {
		return FallbackReport(summary), fmt.Errorf("%w: %v", core.ErrPredictionFailed, err)
	}

	raw, err := p.client.ChatCompletion(ctx, prompt, predictMaxTokens)
	if err != nil {
		p.logger.Printf("[llm] completion failed for %s: %v", summary.DatasetName, err)
		return FallbackReport(summary), fmt.Errorf("%w: %v", core.ErrPredictionFailed, err)
	}

	report, err := decodeReport(raw)
	if err != nil {
		p.logger.Printf("[llm] malformed prediction payload for %s: %v", summary.DatasetName, err)
		return FallbackReport(summary), fmt.Errorf("%w: %v", core.ErrPredictionMalformed, err)
	}
	return report, nil
}

func buildPrompt(summary analysis.DataSummary) (string, error) {
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	var b strings.Builder
	b.WriteString("Given the following dataset analysis, produce a JSON object with exactly these fields:\n")
	b.WriteString(`{"predictions": [string], "recommendations": [string], "riskFactors": [string], "opportunityScore": number 1-100, "overallOutlook": string}`)
	b.WriteString("\n\nGround every statement in the numbers below. No prose outside the JSON object.\n\n")
	b.Write(payload)
	return b.String(), nil
}

// decodeReport tolerates markdown code fences around the JSON object but
// nothing else.
func decodeReport(raw string) (analysis.PredictionReport, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var report analysis.PredictionReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return analysis.PredictionReport{}, fmt.Errorf("unmarshal report: %w", err)
	}
	if len(report.Predictions) == 0 {
		return analysis.PredictionReport{}, fmt.Errorf("report carries no predictions")
	}
	report.OpportunityScore = int(core.Clamp(float64(report.OpportunityScore), 1, 100))
	return report, nil
}

// FallbackReport is the deterministic stand-in used whenever the model is
// unreachable or returns garbage. It is built purely from the summary.
func FallbackReport(summary analysis.DataSummary) analysis.PredictionReport {
	subject := summary.DatasetName
	if subject == "" {
		subject = "this dataset"
	}

	prediction := fmt.Sprintf("Patterns in %s (%d rows, %d columns) are likely to persist in the near term.",
		subject, summary.RowCount, len(summary.Columns))
	recommendation := "Re-run the analysis once more data is available to firm up these trends."
	if len(summary.Correlations) > 0 {
		top := summary.Correlations[0]
		recommendation = fmt.Sprintf("Monitor the %s relationship between %s and %s; it is the strongest signal in the data.",
			top.Strength, top.XColumn, top.YColumn)
	}

	return analysis.PredictionReport{
		Predictions:      []string{prediction},
		Recommendations:  []string{recommendation},
		RiskFactors:      []string{"Automated forecast unavailable; this outlook is derived from descriptive statistics only."},
		OpportunityScore: 50,
		OverallOutlook:   fmt.Sprintf("Neutral outlook for %s pending a full predictive pass.", subject),
	}
}
