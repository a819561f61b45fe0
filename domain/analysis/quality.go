package analysis

// ValidationResult is one sub-report of the data quality validator.
// Confidence is a 0-100 score; findings are data, not control flow.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Confidence      float64  `json:"confidence"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// DataQualityReport aggregates the validator's sub-reports plus coarse
// completeness/accuracy/consistency percentages. Overall confidence is the
// minimum across sub-reports: a single weak link caps the score.
type DataQualityReport struct {
	Overall        ValidationResult `json:"overall"`
	Statistics     ValidationResult `json:"statistics"`
	Visualizations ValidationResult `json:"visualizations"`
	Correlations   ValidationResult `json:"correlations"`

	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
	Consistency  float64 `json:"consistency"`
}
