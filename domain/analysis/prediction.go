package analysis

// ColumnSummary is the compact per-column slice of a DataSummary sent to the
// prediction collaborator.
type ColumnSummary struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Mean        float64   `json:"mean,omitempty"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Std         float64   `json:"std,omitempty"`
	SkewShape   SkewShape `json:"skewnessType,omitempty"`
	UniqueCount int       `json:"uniqueCount"`
}

// CorrelationSummary is the compact correlation slice of a DataSummary.
type CorrelationSummary struct {
	XColumn  string   `json:"xColumn"`
	YColumn  string   `json:"yColumn"`
	Strength Strength `json:"strength"`
	Value    float64  `json:"value"`
}

// DataSummary is the wire contract serialized to the prediction
// collaborator. It is derived, never stored.
type DataSummary struct {
	DatasetName  string               `json:"datasetName"`
	RowCount     int                  `json:"rowCount"`
	Columns      []ColumnSummary      `json:"columns"`
	Correlations []CorrelationSummary `json:"correlations"`
	AnalysisType string               `json:"analysisType"`
}

// PredictionReport is the payload expected back from the collaborator.
// OpportunityScore is clamped to 1-100 on decode.
type PredictionReport struct {
	Predictions      []string `json:"predictions"`
	Recommendations  []string `json:"recommendations"`
	RiskFactors      []string `json:"riskFactors"`
	OpportunityScore int      `json:"opportunityScore"`
	OverallOutlook   string   `json:"overallOutlook"`
}
