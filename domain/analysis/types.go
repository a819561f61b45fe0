package analysis

import "datastory/domain/dataset"

// SkewShape classifies distribution asymmetry at the 0.5 magnitude threshold.
type SkewShape string

const (
	SkewSymmetric SkewShape = "symmetric"
	SkewRight     SkewShape = "right-skewed"
	SkewLeft      SkewShape = "left-skewed"
)

// ClassifySkewness maps a skewness coefficient to its shape.
// The boundary is inclusive: exactly 0.5 is right-skewed.
func ClassifySkewness(skew float64) SkewShape {
	switch {
	case skew >= 0.5:
		return SkewRight
	case skew <= -0.5:
		return SkewLeft
	default:
		return SkewSymmetric
	}
}

// StatSummary holds per-column descriptive statistics. Numeric columns carry
// the full set; categorical columns carry mode and counts only. Display
// values are rounded to 2 decimals.
type StatSummary struct {
	Column      string             `json:"column"`
	Type        dataset.ColumnType `json:"type"`
	IsNumeric   bool               `json:"isNumeric"`
	Count       int                `json:"count"`
	NullCount   int                `json:"nullCount"`
	UniqueCount int                `json:"uniqueCount"`

	Mean     float64 `json:"mean,omitempty"`
	Median   float64 `json:"median,omitempty"`
	Mode     string  `json:"mode,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Std      float64 `json:"std,omitempty"`
	Variance float64 `json:"variance,omitempty"`

	Skewness  float64   `json:"skewness,omitempty"`
	SkewShape SkewShape `json:"skewnessType,omitempty"`
	Kurtosis  float64   `json:"kurtosis,omitempty"`
}

// Strength buckets |r| into a qualitative label.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
	StrengthNone     Strength = "none"
)

// CorrelationResult pairs two numeric columns with their Pearson r.
type CorrelationResult struct {
	XColumn        string   `json:"xColumn"`
	YColumn        string   `json:"yColumn"`
	Correlation    float64  `json:"correlation"`
	Interpretation string   `json:"interpretation"`
	Strength       Strength `json:"strength"`
}

// RegressionResult is a simple least-squares fit of y on x.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
	Equation  string  `json:"equation"`
}

// InsightType tags the rule family that produced an insight.
type InsightType string

const (
	InsightPattern        InsightType = "pattern"
	InsightOutlier        InsightType = "outlier"
	InsightCorrelation    InsightType = "correlation"
	InsightTrend          InsightType = "trend"
	InsightRecommendation InsightType = "recommendation"
)

// Severity grades an insight for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Insight is one finding from the rule engine. IDs are deterministic
// (rule name + column), so re-running on unchanged statistics yields an
// identical batch.
type Insight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Severity       Severity    `json:"severity"`
	RelatedColumns []string    `json:"relatedColumns,omitempty"`
}

// ActionableInsight augments an Insight with narrative fields for the
// storytelling surface. Impact is a rough percentage estimate.
type ActionableInsight struct {
	Insight
	WhyItMatters string `json:"whyItMatters"`
	Action       string `json:"action"`
	Impact       int    `json:"impact"`
}
