package analysis

// ChartType selects the renderer-side chart family.
type ChartType string

const (
	ChartBar         ChartType = "bar"
	ChartLine        ChartType = "line"
	ChartArea        ChartType = "area"
	ChartPie         ChartType = "pie"
	ChartScatter     ChartType = "scatter"
	ChartHistogram   ChartType = "histogram"
	ChartCorrelation ChartType = "correlation"
)

// ChartPoint is one chart-ready datum. Name/Value serve bar, pie, area and
// histogram charts; X/Y/RegressionY serve scatter and correlation charts.
type ChartPoint struct {
	Name        string  `json:"name,omitempty"`
	Value       float64 `json:"value,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	RegressionY float64 `json:"regressionY,omitempty"`
}

// ChartConfig is a renderer-agnostic chart description. Read-only once
// built; rendering, palettes and interactivity are the renderer's concern.
type ChartConfig struct {
	Type        ChartType          `json:"type"`
	Title       string             `json:"title"`
	XAxis       string             `json:"xAxis,omitempty"`
	YAxis       string             `json:"yAxis,omitempty"`
	Data        []ChartPoint       `json:"data"`
	Regression  *RegressionResult  `json:"regression,omitempty"`
	Correlation *CorrelationResult `json:"correlation,omitempty"`
	Explanation string             `json:"explanation,omitempty"`
}
