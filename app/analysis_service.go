package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"datastory/adapters/stats/describe"
	"datastory/adapters/stats/relate"
	"datastory/domain/analysis"
	"datastory/domain/core"
	"datastory/domain/dataset"
	"datastory/internal"
	"datastory/internal/charts"
	"datastory/internal/insights"
	"datastory/internal/quality"
)

// AnalysisService runs the full analysis pipeline over one dataset:
// per-column statistics, the correlation matrix, chart synthesis, insight
// generation, the narrative, and the quality report.
type AnalysisService struct {
	logger *internal.Logger
}

// AnalysisRequest selects what to analyze. An empty SelectedColumns means
// every column; AnalysisType steers chart synthesis.
type AnalysisRequest struct {
	SelectedColumns []string `json:"selectedColumns"`
	AnalysisType    string   `json:"analysisType"`
}

// AnalysisResult is the complete output of one run. It is derived state:
// recomputable from the dataset at any time, never persisted.
type AnalysisResult struct {
	DatasetID    core.DatasetID               `json:"datasetId"`
	DatasetName  string                       `json:"datasetName"`
	AnalysisType string                       `json:"analysisType"`
	Statistics   []analysis.StatSummary       `json:"statistics"`
	Correlations []analysis.CorrelationResult `json:"correlations"`
	Charts       []analysis.ChartConfig       `json:"charts"`
	Insights     []analysis.ActionableInsight `json:"insights"`
	Narrative    string                       `json:"narrative"`
	Quality      analysis.DataQualityReport   `json:"quality"`
	RuntimeMs    int64                        `json:"runtimeMs"`
}

func NewAnalysisService(logger *internal.Logger) *AnalysisService {
	return &AnalysisService{logger: logger}
}

// Run executes the pipeline. Column summaries fan out across workers; the
// result slice keeps the dataset's column order regardless of completion
// order.
func (s *AnalysisService) Run(ctx context.Context, ds *dataset.Dataset, req AnalysisRequest) (*AnalysisResult, error) {
	if ds == nil || ds.RowCount == 0 {
		return nil, core.ErrEmptyDataset
	}
	startTime := time.Now()

	selected := req.SelectedColumns
	if len(selected) == 0 {
		selected = ds.ColumnNames()
	}
	descriptors := make([]dataset.ColumnDescriptor, len(selected))
	for i, name := range selected {
		desc, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
		}
		descriptors[i] = desc
	}

	summaries := make([]analysis.StatSummary, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, desc := range descriptors {
		i, desc := i, desc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summaries[i] = describe.SummarizeColumn(ds, desc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summarize columns: %w", err)
	}

	correlations := relate.Matrix(ds)
	chartConfigs := charts.Synthesize(ds, selected, req.AnalysisType)
	generated := insights.Generate(ds, summaries)
	narrative := insights.Narrative(ds, summaries, generated)
	report := quality.Validate(ds, summaries, chartConfigs, correlations)

	runtimeMs := time.Since(startTime).Milliseconds()
	s.logger.Info("[analysis] %s: %d columns, %d correlations, %d charts, %d insights in %dms",
		ds.Name, len(summaries), len(correlations), len(chartConfigs), len(generated), runtimeMs)

	return &AnalysisResult{
		DatasetID:    ds.ID,
		DatasetName:  ds.Name,
		AnalysisType: req.AnalysisType,
		Statistics:   summaries,
		Correlations: correlations,
		Charts:       chartConfigs,
		Insights:     generated,
		Narrative:    narrative,
		Quality:      report,
		RuntimeMs:    runtimeMs,
	}, nil
}

// Summary compacts a result into the wire contract for the prediction
// collaborator.
func (s *AnalysisService) Summary(result *AnalysisResult) analysis.DataSummary {
	columns := make([]analysis.ColumnSummary, 0, len(result.Statistics))
	for _, stat := range result.Statistics {
		col := analysis.ColumnSummary{
			Name:        stat.Column,
			Type:        string(stat.Type),
			UniqueCount: stat.UniqueCount,
		}
		if stat.IsNumeric {
			col.Mean = stat.Mean
			col.Min = stat.Min
			col.Max = stat.Max
			col.Std = stat.Std
			col.SkewShape = stat.SkewShape
		}
		columns = append(columns, col)
	}

	correlations := make([]analysis.CorrelationSummary, 0, len(result.Correlations))
	for _, c := range result.Correlations {
		correlations = append(correlations, analysis.CorrelationSummary{
			XColumn:  c.XColumn,
			YColumn:  c.YColumn,
			Strength: c.Strength,
			Value:    c.Correlation,
		})
	}

	return analysis.DataSummary{
		DatasetName:  result.DatasetName,
		RowCount:     rowCountOf(result),
		Columns:      columns,
		Correlations: correlations,
		AnalysisType: result.AnalysisType,
	}
}

func rowCountOf(result *AnalysisResult) int {
	// Statistics carry the non-null count per column; the dataset row count
	// is the largest observed count plus nulls. The first summary's
	// Count+NullCount is exact because every column spans every row.
	if len(result.Statistics) == 0 {
		return 0
	}
	first := result.Statistics[0]
	return first.Count + first.NullCount
}
