package insights

import (
	"fmt"
	"strings"

	"datastory/domain/analysis"
	"datastory/domain/dataset"
)

// maxNarrativeFindings caps the Key Findings section at the top non-info
// insights.
const maxNarrativeFindings = 3

// Narrative assembles the templated report document from the dataset, its
// statistics and the generated insights. The output is plain text with
// light markdown markers; downstream renderers strip or transform them.
func Narrative(ds *dataset.Dataset, summaries []analysis.StatSummary, generated []analysis.ActionableInsight) string {
	var b strings.Builder

	numericCount := 0
	categoricalCount := 0
	for _, s := range summaries {
		if s.IsNumeric {
			numericCount++
		} else {
			categoricalCount++
		}
	}

	fmt.Fprintf(&b, "## %s Overview\n\n", ds.Name)
	fmt.Fprintf(&b, "This dataset holds %d rows across %d columns (%d numeric, %d categorical).\n\n",
		ds.RowCount, len(ds.Columns), numericCount, categoricalCount)

	for _, s := range summaries {
		if !s.IsNumeric {
			continue
		}
		fmt.Fprintf(&b, "**%s** ranges from %.2f to %.2f with a mean of %.2f.", s.Column, s.Min, s.Max, s.Mean)
		if s.Std > 0.5*s.Mean {
			fmt.Fprintf(&b, " Values spread widely around that mean (std %.2f).", s.Std)
		}
		b.WriteString("\n")
	}
	for _, s := range summaries {
		if s.IsNumeric {
			continue
		}
		fmt.Fprintf(&b, "**%s** has %d unique values; the most common is %q.\n", s.Column, s.UniqueCount, s.Mode)
	}

	var findings []analysis.ActionableInsight
	for _, ins := range generated {
		if ins.Severity != analysis.SeverityInfo {
			findings = append(findings, ins)
		}
	}
	if len(findings) > maxNarrativeFindings {
		findings = findings[:maxNarrativeFindings]
	}
	if len(findings) > 0 {
		b.WriteString("\n## Key Findings\n\n")
		for _, f := range findings {
			fmt.Fprintf(&b, "- **%s**: %s\n", f.Title, f.Description)
		}
	}

	b.WriteString("\n## Recommendations\n\n")
	if numericCount >= 2 {
		b.WriteString("- Explore correlations between the numeric columns to find drivers.\n")
	}
	if categoricalCount >= 1 {
		b.WriteString("- Segment the numeric metrics by the categorical columns.\n")
	}
	b.WriteString("- Review data quality findings before acting on any single statistic.\n")

	return b.String()
}
