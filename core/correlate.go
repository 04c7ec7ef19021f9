package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/huangsam/sweeplens/schema"
)

// maxQuantileBuckets caps how many quantile buckets a numeric column is
// split into. Columns with fewer distinct values get fewer buckets.
const maxQuantileBuckets = 5

// errDegenerateBins signals that quantile binning collapsed to fewer than
// two usable edges, e.g. when one value dominates the column.
var errDegenerateBins = errors.New("not enough distinct bin edges")

// observation is one usable cell of a hyperparameter column, tied back to
// its row index so the issue flag can be looked up.
type observation struct {
	idx int
	val any
}

// AnalyzeParamCorrelations computes, for each hyperparameter column, how
// the issue rate varies across its values. Numeric columns are split into
// quantile buckets, categorical columns into exact-value groups. paramCols
// restricts the analysis to the named columns; when empty, every
// non-bookkeeping column is analyzed. The caller's table is never mutated.
func AnalyzeParamCorrelations(tbl *schema.Table, issues []schema.TrialIssue, paramCols []string) map[string]schema.CorrelationEntry {
	out := make(map[string]schema.CorrelationEntry)
	if len(tbl.Rows) == 0 || len(issues) == 0 {
		return out
	}

	issueIDs := make(map[any]struct{})
	for _, issue := range issues {
		issueIDs[issue.TrialID] = struct{}{}
	}

	// Issue membership lives in a local slice so the table stays untouched
	hasIssue := make([]bool, len(tbl.Rows))
	for i, row := range tbl.Rows {
		if _, ok := issueIDs[row[schema.TrialIDColumn]]; ok {
			hasIssue[i] = true
		}
	}

	cols := paramCols
	if len(cols) == 0 {
		cols = tbl.HyperparamColumns()
	}
	for _, col := range cols {
		if !tbl.HasColumn(col) {
			continue
		}
		if entry, ok := analyzeColumn(tbl, col, hasIssue); ok {
			out[col] = entry
		}
	}
	return out
}

// analyzeColumn groups one column and computes per-group issue rates. The
// second return is false when the column carries no signal: all cells
// missing, or at most one distinct value.
func analyzeColumn(tbl *schema.Table, col string, hasIssue []bool) (schema.CorrelationEntry, bool) {
	var obs []observation
	numeric := true
	for i, row := range tbl.Rows {
		v := row[col]
		if schema.IsMissing(v) {
			continue
		}
		if f, ok := schema.AsFloat(v); ok {
			// NaN cells carry no group, same as missing
			if math.IsNaN(f) {
				continue
			}
		} else {
			numeric = false
		}
		obs = append(obs, observation{idx: i, val: v})
	}
	if len(obs) == 0 {
		return schema.CorrelationEntry{}, false
	}

	distinct := make(map[string]struct{})
	for _, o := range obs {
		distinct[schema.FormatValue(o.val)] = struct{}{}
	}
	if len(distinct) <= 1 {
		return schema.CorrelationEntry{}, false
	}

	if numeric {
		buckets, err := numericBuckets(obs, hasIssue, len(distinct))
		if err == nil {
			return schema.CorrelationEntry{Type: schema.NumericCorrelation, Buckets: buckets}, true
		}
		// Binning collapsed, fall back to exact-value groups
	}
	return schema.CorrelationEntry{Type: schema.CategoricalCorrelation, Values: categoricalGroups(obs, hasIssue)}, true
}

// numericBuckets splits the observed values into quantile buckets and
// computes the issue rate within each. Duplicate edges are dropped, so
// skewed columns may end up with fewer buckets than requested.
func numericBuckets(obs []observation, hasIssue []bool, nunique int) ([]schema.RateBucket, error) {
	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i], _ = schema.AsFloat(o.val)
	}

	q := min(maxQuantileBuckets, nunique)
	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		e := quantile(values, float64(i)/float64(q))
		if len(edges) == 0 || e != edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	if len(edges) < 2 {
		return nil, errDegenerateBins
	}

	type bucketAgg struct {
		total   int
		flagged int
	}
	aggs := make([]bucketAgg, len(edges)-1)
	for i, o := range obs {
		b := bucketIndex(edges, values[i])
		aggs[b].total++
		if hasIssue[o.idx] {
			aggs[b].flagged++
		}
	}

	var buckets []schema.RateBucket
	for i, agg := range aggs {
		if agg.total == 0 {
			continue
		}
		buckets = append(buckets, schema.RateBucket{
			Label: intervalLabel(edges, i),
			Rate:  float64(agg.flagged) / float64(agg.total),
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Rate > buckets[j].Rate })
	return buckets, nil
}

// bucketIndex places v into a right-closed interval. The first interval
// also includes its left edge, so the column minimum is never orphaned.
func bucketIndex(edges []float64, v float64) int {
	for i := 1; i < len(edges)-1; i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	return len(edges) - 2
}

// intervalLabel renders the i-th interval of the edge list.
func intervalLabel(edges []float64, i int) string {
	lo := formatEdge(edges[i])
	hi := formatEdge(edges[i+1])
	if i == 0 {
		return fmt.Sprintf("[%s, %s]", lo, hi)
	}
	return fmt.Sprintf("(%s, %s]", lo, hi)
}

func formatEdge(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}

// categoricalGroups computes the issue rate for each exact value of the
// column. Groups keep first-seen order among equal rates.
func categoricalGroups(obs []observation, hasIssue []bool) []schema.RateBucket {
	type groupAgg struct {
		total   int
		flagged int
	}
	var order []string
	aggs := make(map[string]*groupAgg)
	for _, o := range obs {
		label := schema.FormatValue(o.val)
		agg, ok := aggs[label]
		if !ok {
			agg = &groupAgg{}
			aggs[label] = agg
			order = append(order, label)
		}
		agg.total++
		if hasIssue[o.idx] {
			agg.flagged++
		}
	}

	groups := make([]schema.RateBucket, 0, len(order))
	for _, label := range order {
		agg := aggs[label]
		groups = append(groups, schema.RateBucket{
			Label: label,
			Rate:  float64(agg.flagged) / float64(agg.total),
		})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Rate > groups[j].Rate })
	return groups
}
