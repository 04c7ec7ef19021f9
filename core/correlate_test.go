package core

import (
	"testing"

	"github.com/huangsam/sweeplens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{"median odd", []float64{5, 1, 3}, 0.5, 3},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"minimum", []float64{2, 1, 3}, 0, 1},
		{"maximum", []float64{2, 1, 3}, 1, 3},
		{"interpolated", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"single value", []float64{7}, 0.1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, quantile(tt.values, tt.q), 1e-9)
		})
	}
}

func TestAnalyzeParamCorrelationsEmptyInputs(t *testing.T) {
	tbl := makeTable([]string{"trial_id", "lr"},
		schema.Row{"trial_id": int64(1), "lr": 0.01},
	)
	issues := []schema.TrialIssue{{TrialID: int64(1)}}

	empty := AnalyzeParamCorrelations(&schema.Table{}, issues, nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	noIssues := AnalyzeParamCorrelations(tbl, nil, nil)
	assert.NotNil(t, noIssues)
	assert.Empty(t, noIssues)
}

func TestAnalyzeParamCorrelationsCategorical(t *testing.T) {
	cols := []string{"trial_id", "optimizer"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "optimizer": "sgd"},
		schema.Row{"trial_id": int64(2), "optimizer": "sgd"},
		schema.Row{"trial_id": int64(3), "optimizer": "adam"},
		schema.Row{"trial_id": int64(4), "optimizer": "adam"},
	)
	issues := []schema.TrialIssue{
		{TrialID: int64(1)},
		{TrialID: int64(3)},
		{TrialID: int64(4)},
	}

	out := AnalyzeParamCorrelations(tbl, issues, nil)

	require.Contains(t, out, "optimizer")
	entry := out["optimizer"]
	assert.Equal(t, schema.CategoricalCorrelation, entry.Type)
	require.Len(t, entry.Values, 2)
	assert.Equal(t, schema.RateBucket{Label: "adam", Rate: 1.0}, entry.Values[0])
	assert.Equal(t, schema.RateBucket{Label: "sgd", Rate: 0.5}, entry.Values[1])
}

func TestAnalyzeParamCorrelationsNumeric(t *testing.T) {
	cols := []string{"trial_id", "lr"}
	lowBand := []float64{0.001, 0.002, 0.003, 0.004, 0.005}
	highBand := []float64{0.1, 0.2, 0.3, 0.4, 0.5}

	var rows []schema.Row
	var issues []schema.TrialIssue
	id := int64(0)
	for _, lr := range lowBand {
		id++
		rows = append(rows, schema.Row{"trial_id": id, "lr": lr})
	}
	for _, lr := range highBand {
		id++
		rows = append(rows, schema.Row{"trial_id": id, "lr": lr})
		issues = append(issues, schema.TrialIssue{TrialID: id})
	}
	tbl := makeTable(cols, rows...)

	out := AnalyzeParamCorrelations(tbl, issues, nil)

	require.Contains(t, out, "lr")
	entry := out["lr"]
	assert.Equal(t, schema.NumericCorrelation, entry.Type)
	require.NotEmpty(t, entry.Buckets)
	assert.LessOrEqual(t, len(entry.Buckets), maxQuantileBuckets)

	// High learning rates concentrate the issues
	assert.Equal(t, 1.0, entry.Buckets[0].Rate)
	for i, b := range entry.Buckets {
		assert.GreaterOrEqual(t, b.Rate, 0.0)
		assert.LessOrEqual(t, b.Rate, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, b.Rate, entry.Buckets[i-1].Rate)
		}
	}
}

func TestAnalyzeParamCorrelationsSkipsDegenerateColumns(t *testing.T) {
	cols := []string{"trial_id", "constant", "empty", "lr"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "constant": "x", "empty": nil, "lr": 0.01},
		schema.Row{"trial_id": int64(2), "constant": "x", "empty": nil, "lr": 0.1},
	)
	issues := []schema.TrialIssue{{TrialID: int64(2)}}

	out := AnalyzeParamCorrelations(tbl, issues, nil)

	assert.NotContains(t, out, "constant")
	assert.NotContains(t, out, "empty")
	assert.Contains(t, out, "lr")
}

func TestAnalyzeParamCorrelationsExplicitParams(t *testing.T) {
	cols := []string{"trial_id", "lr", "batch_size"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "lr": 0.01, "batch_size": int64(32)},
		schema.Row{"trial_id": int64(2), "lr": 0.1, "batch_size": int64(64)},
	)
	issues := []schema.TrialIssue{{TrialID: int64(2)}}

	out := AnalyzeParamCorrelations(tbl, issues, []string{"lr", "momentum"})

	assert.Contains(t, out, "lr")
	assert.NotContains(t, out, "batch_size")
	assert.NotContains(t, out, "momentum")
}

func TestAnalyzeParamCorrelationsDoesNotMutateTable(t *testing.T) {
	cols := []string{"trial_id", "lr"}
	tbl := makeTable(cols,
		schema.Row{"trial_id": int64(1), "lr": 0.01},
		schema.Row{"trial_id": int64(2), "lr": 0.1},
	)
	issues := []schema.TrialIssue{{TrialID: int64(2)}}

	AnalyzeParamCorrelations(tbl, issues, nil)

	assert.Equal(t, cols, tbl.Columns)
	for _, row := range tbl.Rows {
		assert.Len(t, row, 2)
	}
}
