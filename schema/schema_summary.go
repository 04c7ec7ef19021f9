package schema

// RateBucket pairs a human-readable group label with the fraction of its
// trials that have at least one issue. Rates are always in [0, 1].
type RateBucket struct {
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// CorrelationEntry describes how issue rates vary across the values of one
// hyperparameter. Numeric columns carry quantile buckets, categorical
// columns carry exact-value groups. Both are sorted by rate descending.
type CorrelationEntry struct {
	Type    CorrelationKind `json:"type"`
	Buckets []RateBucket    `json:"buckets,omitempty"`
	Values  []RateBucket    `json:"values,omitempty"`
}

// SummaryMeta holds the aggregate counts of the analysis.
type SummaryMeta struct {
	// NumIssues is the total issue count. Trials may contribute more than one.
	NumIssues int `json:"num_issues"`

	// NumTrialsWithIssue counts distinct trial ids with at least one issue.
	NumTrialsWithIssue int `json:"num_trials_with_issue"`

	// CountsByType maps each issue type to its total count.
	CountsByType map[IssueType]int `json:"counts_by_type"`

	// SeverityCounts tallies severities across all issues.
	SeverityCounts map[Severity]int `json:"severity_counts"`
}

// StructuredSummary is the final output document consumed downstream.
type StructuredSummary struct {
	Meta SummaryMeta `json:"meta"`

	// IssuesByType keeps the first MaxExamplesPerType issues per type,
	// in detection order.
	IssuesByType map[IssueType][]TrialIssue `json:"issues_by_type"`

	// ParamCorrelations is passed through from the correlation analyzer.
	ParamCorrelations map[string]CorrelationEntry `json:"param_correlations"`
}

// SweepReport bundles every stage of one analysis invocation. It feeds the
// output writers and the MCP handlers.
type SweepReport struct {
	CSVPath      string                      `json:"csv_path"`
	NumTrials    int                         `json:"num_trials"`
	Issues       []TrialIssue                `json:"issues"`
	Correlations map[string]CorrelationEntry `json:"correlations"`
	Summary      *StructuredSummary          `json:"summary"`
}
