package schema

// TrialIssue is one flagged anomaly for a specific trial.
type TrialIssue struct {
	// TrialID is copied verbatim from the row's trial_id column.
	// It is nil when the column is absent, which serializes to null.
	TrialID any `json:"trial_id"`

	// IssueType is the closed anomaly kind.
	IssueType IssueType `json:"issue_type"`

	// Severity is fixed per issue type, see GetSeverity.
	Severity Severity `json:"severity"`

	// Details is a short deterministic explanation string.
	Details string `json:"details"`

	// Hyperparams is the row restricted to non-bookkeeping columns,
	// captured at detection time.
	Hyperparams map[string]any `json:"hyperparams"`
}

// NewTrialIssue builds an issue for the given row with the severity
// mapped from the issue type.
func NewTrialIssue(row Row, issueType IssueType, details string) TrialIssue {
	return TrialIssue{
		TrialID:     row[TrialIDColumn],
		IssueType:   issueType,
		Severity:    GetSeverity(issueType),
		Details:     details,
		Hyperparams: row.Hyperparams(),
	}
}
