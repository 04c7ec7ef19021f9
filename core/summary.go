package core

import "github.com/huangsam/sweeplens/schema"

// MaxExamplesPerType caps how many example issues the summary keeps per
// issue type. Counts are always exact, only the examples are truncated.
const MaxExamplesPerType = 10

// BuildStructuredSummary aggregates detected issues and correlation
// results into the final summary document. Issues keep their detection
// order within each type.
func BuildStructuredSummary(issues []schema.TrialIssue, correlations map[string]schema.CorrelationEntry) *schema.StructuredSummary {
	meta := schema.SummaryMeta{
		NumIssues:      len(issues),
		CountsByType:   make(map[schema.IssueType]int),
		SeverityCounts: make(map[schema.Severity]int),
	}

	issuesByType := make(map[schema.IssueType][]schema.TrialIssue)
	trialIDs := make(map[any]struct{})
	for _, issue := range issues {
		meta.CountsByType[issue.IssueType]++
		meta.SeverityCounts[issue.Severity]++
		trialIDs[issue.TrialID] = struct{}{}
		if len(issuesByType[issue.IssueType]) < MaxExamplesPerType {
			issuesByType[issue.IssueType] = append(issuesByType[issue.IssueType], issue)
		}
	}
	meta.NumTrialsWithIssue = len(trialIDs)

	if correlations == nil {
		correlations = make(map[string]schema.CorrelationEntry)
	}
	return &schema.StructuredSummary{
		Meta:              meta,
		IssuesByType:      issuesByType,
		ParamCorrelations: correlations,
	}
}
