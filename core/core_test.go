package core

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader serves a fixed table without touching the filesystem.
type fakeLoader struct {
	tbl *schema.Table
	err error
}

var _ contract.TableLoader = (*fakeLoader)(nil)

func (l *fakeLoader) Load(_ context.Context, _ string) (*schema.Table, error) {
	return l.tbl, l.err
}

// memStore records tracking calls for assertions.
type memStore struct {
	begun     int
	ended     int
	status    string
	numTrials int
	summary   *schema.StructuredSummary
}

var _ contract.HistoryStore = (*memStore)(nil)

func (s *memStore) BeginRun(_ time.Time, _ string) (int64, error) {
	s.begun++
	return 1, nil
}

func (s *memStore) EndRun(_ int64, _ time.Time, status string, numTrials int, summary *schema.StructuredSummary) error {
	s.ended++
	s.status = status
	s.numTrials = numTrials
	s.summary = summary
	return nil
}

func (s *memStore) GetStatus() (schema.HistoryStatus, error) { return schema.HistoryStatus{}, nil }
func (s *memStore) GetAllRuns() ([]schema.RunRecord, error)  { return nil, nil }
func (s *memStore) Close() error                             { return nil }

// memManager hands out a single store.
type memManager struct {
	store contract.HistoryStore
}

var _ contract.HistoryManager = (*memManager)(nil)

func (m *memManager) GetHistoryStore() contract.HistoryStore { return m.store }

func testConfig() *contract.Config {
	return &contract.Config{
		CSVPath:          "results.csv",
		CompletedStatus:  contract.DefaultCompletedStatus,
		TrainLossCol:     schema.TrainLossColumn,
		ValLossCol:       schema.ValLossColumn,
		EpochCol:         schema.EpochsColumn,
		RuntimeCol:       schema.RuntimeSecColumn,
		OverfitRatio:     contract.DefaultOverfitRatio,
		MinEpochs:        contract.DefaultMinEpochs,
		ShortRunQuantile: contract.DefaultShortRunQuantile,
	}
}

// sweepTable builds a ten-trial table with two failed trials and one
// NaN metric. The loss ratios stay under the overfit threshold and no
// duration columns exist, so only three issues should come out.
func sweepTable() *schema.Table {
	cols := []string{"trial_id", "status", "train_loss", "val_loss", "lr"}
	var rows []schema.Row
	for i := 1; i <= 10; i++ {
		row := schema.Row{
			"trial_id":   int64(i),
			"status":     "completed",
			"train_loss": 0.5,
			"val_loss":   0.6,
			"lr":         0.001 * float64(i),
		}
		switch i {
		case 3:
			row["val_loss"] = math.NaN()
		case 5, 8:
			row["status"] = "failed"
		}
		rows = append(rows, row)
	}
	return &schema.Table{Columns: cols, Rows: rows}
}

func TestGetSweepReport(t *testing.T) {
	cfg := testConfig()
	loader := &fakeLoader{tbl: sweepTable()}

	report, err := GetSweepReport(context.Background(), cfg, loader)

	require.NoError(t, err)
	assert.Equal(t, 10, report.NumTrials)
	require.Len(t, report.Issues, 3)
	assert.Equal(t, schema.NaNOrInfMetric, report.Issues[0].IssueType)
	assert.Equal(t, int64(3), report.Issues[0].TrialID)
	assert.Equal(t, schema.FailedTrial, report.Issues[1].IssueType)
	assert.Equal(t, int64(5), report.Issues[1].TrialID)
	assert.Equal(t, schema.FailedTrial, report.Issues[2].IssueType)
	assert.Equal(t, int64(8), report.Issues[2].TrialID)

	assert.Equal(t, 3, report.Summary.Meta.NumIssues)
	assert.Equal(t, 3, report.Summary.Meta.NumTrialsWithIssue)
	assert.Equal(t, 1, report.Summary.Meta.CountsByType[schema.NaNOrInfMetric])
	assert.Equal(t, 2, report.Summary.Meta.CountsByType[schema.FailedTrial])
	assert.Equal(t, 3, report.Summary.Meta.SeverityCounts[schema.HighSeverity])
}

func TestGetSweepReportLoadError(t *testing.T) {
	cfg := testConfig()
	loader := &fakeLoader{err: errors.New("no such file")}

	_, err := GetSweepReport(context.Background(), cfg, loader)

	assert.Error(t, err)
}

func TestRunTrackedReportRecordsRun(t *testing.T) {
	cfg := testConfig()
	loader := &fakeLoader{tbl: sweepTable()}
	store := &memStore{}
	mgr := &memManager{store: store}

	report, err := runTrackedReport(context.Background(), cfg, loader, mgr)

	require.NoError(t, err)
	assert.Equal(t, 1, store.begun)
	assert.Equal(t, 1, store.ended)
	assert.Equal(t, schema.RunStatusCompleted, store.status)
	assert.Equal(t, report.NumTrials, store.numTrials)
	require.NotNil(t, store.summary)
	assert.Equal(t, 3, store.summary.Meta.NumIssues)
}

func TestRunTrackedReportRecordsFailure(t *testing.T) {
	cfg := testConfig()
	loader := &fakeLoader{err: errors.New("no such file")}
	store := &memStore{}
	mgr := &memManager{store: store}

	_, err := runTrackedReport(context.Background(), cfg, loader, mgr)

	assert.Error(t, err)
	assert.Equal(t, 1, store.begun)
	assert.Equal(t, 1, store.ended)
	assert.Equal(t, schema.RunStatusFailed, store.status)
	assert.Equal(t, 0, store.numTrials)
	assert.Nil(t, store.summary)
}

func TestRunTrackedReportWithoutStore(t *testing.T) {
	cfg := testConfig()
	loader := &fakeLoader{tbl: sweepTable()}
	mgr := &memManager{}

	report, err := runTrackedReport(context.Background(), cfg, loader, mgr)

	require.NoError(t, err)
	assert.Equal(t, 10, report.NumTrials)
}

func BenchmarkGetSweepReport(b *testing.B) {
	cfg := testConfig()
	loader := &fakeLoader{tbl: sweepTable()}

	for b.Loop() {
		if _, err := GetSweepReport(context.Background(), cfg, loader); err != nil {
			b.Fatal(err)
		}
	}
}
