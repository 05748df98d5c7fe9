package validate

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jgivc/coursecheck/internal/adapter/reportadapter"
	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/report"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	rows []entity.ReportRow
	err  error
}

func (f *fakeScanner) Run(_ context.Context, _ string, rep *report.Report) error {
	rep.Append(f.rows...)

	return f.err
}

type fakeRepo struct {
	runs []*entity.Run
	rows [][]entity.ReportRow
	err  error
}

func (f *fakeRepo) Save(_ context.Context, run *entity.Run, rows []entity.ReportRow) error {
	f.runs = append(f.runs, run)
	f.rows = append(f.rows, rows)

	return f.err
}

var testRows = []entity.ReportRow{
	{Course: "go", Section: "1_intro", File: "1_a.mp4", Status: entity.StatusValid, Reason: "File order correct"},
	{Course: "empty", Section: "—", File: "—", Status: entity.StatusWarning, Reason: "Course folder is empty"},
}

func newTestService(t *testing.T, scanner Scanner, repo RunRepository, flush bool) (*ValidateService, afero.Fs) {
	t.Helper()

	w, err := reportadapter.NewWriter(config.FormatCSV)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	cfg := &config.ReportConfig{OutDir: "/reports", FilePrefix: "validation_report", FlushOnError: flush}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	srv := NewValidateService(scanner, w, fs, cfg, repo, log)
	ts := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	srv.now = func() time.Time { return ts }

	return srv, fs
}

func readCSV(t *testing.T, fs afero.Fs, path string) [][]string {
	t.Helper()

	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestValidate(t *testing.T) {
	repo := &fakeRepo{}
	srv, fs := newTestService(t, &fakeScanner{rows: testRows}, repo, false)

	run, err := srv.Validate(context.Background(), "root")
	require.NoError(t, err)

	require.NotEmpty(t, run.ID)
	require.Equal(t, "root", run.RootID)
	require.Equal(t, "/reports/validation_report_20250102_150405.csv", run.ReportPath)
	require.False(t, run.Partial)
	require.Equal(t, entity.Summary{Valid: 1, Warning: 1}, run.Summary)

	require.Equal(t, [][]string{
		{"Course", "Section", "File", "Status", "Reason"},
		{"go", "1_intro", "1_a.mp4", "VALID", "File order correct"},
		{"empty", "—", "—", "WARNING", "Course folder is empty"},
	}, readCSV(t, fs, run.ReportPath))

	require.Len(t, repo.runs, 1)
	require.Equal(t, run, repo.runs[0])
	require.Equal(t, testRows, repo.rows[0])
}

func TestValidateFailure(t *testing.T) {
	errTransport := errors.New("transport failure")

	t.Run("no report without flush", func(t *testing.T) {
		repo := &fakeRepo{}
		srv, fs := newTestService(t, &fakeScanner{rows: testRows, err: errTransport}, repo, false)

		run, err := srv.Validate(context.Background(), "root")
		require.ErrorIs(t, err, errTransport)
		require.Nil(t, run)
		require.Empty(t, repo.runs)

		exists, err := afero.DirExists(fs, "/reports")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("partial report with flush", func(t *testing.T) {
		repo := &fakeRepo{}
		srv, fs := newTestService(t, &fakeScanner{rows: testRows[:1], err: errTransport}, repo, true)

		run, err := srv.Validate(context.Background(), "root")
		require.ErrorIs(t, err, errTransport)
		require.NotNil(t, run)
		require.True(t, run.Partial)
		require.Equal(t, "/reports/validation_report_20250102_150405_partial.csv", run.ReportPath)
		require.Len(t, readCSV(t, fs, run.ReportPath), 2)
		require.Len(t, repo.runs, 1)
	})
}

func TestValidateWithoutRepository(t *testing.T) {
	srv, _ := newTestService(t, &fakeScanner{rows: testRows}, nil, false)

	run, err := srv.Validate(context.Background(), "root")
	require.NoError(t, err)
	require.NotEmpty(t, run.ReportPath)
}

func TestValidateRepositoryFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{err: errors.New("redis down")}
	srv, _ := newTestService(t, &fakeScanner{rows: testRows}, repo, false)

	run, err := srv.Validate(context.Background(), "root")
	require.NoError(t, err)
	require.NotNil(t, run)
}
