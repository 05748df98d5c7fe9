package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	c := New(&buf)

	c.Start("drive", "root")
	c.Course("go")
	c.Section("1_intro")
	c.Done("validation_report_20250102_150405.xlsx", entity.Summary{Valid: 2, Invalid: 1})

	require.Equal(t, "Connecting to drive and preparing validation of root...\n"+
		"\nValidating course: go\n"+
		"  Section: 1_intro\n"+
		"\n  2 valid  1 invalid  0 warnings  (3 rows)\n"+
		"Validation complete. Report saved as: validation_report_20250102_150405.xlsx\n", buf.String())
}

func TestConsoleFailedAndRun(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	c := New(&buf)

	c.Failed(errors.New("boom"), "partial.csv")
	require.Contains(t, buf.String(), "Validation aborted: boom")
	require.Contains(t, buf.String(), "Partial report saved as: partial.csv")

	buf.Reset()
	started := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	c.Run(&entity.Run{
		ID:         "abc",
		RootID:     "root",
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Partial:    true,
		Summary:    entity.Summary{Warning: 1},
	})

	out := buf.String()
	require.Contains(t, out, "Run abc")
	require.Contains(t, out, "Started:  2025-01-02 15:04:05")
	require.Contains(t, out, "Duration: 1m30s")
	require.Contains(t, out, "Aborted, report is partial")
	require.NotContains(t, out, "Report:")
	require.Contains(t, out, "0 valid  0 invalid  1 warnings  (1 rows)")
}

func TestConsoleRows(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	c := New(&buf)

	c.Rows([]entity.ReportRow{
		{Course: "go", Section: "1_intro", File: "1_a.mp4", Status: entity.StatusValid, Reason: "File order correct"},
		{Course: "empty", Section: "—", File: "—", Status: entity.StatusWarning, Reason: "Course folder is empty"},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "  VALID   go "))
	require.True(t, strings.HasSuffix(lines[0], "1_a.mp4                  File order correct"))
	require.True(t, strings.HasPrefix(lines[1], "  WARNING empty "))
	require.True(t, strings.HasSuffix(lines[1], "Course folder is empty"))
}
