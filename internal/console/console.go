// Package console prints human readable progress of a validation run.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jgivc/coursecheck/internal/entity"
)

// Console writes progress lines to w. It is safe for concurrent use.
type Console struct {
	w  io.Writer
	mu sync.Mutex

	title   *color.Color
	course  *color.Color
	section *color.Color
	ok      *color.Color
	fail    *color.Color
	warn    *color.Color
}

func New(w io.Writer) *Console {
	return &Console{
		w:       w,
		title:   color.New(color.Bold),
		course:  color.New(color.FgCyan, color.Bold),
		section: color.New(color.FgBlue),
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
	}
}

func (c *Console) Start(backend, rootID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.title.Fprintf(c.w, "Connecting to %s and preparing validation of %s...\n", backend, rootID)
}

func (c *Console) Course(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w)
	c.course.Fprintf(c.w, "Validating course: %s\n", name)
}

func (c *Console) Section(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.section.Fprintf(c.w, "  Section: %s\n", name)
}

func (c *Console) Done(path string, s entity.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w)
	c.printSummary(s)
	c.ok.Fprintf(c.w, "Validation complete. Report saved as: %s\n", path)
}

func (c *Console) Failed(err error, partialPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w)
	c.fail.Fprintf(c.w, "Validation aborted: %v\n", err)
	if partialPath != "" {
		c.warn.Fprintf(c.w, "Partial report saved as: %s\n", partialPath)
	}
}

func (c *Console) Run(run *entity.Run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.title.Fprintf(c.w, "Run %s\n", run.ID)
	fmt.Fprintf(c.w, "  Root:     %s\n", run.RootID)
	fmt.Fprintf(c.w, "  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(c.w, "  Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	if run.ReportPath != "" {
		fmt.Fprintf(c.w, "  Report:   %s\n", run.ReportPath)
	}
	if run.Partial {
		c.warn.Fprintln(c.w, "  Aborted, report is partial")
	}
	c.printSummary(run.Summary)
}

// Rows prints stored report rows, one per line, with the status colored.
func (c *Console) Rows(rows []entity.ReportRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range rows {
		fmt.Fprintf(c.w, "  %s %-20s %-20s %-24s %s\n",
			c.status(r.Status).Sprintf("%-7s", r.Status), r.Course, r.Section, r.File, r.Reason)
	}
}

func (c *Console) status(s entity.Status) *color.Color {
	switch s {
	case entity.StatusValid:
		return c.ok
	case entity.StatusWarning:
		return c.warn
	}

	return c.fail
}

func (c *Console) printSummary(s entity.Summary) {
	fmt.Fprintf(c.w, "  %s  %s  %s  (%d rows)\n",
		c.ok.Sprintf("%d valid", s.Valid),
		c.fail.Sprintf("%d invalid", s.Invalid),
		c.warn.Sprintf("%d warnings", s.Warning),
		s.Total(),
	)
}
