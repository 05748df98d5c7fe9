// Package validator walks a course tree through a Lister and records every
// naming and structure finding into a report.
package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/report"
)

const (
	reasonNotAFolder = "Top-level item is not a folder — skipping."
)

type Lister interface {
	ListChildren(ctx context.Context, folderID string) ([]entity.Entry, error)
}

// Progress receives human oriented notifications while the tree is walked.
type Progress interface {
	Course(name string)
	Section(name string)
}

type nopProgress struct{}

func (nopProgress) Course(string)  {}
func (nopProgress) Section(string) {}

type Validator struct {
	lister   Lister
	progress Progress
	log      *slog.Logger
}

func New(lister Lister, progress Progress, log *slog.Logger) *Validator {
	if progress == nil {
		progress = nopProgress{}
	}

	return &Validator{
		lister:   lister,
		progress: progress,
		log:      log.With(slog.String("item", "Validator")),
	}
}

// Run validates every top-level entry under rootID, one at a time, in listing order.
// A listing failure aborts the run; rows appended before the failure stay in rep.
func (v *Validator) Run(ctx context.Context, rootID string, rep *report.Report) error {
	items, err := v.lister.ListChildren(ctx, rootID)
	if err != nil {
		return fmt.Errorf("cannot list root folder %s: %w", rootID, err)
	}

	v.log.Info("Found top-level items", slog.String("root_id", rootID), slog.Int("count", len(items)))

	for _, item := range items {
		if !item.IsFolder() {
			v.log.Debug("Skip top-level file", slog.String("name", item.Name))
			rep.Append(row(item.Name, entity.Placeholder, entity.Placeholder, entity.StatusInvalid, reasonNotAFolder))

			continue
		}

		if err := v.ValidateCourse(ctx, item, rep); err != nil {
			return err
		}

		if err := v.CheckMetadata(ctx, item, rep); err != nil {
			return err
		}
	}

	return nil
}

func row(course, section, file string, status entity.Status, reason string) entity.ReportRow {
	return entity.ReportRow{
		Course:  course,
		Section: section,
		File:    file,
		Status:  status,
		Reason:  reason,
	}
}
