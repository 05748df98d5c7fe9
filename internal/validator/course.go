package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/report"
	"github.com/jgivc/coursecheck/internal/rules"
)

const (
	reasonEmptyCourse        = "Course folder is empty"
	reasonTopLevelFile       = "Top-level file is not a section folder"
	reasonSectionSeparator   = "Section name must use '_' as separator"
	reasonFileSeparator      = "File name must use '_' as separator"
	reasonFileOrderCorrect   = "File order correct"
	reasonFileMissingOrdinal = "File name missing order prefix"
)

// ValidateCourse checks the sections of one course folder and the files inside them.
// The metadata folder is left to CheckMetadata.
func (v *Validator) ValidateCourse(ctx context.Context, course entity.Entry, rep *report.Report) error {
	log := v.log.With(slog.String("course", course.Name))
	v.progress.Course(course.Name)

	items, err := v.lister.ListChildren(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("cannot list course %s: %w", course.Name, err)
	}

	var sections, files []entity.Entry
	for _, item := range items {
		if item.IsFolder() {
			sections = append(sections, item)
		} else {
			files = append(files, item)
		}
	}

	if len(sections) == 0 && len(files) == 0 {
		log.Warn("Course folder is empty")
		rep.Append(row(course.Name, entity.Placeholder, entity.Placeholder, entity.StatusWarning, reasonEmptyCourse))

		return nil
	}

	for _, f := range files {
		rep.Append(row(course.Name, entity.Placeholder, f.Name, entity.StatusInvalid, reasonTopLevelFile))
	}

	var (
		ordinals []int
		checked  = make([]entity.Entry, 0, len(sections))
	)

	for _, section := range sections {
		if rules.IsMetadataName(section.Name) {
			continue
		}

		checked = append(checked, section)

		d := rules.Parse(section.Name)
		if !d.HasValidSeparator {
			rep.Append(row(course.Name, section.Name, entity.Placeholder, entity.StatusInvalid, reasonSectionSeparator))
		}

		if d.HasOrdinal() {
			ordinals = append(ordinals, d.Ordinal)
		}
	}

	for _, reason := range rules.CheckSequence(rules.ScopeSection, ordinals) {
		rep.Append(row(course.Name, entity.Placeholder, entity.Placeholder, entity.StatusInvalid, reason))
	}

	for _, section := range checked {
		if err := v.validateSection(ctx, course, section, rep); err != nil {
			return err
		}
	}

	log.Debug("Course checked", slog.Int("sections", len(checked)), slog.Int("top_level_files", len(files)))

	return nil
}

func (v *Validator) validateSection(ctx context.Context, course, section entity.Entry, rep *report.Report) error {
	v.progress.Section(section.Name)

	content, err := v.lister.ListChildren(ctx, section.ID)
	if err != nil {
		return fmt.Errorf("cannot list section %s/%s: %w", course.Name, section.Name, err)
	}

	descriptors := make([]entity.NameDescriptor, len(content))

	var ordinals []int
	for i, item := range content {
		descriptors[i] = rules.Parse(item.Name)
		if descriptors[i].HasOrdinal() {
			ordinals = append(ordinals, descriptors[i].Ordinal)
		}
	}

	for _, reason := range rules.CheckSequence(rules.ScopeFile, ordinals) {
		rep.Append(row(course.Name, section.Name, entity.Placeholder, entity.StatusInvalid, reason))
	}

	for i, item := range content {
		switch d := descriptors[i]; {
		case !d.HasValidSeparator:
			rep.Append(row(course.Name, section.Name, item.Name, entity.StatusInvalid, reasonFileSeparator))
		case d.HasOrdinal():
			rep.Append(row(course.Name, section.Name, item.Name, entity.StatusValid, reasonFileOrderCorrect))
		default:
			rep.Append(row(course.Name, section.Name, item.Name, entity.StatusInvalid, reasonFileMissingOrdinal))
		}
	}

	return nil
}
