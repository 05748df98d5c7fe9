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
	sectionMetadata    = "metadata"
	sectionAttachments = "attachments"

	reasonSettingsFile        = "Valid settings file"
	reasonDigitalDownload     = "Valid digital download"
	reasonAttachmentsNoConfig = "Attachments folder present but no settings file"
	reasonMetadataIncomplete  = "metadata/ folder found but missing both settings.* and attachments/"
)

// CheckMetadata validates the optional metadata folder of a course. A course
// without one yields no rows.
func (v *Validator) CheckMetadata(ctx context.Context, course entity.Entry, rep *report.Report) error {
	items, err := v.lister.ListChildren(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("cannot list course %s: %w", course.Name, err)
	}

	metadata, found := first(items, rules.IsMetadataFolder)
	if !found {
		return nil
	}

	metaItems, err := v.lister.ListChildren(ctx, metadata.ID)
	if err != nil {
		return fmt.Errorf("cannot list metadata folder of %s: %w", course.Name, err)
	}

	settings, hasSettings := first(metaItems, rules.IsSettingsFile)
	attachments, hasAttachments := first(metaItems, rules.IsAttachmentsFolder)

	if hasSettings {
		rep.Append(row(course.Name, sectionMetadata, settings.Name, entity.StatusValid, reasonSettingsFile))
	}

	if hasAttachments {
		downloads, err := v.lister.ListChildren(ctx, attachments.ID)
		if err != nil {
			return fmt.Errorf("cannot list attachments of %s: %w", course.Name, err)
		}

		for _, d := range downloads {
			rep.Append(row(course.Name, sectionAttachments, d.Name, entity.StatusValid, reasonDigitalDownload))
		}
	}

	switch {
	case hasSettings && hasAttachments:
		rep.Append(row(course.Name, sectionAttachments, attachments.Name, entity.StatusValid,
			fmt.Sprintf("Settings file found: %s, with valid attachments", settings.Name)))
	case hasSettings:
		rep.Append(row(course.Name, sectionMetadata, settings.Name, entity.StatusValid,
			fmt.Sprintf("Settings file found: %s, no attachments folder", settings.Name)))
	case hasAttachments:
		rep.Append(row(course.Name, sectionAttachments, attachments.Name, entity.StatusInvalid, reasonAttachmentsNoConfig))
	default:
		rep.Append(row(course.Name, sectionMetadata, entity.Placeholder, entity.StatusInvalid, reasonMetadataIncomplete))
	}

	v.log.Debug("Metadata checked", slog.String("course", course.Name),
		slog.Bool("settings", hasSettings), slog.Bool("attachments", hasAttachments))

	return nil
}

func first(items []entity.Entry, match func(entity.Entry) bool) (entity.Entry, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}

	return entity.Entry{}, false
}
