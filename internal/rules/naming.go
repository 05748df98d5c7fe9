// Package rules holds the pure naming and ordering rules of a course tree.
package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jgivc/coursecheck/internal/entity"
)

const (
	metadataName    = "metadata"
	attachmentsName = "attachments"
	settingsMarker  = "settings"
)

var (
	ordinalRegexp   = regexp.MustCompile(`^(\d+)_`)
	separatorRegexp = regexp.MustCompile(`^\d+_.*`)
)

// Parse derives a NameDescriptor from a section or file name.
//
// The ordinal is the leading digit run when it is followed by '_'. A run that
// parses to zero or does not fit into an int is reported as absent, while the
// separator stays valid.
func Parse(name string) entity.NameDescriptor {
	d := entity.NameDescriptor{
		HasValidSeparator: separatorRegexp.MatchString(name),
	}

	m := ordinalRegexp.FindStringSubmatch(name)
	if m == nil {
		return d
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return d
	}

	d.Ordinal = n

	return d
}

// IsMetadataName reports whether name is the metadata folder name, ignoring case.
func IsMetadataName(name string) bool {
	return strings.ToLower(name) == metadataName
}

// IsMetadataFolder matches a folder named exactly "metadata", ignoring case.
func IsMetadataFolder(e entity.Entry) bool {
	return e.IsFolder() && IsMetadataName(e.Name)
}

// IsSettingsFile matches a file whose name contains "settings", ignoring case.
func IsSettingsFile(e entity.Entry) bool {
	return !e.IsFolder() && strings.Contains(strings.ToLower(e.Name), settingsMarker)
}

// IsAttachmentsFolder matches a folder named exactly "attachments", ignoring case.
func IsAttachmentsFolder(e entity.Entry) bool {
	return e.IsFolder() && strings.ToLower(e.Name) == attachmentsName
}
