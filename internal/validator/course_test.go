package validator

import (
	"context"
	"testing"

	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/report"
	"github.com/stretchr/testify/require"
)

func TestValidateCourse(t *testing.T) {
	testCases := []struct {
		name     string
		build    func(tree *treeLister, course string)
		expected []entity.ReportRow
	}{
		{
			name:  "empty course",
			build: func(tree *treeLister, course string) {},
			expected: []entity.ReportRow{
				r("c", ph, ph, entity.StatusWarning, "Course folder is empty"),
			},
		},
		{
			name: "top-level files are not sections",
			build: func(tree *treeLister, course string) {
				tree.files(course, "notes.txt", "1_intro.mp4")
			},
			expected: []entity.ReportRow{
				r("c", ph, "notes.txt", entity.StatusInvalid, "Top-level file is not a section folder"),
				r("c", ph, "1_intro.mp4", entity.StatusInvalid, "Top-level file is not a section folder"),
			},
		},
		{
			name: "missing middle section",
			build: func(tree *treeLister, course string) {
				tree.folder(course, "1_intro")
				tree.folder(course, "3_outro")
			},
			expected: []entity.ReportRow{
				r("c", ph, ph, entity.StatusInvalid, "Missing expected section order: 2"),
			},
		},
		{
			name: "sections not starting from one",
			build: func(tree *treeLister, course string) {
				tree.folder(course, "2_basics")
			},
			expected: []entity.ReportRow{
				r("c", ph, ph, entity.StatusInvalid, "Section order must start from 1"),
				r("c", ph, ph, entity.StatusInvalid, "Missing expected section order: 1"),
			},
		},
		{
			name: "section separator",
			build: func(tree *treeLister, course string) {
				tree.folder(course, "1-intro")
				tree.folder(course, "extras")
			},
			expected: []entity.ReportRow{
				r("c", "1-intro", ph, entity.StatusInvalid, "Section name must use '_' as separator"),
				r("c", "extras", ph, entity.StatusInvalid, "Section name must use '_' as separator"),
			},
		},
		{
			name: "metadata is not a section",
			build: func(tree *treeLister, course string) {
				tree.folder(course, "Metadata")
				tree.folder(course, "2_next")
			},
			expected: []entity.ReportRow{
				r("c", ph, ph, entity.StatusInvalid, "Section order must start from 1"),
				r("c", ph, ph, entity.StatusInvalid, "Missing expected section order: 1"),
			},
		},
		{
			name: "file outcomes",
			build: func(tree *treeLister, course string) {
				s := tree.folder(course, "1_intro")
				tree.files(s, "1_welcome.mp4", "welcome.pdf", "3-slides.pdf", "0_zero.txt")
				tree.folder(s, "4_extra")
			},
			expected: []entity.ReportRow{
				r("c", "1_intro", ph, entity.StatusInvalid, "Missing expected file order: 2"),
				r("c", "1_intro", ph, entity.StatusInvalid, "Missing expected file order: 3"),
				r("c", "1_intro", "1_welcome.mp4", entity.StatusValid, "File order correct"),
				r("c", "1_intro", "welcome.pdf", entity.StatusInvalid, "File name must use '_' as separator"),
				r("c", "1_intro", "3-slides.pdf", entity.StatusInvalid, "File name must use '_' as separator"),
				r("c", "1_intro", "0_zero.txt", entity.StatusInvalid, "File name missing order prefix"),
				r("c", "1_intro", "4_extra", entity.StatusValid, "File order correct"),
			},
		},
		{
			name: "files not starting from one",
			build: func(tree *treeLister, course string) {
				s := tree.folder(course, "1_intro")
				tree.files(s, "2_b.mp4")
			},
			expected: []entity.ReportRow{
				r("c", "1_intro", ph, entity.StatusInvalid, "File order must start from 1"),
				r("c", "1_intro", ph, entity.StatusInvalid, "Missing expected file order: 1"),
				r("c", "1_intro", "2_b.mp4", entity.StatusValid, "File order correct"),
			},
		},
		{
			name: "empty section yields no rows",
			build: func(tree *treeLister, course string) {
				tree.folder(course, "1_intro")
			},
			expected: nil,
		},
		{
			name: "duplicate ordinals are accepted",
			build: func(tree *treeLister, course string) {
				a := tree.folder(course, "1_a")
				tree.folder(course, "1_b")
				tree.files(a, "1_x", "1_y")
			},
			expected: []entity.ReportRow{
				r("c", "1_a", "1_x", entity.StatusValid, "File order correct"),
				r("c", "1_a", "1_y", entity.StatusValid, "File order correct"),
			},
		},
		{
			name: "rows follow processing order",
			build: func(tree *treeLister, course string) {
				tree.files(course, "loose.txt")
				tree.folder(course, "intro")
				s := tree.folder(course, "3_end")
				tree.files(s, "1_bye")
			},
			expected: []entity.ReportRow{
				r("c", ph, "loose.txt", entity.StatusInvalid, "Top-level file is not a section folder"),
				r("c", "intro", ph, entity.StatusInvalid, "Section name must use '_' as separator"),
				r("c", ph, ph, entity.StatusInvalid, "Section order must start from 1"),
				r("c", ph, ph, entity.StatusInvalid, "Missing expected section order: 1"),
				r("c", ph, ph, entity.StatusInvalid, "Missing expected section order: 2"),
				r("c", "3_end", "1_bye", entity.StatusValid, "File order correct"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := newTree()
			course := tree.folder(rootID, "c")
			tc.build(tree, course)

			rep := report.New()
			err := newValidator(tree, nil).ValidateCourse(context.Background(), courseEntry(tree, "c"), rep)
			require.NoError(t, err)
			require.Equal(t, tc.expected, rep.Rows())
		})
	}
}

func TestValidateCourseDoesNotListMetadata(t *testing.T) {
	tree := newTree()
	course := tree.folder(rootID, "c")
	tree.folder(course, "METADATA")

	rep := report.New()
	require.NoError(t, newValidator(tree, nil).ValidateCourse(context.Background(), courseEntry(tree, "c"), rep))
	require.Equal(t, 0, rep.Len())
	require.Equal(t, []string{"root/c"}, tree.calls)
}
