package fsadapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/spf13/afero"
)

// fsAdapter lists a local copy of the course tree. Entry ids are paths
// relative to the filesystem root, so the work dir itself is the root id.
type fsAdapter struct {
	fs        afero.Fs
	cfg       *config.FSConfig
	skipFiles map[string]struct{}

	log *slog.Logger
}

func NewFSAdapter(cfg *config.FSConfig, log *slog.Logger) (*fsAdapter, error) {
	return NewFSAdapterWithFS(afero.NewOsFs(), cfg, log)
}

func NewFSAdapterWithFS(fs afero.Fs, cfg *config.FSConfig, log *slog.Logger) (*fsAdapter, error) {
	if cfg.WorkDir == "" {
		return nil, fmt.Errorf("work dir is not set")
	}

	skipFilesMap := make(map[string]struct{}, len(cfg.SkipFiles))
	for _, file := range cfg.SkipFiles {
		skipFilesMap[file] = struct{}{}
	}

	return &fsAdapter{
		fs:        fs,
		cfg:       cfg,
		skipFiles: skipFilesMap,
		log:       log.With(slog.String("item", "FSAdapter")),
	}, nil
}

// RootID maps a configured root onto a path inside the work dir.
// An empty root means the work dir itself.
func (a *fsAdapter) RootID(root string) string {
	if root == "" || root == "." {
		return a.cfg.WorkDir
	}

	return filepath.Join(a.cfg.WorkDir, root)
}

func (a *fsAdapter) ListChildren(ctx context.Context, folderID string) ([]entity.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !a.inWorkDir(folderID) {
		return nil, fmt.Errorf("invalid folder path: %s", folderID)
	}

	entries, err := afero.ReadDir(a.fs, folderID)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", folderID, err)
	}

	items := make([]entity.Entry, 0, len(entries))
	for _, entry := range entries {
		if _, exists := a.skipFiles[entry.Name()]; exists {
			a.log.Debug("Skip file", slog.String("path", filepath.Join(folderID, entry.Name())))

			continue
		}

		item := entity.Entry{
			ID:   filepath.Join(folderID, entry.Name()),
			Name: entry.Name(),
			Kind: entity.KindFile,
		}

		if entry.IsDir() {
			item.Kind = entity.KindFolder
		}

		items = append(items, item)
	}

	return items, nil
}

// inWorkDir reports whether path resolves to the work dir or below it.
// Names may contain dots, only a parent element escapes.
func (a *fsAdapter) inWorkDir(path string) bool {
	rel, err := filepath.Rel(filepath.Clean(a.cfg.WorkDir), filepath.Clean(path))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
