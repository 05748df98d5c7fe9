package driveadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/entity"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	mimeTypeFolder = "application/vnd.google-apps.folder"
	listFields     = "nextPageToken, files(id, name, mimeType)"
)

type driveAdapter struct {
	srv *drive.Service
	cfg *config.DriveConfig
	log *slog.Logger
}

// NewDriveAdapter authenticates once with the service account credentials file
// and requests read-only access.
func NewDriveAdapter(ctx context.Context, cfg *config.DriveConfig, log *slog.Logger) (*driveAdapter, error) {
	srv, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create drive service: %w", err)
	}

	return NewDriveAdapterWithService(srv, cfg, log), nil
}

func NewDriveAdapterWithService(srv *drive.Service, cfg *config.DriveConfig, log *slog.Logger) *driveAdapter {
	return &driveAdapter{
		srv: srv,
		cfg: cfg,
		log: log.With(slog.String("item", "DriveAdapter")),
	}
}

// ListChildren returns the non-trashed immediate children of folderID,
// following page tokens until the listing is complete.
func (a *driveAdapter) ListChildren(ctx context.Context, folderID string) ([]entity.Entry, error) {
	call := a.srv.Files.List().
		Q(listQuery(folderID)).
		Fields(listFields).
		PageSize(a.cfg.PageSize)

	if a.cfg.SharedDrives {
		call = call.SupportsAllDrives(true).IncludeItemsFromAllDrives(true)
	}

	var (
		items []entity.Entry
		pages int
	)

	err := call.Pages(ctx, func(list *drive.FileList) error {
		pages++
		for _, f := range list.Files {
			item := entity.Entry{
				ID:   f.Id,
				Name: f.Name,
				Kind: entity.KindFile,
			}

			if f.MimeType == mimeTypeFolder {
				item.Kind = entity.KindFolder
			}

			items = append(items, item)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list drive folder %s: %w", folderID, err)
	}

	a.log.Debug("Listed folder", slog.String("folder_id", folderID), slog.Int("items", len(items)), slog.Int("pages", pages))

	return items, nil
}

func listQuery(folderID string) string {
	id := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(folderID)

	return fmt.Sprintf("'%s' in parents and trashed = false", id)
}
