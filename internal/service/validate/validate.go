package validate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jgivc/coursecheck/internal/adapter/reportadapter"
	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/report"
	"github.com/spf13/afero"
)

const (
	serviceName = "validate"
	reportTitle = "Course structure validation"
)

type Scanner interface {
	Run(ctx context.Context, rootID string, rep *report.Report) error
}

type RunRepository interface {
	Save(ctx context.Context, run *entity.Run, rows []entity.ReportRow) error
}

type ValidateService struct {
	scanner Scanner
	writer  reportadapter.Writer
	fs      afero.Fs
	cfg     *config.ReportConfig
	repo    RunRepository
	now     func() time.Time
	log     *slog.Logger
}

// NewValidateService wires a scanner to a report writer. repo may be nil,
// in which case runs are not recorded.
func NewValidateService(scanner Scanner, writer reportadapter.Writer, fs afero.Fs, cfg *config.ReportConfig, repo RunRepository, log *slog.Logger) *ValidateService {
	return &ValidateService{
		scanner: scanner,
		writer:  writer,
		fs:      fs,
		cfg:     cfg,
		repo:    repo,
		now:     time.Now,
		log:     log.With(slog.String("service", serviceName)),
	}
}

// Validate runs one full validation pass and writes the report file.
// When scanning fails no report is written, unless FlushOnError is set; then
// the rows collected so far go to a partial report and the returned run
// describes it alongside the error.
func (s *ValidateService) Validate(ctx context.Context, rootID string) (*entity.Run, error) {
	run := &entity.Run{
		ID:        uuid.NewString(),
		RootID:    rootID,
		StartedAt: s.now(),
	}
	log := s.log.With(slog.String("run_id", run.ID), slog.String("root_id", rootID))
	log.Info("Start validation")

	rep := report.New()
	scanErr := s.scanner.Run(ctx, rootID, rep)

	run.FinishedAt = s.now()
	run.Summary = rep.Summary()

	if scanErr != nil {
		log.Error("Cannot validate tree", slog.Int("rows", rep.Len()), slog.Any("error", scanErr))

		if !s.cfg.FlushOnError {
			return nil, fmt.Errorf("cannot validate tree: %w", scanErr)
		}

		run.Partial = true
	}

	path, err := s.writeReport(run, rep)
	if err != nil {
		log.Error("Cannot write report", slog.Any("error", err))

		if scanErr != nil {
			return nil, fmt.Errorf("cannot validate tree: %w", scanErr)
		}

		return nil, err
	}
	run.ReportPath = path

	log.Info("Report saved", slog.String("path", path), slog.Bool("partial", run.Partial),
		slog.Int("valid", run.Summary.Valid), slog.Int("invalid", run.Summary.Invalid), slog.Int("warning", run.Summary.Warning))

	if s.repo != nil {
		if err := s.repo.Save(ctx, run, rep.Rows()); err != nil {
			log.Warn("Cannot save run history", slog.Any("error", err))
		}
	}

	if scanErr != nil {
		return run, fmt.Errorf("cannot validate tree: %w", scanErr)
	}

	return run, nil
}

func (s *ValidateService) writeReport(run *entity.Run, rep *report.Report) (string, error) {
	if err := s.fs.MkdirAll(s.cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create report dir %s: %w", s.cfg.OutDir, err)
	}

	path := filepath.Join(s.cfg.OutDir, reportadapter.FileName(s.cfg.FilePrefix, s.writer, run.StartedAt, run.Partial))

	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create report file %s: %w", path, err)
	}

	doc := &reportadapter.Document{
		Title:       reportTitle,
		GeneratedAt: run.FinishedAt,
		Rows:        rep.Finalize(),
		Summary:     run.Summary,
	}

	if err := s.writer.Write(f, doc); err != nil {
		f.Close()

		return "", fmt.Errorf("cannot write report file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot close report file %s: %w", path, err)
	}

	return path, nil
}
