package app

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/jgivc/coursecheck/internal/adapter/driveadapter"
	"github.com/jgivc/coursecheck/internal/adapter/fsadapter"
	"github.com/jgivc/coursecheck/internal/adapter/reportadapter"
	"github.com/jgivc/coursecheck/internal/common"
	"github.com/jgivc/coursecheck/internal/config"
	"github.com/jgivc/coursecheck/internal/console"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/jgivc/coursecheck/internal/repository/run"
	"github.com/jgivc/coursecheck/internal/service/validate"
	"github.com/jgivc/coursecheck/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

type RunHistory interface {
	Last(ctx context.Context) (*entity.Run, error)
	Get(ctx context.Context, id string) (*entity.Run, error)
	Rows(ctx context.Context, id string) ([]entity.ReportRow, error)
	RunIterator(ctx context.Context, limit int64) (iter.Seq2[*entity.Run, error], error)
}

type App struct {
	cfg     *config.Config
	console *console.Console
	log     *slog.Logger
}

func New(cfg *config.Config, out, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		console: console.New(out),
		log:     log,
	}, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	lo := &slog.HandlerOptions{}
	switch level {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownLogLevel, level)
	}

	return slog.New(slog.NewTextHandler(w, lo)), nil
}

// Validate runs one validation pass over the configured root and prints progress.
func (a *App) Validate(ctx context.Context) (*entity.Run, error) {
	lister, rootID, err := a.newLister(ctx)
	if err != nil {
		return nil, err
	}

	writer, err := reportadapter.NewWriter(a.cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	var repo validate.RunRepository
	if a.cfg.Redis.URL != "" {
		rdb, err := a.newRedisClient(ctx)
		if err != nil {
			return nil, err
		}
		defer rdb.Close()

		repo = run.NewRunRepository(rdb, a.cfg.Redis.TTL, a.log)
	}

	a.console.Start(a.cfg.Backend, rootID)

	v := validator.New(lister, a.console, a.log)
	srv := validate.NewValidateService(v, writer, afero.NewOsFs(), &a.cfg.Report, repo, a.log)

	result, err := srv.Validate(ctx, rootID)
	if err != nil {
		partial := ""
		if result != nil {
			partial = result.ReportPath
		}
		a.console.Failed(err, partial)

		return result, err
	}

	a.console.Done(result.ReportPath, result.Summary)

	return result, nil
}

// Last prints the most recent stored run, with its report rows when withRows is set.
func (a *App) Last(ctx context.Context, withRows bool) error {
	history, closeFn, err := a.history(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	r, err := history.Last(ctx)
	if err != nil {
		return fmt.Errorf("cannot get last run: %w", err)
	}

	a.console.Run(r)

	if !withRows {
		return nil
	}

	return a.printRows(ctx, history, r.ID)
}

// Show prints the stored run with the given id and its report rows.
func (a *App) Show(ctx context.Context, id string) error {
	history, closeFn, err := a.history(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	r, err := history.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("cannot get run %s: %w", id, err)
	}

	a.console.Run(r)

	return a.printRows(ctx, history, r.ID)
}

func (a *App) printRows(ctx context.Context, history RunHistory, id string) error {
	rows, err := history.Rows(ctx, id)
	if err != nil {
		return fmt.Errorf("cannot get run %s rows: %w", id, err)
	}

	a.console.Rows(rows)

	return nil
}

// History prints up to limit stored runs, newest first.
func (a *App) History(ctx context.Context, limit int64) error {
	if limit < 1 {
		return fmt.Errorf("%w: %d", common.ErrInvalidLimit, limit)
	}

	history, closeFn, err := a.history(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	runs, err := history.RunIterator(ctx, limit)
	if err != nil {
		return fmt.Errorf("cannot list runs: %w", err)
	}

	for r, err := range runs {
		if err != nil {
			return fmt.Errorf("cannot read run: %w", err)
		}

		a.console.Run(r)
	}

	return nil
}

func (a *App) history(ctx context.Context) (RunHistory, func(), error) {
	if a.cfg.Redis.URL == "" {
		return nil, nil, fmt.Errorf("run history needs redis.url to be configured")
	}

	rdb, err := a.newRedisClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	return run.NewRunRepository(rdb, a.cfg.Redis.TTL, a.log), func() { rdb.Close() }, nil
}

func (a *App) newLister(ctx context.Context) (validator.Lister, string, error) {
	switch a.cfg.Backend {
	case config.BackendDrive:
		da, err := driveadapter.NewDriveAdapter(ctx, &a.cfg.Drive, a.log)
		if err != nil {
			return nil, "", err
		}

		return da, a.cfg.RootID, nil
	case config.BackendFS:
		fsa, err := fsadapter.NewFSAdapter(&a.cfg.FS, a.log)
		if err != nil {
			return nil, "", err
		}

		return fsa, fsa.RootID(a.cfg.RootID), nil
	}

	return nil, "", fmt.Errorf("%w: %q", common.ErrUnknownBackend, a.cfg.Backend)
}

func (a *App) newRedisClient(ctx context.Context) (*redis.Client, error) {
	opt, err := redis.ParseURL(a.cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()

		return nil, fmt.Errorf("cannot connect to redis: %w", err)
	}

	return rdb, nil
}
