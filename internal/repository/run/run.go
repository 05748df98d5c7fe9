package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jgivc/coursecheck/internal/common"
	"github.com/jgivc/coursecheck/internal/entity"
	"github.com/redis/go-redis/v9"
)

const (
	KeyPrefix  = "cc"
	KeyLastRun = "last" // STRING. Id of the most recent run.
	KeyRuns    = "runs" // ZSET. Run ids scored by start time.
	KeyRun     = "run"  // HASH. run:{id} summary fields.
	KeyRunRows = "rows" // LIST. rows:{id} JSON encoded report rows in report order.

	KeySeparator = ":"

	fieldRootID     = "root_id"
	fieldStartedAt  = "started_at"
	fieldFinishedAt = "finished_at"
	fieldReportPath = "report_path"
	fieldPartial    = "partial"
	fieldValid      = "valid"
	fieldInvalid    = "invalid"
	fieldWarning    = "warning"
)

type runRepository struct {
	cl  *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRunRepository(cl *redis.Client, ttl time.Duration, log *slog.Logger) *runRepository {
	return &runRepository{
		cl:  cl,
		ttl: ttl,
		log: log.With(slog.String("item", "RunRepository")),
	}
}

func (r *runRepository) Save(ctx context.Context, run *entity.Run, rows []entity.ReportRow) error {
	log := r.log.With(slog.String("op", "Save"), slog.String("run_id", run.ID))

	runKey := getKey(KeyPrefix, KeyRun, run.ID)
	rowsKey := getKey(KeyPrefix, KeyRunRows, run.ID)

	pipe := r.cl.Pipeline()
	pipe.HSet(ctx, runKey, map[string]any{
		fieldRootID:     run.RootID,
		fieldStartedAt:  run.StartedAt.Format(time.RFC3339Nano),
		fieldFinishedAt: run.FinishedAt.Format(time.RFC3339Nano),
		fieldReportPath: run.ReportPath,
		fieldPartial:    strconv.FormatBool(run.Partial),
		fieldValid:      strconv.Itoa(run.Summary.Valid),
		fieldInvalid:    strconv.Itoa(run.Summary.Invalid),
		fieldWarning:    strconv.Itoa(run.Summary.Warning),
	})

	if len(rows) > 0 {
		values := make([]any, 0, len(rows))
		for _, row := range rows {
			data, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("cannot encode row: %w", err)
			}
			values = append(values, string(data))
		}
		pipe.RPush(ctx, rowsKey, values...)
	}

	if r.ttl > 0 {
		pipe.Expire(ctx, runKey, r.ttl)
		pipe.Expire(ctx, rowsKey, r.ttl)
	}

	pipe.ZAdd(ctx, getKey(KeyPrefix, KeyRuns), redis.Z{Score: float64(run.StartedAt.Unix()), Member: run.ID})
	pipe.Set(ctx, getKey(KeyPrefix, KeyLastRun), run.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("Cannot save run", slog.Any("error", err))

		return fmt.Errorf("cannot save run %s: %w", run.ID, err)
	}

	log.Info("Run saved", slog.Int("rows", len(rows)))

	return nil
}

func (r *runRepository) Last(ctx context.Context) (*entity.Run, error) {
	id, err := r.cl.Get(ctx, getKey(KeyPrefix, KeyLastRun)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrRunNotFound
		}

		return nil, fmt.Errorf("cannot get last run id: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *runRepository) Get(ctx context.Context, id string) (*entity.Run, error) {
	fields, err := r.cl.HGetAll(ctx, getKey(KeyPrefix, KeyRun, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cannot get run %s: %w", id, err)
	}

	if len(fields) < 1 {
		return nil, common.ErrRunNotFound
	}

	return decodeRun(id, fields)
}

func (r *runRepository) Rows(ctx context.Context, id string) ([]entity.ReportRow, error) {
	values, err := r.cl.LRange(ctx, getKey(KeyPrefix, KeyRunRows, id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cannot get run %s rows: %w", id, err)
	}

	rows := make([]entity.ReportRow, 0, len(values))
	for _, v := range values {
		var row entity.ReportRow
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			return nil, fmt.Errorf("cannot decode run %s row: %w", id, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// RunIterator yields up to limit most recent runs, newest first. Runs whose
// summary has already expired are skipped and their ids are removed.
func (r *runRepository) RunIterator(ctx context.Context, limit int64) (iter.Seq2[*entity.Run, error], error) {
	runsKey := getKey(KeyPrefix, KeyRuns)

	ids, err := r.cl.ZRevRange(ctx, runsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("cannot get run list: %w", err)
	}

	return func(yield func(*entity.Run, error) bool) {
		for _, id := range ids {
			run, err := r.Get(ctx, id)
			if errors.Is(err, common.ErrRunNotFound) {
				if err := r.cl.ZRem(ctx, runsKey, id).Err(); err != nil {
					r.log.Error("Cannot remove expired run", slog.String("run_id", id), slog.Any("error", err))
				}

				continue
			}

			if !yield(run, err) || err != nil {
				return
			}
		}
	}, nil
}

func decodeRun(id string, fields map[string]string) (*entity.Run, error) {
	run := &entity.Run{
		ID:         id,
		RootID:     fields[fieldRootID],
		ReportPath: fields[fieldReportPath],
		Partial:    fields[fieldPartial] == "true",
	}

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, fields[fieldStartedAt]); err != nil {
		return nil, fmt.Errorf("cannot parse run %s start time: %w", id, err)
	}

	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, fields[fieldFinishedAt]); err != nil {
		return nil, fmt.Errorf("cannot parse run %s finish time: %w", id, err)
	}

	counters := map[string]*int{
		fieldValid:   &run.Summary.Valid,
		fieldInvalid: &run.Summary.Invalid,
		fieldWarning: &run.Summary.Warning,
	}
	for field, dst := range counters {
		if *dst, err = strconv.Atoi(fields[field]); err != nil {
			return nil, fmt.Errorf("cannot parse run %s %s counter: %w", id, field, err)
		}
	}

	return run, nil
}

func getKey(keys ...string) string {
	return strings.Join(keys, KeySeparator)
}
