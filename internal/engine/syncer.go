package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"db-sync/internal/schema"

	"go.uber.org/zap"
)

// ErrUnexpected wraps a failure not attributable to a single table step. The
// run stops, but the report collected so far is still returned.
var ErrUnexpected = errors.New("unexpected error during sync")

// TxBeginner is satisfied by *sql.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Syncer drives the per-table protocol for every table of a run, one table
// at a time. A failed table never stops the tables after it.
type Syncer struct {
	source    Source
	target    TxBeginner
	converter *schema.Converter
	copier    *Copier
	logger    *zap.Logger

	// DryRun stops each table once its target DDL is rendered.
	DryRun bool
	// OnResult is called after each table finishes.
	OnResult func(SyncResult)
}

func NewSyncer(src Source, target TxBeginner, converter *schema.Converter, copier *Copier, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		source:    src,
		target:    target,
		converter: converter,
		copier:    copier,
		logger:    logger,
	}
}

// Run syncs tables in the given order. The returned error is non-nil only
// for ErrUnexpected; per-table failures are recorded in the report.
func (s *Syncer) Run(ctx context.Context, tables []string) (report *Report, err error) {
	report = NewReport()
	s.logger.Info("sync started", zap.Int("tables", len(tables)), zap.Bool("dry_run", s.DryRun))

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpected, p)
			s.logger.Error("sync aborted", zap.Error(err), zap.Int("completed", report.Total()))
		}
		report.Finish()
	}()

	for _, table := range tables {
		res := s.SyncTable(ctx, table)
		report.Add(res)
		if s.OnResult != nil {
			s.OnResult(res)
		}
	}

	s.logger.Info("sync finished",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.FailedCount()),
		zap.Int64("rows", report.RowsCopied()))
	return report, nil
}

// SyncTable runs the full protocol for one table.
func (s *Syncer) SyncTable(ctx context.Context, table string) SyncResult {
	r := &tableRun{
		syncer: s,
		table:  table,
		state:  statePending,
		log:    s.logger.With(zap.String("table", table)),
	}
	return r.run(ctx)
}

type tableRun struct {
	syncer *Syncer
	table  string
	state  tableState
	log    *zap.Logger

	conv *schema.Conversion
	tx   *sql.Tx
	rows int64
	err  error
}

func (r *tableRun) run(ctx context.Context) SyncResult {
	start := time.Now()
	defer func() {
		// Reached with an open transaction only when a step panicked.
		if r.tx != nil {
			_ = r.tx.Rollback()
			r.tx = nil
		}
	}()

	for !r.done() {
		next := r.advance(ctx)
		r.log.Debug("state transition", zap.Stringer("from", r.state), zap.Stringer("to", next))
		r.state = next
	}

	res := SyncResult{
		Table:      r.table,
		Status:     r.state.status(r.rows),
		RowsCopied: r.rows,
		Duration:   time.Since(start),
	}
	if r.conv != nil {
		res.DDL = r.conv.DDL
	}
	if r.err != nil {
		res.Error = r.err.Error()
		r.log.Warn("table failed", zap.String("status", string(res.Status)), zap.Error(r.err))
	} else {
		r.log.Info("table synced", zap.String("status", string(res.Status)), zap.Int64("rows", r.rows))
	}
	return res
}

func (r *tableRun) done() bool {
	return r.state.terminal() || (r.syncer.DryRun && r.state == stateDDLReady)
}

func (r *tableRun) advance(ctx context.Context) tableState {
	switch r.state {
	case statePending:
		return r.convert(ctx)
	case stateDDLReady:
		return r.create(ctx)
	case stateTableCreated:
		return r.copy(ctx)
	default:
		return r.state
	}
}

func (r *tableRun) convert(ctx context.Context) tableState {
	ddl, err := r.syncer.source.CreateTableDDL(ctx, r.table)
	if err != nil {
		r.err = err
		return stateDDLFailed
	}
	conv, err := r.syncer.converter.Convert(ddl)
	if err != nil {
		r.err = fmt.Errorf("convert %s: %w", r.table, err)
		return stateDDLFailed
	}
	for _, l := range conv.Source.Skipped() {
		r.log.Debug("line skipped", zap.Int("line", l.Number), zap.String("reason", l.SkipReason), zap.String("text", l.Text))
	}
	r.conv = conv
	return stateDDLReady
}

func (r *tableRun) create(ctx context.Context) tableState {
	tx, err := r.syncer.target.BeginTx(ctx, nil)
	if err != nil {
		r.err = fmt.Errorf("begin transaction: %w", err)
		return stateCreateFailed
	}
	r.tx = tx

	conv := r.syncer.converter
	drop := conv.Dialect.DropTableQuery(conv.TargetSchema, r.conv.Source.Name)
	if _, err := tx.ExecContext(ctx, drop); err != nil {
		r.fail(fmt.Errorf("drop %s: %w", r.table, err))
		return stateCreateFailed
	}
	if _, err := tx.ExecContext(ctx, r.conv.DDL); err != nil {
		r.fail(fmt.Errorf("create %s: %w", r.table, err))
		return stateCreateFailed
	}
	return stateTableCreated
}

func (r *tableRun) copy(ctx context.Context) tableState {
	rs, err := r.syncer.source.ReadRows(ctx, r.table)
	if err != nil {
		r.fail(err)
		return stateCopyFailed
	}

	n, err := r.syncer.copier.Copy(ctx, r.tx, r.syncer.converter.TargetSchema, r.conv.Source.Name, rs)
	if err != nil {
		r.fail(err)
		return stateCopyFailed
	}

	err = r.tx.Commit()
	r.tx = nil
	if err != nil {
		r.err = fmt.Errorf("commit %s: %w", r.table, err)
		return stateCopyFailed
	}
	r.rows = n
	return stateDataCopied
}

// fail records err and rolls back the table's transaction.
func (r *tableRun) fail(err error) {
	r.err = err
	if r.tx == nil {
		return
	}
	if rbErr := r.tx.Rollback(); rbErr != nil {
		r.log.Warn("rollback failed", zap.Error(rbErr))
	}
	r.tx = nil
}
