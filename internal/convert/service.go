// Package convert orchestrates one conversion request: raw export bytes in,
// canonical statement plus account classification out, and the QFX rendering
// of that result. Each call is an independent, synchronous computation with
// no state shared between requests.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/bank2qfx/internal/qfx"
	"github.com/FACorreiaa/bank2qfx/internal/sniffer"
	"github.com/FACorreiaa/bank2qfx/internal/statement"
	"github.com/FACorreiaa/bank2qfx/internal/tabular"
)

// Options configures a Service. The zero value is usable.
type Options struct {
	// MaxRows bounds grid size; zero means unbounded.
	MaxRows int
	// InvertCreditCard flips amount signs when the source classifies as a
	// credit card. Off by default pending validation against real
	// exports.
	InvertCreditCard bool
	// RandomFITIDs replaces the deterministic FITID sequence with the
	// legacy random form ("R" + 16 hex chars). Deterministic IDs are the
	// default because importers dedupe repeated imports by FITID.
	RandomFITIDs bool
	// QFX controls the institution block and timestamps of the rendered
	// output.
	QFX qfx.Options
}

// Result is the artifact of one conversion, handed as-is to the serializer.
type Result struct {
	JobID       uuid.UUID
	SourceName  string
	Statement   *statement.Statement
	AccountType statement.AccountType
}

// Service runs the extraction pipeline. Safe for concurrent use; every
// request gets fresh state.
type Service struct {
	loader *tabular.Loader
	opts   Options
	logger *slog.Logger
}

func NewService(logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader: tabular.NewLoader(opts.MaxRows),
		opts:   opts,
		logger: logger,
	}
}

// Parse converts raw export bytes into an assembled, classified statement.
// Terminal failures (unreadable bytes, no header row, missing required
// columns, row limit) abort with an error; row-local failures accumulate in
// the statement's skip diagnostics.
func (s *Service) Parse(ctx context.Context, data []byte, filename string) (*Result, error) {
	grid, err := s.loader.Load(data, filename)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}

	headerRow, err := sniffer.LocateHeader(grid)
	if err != nil {
		return nil, fmt.Errorf("locate header in %s: %w", filename, err)
	}

	cols, err := sniffer.ResolveColumns(grid, headerRow)
	if err != nil {
		return nil, fmt.Errorf("resolve columns in %s: %w", filename, err)
	}

	stmt := statement.Assemble(grid, headerRow, cols)
	accountType := statement.Classify(stmt, filename)

	if accountType == statement.AccountCreditCard && s.opts.InvertCreditCard {
		stmt.InvertSigns()
	}
	if s.opts.RandomFITIDs {
		assignRandomFITIDs(stmt)
	}

	result := &Result{
		JobID:       uuid.New(),
		SourceName:  filename,
		Statement:   stmt,
		AccountType: accountType,
	}

	s.logger.InfoContext(ctx, "conversion complete",
		"job_id", result.JobID,
		"source", filename,
		"account_type", accountType,
		"header_row", headerRow,
		"records", len(stmt.Transactions),
		"skipped", len(stmt.Skipped),
	)
	return result, nil
}

// Serialize renders a parsed result as QFX text.
func (s *Service) Serialize(result *Result) string {
	return qfx.Render(result.Statement, result.AccountType, s.opts.QFX)
}

// assignRandomFITIDs rewrites IDs in the legacy random form. Uniqueness
// within the file is preserved by construction; determinism is not.
func assignRandomFITIDs(stmt *statement.Statement) {
	for i := range stmt.Transactions {
		hex := strings.ReplaceAll(uuid.NewString(), "-", "")
		stmt.Transactions[i].FITID = "R" + hex[:16]
	}
}
