package payments

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Result is the outcome of a complete run.
type Result struct {
	Snapshots []Snapshot
	Stats     Stats
}

// Process reads the whole transaction stream from r and returns the final
// snapshot of every account.
//
// Rejected records are skipped, logged and counted; they never fail the run.
// Process fails only if r cannot be decoded as a transaction stream, reading
// fails, or ctx is cancelled. It then returns no snapshot at all.
func Process(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}

	e := NewEngine(ctx, opts)
	stats := newStats()
	if err := feed(ctx, dec, e, &stats); err != nil {
		// lanes must still exit before the error is returned.
		if cerr := e.Close(); cerr != nil && !errors.Is(err, cerr) {
			err = errors.Join(err, cerr)
		}
		return nil, err
	}
	if err := e.Close(); err != nil {
		return nil, fmt.Errorf("processing did not complete: %w", err)
	}
	snaps, err := e.Snapshots()
	if err != nil {
		return nil, err
	}
	stats.merge(e.Stats())

	e.logger.Info("run complete",
		"mode", opts.Mode,
		"records", stats.Records,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
		"accounts", len(snaps),
	)
	return &Result{Snapshots: snaps, Stats: stats}, nil
}

// feed is the ingestion path: it decodes and validates records in order and
// submits them to e. Validation rejections are counted in stats.
func feed(ctx context.Context, dec *Decoder, e *Engine, stats *Stats) error {
	for {
		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				return fmt.Errorf("could not read transactions: %w", err)
			}
			stats.Records++
			stats.reject(err)
			e.logger.Debug("record rejected", "line", recErr.Line, "reason", recErr.Err)
			continue
		}

		tx, err := Validate(rec)
		if err != nil {
			// the client appeared in the input even if its record is refused.
			if client, cerr := ParseClientID(rec.Client); cerr == nil {
				if err := e.Touch(client); err != nil {
					return err
				}
			}
			stats.Records++
			stats.reject(err)
			e.logger.Debug("record rejected",
				"line", rec.Line,
				"type", rec.Type,
				"client", rec.Client,
				"tx", rec.Tx,
				"reason", err,
			)
			continue
		}

		if err := e.submit(ctx, rec.Line, tx); err != nil && !IsRejection(err) {
			return err
		}
	}
}
