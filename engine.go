package payments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Mode selects how an Engine schedules the application of transactions.
type Mode int

const (
	// Concurrent applies each client's transactions on a dedicated lane,
	// lanes running in parallel.
	Concurrent Mode = iota
	// Serial applies every transaction directly on the ingestion path.
	Serial
)

func (m Mode) String() string {
	switch m {
	case Concurrent:
		return "concurrent"
	case Serial:
		return "serial"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "concurrent":
		return Concurrent, nil
	case "serial":
		return Serial, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}

// DefaultQueueSize is the default capacity of a lane queue.
const DefaultQueueSize = 64

var (
	// ErrEngineClosed is returned by Submit after Close.
	ErrEngineClosed = errors.New("engine closed")
	// ErrEngineRunning is returned by Snapshots before Close.
	ErrEngineRunning = errors.New("engine still running")
)

// Options configures an Engine.
type Options struct {
	Mode Mode
	// QueueSize is the capacity of each lane queue. A full queue blocks
	// Submit until the lane catches up. Zero means unbuffered.
	QueueSize int
	// Logger receives rejections and lane events. Nil discards them.
	Logger *slog.Logger
	// OnLaneDone, if set, is called by each lane once it has drained its
	// queue, from the lane's goroutine.
	OnLaneDone func(client ClientID, applied int)
}

// Engine routes transactions to the account of their client.
//
// Submit must be called from a single goroutine, in arrival order. In
// Concurrent mode each client gets a lane, a goroutine consuming a FIFO queue,
// created on the first transaction routed to that client. Lanes never share
// an account so they need no synchronization between them; the only shared
// state is the TransactionLog.
//
// Close signals the end of the stream to every lane and waits for all of them
// to drain. Snapshots can only be read after Close.
type Engine struct {
	opts   Options
	logger *slog.Logger
	ledger *Ledger

	ctx   context.Context
	group *errgroup.Group
	lanes map[ClientID]*lane

	stats  Stats // owned by the ingestion path
	closed bool
	err    error
}

type lane struct {
	account *Account
	queue   chan item
	stats   Stats // owned by the lane until Close returns
}

type item struct {
	line int
	tx   Transaction
}

// NewEngine creates an engine. Lanes stop early if ctx is cancelled.
func NewEngine(ctx context.Context, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	group, gctx := errgroup.WithContext(ctx)
	return &Engine{
		opts:   opts,
		logger: logger,
		ledger: NewLedger(),
		ctx:    gctx,
		group:  group,
		lanes:  make(map[ClientID]*lane),
		stats:  newStats(),
	}
}

// Submit routes tx to its client. It returns without waiting for tx to be
// applied.
//
// A transaction rejected at admission (a duplicate id, or a dispute of an id
// no deposit used yet) is reported by the returned error; rejections happening
// when the transaction is applied are only logged and counted in Stats. A non-rejection error means the engine
// can no longer accept transactions.
func (e *Engine) Submit(ctx context.Context, tx Transaction) error {
	return e.submit(ctx, 0, tx)
}

// Touch registers client without submitting anything, so that it has an
// account in the snapshots. The ingestion path calls it for records it could
// not validate but whose client is known.
func (e *Engine) Touch(client ClientID) error {
	if e.closed {
		return ErrEngineClosed
	}
	e.ledger.Account(client)
	return nil
}

func (e *Engine) submit(ctx context.Context, line int, tx Transaction) error {
	if e.closed {
		return ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.stats.Records++

	account := e.ledger.Account(tx.Client)
	if err := e.ledger.Admit(tx); err != nil {
		e.reject(&e.stats, line, tx, err)
		return err
	}

	it := item{line: line, tx: tx}
	if e.opts.Mode == Serial {
		e.applyTo(account, &e.stats, it)
		return nil
	}

	l, ok := e.lanes[tx.Client]
	if !ok {
		l = &lane{account: account, queue: make(chan item, e.opts.QueueSize), stats: newStats()}
		e.lanes[tx.Client] = l
		e.group.Go(func() error { return e.run(l) })
	}
	select {
	case l.queue <- it:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ctx.Done():
		return e.ctx.Err()
	}
}

// run is the loop of a lane: apply queued transactions in order until the
// queue is closed and empty.
func (e *Engine) run(l *lane) error {
	for {
		select {
		case it, ok := <-l.queue:
			if !ok {
				// a run cancelled before its end never drains successfully.
				if err := e.ctx.Err(); err != nil {
					return err
				}
				e.logger.Debug("lane drained", "client", l.account.Client(), "applied", l.stats.Applied)
				if e.opts.OnLaneDone != nil {
					e.opts.OnLaneDone(l.account.Client(), l.stats.Applied)
				}
				return nil
			}
			e.applyTo(l.account, &l.stats, it)
		case <-e.ctx.Done():
			return e.ctx.Err()
		}
	}
}

func (e *Engine) applyTo(a *Account, stats *Stats, it item) {
	if err := a.apply(e.ledger.log, it.tx); err != nil {
		e.reject(stats, it.line, it.tx, err)
		return
	}
	stats.Applied++
}

func (e *Engine) reject(stats *Stats, line int, tx Transaction, err error) {
	stats.reject(err)
	e.logger.Debug("transaction rejected",
		"line", line,
		"type", tx.Type,
		"client", tx.Client,
		"tx", tx.ID,
		"reason", err,
	)
}

// Close ends the stream: every lane queue is closed and Close waits for all
// lanes to drain. It returns the error that stopped a lane, if any, typically
// a cancelled context. Calling Close again returns the same result.
func (e *Engine) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	for _, l := range e.lanes {
		close(l.queue)
	}
	e.err = e.group.Wait()
	for _, l := range e.lanes {
		e.stats.merge(l.stats)
	}
	return e.err
}

// Snapshots returns the final state of every account, ordered by client id.
// There is no snapshot of a run that Close reported as failed.
func (e *Engine) Snapshots() ([]Snapshot, error) {
	if !e.closed {
		return nil, ErrEngineRunning
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.ledger.Snapshots(), nil
}

// Stats returns the counters of the run. They are complete after Close.
func (e *Engine) Stats() Stats { return e.stats.clone() }

// Lanes returns the number of lanes started so far.
func (e *Engine) Lanes() int { return len(e.lanes) }
