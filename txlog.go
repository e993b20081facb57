package payments

import (
	"fmt"
	"sync"
)

// logShards is the number of independently locked partitions of a TransactionLog.
const logShards = 32

// LogEntry is the record of an accepted deposit, the only disputable transaction.
type LogEntry struct {
	ID     TxID
	Client ClientID
	Amount Amount
	Status DisputeStatus
}

// TransactionLog records accepted deposits for the duration of a run.
//
// It is shared by every lane: the ingestion path inserts entries while lanes
// look them up and move them through the dispute states, so it is safe for
// concurrent use. Entries are partitioned by id, each partition with its own lock.
type TransactionLog struct {
	shards [logShards]logShard
}

type logShard struct {
	mu      sync.Mutex
	entries map[TxID]*LogEntry
}

// NewTransactionLog creates an empty log.
func NewTransactionLog() *TransactionLog {
	l := &TransactionLog{}
	for i := range l.shards {
		l.shards[i].entries = make(map[TxID]*LogEntry)
	}
	return l
}

func (l *TransactionLog) shard(id TxID) *logShard {
	return &l.shards[uint32(id)%logShards]
}

// Insert logs a new Clean deposit. It fails with ErrDuplicateTransaction if
// the id is already logged, leaving the existing entry untouched.
func (l *TransactionLog) Insert(id TxID, client ClientID, amount Amount) error {
	s := l.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, id)
	}
	s.entries[id] = &LogEntry{ID: id, Client: client, Amount: amount, Status: Clean}
	return nil
}

// Contains reports whether id is logged.
func (l *TransactionLog) Contains(id TxID) bool {
	s := l.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.entries[id]
	return exists
}

// Get returns a copy of the entry for id.
func (l *TransactionLog) Get(id TxID) (LogEntry, bool) {
	s := l.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[id]
	if !exists {
		return LogEntry{}, false
	}
	return *e, true
}

// Update calls fn with the entry for id while holding its shard lock.
//
// fn must leave the entry unchanged when it returns an error. Update fails
// with ErrUnknownTransaction if id is not logged.
func (l *TransactionLog) Update(id TxID, fn func(*LogEntry) error) error {
	s := l.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[id]
	if !exists {
		return fmt.Errorf("%w: tx %d", ErrUnknownTransaction, id)
	}
	return fn(e)
}

// Len returns the number of logged deposits.
func (l *TransactionLog) Len() int {
	n := 0
	for i := range l.shards {
		s := &l.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}
