package payments

import (
	"fmt"
	"maps"
	"slices"
)

// Ledger holds the accounts of all clients and the log of their deposits.
//
// The methods of a Ledger are not safe for concurrent use. The Engine uses a
// Ledger from its ingestion path only and hands each Account to the lane of
// its client.
type Ledger struct {
	log      *TransactionLog
	accounts map[ClientID]*Account
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		log:      NewTransactionLog(),
		accounts: make(map[ClientID]*Account),
	}
}

// Log returns the ledger's transaction log.
func (l *Ledger) Log() *TransactionLog { return l.log }

// Account returns the account of client, creating it if needed.
func (l *Ledger) Account(client ClientID) *Account {
	a, ok := l.accounts[client]
	if !ok {
		a = NewAccount(client)
		l.accounts[client] = a
	}
	return a
}

// Lookup returns the account of client, or nil if the client never appeared.
func (l *Ledger) Lookup(client ClientID) *Account { return l.accounts[client] }

// Len returns the number of accounts.
func (l *Ledger) Len() int { return len(l.accounts) }

// Admit enforces the global uniqueness of transaction ids. It must be called
// for every transaction in arrival order, before the transaction is applied.
//
// A deposit is logged, or rejected if its id is already logged. A withdrawal
// presenting a logged deposit id is rejected. Dispute-family transactions
// reuse a deposit id by design; they are rejected only if no deposit was
// logged under that id before them, so that a lane never sees a deposit that
// arrived after the dispute.
func (l *Ledger) Admit(tx Transaction) error {
	switch tx.Type {
	case CmdDeposit:
		return l.log.Insert(tx.ID, tx.Client, tx.Amount)
	case CmdWithdrawal:
		if l.log.Contains(tx.ID) {
			return fmt.Errorf("%w: tx %d is a deposit id", ErrDuplicateTransaction, tx.ID)
		}
	case CmdDispute, CmdResolve, CmdChargeback:
		if !l.log.Contains(tx.ID) {
			return fmt.Errorf("%w: tx %d", ErrUnknownTransaction, tx.ID)
		}
	}
	return nil
}

// Apply admits tx and applies it to its client's account.
func (l *Ledger) Apply(tx Transaction) error {
	a := l.Account(tx.Client)
	if err := l.Admit(tx); err != nil {
		return err
	}
	return a.apply(l.log, tx)
}

// Deposit credits amount to client, logging the deposit under id.
func (l *Ledger) Deposit(client ClientID, id TxID, amount Amount) error {
	return l.Apply(NewDeposit(client, id, amount))
}

// Withdraw debits amount from client's available funds.
func (l *Ledger) Withdraw(client ClientID, id TxID, amount Amount) error {
	return l.Apply(NewWithdrawal(client, id, amount))
}

// Dispute moves the amount of deposit id from available to held.
func (l *Ledger) Dispute(client ClientID, id TxID) error {
	return l.Apply(NewDispute(client, id))
}

// Resolve releases the held amount of disputed deposit id.
func (l *Ledger) Resolve(client ClientID, id TxID) error {
	return l.Apply(NewResolve(client, id))
}

// Chargeback removes the held amount of disputed deposit id and locks the account.
func (l *Ledger) Chargeback(client ClientID, id TxID) error {
	return l.Apply(NewChargeback(client, id))
}

// Snapshots returns the state of every account, ordered by client id.
func (l *Ledger) Snapshots() []Snapshot {
	snaps := make([]Snapshot, 0, len(l.accounts))
	for _, client := range slices.Sorted(maps.Keys(l.accounts)) {
		snaps = append(snaps, l.accounts[client].Snapshot())
	}
	return snaps
}
