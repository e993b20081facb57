package payments

import "fmt"

// Account is the balance state of one client.
//
// An Account is owned by a single goroutine at a time: the lane of its client
// while a run is in progress, the reader of the snapshot afterwards.
type Account struct {
	client    ClientID
	available Amount
	held      Amount
	locked    bool
}

// NewAccount creates an empty, unlocked account.
func NewAccount(client ClientID) *Account {
	return &Account{client: client}
}

func (a *Account) Client() ClientID  { return a.client }
func (a *Account) Available() Amount { return a.available }
func (a *Account) Held() Amount      { return a.held }
func (a *Account) Locked() bool      { return a.locked }

// Total is Available+Held. It is never stored.
func (a *Account) Total() Amount { return a.available.Add(a.held) }

// deposit credits the account. Crediting is never blocked, not even on a locked account.
func (a *Account) deposit(amount Amount) {
	a.available = a.available.Add(amount)
}

func (a *Account) withdraw(amount Amount) error {
	if a.locked {
		return fmt.Errorf("%w: client %d", ErrAccountLocked, a.client)
	}
	if a.available.LessThan(amount) {
		return fmt.Errorf("%w: cannot withdraw %s, %s available", ErrInsufficientFunds, amount, a.available)
	}
	a.available = a.available.Sub(amount)
	return nil
}

// apply applies an admitted transaction to the account. It either changes the
// account fully or returns a rejection and leaves it unchanged.
func (a *Account) apply(log *TransactionLog, tx Transaction) error {
	if tx.Client != a.client {
		return fmt.Errorf("%w: tx for client %d applied to client %d", ErrClientMismatch, tx.Client, a.client)
	}
	switch tx.Type {
	case CmdDeposit:
		a.deposit(tx.Amount)
		return nil
	case CmdWithdrawal:
		return a.withdraw(tx.Amount)
	case CmdDispute, CmdResolve, CmdChargeback:
		return a.dispute(log, tx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, tx.Type)
	}
}

// Snapshot is the final, reportable state of an account.
type Snapshot struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Snapshot returns the current state of the account.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}
