package payments

import "fmt"

// DisputeStatus is the dispute state of a logged deposit.
type DisputeStatus int

const (
	// Clean deposits have never been disputed.
	Clean DisputeStatus = iota
	// Disputed deposits have their amount moved from available to held.
	Disputed
	// Resolved deposits had a dispute reversed; they can be disputed again.
	Resolved
	// ChargedBack is terminal: the amount left the account and the account is locked.
	ChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case Clean:
		return "clean"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case ChargedBack:
		return "charged back"
	default:
		return "unknown"
	}
}

// next returns the status reached by applying cmd to a deposit in status s.
//
//	clean    --dispute-->    disputed
//	resolved --dispute-->    disputed
//	disputed --resolve-->    resolved
//	disputed --chargeback--> charged back
func (s DisputeStatus) next(cmd CommandType) (DisputeStatus, error) {
	switch {
	case cmd == CmdDispute && (s == Clean || s == Resolved):
		return Disputed, nil
	case cmd == CmdResolve && s == Disputed:
		return Resolved, nil
	case cmd == CmdChargeback && s == Disputed:
		return ChargedBack, nil
	}
	return s, fmt.Errorf("%w: cannot %s a %s deposit", ErrInvalidTransition, cmd, s)
}

// dispute applies a dispute-family transaction to account a.
//
// The log entry for tx.ID is looked up and, if tx is allowed, its status and
// the account balances change together under the entry's shard lock. On any
// rejection neither changes.
func (a *Account) dispute(log *TransactionLog, tx Transaction) error {
	return log.Update(tx.ID, func(e *LogEntry) error {
		if e.Client != tx.Client {
			return fmt.Errorf("%w: tx %d belongs to client %d", ErrClientMismatch, e.ID, e.Client)
		}
		status, err := e.Status.next(tx.Type)
		if err != nil {
			return err
		}

		switch tx.Type {
		case CmdDispute:
			// only funds still available can be frozen.
			if a.available.LessThan(e.Amount) {
				return fmt.Errorf("%w: cannot hold %s, %s available", ErrInsufficientFunds, e.Amount, a.available)
			}
			a.available = a.available.Sub(e.Amount)
			a.held = a.held.Add(e.Amount)
		case CmdResolve:
			a.held = a.held.Sub(e.Amount)
			a.available = a.available.Add(e.Amount)
		case CmdChargeback:
			a.held = a.held.Sub(e.Amount)
			a.locked = true
		}
		e.Status = status
		return nil
	})
}
