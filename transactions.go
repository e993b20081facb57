package payments

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandType is a typed string for identifying transaction types.
type CommandType string

// Transaction types as they appear in the input.
const (
	CmdDeposit    CommandType = "deposit"
	CmdWithdrawal CommandType = "withdrawal"
	CmdDispute    CommandType = "dispute"
	CmdResolve    CommandType = "resolve"
	CmdChargeback CommandType = "chargeback"
)

// ParseCommandType parses a transaction type, ignoring case and surrounding spaces.
func ParseCommandType(s string) (CommandType, error) {
	switch c := CommandType(strings.ToLower(strings.TrimSpace(s))); c {
	case CmdDeposit, CmdWithdrawal, CmdDispute, CmdResolve, CmdChargeback:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// carriesAmount reports whether transactions of this type move an amount of their own.
func (c CommandType) carriesAmount() bool {
	return c == CmdDeposit || c == CmdWithdrawal
}

// ClientID identifies a client and its account.
type ClientID uint16

// TxID identifies a transaction. Ids are unique across the whole input stream,
// but dispute, resolve and chargeback reuse the id of the deposit they target.
type TxID uint32

// Record is a raw input record, fields as read.
type Record struct {
	Line   int // 1-based input line, 0 if unknown
	Type   string
	Client string
	Tx     string
	Amount string // empty when absent
}

// Transaction is a validated record.
//
// Amount is the zero Amount for dispute, resolve and chargeback.
type Transaction struct {
	Type   CommandType
	Client ClientID
	ID     TxID
	Amount Amount
}

func (tx Transaction) String() string {
	if tx.Type.carriesAmount() {
		return fmt.Sprintf("%s client=%d tx=%d amount=%s", tx.Type, tx.Client, tx.ID, tx.Amount)
	}
	return fmt.Sprintf("%s client=%d tx=%d", tx.Type, tx.Client, tx.ID)
}

// NewDeposit creates a deposit transaction.
func NewDeposit(client ClientID, id TxID, amount Amount) Transaction {
	return Transaction{Type: CmdDeposit, Client: client, ID: id, Amount: amount}
}

// NewWithdrawal creates a withdrawal transaction.
func NewWithdrawal(client ClientID, id TxID, amount Amount) Transaction {
	return Transaction{Type: CmdWithdrawal, Client: client, ID: id, Amount: amount}
}

// NewDispute creates a dispute of the deposit id.
func NewDispute(client ClientID, id TxID) Transaction {
	return Transaction{Type: CmdDispute, Client: client, ID: id}
}

// NewResolve creates a resolve of the disputed deposit id.
func NewResolve(client ClientID, id TxID) Transaction {
	return Transaction{Type: CmdResolve, Client: client, ID: id}
}

// NewChargeback creates a chargeback of the disputed deposit id.
func NewChargeback(client ClientID, id TxID) Transaction {
	return Transaction{Type: CmdChargeback, Client: client, ID: id}
}

// ParseClientID parses a client id, ignoring surrounding spaces.
func ParseClientID(s string) (ClientID, error) {
	client, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: client %q", ErrMalformedRecord, s)
	}
	return ClientID(client), nil
}

// Validate turns a raw record into a Transaction.
//
// Deposits and withdrawals require a valid amount; for the other types the
// amount field is ignored. The returned error wraps one of the validation
// rejection sentinels.
func Validate(r Record) (Transaction, error) {
	cmd, err := ParseCommandType(r.Type)
	if err != nil {
		return Transaction{}, err
	}
	client, err := ParseClientID(r.Client)
	if err != nil {
		return Transaction{}, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(r.Tx), 10, 32)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: tx %q", ErrMalformedRecord, r.Tx)
	}
	tx := Transaction{Type: cmd, Client: client, ID: TxID(id)}
	if !cmd.carriesAmount() {
		return tx, nil
	}

	raw := strings.TrimSpace(r.Amount)
	if raw == "" {
		return Transaction{}, fmt.Errorf("%w: %s requires an amount", ErrMissingAmount, cmd)
	}
	if tx.Amount, err = ParseAmount(raw); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
