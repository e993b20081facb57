// Package payments applies a stream of client transactions to their accounts
// and reports the final state of every account.
//
// The building blocks are:
//   - Amount: an exact decimal value with at most four fractional digits.
//   - Validate: turns a raw Record into a typed Transaction, or rejects it.
//   - TransactionLog: the deposits accepted during a run and their dispute
//     status. Ids are unique across the whole stream.
//   - Ledger and Account: the balances of each client and the deposit,
//     withdrawal, dispute, resolve and chargeback operations on them.
//   - Engine: routes each transaction to the lane of its client. Lanes apply
//     their transactions in arrival order and run in parallel; Serial mode
//     applies everything on the caller's goroutine and yields the same
//     snapshots.
//   - Decoder, EncodeSnapshots and Process: the CSV shell around the Engine.
//
// A rejected transaction is skipped and counted in Stats, it never stops a
// run. Process only fails when the stream itself cannot be read.
//
// This package is the foundation of the `pay` command-line tool.
package payments
