package utxomanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaspagen/txgen/transaction"
)

func TestSweepExpiredBoundary(t *testing.T) {
	m := NewUTXOManager()
	outpoint := transaction.Outpoint{TxID: transaction.TxID{1}, Index: 3}
	insertedAt := uint64(1_000_000)
	m.MarkPending([]transaction.Outpoint{outpoint}, insertedAt)

	// Exactly at the max age the entry survives.
	m.SweepExpired(insertedAt + PendingMaxAgeMillis)
	assert.True(t, m.IsPending(outpoint))

	// One millisecond past it is gone.
	m.SweepExpired(insertedAt + PendingMaxAgeMillis + 1)
	assert.False(t, m.IsPending(outpoint))
}

func TestMarkPendingOverwritesTimestamp(t *testing.T) {
	m := NewUTXOManager()
	outpoint := transaction.Outpoint{TxID: transaction.TxID{2}}
	m.MarkPending([]transaction.Outpoint{outpoint}, 1_000)
	// Observed again later, e.g. in a mempool scan.
	m.MarkPending([]transaction.Outpoint{outpoint}, 500_000)

	// A sweep that would expire the first timestamp keeps the entry alive.
	m.SweepExpired(1_000 + PendingMaxAgeMillis + 1)
	assert.True(t, m.IsPending(outpoint))

	m.SweepExpired(500_000 + PendingMaxAgeMillis + 1)
	assert.False(t, m.IsPending(outpoint))
}

func TestIsPendingUnknownOutpoint(t *testing.T) {
	m := NewUTXOManager()
	assert.False(t, m.IsPending(transaction.Outpoint{TxID: transaction.TxID{9}}))
}

func TestNumPendingCountsDistinctOutpoints(t *testing.T) {
	m := NewUTXOManager()
	a := transaction.Outpoint{TxID: transaction.TxID{1}, Index: 0}
	b := transaction.Outpoint{TxID: transaction.TxID{1}, Index: 1}
	m.MarkPending([]transaction.Outpoint{a, b, a}, 1_000)
	assert.Equal(t, 2, m.NumPending())
}
