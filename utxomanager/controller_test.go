package utxomanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaspagen/txgen/transaction"
)

func TestNextInputsModeHysteresis(t *testing.T) {
	assert.True(t, NextInputsMode(false, 1_000_001))
	assert.False(t, NextInputsMode(true, 499_999))
	assert.False(t, NextInputsMode(false, 700_000))
	assert.True(t, NextInputsMode(true, 700_000))

	// Boundaries are exclusive on both sides.
	assert.False(t, NextInputsMode(false, 1_000_000))
	assert.True(t, NextInputsMode(true, 500_000))
}

func TestEstimatedFreeUTXOsFloorsAtZero(t *testing.T) {
	m := newTestManager(100, 200)
	m.MarkPending([]transaction.Outpoint{
		{TxID: transaction.TxID{1}},
		{TxID: transaction.TxID{2}},
		{TxID: transaction.TxID{9}}, // pending outpoint not in the cache
	}, 0)

	assert.Equal(t, 0, m.EstimatedFreeUTXOs())

	m.ReplaceSpendable([]UTXOPair{
		testPair(1, 100), testPair(2, 200), testPair(3, 300), testPair(4, 400),
	})
	assert.Equal(t, 1, m.EstimatedFreeUTXOs())
}
