package utxomanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaspagen/txgen/transaction"
)

func testPair(id byte, amount uint64) UTXOPair {
	return UTXOPair{
		Outpoint: transaction.Outpoint{TxID: transaction.TxID{id}, Index: 0},
		Entry:    &transaction.UtxoEntry{Amount: amount},
	}
}

func newTestManager(amounts ...uint64) *UTXOManager {
	m := NewUTXOManager()
	pairs := make([]UTXOPair, 0, len(amounts))
	for i, amount := range amounts {
		pairs = append(pairs, testPair(byte(i+1), amount))
	}
	m.ReplaceSpendable(pairs)
	return m
}

func TestSelectUTXOsSingleLargeInput(t *testing.T) {
	m := newTestManager(100_000, 50_000, 20_000)

	selected, netAmount := m.SelectUTXOs(10_000, 2, false)
	require.Len(t, selected, 1)
	assert.Equal(t, uint64(100_000), selected[0].Entry.Amount)
	// fee = 10 * (200 + 34*2 + 1000*1) = 12680
	assert.Equal(t, uint64(87_320), netAmount)
}

func TestSelectUTXOsSkipsPending(t *testing.T) {
	m := newTestManager(100_000, 50_000, 20_000)
	m.MarkPending([]transaction.Outpoint{{TxID: transaction.TxID{1}}}, 0)

	selected, netAmount := m.SelectUTXOs(10_000, 2, false)
	require.Len(t, selected, 1)
	assert.Equal(t, uint64(50_000), selected[0].Entry.Amount)
	assert.Equal(t, uint64(37_320), netAmount)

	for _, pair := range selected {
		assert.False(t, m.IsPending(pair.Outpoint))
	}
}

func TestSelectUTXOsAccumulatesUntilCovered(t *testing.T) {
	// One input does not cover target+fee, two do.
	m := newTestManager(20_000, 15_000, 13_000)

	selected, netAmount := m.SelectUTXOs(10_000, 2, false)
	require.Len(t, selected, 2)
	// fee(2 ins, 2 outs) = 10 * (200 + 68 + 2000) = 22680;
	// 35000 >= 10000 + 22680 holds, 20000 >= 10000 + 12680 does not.
	assert.Equal(t, uint64(35_000-22_680), netAmount)
}

func TestSelectUTXOsMaximizeRequiresFullCap(t *testing.T) {
	amounts := make([]uint64, MaxInputsPerTx)
	for i := range amounts {
		amounts[i] = 1_000_000
	}
	m := newTestManager(amounts...)

	selected, netAmount := m.SelectUTXOs(10_000, 1, true)
	require.Len(t, selected, MaxInputsPerTx)
	expectedFee := RequiredFee(MaxInputsPerTx, 1)
	assert.Equal(t, uint64(MaxInputsPerTx)*1_000_000-expectedFee, netAmount)
}

func TestSelectUTXOsMaximizeShortOfCapReturnsEmpty(t *testing.T) {
	amounts := make([]uint64, MaxInputsPerTx-1)
	for i := range amounts {
		amounts[i] = 1_000_000
	}
	m := newTestManager(amounts...)

	selected, netAmount := m.SelectUTXOs(10_000, 1, true)
	assert.Empty(t, selected)
	assert.Zero(t, netAmount)
}

func TestSelectUTXOsAbortsOverCap(t *testing.T) {
	// Dust only: the fee grows faster than the accumulated amount, so the
	// cap is hit before the target is covered.
	amounts := make([]uint64, 100)
	for i := range amounts {
		amounts[i] = 100
	}
	m := newTestManager(amounts...)

	selected, netAmount := m.SelectUTXOs(10_000, 2, false)
	assert.Empty(t, selected)
	assert.Zero(t, netAmount)
}

func TestSelectUTXOsExhaustedReturnsEmpty(t *testing.T) {
	m := newTestManager(1_000)

	selected, netAmount := m.SelectUTXOs(1_000_000, 2, false)
	assert.Empty(t, selected)
	assert.Zero(t, netAmount)
}

func TestSelectUTXOsNeverPartial(t *testing.T) {
	m := newTestManager(100_000, 50_000, 20_000, 300)

	for _, maximize := range []bool{false, true} {
		selected, netAmount := m.SelectUTXOs(10_000, 2, maximize)
		if len(selected) == 0 {
			assert.Zero(t, netAmount)
			continue
		}
		assert.GreaterOrEqual(t, len(selected), 1)
		assert.LessOrEqual(t, len(selected), MaxInputsPerTx)
		assert.Greater(t, netAmount, uint64(0))
	}
}

func TestEstimatedMassStrictlyIncreasingInInputs(t *testing.T) {
	for _, numOuts := range []uint64{1, 2, 10} {
		prev := EstimatedMass(0, numOuts)
		for n := 1; n <= MaxInputsPerTx+1; n++ {
			mass := EstimatedMass(n, numOuts)
			require.Greater(t, mass, prev)
			require.Greater(t, RequiredFee(n, numOuts), RequiredFee(n-1, numOuts))
			prev = mass
		}
	}
}

func TestReplaceSpendableSortsDescending(t *testing.T) {
	m := NewUTXOManager()
	m.ReplaceSpendable([]UTXOPair{testPair(1, 500), testPair(2, 10_000), testPair(3, 70)})

	m.mux.RLock()
	defer m.mux.RUnlock()
	require.Len(t, m.unspent, 3)
	assert.Equal(t, uint64(10_000), m.unspent[0].Entry.Amount)
	assert.Equal(t, uint64(500), m.unspent[1].Entry.Amount)
	assert.Equal(t, uint64(70), m.unspent[2].Entry.Amount)
}
