package utxomanager

import (
	"sort"
	"sync"

	"github.com/kaspagen/txgen/transaction"
)

// UTXOPair couples an outpoint with the entry snapshot it referred to at
// fetch time. Selections hand these to the signer so entries are never
// re-resolved later.
type UTXOPair struct {
	Outpoint transaction.Outpoint
	Entry    *transaction.UtxoEntry
}

// UTXOManager owns the wallet's view of its spendable outputs plus the
// outpoints currently claimed by in-flight transactions. Both live under the
// one RWMutex: selection reads, everything else writes.
type UTXOManager struct {
	mux     sync.RWMutex
	unspent []UTXOPair                      // sorted by amount, descending
	pending map[transaction.Outpoint]uint64 // outpoint -> insertion unix-millis
}

func NewUTXOManager() *UTXOManager {
	return &UTXOManager{
		unspent: []UTXOPair{},
		pending: map[transaction.Outpoint]uint64{},
	}
}

// ReplaceSpendable swaps in a freshly fetched UTXO set. The slice is sorted
// amount-descending and the reference replaced atomically, so no reader ever
// observes a partially updated set.
func (m *UTXOManager) ReplaceSpendable(utxos []UTXOPair) {
	sort.Slice(utxos, func(i, j int) bool {
		return utxos[i].Entry.Amount > utxos[j].Entry.Amount
	})
	m.mux.Lock()
	defer m.mux.Unlock()
	m.unspent = utxos
}

func (m *UTXOManager) NumSpendable() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.unspent)
}

func (m *UTXOManager) NumPending() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.pending)
}

// EstimatedFreeUTXOs is the count of cached outputs minus those claimed by
// in-flight transactions, floored at zero.
func (m *UTXOManager) EstimatedFreeUTXOs() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return estimatedFree(len(m.unspent), len(m.pending))
}

func estimatedFree(numUnspent int, numPending int) int {
	if numUnspent > numPending {
		return numUnspent - numPending
	}
	return 0
}
