package utxomanager

import (
	"github.com/kaspagen/txgen/transaction"
)

// PendingMaxAgeMillis is how long an outpoint stays claimed before the sweep
// releases it. Confirmations are never observed directly; expiry plus the
// periodic refresh keep the map honest.
const PendingMaxAgeMillis = 3600 * 1000

// MarkPending claims the given outpoints at nowMillis. Re-marking an already
// pending outpoint just refreshes its timestamp.
func (m *UTXOManager) MarkPending(outpoints []transaction.Outpoint, nowMillis uint64) {
	m.mux.Lock()
	defer m.mux.Unlock()
	for _, outpoint := range outpoints {
		m.pending[outpoint] = nowMillis
	}
}

func (m *UTXOManager) IsPending(outpoint transaction.Outpoint) bool {
	m.mux.RLock()
	defer m.mux.RUnlock()
	_, ok := m.pending[outpoint]
	return ok
}

// SweepExpired drops every claim strictly older than PendingMaxAgeMillis. An
// entry aged exactly PendingMaxAgeMillis is retained.
func (m *UTXOManager) SweepExpired(nowMillis uint64) {
	m.mux.Lock()
	defer m.mux.Unlock()
	for outpoint, insertedAt := range m.pending {
		if nowMillis-insertedAt > PendingMaxAgeMillis {
			delete(m.pending, outpoint)
		}
	}
}
