package utxomanager

const (
	FeePerMass = 10

	// MaxInputsPerTx caps how many inputs one transaction may consume.
	MaxInputsPerTx = 84
)

// SelectUTXOs walks the amount-descending cache, skipping pending outpoints,
// and greedily accumulates inputs until they cover minAmount plus the fee for
// the transaction built so far. With maximize set it keeps going until
// exactly MaxInputsPerTx inputs are gathered. Returns the selected pairs and
// the net amount (accumulated minus fee), or (nil, 0) when the wallet cannot
// fund the transaction this round.
func (m *UTXOManager) SelectUTXOs(minAmount uint64, numOuts uint64, maximize bool) ([]UTXOPair, uint64) {
	m.mux.RLock()
	defer m.mux.RUnlock()

	var selectedAmount uint64
	var selected []UTXOPair
	for _, pair := range m.unspent {
		if _, isPending := m.pending[pair.Outpoint]; isPending {
			continue
		}
		selectedAmount += pair.Entry.Amount
		selected = append(selected, pair)

		fee := RequiredFee(len(selected), numOuts)
		if selectedAmount >= minAmount+fee && (!maximize || len(selected) == MaxInputsPerTx) {
			return selected, selectedAmount - fee
		}
		if len(selected) > MaxInputsPerTx {
			return nil, 0
		}
	}
	return nil, 0
}

func RequiredFee(numInputs int, numOuts uint64) uint64 {
	return FeePerMass * EstimatedMass(numInputs, numOuts)
}

// EstimatedMass approximates the node's transaction mass formula; it only
// needs to be an upper-ish bound that grows with the input count.
func EstimatedMass(numInputs int, numOuts uint64) uint64 {
	return 200 + 34*numOuts + 1000*uint64(numInputs)
}
