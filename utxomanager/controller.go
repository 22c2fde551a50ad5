package utxomanager

const (
	// maximizeInputsThreshold turns on consolidation once this many free
	// outputs have piled up.
	maximizeInputsThreshold = 1_000_000
	// stopMaximizeThreshold turns consolidation back off. The gap between
	// the two keeps the mode from flapping.
	stopMaximizeThreshold = 500_000
)

// NextInputsMode decides whether the generator should consolidate, i.e. send
// single-output transactions stuffed with MaxInputsPerTx inputs. Pure
// hysteresis over the estimated free output count.
func NextInputsMode(currentlyMaximizing bool, estimatedFreeUTXOs int) bool {
	switch {
	case !currentlyMaximizing && estimatedFreeUTXOs > maximizeInputsThreshold:
		return true
	case currentlyMaximizing && estimatedFreeUTXOs < stopMaximizeThreshold:
		return false
	default:
		return currentlyMaximizing
	}
}
